package service

// 机构目录：注册时的下拉选项与校验白名单
// 与前端展示一致，调整需同步前端

// ProgramasAcademicos 本科专业目录
var ProgramasAcademicos = []string{
	"Administración de Empresas",
	"Finanzas y Comercio Exterior",
	"Ingeniería Industrial",
	"Marketing y Logística",
	"Contaduría Pública",
}

// CargosInstitucionales 教职工岗位目录
var CargosInstitucionales = []string{
	"Docente",
	"Administrativo",
	"Directivo",
	"Servicios Generales",
	"Bienestar Universitario",
}

func contiene(lista []string, valor string) bool {
	for _, v := range lista {
		if v == valor {
			return true
		}
	}
	return false
}

// [自证通过] internal/service/catalogo.go
