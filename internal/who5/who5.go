package who5

import (
	"errors"
	"fmt"
)

// WHO-5 量表常量
// 阈值与分档边界（13/51/76）是历史数据兼容面，不可更改
const (
	NumPreguntas = 5 // 题目数量

	ValorMin = 0 // 单题最低分
	ValorMax = 5 // 单题最高分

	PuntajeRawMax   = 25  // 原始分上限（5 × 5）
	PuntajeFinalMax = 100 // 最终分上限（raw × 4）

	// UmbralAlertaDefault 预警阈值默认值：puntaje_final < 13 产生预警
	UmbralAlertaDefault = 13

	// UmbralPrioridadAltaDefault 预警优先级阈值默认值：puntaje_final < 8 为 alta
	UmbralPrioridadAltaDefault = 8

	// CambioSignificativoDefault 显著变化阈值默认值：两次测评差值 >= 10
	CambioSignificativoDefault = 10
)

// ErrRespuestasInvalidas 答卷不满足输入契约：必须恰好 5 题、题号为 1-5 且不重复、每题取值 0-5
var ErrRespuestasInvalidas = errors.New("respuestas inválidas")

// Respuesta 单题作答
type Respuesta struct {
	PreguntaNumero int // 1-5
	Valor          int // 0-5
}

// ComputeRawScore 计算原始分（0-25）
// 校验：恰好 5 个作答、取值 0-5、题号恰为 {1,2,3,4,5}；违反契约返回 ErrRespuestasInvalidas
func ComputeRawScore(respuestas []Respuesta) (int, error) {
	if len(respuestas) != NumPreguntas {
		return 0, fmt.Errorf("%w: deben ser exactamente %d respuestas, recibidas %d",
			ErrRespuestasInvalidas, NumPreguntas, len(respuestas))
	}

	var vistas [NumPreguntas + 1]bool
	suma := 0
	for _, r := range respuestas {
		if r.PreguntaNumero < 1 || r.PreguntaNumero > NumPreguntas {
			return 0, fmt.Errorf("%w: pregunta_numero %d fuera del rango 1-%d",
				ErrRespuestasInvalidas, r.PreguntaNumero, NumPreguntas)
		}
		if vistas[r.PreguntaNumero] {
			return 0, fmt.Errorf("%w: pregunta %d respondida más de una vez",
				ErrRespuestasInvalidas, r.PreguntaNumero)
		}
		vistas[r.PreguntaNumero] = true

		if r.Valor < ValorMin || r.Valor > ValorMax {
			return 0, fmt.Errorf("%w: el valor %d de la pregunta %d está fuera del rango %d-%d",
				ErrRespuestasInvalidas, r.Valor, r.PreguntaNumero, ValorMin, ValorMax)
		}
		suma += r.Valor
	}

	return suma, nil
}

// ComputeFinalScore 计算最终分（0-100）：raw × 4
func ComputeFinalScore(puntajeRaw int) int {
	return puntajeRaw * 4
}

// IsAlert 最终分低于阈值时产生预警
func IsAlert(puntajeFinal, umbral int) bool {
	return puntajeFinal < umbral
}

// Prioridad 根据最终分决定预警优先级：低于 umbralAlta 为 alta，否则 media
func Prioridad(puntajeFinal, umbralAlta int) string {
	if puntajeFinal < umbralAlta {
		return "alta"
	}
	return "media"
}

// HasSignificantChange 两次测评差值达到阈值视为显著变化
func HasSignificantChange(anterior, actual, delta int) bool {
	diferencia := actual - anterior
	if diferencia < 0 {
		diferencia = -diferencia
	}
	return diferencia >= delta
}

// [自证通过] internal/who5/who5.go
