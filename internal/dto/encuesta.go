package dto

import "time"

// ── 问卷模块 DTO ──

// ConsentimientoRequest 知情同意请求
// aceptado 不加 required 校验：false 是合法输入，由 Service 层拒绝
type ConsentimientoRequest struct {
	Aceptado   bool `json:"aceptado"`
	CanContact bool `json:"can_contact"`
}

// RespuestaInput 单题作答（题号 1-5，取值 0-5）
type RespuestaInput struct {
	PreguntaNumero int `json:"pregunta_numero" binding:"required,min=1,max=5"`
	Valor          int `json:"valor"           binding:"min=0,max=5"`
}

// SubmitEncuestaRequest 提交问卷请求
type SubmitEncuestaRequest struct {
	Respuestas []RespuestaInput `json:"respuestas" binding:"required,len=5,dive"`
	Comentario *string          `json:"comentario" binding:"omitempty,max=1000"`
}

// PreguntaResponse 题目定义响应
type PreguntaResponse struct {
	Numero   int               `json:"numero"`
	Texto    string            `json:"texto"`
	Opciones []OpcionRespuesta `json:"opciones"`
}

// OpcionRespuesta 单个选项
type OpcionRespuesta struct {
	Valor    int    `json:"valor"`
	Etiqueta string `json:"etiqueta"`
}

// ClasificacionResponse 分数分级元数据
type ClasificacionResponse struct {
	Nivel     string `json:"nivel"`
	Categoria string `json:"categoria"`
	Color     string `json:"color"`
	Mensaje   string `json:"mensaje"`
}

// EncuestaResultadoResponse 问卷结果响应
type EncuestaResultadoResponse struct {
	ID                  string                `json:"id"`
	PuntajeRaw          int                   `json:"puntaje_raw"`
	PuntajeFinal        int                   `json:"puntaje_final"`
	EsAlerta            bool                  `json:"es_alerta"`
	Clasificacion       ClasificacionResponse `json:"clasificacion"`
	CambioSignificativo *CambioResponse       `json:"cambio_significativo,omitempty"`
	CompletadaAt        *time.Time            `json:"completada_at"`
}

// CambioResponse 与上次问卷的显著变化
type CambioResponse struct {
	PuntajeAnterior int    `json:"puntaje_anterior"`
	Diferencia      int    `json:"diferencia"`
	Direccion       string `json:"direccion"` // "mejora" / "deterioro"
}

// EncuestaResumenResponse 历史列表中的问卷摘要
type EncuestaResumenResponse struct {
	ID           string     `json:"id"`
	PuntajeFinal int        `json:"puntaje_final"`
	EsAlerta     bool       `json:"es_alerta"`
	Nivel        string     `json:"nivel"`
	CompletadaAt *time.Time `json:"completada_at"`
}

// [自证通过] internal/dto/encuesta.go
