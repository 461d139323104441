package model

import "time"

// 问卷状态
const (
	EstadoEncuestaCompletada = "completada"
	EstadoEncuestaEnRevision = "en_revision"
)

// Encuesta 问卷表 — 对应 encuestas
// 一次提交产生一条 Encuesta 与恰好 5 条 Respuesta；完成后除管理员删除外不再变更
type Encuesta struct {
	ID           string     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UsuarioID    string     `gorm:"column:usuario_id;type:uuid;not null"                      json:"usuario_id"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"     json:"created_at"`
	StartedAt    time.Time  `gorm:"column:started_at;not null;default:CURRENT_TIMESTAMP"     json:"started_at"`
	CompletedAt  *time.Time `gorm:"column:completed_at"                                      json:"completed_at,omitempty"`
	PuntajeRaw   int        `gorm:"column:puntaje_raw"                                       json:"puntaje_raw"`
	PuntajeFinal int        `gorm:"column:puntaje_final"                                     json:"puntaje_final"`
	EsAlerta     bool       `gorm:"column:es_alerta;not null;default:false"                  json:"es_alerta"`
	Comentario   *string    `gorm:"column:comentario;type:text"                              json:"comentario,omitempty"`
	Estado       string     `gorm:"column:estado;type:varchar(20);not null;default:'completada'" json:"estado"`

	// 关联
	Usuario    *Usuario    `gorm:"foreignKey:UsuarioID;references:ID" json:"usuario,omitempty"`
	Respuestas []Respuesta `gorm:"foreignKey:EncuestaID;references:ID" json:"respuestas,omitempty"`
	Alerta     *Alerta     `gorm:"foreignKey:EncuestaID;references:ID" json:"alerta,omitempty"`
}

// TableName 指定表名
func (Encuesta) TableName() string { return "encuestas" }

// Respuesta 单题作答表 — 对应 respuestas
// (encuesta_id, pregunta_numero) 唯一；写入后不可变
type Respuesta struct {
	ID             string `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EncuestaID     string `gorm:"column:encuesta_id;type:uuid;not null;uniqueIndex:uq_respuestas_encuesta_pregunta" json:"encuesta_id"`
	PreguntaNumero int    `gorm:"column:pregunta_numero;not null;uniqueIndex:uq_respuestas_encuesta_pregunta"       json:"pregunta_numero"`
	Valor          int    `gorm:"column:valor;not null"                                     json:"valor"`
}

// TableName 指定表名
func (Respuesta) TableName() string { return "respuestas" }

// [自证通过] internal/model/encuesta.go
