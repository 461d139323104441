package dto

// ── 认证模块 DTO ──

// RegistroEstudianteRequest 学生注册请求
type RegistroEstudianteRequest struct {
	Nombres             string `json:"nombres"              binding:"required,min=2,max=100"`
	Apellidos           string `json:"apellidos"            binding:"required,min=2,max=100"`
	TipoDocumento       string `json:"tipo_documento"       binding:"required,oneof=CC TI"`
	NumeroDocumento     string `json:"numero_documento"     binding:"required,min=6,max=20"`
	CorreoInstitucional string `json:"correo_institucional" binding:"required,email"`
	Password            string `json:"password"             binding:"required,min=8,max=72"`
	Programa            string `json:"programa"             binding:"required"`
	Promocion           string `json:"promocion"            binding:"required"` // 格式: YYYY-1 / YYYY-2
}

// RegistroPersonalRequest 教职工注册请求
type RegistroPersonalRequest struct {
	Nombres             string `json:"nombres"              binding:"required,min=2,max=100"`
	Apellidos           string `json:"apellidos"            binding:"required,min=2,max=100"`
	TipoDocumento       string `json:"tipo_documento"       binding:"required,oneof=CC TI"`
	NumeroDocumento     string `json:"numero_documento"     binding:"required,min=6,max=20"`
	CorreoInstitucional string `json:"correo_institucional" binding:"required,email"`
	Password            string `json:"password"             binding:"required,min=8,max=72"`
	Cargo               string `json:"cargo"                binding:"required"`
}

// LoginRequest 登录请求（机构邮箱 + 密码）
type LoginRequest struct {
	Correo   string `json:"correo"   binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"` // "bearer"
	ExpiresIn    int             `json:"expires_in"` // Access Token 有效期（秒）
	Usuario      UsuarioResponse `json:"usuario"`
}

// UsuarioResponse 用户信息响应（脱敏，不含证件全号）
type UsuarioResponse struct {
	ID                  string  `json:"id"`
	TipoUsuario         string  `json:"tipo_usuario"`
	Nombres             string  `json:"nombres"`
	Apellidos           string  `json:"apellidos"`
	CorreoInstitucional string  `json:"correo_institucional"`
	Rol                 string  `json:"rol"`
	Programa            *string `json:"programa,omitempty"`
	Promocion           *string `json:"promocion,omitempty"`
	Cargo               *string `json:"cargo,omitempty"`
	ConsentAccepted     bool    `json:"consent_accepted"`
	CanContact          bool    `json:"can_contact"`
}

// [自证通过] internal/dto/auth.go
