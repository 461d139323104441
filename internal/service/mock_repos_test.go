package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Iskahn21/bienestartermometro/internal/model"
	"github.com/Iskahn21/bienestartermometro/internal/repository"
)

// ── Mock UsuarioRepository ──

type mockUsuarioRepo struct {
	usuarios map[string]*model.Usuario // key: id
	seq      int
}

func newMockUsuarioRepo() *mockUsuarioRepo {
	return &mockUsuarioRepo{usuarios: make(map[string]*model.Usuario)}
}

func (m *mockUsuarioRepo) Create(_ context.Context, usuario *model.Usuario) error {
	if usuario.ID == "" {
		m.seq++
		usuario.ID = fmt.Sprintf("usuario-%d", m.seq)
	}
	usuario.CreatedAt = time.Now()
	m.usuarios[usuario.ID] = usuario
	return nil
}

func (m *mockUsuarioRepo) GetByID(_ context.Context, id string) (*model.Usuario, error) {
	if u, ok := m.usuarios[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) GetByCorreo(_ context.Context, correo string) (*model.Usuario, error) {
	for _, u := range m.usuarios {
		if u.CorreoInstitucional == correo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) GetByDocumento(_ context.Context, tipo, numero string) (*model.Usuario, error) {
	for _, u := range m.usuarios {
		if u.TipoDocumento == tipo && u.NumeroDocumento == numero {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUsuarioRepo) Update(_ context.Context, usuario *model.Usuario) error {
	if _, ok := m.usuarios[usuario.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.usuarios[usuario.ID] = usuario
	return nil
}

func (m *mockUsuarioRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.usuarios)), nil
}

// ── Mock EncuestaRepository ──

type mockEncuestaRepo struct {
	encuestas  map[string]*model.Encuesta
	respuestas map[string][]model.Respuesta // key: encuesta_id
	seq        int

	// 注入故障
	createErr error // CreateWithRespuestas 失败（事务回滚）
	aggErr    error // AggregatePreguntas 失败（触发慢路径降级）
	aggCalls  int
}

func newMockEncuestaRepo() *mockEncuestaRepo {
	return &mockEncuestaRepo{
		encuestas:  make(map[string]*model.Encuesta),
		respuestas: make(map[string][]model.Respuesta),
	}
}

func (m *mockEncuestaRepo) CreateWithRespuestas(_ context.Context, encuesta *model.Encuesta, respuestas []model.Respuesta) error {
	if m.createErr != nil {
		// 事务语义：失败时问卷与作答都不落库
		return m.createErr
	}
	if encuesta.ID == "" {
		m.seq++
		encuesta.ID = fmt.Sprintf("encuesta-%d", m.seq)
	}
	encuesta.CreatedAt = time.Now()
	m.encuestas[encuesta.ID] = encuesta
	for i := range respuestas {
		respuestas[i].EncuestaID = encuesta.ID
	}
	m.respuestas[encuesta.ID] = respuestas
	return nil
}

func (m *mockEncuestaRepo) GetByID(_ context.Context, id string) (*model.Encuesta, error) {
	if e, ok := m.encuestas[id]; ok {
		copia := *e
		copia.Respuestas = m.respuestas[id]
		return &copia, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEncuestaRepo) ListByUsuario(_ context.Context, usuarioID string) ([]model.Encuesta, error) {
	var result []model.Encuesta
	for _, e := range m.encuestas {
		if e.UsuarioID == usuarioID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CompletedAt.After(*result[j].CompletedAt)
	})
	return result, nil
}

func (m *mockEncuestaRepo) GetAnterior(_ context.Context, usuarioID string, antesDe time.Time) (*model.Encuesta, error) {
	var mejor *model.Encuesta
	for _, e := range m.encuestas {
		if e.UsuarioID != usuarioID || e.CompletedAt == nil || !e.CompletedAt.Before(antesDe) {
			continue
		}
		if mejor == nil || e.CompletedAt.After(*mejor.CompletedAt) {
			mejor = e
		}
	}
	if mejor == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return mejor, nil
}

func (m *mockEncuestaRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.encuestas)), nil
}

func (m *mockEncuestaRepo) ListPuntajesFinales(_ context.Context) ([]int, error) {
	var puntajes []int
	for _, e := range m.encuestas {
		puntajes = append(puntajes, e.PuntajeFinal)
	}
	return puntajes, nil
}

func (m *mockEncuestaRepo) AggregatePreguntas(_ context.Context) ([]repository.PreguntaAggregate, error) {
	m.aggCalls++
	if m.aggErr != nil {
		return nil, m.aggErr
	}

	type acc struct {
		suma, total, min, max int
	}
	accs := make(map[int]*acc)
	for _, filas := range m.respuestas {
		for _, r := range filas {
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
	}

	var rows []repository.PreguntaAggregate
	for num, a := range accs {
		rows = append(rows, repository.PreguntaAggregate{
			PreguntaNumero: num,
			Promedio:       float64(a.suma) / float64(a.total),
			Minimo:         a.min,
			Maximo:         a.max,
			Total:          int64(a.total),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PreguntaNumero < rows[j].PreguntaNumero })
	return rows, nil
}

func (m *mockEncuestaRepo) ListRespuestas(_ context.Context) ([]model.Respuesta, error) {
	var result []model.Respuesta
	for _, filas := range m.respuestas {
		result = append(result, filas...)
	}
	return result, nil
}

func (m *mockEncuestaRepo) ListParaExport(_ context.Context, filtro repository.ExportFiltro) ([]model.Encuesta, error) {
	var result []model.Encuesta
	for _, e := range m.encuestas {
		if filtro.TipoUsuario != "" && (e.Usuario == nil || e.Usuario.TipoUsuario != filtro.TipoUsuario) {
			continue
		}
		if filtro.Programa != "" && (e.Usuario == nil || e.Usuario.Programa == nil || *e.Usuario.Programa != filtro.Programa) {
			continue
		}
		if filtro.EsAlerta != nil && e.EsAlerta != *filtro.EsAlerta {
			continue
		}
		copia := *e
		copia.Respuestas = m.respuestas[e.ID]
		result = append(result, copia)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ── Mock AlertaRepository ──

type mockAlertaRepo struct {
	alertas map[string]*model.Alerta
	seq     int

	createErr error // Create 失败（验证问卷不被回滚）
}

func newMockAlertaRepo() *mockAlertaRepo {
	return &mockAlertaRepo{alertas: make(map[string]*model.Alerta)}
}

func (m *mockAlertaRepo) Create(_ context.Context, alerta *model.Alerta) error {
	if m.createErr != nil {
		return m.createErr
	}
	if alerta.ID == "" {
		m.seq++
		alerta.ID = fmt.Sprintf("alerta-%d", m.seq)
	}
	alerta.CreatedAt = time.Now()
	m.alertas[alerta.ID] = alerta
	return nil
}

func (m *mockAlertaRepo) GetByID(_ context.Context, id string) (*model.Alerta, error) {
	if a, ok := m.alertas[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAlertaRepo) List(_ context.Context, estado string) ([]model.Alerta, error) {
	var result []model.Alerta
	for _, a := range m.alertas {
		if estado == "" || a.Estado == estado {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockAlertaRepo) CountByEstado(_ context.Context, estado string) (int64, error) {
	var total int64
	for _, a := range m.alertas {
		if a.Estado == estado {
			total++
		}
	}
	return total, nil
}

func (m *mockAlertaRepo) Atender(_ context.Context, id, atendidaPor string, notas *string) (int64, error) {
	a, ok := m.alertas[id]
	if !ok || a.Estado != model.EstadoAlertaPendiente {
		return 0, nil
	}
	now := time.Now()
	a.Estado = model.EstadoAlertaEnAtencion
	a.AtendidaPor = &atendidaPor
	a.FechaAtencion = &now
	if notas != nil {
		a.NotasPsicologo = notas
	}
	return 1, nil
}

func (m *mockAlertaRepo) Resolver(_ context.Context, id, atendidaPor, accionTomada string, notas *string) (int64, error) {
	a, ok := m.alertas[id]
	if !ok || a.Estado == model.EstadoAlertaResuelta {
		return 0, nil
	}
	now := time.Now()
	a.Estado = model.EstadoAlertaResuelta
	a.AtendidaPor = &atendidaPor
	a.FechaAtencion = &now
	a.AccionTomada = &accionTomada
	if notas != nil {
		a.NotasPsicologo = notas
	}
	return 1, nil
}

// [自证通过] internal/service/mock_repos_test.go
