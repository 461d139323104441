package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Iskahn21/bienestartermometro/internal/model"
	"github.com/Iskahn21/bienestartermometro/internal/repository"
)

// ── 测试辅助 ──

func setupTestDashboardService() (DashboardService, *mockUsuarioRepo, *mockEncuestaRepo, *mockAlertaRepo) {
	usuarioRepo := newMockUsuarioRepo()
	encuestaRepo := newMockEncuestaRepo()
	alertaRepo := newMockAlertaRepo()
	repo := &repository.Repository{
		Usuario:  usuarioRepo,
		Encuesta: encuestaRepo,
		Alerta:   alertaRepo,
	}
	svc := NewDashboardService(repo, zap.NewNop())
	return svc, usuarioRepo, encuestaRepo, alertaRepo
}

func sembrarEncuesta(encuestaRepo *mockEncuestaRepo, usuarioID string, puntajeFinal int) {
	now := time.Now()
	encuestaRepo.seq++
	id := "encuesta-seed-" + usuarioID + string(rune('a'+encuestaRepo.seq))
	encuestaRepo.encuestas[id] = &model.Encuesta{
		ID:           id,
		UsuarioID:    usuarioID,
		CompletedAt:  &now,
		PuntajeRaw:   puntajeFinal / 4,
		PuntajeFinal: puntajeFinal,
		EsAlerta:     puntajeFinal < 13,
		Estado:       model.EstadoEncuestaCompletada,
	}
}

func sembrarEstudiante(usuarioRepo *mockUsuarioRepo, id string) {
	usuarioRepo.usuarios[id] = &model.Usuario{
		ID:          id,
		TipoUsuario: model.TipoUsuarioEstudiante,
		IsActive:    true,
	}
}

// ── Metricas ──

func TestMetricas_SinDatosTodoCero(t *testing.T) {
	svc, _, _, _ := setupTestDashboardService()

	m, err := svc.Metricas(context.Background())
	if err != nil {
		t.Fatalf("空库指标应成功: %v", err)
	}
	if m.TotalEncuestas != 0 || m.TotalUsuarios != 0 {
		t.Error("空库计数应为 0")
	}
	if m.PromedioGeneral != 0 || m.TasaParticipacion != 0 {
		t.Error("空库不应出现除零，平均与参与率应为 0")
	}
	if m.AlertasActivas != 0 || m.AlertasPendientes != 0 || m.AlertasEnAtencion != 0 || m.AlertasResueltas != 0 {
		t.Error("空库预警计数应为 0")
	}
}

func TestMetricas_PromedioYParticipacion(t *testing.T) {
	svc, usuarioRepo, encuestaRepo, _ := setupTestDashboardService()

	// 4 名用户共交 2 份: 参与率 2/4*100=50%，平均 (40+80)/2=60
	for _, id := range []string{"e1", "e2", "e3", "e4"} {
		sembrarEstudiante(usuarioRepo, id)
	}
	sembrarEncuesta(encuestaRepo, "e1", 40)
	sembrarEncuesta(encuestaRepo, "e2", 80)

	m, err := svc.Metricas(context.Background())
	if err != nil {
		t.Fatalf("指标计算失败: %v", err)
	}
	if m.TotalEncuestas != 2 {
		t.Errorf("期望 total_encuestas=2，实际=%d", m.TotalEncuestas)
	}
	if m.TotalUsuarios != 4 {
		t.Errorf("期望 total_usuarios=4，实际=%d", m.TotalUsuarios)
	}
	if m.PromedioGeneral != 60 {
		t.Errorf("期望 promedio=60，实际=%v", m.PromedioGeneral)
	}
	if m.TasaParticipacion != 50 {
		t.Errorf("期望 tasa=50，实际=%v", m.TasaParticipacion)
	}
}

func TestMetricas_ParticipacionPoblacionMixta(t *testing.T) {
	svc, usuarioRepo, encuestaRepo, _ := setupTestDashboardService()

	// 学生与教职工都进入分母：1 学生 + 1 教职工各交一份 → 100%，不会超过 100
	sembrarEstudiante(usuarioRepo, "e1")
	usuarioRepo.usuarios["p1"] = &model.Usuario{
		ID:          "p1",
		TipoUsuario: model.TipoUsuarioPersonal,
		IsActive:    true,
	}
	sembrarEncuesta(encuestaRepo, "e1", 40)
	sembrarEncuesta(encuestaRepo, "p1", 80)

	m, err := svc.Metricas(context.Background())
	if err != nil {
		t.Fatalf("指标计算失败: %v", err)
	}
	if m.TotalUsuarios != 2 {
		t.Errorf("期望 total_usuarios=2，实际=%d", m.TotalUsuarios)
	}
	if m.TasaParticipacion != 100 {
		t.Errorf("期望 tasa=100，实际=%v", m.TasaParticipacion)
	}
}

func TestMetricas_ConteosAlertas(t *testing.T) {
	svc, _, _, alertaRepo := setupTestDashboardService()

	alertaRepo.alertas["a1"] = &model.Alerta{ID: "a1", Estado: model.EstadoAlertaPendiente}
	alertaRepo.alertas["a2"] = &model.Alerta{ID: "a2", Estado: model.EstadoAlertaPendiente}
	alertaRepo.alertas["a3"] = &model.Alerta{ID: "a3", Estado: model.EstadoAlertaEnAtencion}
	alertaRepo.alertas["a4"] = &model.Alerta{ID: "a4", Estado: model.EstadoAlertaResuelta}

	m, err := svc.Metricas(context.Background())
	if err != nil {
		t.Fatalf("指标计算失败: %v", err)
	}
	// activas = pendientes + en_atencion
	if m.AlertasActivas != 3 || m.AlertasPendientes != 2 || m.AlertasEnAtencion != 1 || m.AlertasResueltas != 1 {
		t.Errorf("预警计数错误: activas=%d pendientes=%d en_atencion=%d resueltas=%d",
			m.AlertasActivas, m.AlertasPendientes, m.AlertasEnAtencion, m.AlertasResueltas)
	}
}

// ── Distribucion ──

func TestDistribucion_CuatroBandas(t *testing.T) {
	svc, _, encuestaRepo, _ := setupTestDashboardService()

	// 每档一份: 5 / 30 / 60 / 90
	sembrarEncuesta(encuestaRepo, "e1", 5)
	sembrarEncuesta(encuestaRepo, "e2", 30)
	sembrarEncuesta(encuestaRepo, "e3", 60)
	sembrarEncuesta(encuestaRepo, "e4", 90)

	d, err := svc.Distribucion(context.Background())
	if err != nil {
		t.Fatalf("分布计算失败: %v", err)
	}
	if d.Total != 4 {
		t.Errorf("期望 total=4，实际=%d", d.Total)
	}
	if len(d.Items) != 4 {
		t.Fatalf("应返回完整 4 档，实际=%d", len(d.Items))
	}

	orden := []string{"alerta", "bajo", "medio", "alto"}
	var sumaPct float64
	for i, item := range d.Items {
		if item.Categoria != orden[i] {
			t.Errorf("档位 %d 期望 %s，实际=%s", i, orden[i], item.Categoria)
		}
		if item.Cantidad != 1 {
			t.Errorf("档位 %s 期望 cantidad=1，实际=%d", item.Categoria, item.Cantidad)
		}
		if item.Color == "" || item.Nivel == "" {
			t.Errorf("档位 %s 应带渲染元数据", item.Categoria)
		}
		sumaPct += item.Porcentaje
	}
	if math.Abs(sumaPct-100) > 0.01 {
		t.Errorf("各档占比之和应为 100，实际=%v", sumaPct)
	}
}

func TestDistribucion_SinDatos(t *testing.T) {
	svc, _, _, _ := setupTestDashboardService()

	d, err := svc.Distribucion(context.Background())
	if err != nil {
		t.Fatalf("空库分布应成功: %v", err)
	}
	if d.Total != 0 {
		t.Errorf("期望 total=0，实际=%d", d.Total)
	}
	if len(d.Items) != 4 {
		t.Fatalf("空库也应返回完整 4 档，实际=%d", len(d.Items))
	}
	for _, item := range d.Items {
		if item.Cantidad != 0 || item.Porcentaje != 0 {
			t.Errorf("空库档位 %s 计数与占比应为 0", item.Categoria)
		}
	}
}

func TestDistribucion_PropiedadAleatoria(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// 随机分数集下各档数量之和恒等于问卷总数
	for iter := 0; iter < 50; iter++ {
		svc, _, encuestaRepo, _ := setupTestDashboardService()

		n := rng.Intn(40)
		for i := 0; i < n; i++ {
			sembrarEncuesta(encuestaRepo, fmt.Sprintf("u%d", i), rng.Intn(101))
		}

		d, err := svc.Distribucion(context.Background())
		if err != nil {
			t.Fatalf("分布计算失败 (iter=%d): %v", iter, err)
		}
		if d.Total != n {
			t.Fatalf("iter=%d 期望 total=%d，实际=%d", iter, n, d.Total)
		}
		var suma int
		for _, item := range d.Items {
			suma += item.Cantidad
		}
		if suma != n {
			t.Fatalf("iter=%d 各档数量之和=%d 应等于问卷总数=%d", iter, suma, n)
		}
	}
}

func TestDistribucion_Limites(t *testing.T) {
	svc, _, encuestaRepo, _ := setupTestDashboardService()

	// 边界分: 12→alerta, 13→bajo, 50→bajo, 51→medio, 75→medio, 76→alto, 100→alto
	esperado := map[int]string{12: "alerta", 13: "bajo", 50: "bajo", 51: "medio", 75: "medio", 76: "alto", 100: "alto"}
	i := 0
	for puntaje := range esperado {
		sembrarEncuesta(encuestaRepo, "e"+string(rune('a'+i)), puntaje)
		i++
	}

	d, err := svc.Distribucion(context.Background())
	if err != nil {
		t.Fatalf("分布计算失败: %v", err)
	}
	conteo := map[string]int{}
	for _, item := range d.Items {
		conteo[item.Categoria] = item.Cantidad
	}
	if conteo["alerta"] != 1 || conteo["bajo"] != 2 || conteo["medio"] != 2 || conteo["alto"] != 2 {
		t.Errorf("边界分档错误: %v", conteo)
	}
}

// ── EstadisticasPreguntas ──

func sembrarRespuestas(encuestaRepo *mockEncuestaRepo, usuarioID string, valores [5]int) {
	now := time.Now()
	encuestaRepo.seq++
	id := "encuesta-resp-" + usuarioID
	var suma int
	filas := make([]model.Respuesta, 0, 5)
	for n := 1; n <= 5; n++ {
		filas = append(filas, model.Respuesta{EncuestaID: id, PreguntaNumero: n, Valor: valores[n-1]})
		suma += valores[n-1]
	}
	encuestaRepo.encuestas[id] = &model.Encuesta{
		ID: id, UsuarioID: usuarioID, CompletedAt: &now,
		PuntajeRaw: suma, PuntajeFinal: suma * 4,
		Estado: model.EstadoEncuestaCompletada,
	}
	encuestaRepo.respuestas[id] = filas
}

func TestEstadisticasPreguntas_RutaRapida(t *testing.T) {
	svc, _, encuestaRepo, _ := setupTestDashboardService()

	sembrarRespuestas(encuestaRepo, "e1", [5]int{5, 4, 3, 2, 1})
	sembrarRespuestas(encuestaRepo, "e2", [5]int{3, 4, 5, 0, 1})

	stats, err := svc.EstadisticasPreguntas(context.Background())
	if err != nil {
		t.Fatalf("题目统计失败: %v", err)
	}
	if len(stats.Preguntas) != 5 {
		t.Fatalf("应返回 5 道题，实际=%d", len(stats.Preguntas))
	}

	p1 := stats.Preguntas[0]
	if p1.PreguntaNumero != 1 || p1.Promedio != 4 || p1.Minimo != 3 || p1.Maximo != 5 || p1.Total != 2 {
		t.Errorf("题 1 统计错误: %+v", p1)
	}
	// porcentaje = promedio/5*100
	if p1.Porcentaje != 80 {
		t.Errorf("题 1 期望 porcentaje=80，实际=%v", p1.Porcentaje)
	}
	p4 := stats.Preguntas[3]
	if p4.Promedio != 1 || p4.Minimo != 0 || p4.Maximo != 2 {
		t.Errorf("题 4 统计错误: %+v", p4)
	}
	if p4.Porcentaje != 20 {
		t.Errorf("题 4 期望 porcentaje=20，实际=%v", p4.Porcentaje)
	}
	if stats.Preguntas[0].Texto == "" {
		t.Error("统计应带题目文本")
	}
}

func TestEstadisticasPreguntas_DegradaAMemoria(t *testing.T) {
	svc, _, encuestaRepo, _ := setupTestDashboardService()

	sembrarRespuestas(encuestaRepo, "e1", [5]int{5, 4, 3, 2, 1})
	sembrarRespuestas(encuestaRepo, "e2", [5]int{3, 4, 5, 0, 1})
	encuestaRepo.aggErr = errors.New("group by no soportado")

	stats, err := svc.EstadisticasPreguntas(context.Background())
	if err != nil {
		t.Fatalf("降级路径应成功: %v", err)
	}
	p1 := stats.Preguntas[0]
	if p1.Promedio != 4 || p1.Minimo != 3 || p1.Maximo != 5 || p1.Total != 2 {
		t.Errorf("降级路径题 1 统计错误: %+v", p1)
	}

	// 第二次请求不应再探测快路径
	llamadasAntes := encuestaRepo.aggCalls
	if _, err := svc.EstadisticasPreguntas(context.Background()); err != nil {
		t.Fatalf("第二次请求失败: %v", err)
	}
	if encuestaRepo.aggCalls != llamadasAntes {
		t.Error("降级后不应重试数据库侧聚合")
	}
}

func TestEstadisticasPreguntas_AmbasRutasCoinciden(t *testing.T) {
	// 同一数据集，快路径与慢路径必须给出相同结果
	datos := [][5]int{
		{5, 4, 3, 2, 1},
		{3, 4, 5, 0, 1},
		{0, 0, 2, 5, 3},
	}

	svcRapida, _, repoRapida, _ := setupTestDashboardService()
	svcLenta, _, repoLenta, _ := setupTestDashboardService()
	repoLenta.aggErr = errors.New("sin group by")

	for i, v := range datos {
		sembrarRespuestas(repoRapida, "e"+string(rune('a'+i)), v)
		sembrarRespuestas(repoLenta, "e"+string(rune('a'+i)), v)
	}

	rapida, err := svcRapida.EstadisticasPreguntas(context.Background())
	if err != nil {
		t.Fatalf("快路径失败: %v", err)
	}
	lenta, err := svcLenta.EstadisticasPreguntas(context.Background())
	if err != nil {
		t.Fatalf("慢路径失败: %v", err)
	}

	for i := range rapida.Preguntas {
		r, l := rapida.Preguntas[i], lenta.Preguntas[i]
		if r != l {
			t.Errorf("题 %d 两条路径结果不一致: rapida=%+v lenta=%+v", i+1, r, l)
		}
	}
}

func TestEstadisticasPreguntas_SinDatos(t *testing.T) {
	svc, _, _, _ := setupTestDashboardService()

	stats, err := svc.EstadisticasPreguntas(context.Background())
	if err != nil {
		t.Fatalf("空库题目统计应成功: %v", err)
	}
	if len(stats.Preguntas) != 5 {
		t.Fatalf("空库也应返回 5 道题，实际=%d", len(stats.Preguntas))
	}
	for _, p := range stats.Preguntas {
		if p.Promedio != 0 || p.Total != 0 {
			t.Errorf("题 %d 空库统计应为 0: %+v", p.PreguntaNumero, p)
		}
	}
}

// [自证通过] internal/service/dashboard_service_test.go
