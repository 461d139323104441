package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Iskahn21/bienestartermometro/internal/dto"
	"github.com/Iskahn21/bienestartermometro/internal/model"
	"github.com/Iskahn21/bienestartermometro/internal/repository"
)

// ── 测试辅助 ──

func setupTestAlertaService() (AlertaService, *mockAlertaRepo) {
	alertaRepo := newMockAlertaRepo()
	repo := &repository.Repository{
		Usuario:  newMockUsuarioRepo(),
		Encuesta: newMockEncuestaRepo(),
		Alerta:   alertaRepo,
	}
	svc := NewAlertaService(repo, zap.NewNop())
	return svc, alertaRepo
}

func sembrarAlerta(alertaRepo *mockAlertaRepo, id, estado string) *model.Alerta {
	a := &model.Alerta{
		ID:              id,
		EncuestaID:      "encuesta-" + id,
		UsuarioID:       "usuario-" + id,
		PuntajeObtenido: 8,
		Prioridad:       model.PrioridadMedia,
		Estado:          estado,
		CreatedAt:       time.Now(),
		Usuario: &model.Usuario{
			ID:                  "usuario-" + id,
			Nombres:             "Laura",
			Apellidos:           "Gómez",
			TipoDocumento:       "CC",
			NumeroDocumento:     "1012345678",
			CorreoInstitucional: "laura@estudiantes.uniempresarial.edu.co",
			CanContact:          true,
		},
	}
	alertaRepo.alertas[id] = a
	return a
}

// ── List ──

func TestListAlertas_FiltroPorEstado(t *testing.T) {
	svc, alertaRepo := setupTestAlertaService()
	sembrarAlerta(alertaRepo, "a1", model.EstadoAlertaPendiente)
	sembrarAlerta(alertaRepo, "a2", model.EstadoAlertaResuelta)

	pendientes, err := svc.List(context.Background(), model.EstadoAlertaPendiente)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(pendientes) != 1 || pendientes[0].ID != "a1" {
		t.Errorf("按状态过滤错误: %+v", pendientes)
	}

	todas, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(todas) != 2 {
		t.Errorf("空过滤应返回全部，实际=%d", len(todas))
	}
}

func TestListAlertas_FiltroAll(t *testing.T) {
	svc, alertaRepo := setupTestAlertaService()
	sembrarAlerta(alertaRepo, "a1", model.EstadoAlertaPendiente)
	sembrarAlerta(alertaRepo, "a2", model.EstadoAlertaResuelta)

	todas, err := svc.List(context.Background(), "all")
	if err != nil {
		t.Fatalf("estado=all 不应报错: %v", err)
	}
	if len(todas) != 2 {
		t.Errorf("estado=all 应返回全部，实际=%d", len(todas))
	}
}

func TestListAlertas_EstadoInvalido(t *testing.T) {
	svc, _ := setupTestAlertaService()

	_, err := svc.List(context.Background(), "cerrada")
	if !errors.Is(err, ErrEstadoInvalido) {
		t.Errorf("期望 ErrEstadoInvalido，实际: %v", err)
	}
}

func TestListAlertas_IncluyeDatosUsuario(t *testing.T) {
	svc, alertaRepo := setupTestAlertaService()
	sembrarAlerta(alertaRepo, "a1", model.EstadoAlertaPendiente)

	alertas, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if alertas[0].NombreUsuario != "Laura Gómez" {
		t.Errorf("应带用户姓名，实际=%s", alertas[0].NombreUsuario)
	}
	if !alertas[0].CanContact {
		t.Error("应带 can_contact 标记")
	}
	if alertas[0].DocumentoUsuario != "****5678" {
		t.Errorf("证件号应脱敏，实际=%s", alertas[0].DocumentoUsuario)
	}
}

// ── Atender ──

func TestAtender_Success(t *testing.T) {
	svc, alertaRepo := setupTestAlertaService()
	sembrarAlerta(alertaRepo, "a1", model.EstadoAlertaPendiente)

	notas := "primer contacto programado"
	resp, err := svc.Atender(context.Background(), "a1", "psicologo-1", &dto.AtenderAlertaRequest{Notas: &notas})
	if err != nil {
		t.Fatalf("接收预警应成功: %v", err)
	}
	if resp.Estado != model.EstadoAlertaEnAtencion {
		t.Errorf("期望 estado=en_atencion，实际=%s", resp.Estado)
	}
	if resp.AtendidaPor == nil || *resp.AtendidaPor != "psicologo-1" {
		t.Error("应记录接收人")
	}
	if resp.FechaAtencion == nil {
		t.Error("应记录接收时间")
	}
}

func TestAtender_YaTomada(t *testing.T) {
	svc, alertaRepo := setupTestAlertaService()
	sembrarAlerta(alertaRepo, "a1", model.EstadoAlertaEnAtencion)

	_, err := svc.Atender(context.Background(), "a1", "psicologo-2", &dto.AtenderAlertaRequest{})
	if !errors.Is(err, ErrAlertaNoPendiente) {
		t.Errorf("期望 ErrAlertaNoPendiente，实际: %v", err)
	}
}

func TestAtender_NoEncontrada(t *testing.T) {
	svc, _ := setupTestAlertaService()

	_, err := svc.Atender(context.Background(), "no-existe", "psicologo-1", &dto.AtenderAlertaRequest{})
	if !errors.Is(err, ErrAlertaNoEncontrada) {
		t.Errorf("期望 ErrAlertaNoEncontrada，实际: %v", err)
	}
}

// ── Resolver ──

func TestResolver_Success(t *testing.T) {
	svc, alertaRepo := setupTestAlertaService()
	sembrarAlerta(alertaRepo, "a1", model.EstadoAlertaEnAtencion)

	resp, err := svc.Resolver(context.Background(), "a1", "psicologo-1", &dto.ResolverAlertaRequest{
		AccionTomada: "remisión a consulta psicológica",
	})
	if err != nil {
		t.Fatalf("关闭预警应成功: %v", err)
	}
	if resp.Estado != model.EstadoAlertaResuelta {
		t.Errorf("期望 estado=resuelta，实际=%s", resp.Estado)
	}
	if resp.AccionTomada == nil || *resp.AccionTomada != "remisión a consulta psicológica" {
		t.Error("应记录 accion_tomada")
	}
}

func TestResolver_DesdePendiente(t *testing.T) {
	// pendiente → resuelta 是合法跳转（紧急情况直接关闭）
	svc, alertaRepo := setupTestAlertaService()
	sembrarAlerta(alertaRepo, "a1", model.EstadoAlertaPendiente)

	resp, err := svc.Resolver(context.Background(), "a1", "psicologo-1", &dto.ResolverAlertaRequest{
		AccionTomada: "contacto inmediato realizado",
	})
	if err != nil {
		t.Fatalf("pendiente → resuelta 应成功: %v", err)
	}
	if resp.Estado != model.EstadoAlertaResuelta {
		t.Errorf("期望 estado=resuelta，实际=%s", resp.Estado)
	}
}

func TestResolver_RepetidoNoSobrescribe(t *testing.T) {
	svc, alertaRepo := setupTestAlertaService()
	alerta := sembrarAlerta(alertaRepo, "a1", model.EstadoAlertaEnAtencion)

	if _, err := svc.Resolver(context.Background(), "a1", "psicologo-1", &dto.ResolverAlertaRequest{
		AccionTomada: "primera acción",
	}); err != nil {
		t.Fatalf("首次关闭应成功: %v", err)
	}
	primeraAccion := *alerta.AccionTomada
	primerResponsable := *alerta.AtendidaPor

	// 第二次关闭必须失败且不覆盖首次记录
	_, err := svc.Resolver(context.Background(), "a1", "psicologo-2", &dto.ResolverAlertaRequest{
		AccionTomada: "segunda acción",
	})
	if !errors.Is(err, ErrAlertaYaResuelta) {
		t.Errorf("期望 ErrAlertaYaResuelta，实际: %v", err)
	}
	if *alerta.AccionTomada != primeraAccion {
		t.Error("重复关闭不应覆盖首次 accion_tomada")
	}
	if *alerta.AtendidaPor != primerResponsable {
		t.Error("重复关闭不应覆盖首次责任人")
	}
}

func TestResolver_NoEncontrada(t *testing.T) {
	svc, _ := setupTestAlertaService()

	_, err := svc.Resolver(context.Background(), "no-existe", "psicologo-1", &dto.ResolverAlertaRequest{
		AccionTomada: "n/a",
	})
	if !errors.Is(err, ErrAlertaNoEncontrada) {
		t.Errorf("期望 ErrAlertaNoEncontrada，实际: %v", err)
	}
}

// [自证通过] internal/service/alerta_service_test.go
