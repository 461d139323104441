package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Iskahn21/bienestartermometro/config"
	"github.com/Iskahn21/bienestartermometro/internal/api/handler"
	"github.com/Iskahn21/bienestartermometro/internal/api/middleware"
	"github.com/Iskahn21/bienestartermometro/internal/model"
	"github.com/Iskahn21/bienestartermometro/pkg/jwt"
	"github.com/Iskahn21/bienestartermometro/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；敏感端点限流）
		auth := v1.Group("/auth")
		{
			loginLimit := middleware.RateLimit(rdb, 10, time.Minute)
			registroLimit := middleware.RateLimit(rdb, 5, time.Minute)

			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/registro/estudiante", registroLimit, h.Auth.RegistroEstudiante)
			auth.POST("/registro/personal", registroLimit, h.Auth.RegistroPersonal)
			auth.GET("/programas", h.Auth.Programas)
			auth.GET("/cargos", h.Auth.Cargos)
		}

		// 题库是静态内容，登录前的知情页也需要展示
		v1.GET("/encuestas/preguntas", h.Encuesta.Preguntas)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 问卷模块
			encuestas := authorized.Group("/encuestas")
			{
				encuestas.POST("/consentimiento", h.Encuesta.Consentimiento)
				encuestas.POST("", h.Encuesta.Submit)
				encuestas.GET("/mis-encuestas", h.Encuesta.MisEncuestas)
				encuestas.GET("/:id/resultado", h.Encuesta.Resultado)
			}

			// 仪表盘与预警模块（仅临床/分析/管理角色）
			dashboard := authorized.Group("/dashboard")
			dashboard.Use(middleware.RoleAuth(model.RolAdmin, model.RolPsicologo, model.RolAnalista))
			{
				dashboard.GET("/metricas", h.Dashboard.Metricas)
				dashboard.GET("/distribucion", h.Dashboard.Distribucion)
				dashboard.GET("/preguntas/estadisticas", h.Dashboard.EstadisticasPreguntas)

				// 预警与导出涉及个人数据，分析员不可见
				clinico := middleware.RoleAuth(model.RolAdmin, model.RolPsicologo)
				dashboard.GET("/alertas", clinico, h.Dashboard.Alertas)
				dashboard.PATCH("/alertas/:id/atender", clinico, h.Dashboard.AtenderAlerta)
				dashboard.PATCH("/alertas/:id/resolver", clinico, h.Dashboard.ResolverAlerta)

				dashboard.GET("/export/excel", clinico, h.Export.ExportExcel)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
