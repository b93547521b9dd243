package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/enlivotechnologies/leads-tracker/config"
	"github.com/enlivotechnologies/leads-tracker/internal/api/handler"
	"github.com/enlivotechnologies/leads-tracker/internal/api/middleware"
	"github.com/enlivotechnologies/leads-tracker/internal/model"
	"github.com/enlivotechnologies/leads-tracker/pkg/jwt"
	"github.com/enlivotechnologies/leads-tracker/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Setup builds the gin engine with the full route table.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// 20 attempts per minute per IP on the credential endpoints.
	authLimit := middleware.RateLimit(rdb, 20, time.Minute)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authLimit, h.Auth.Register)
		auth.POST("/login", authLimit, h.Auth.Login)
		auth.POST("/refresh", authLimit, h.Auth.RefreshToken)
	}

	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		authorized.POST("/auth/logout", h.Auth.Logout)
		authorized.GET("/auth/me", h.Auth.GetCurrentEmployee)

		leads := authorized.Group("/leads")
		{
			leads.GET("", h.Lead.ListByDate)
			leads.POST("", h.Lead.CreateLead)
			leads.PUT("/:id", h.Lead.UpdateLead)
			leads.POST("/:id/follow-up-done", h.Lead.MarkFollowUpDone)
			leads.GET("/follow-ups", h.Lead.FollowUps)
			leads.GET("/completed", h.Lead.Completed)
			leads.GET("/history", h.Lead.History)
			leads.GET("/college-summary", h.Lead.CollegeSummary)
		}

		authorized.GET("/colleges/availability", h.Lead.CheckAvailability)

		admin := authorized.Group("/admin")
		admin.Use(middleware.RoleAuth(model.RoleAdmin))
		{
			admin.GET("/kpis", h.Admin.DailyKPIs)
			admin.GET("/performance", h.Admin.EmployeePerformance)
			admin.GET("/employees", h.Admin.EmployeesSummary)
			admin.GET("/employees/:id", h.Admin.EmployeeDetail)
			admin.GET("/leads", h.Admin.FilteredLeads)
			admin.GET("/follow-ups", h.Admin.PendingFollowUps)
			admin.GET("/slots", h.Admin.UpcomingSlots)
			admin.PATCH("/leads/:id", h.Admin.UpdateOverlay)
			admin.GET("/report", h.Admin.DateWiseReport)
		}

		export := authorized.Group("/export")
		export.Use(middleware.RoleAuth(model.RoleAdmin))
		{
			export.GET("/report", h.Export.ReportXLSX)
			export.GET("/slots.ics", h.Export.SlotsICS)
		}
	}

	return r
}
