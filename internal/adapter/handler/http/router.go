package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/clubnautico/club_service/internal/config"
	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
	server *http.Server
}

type Handlers struct {
	Boat    *BoatHandler
	Usage   *UsageHandler
	Report  *ReportHandler
	User    *UserHandler
	Student *StudentHandler
	News    *NewsHandler
}

func NewRouter(
	cfg *config.HTTP,
	authCfg *config.Auth,
	tokenService ports.TokenService,
	metricsHandler http.Handler,
	uploadsDir string,
	h Handlers,
) (*Router, error) {
	production := cfg.Env == "production"
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "x-user-role", "x-user-id", "x-user-email", "x-user-name"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if origins := splitOrigins(cfg.AllowedOrigins); len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	router.Use(cors.New(corsCfg))
	router.Use(productionMode(production))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(metricsHandler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Event images
	if uploadsDir != "" {
		router.Static("/uploads", uploadsDir)
	}

	var (
		anyStaff     = RequireRoles(domain.Admin, domain.Trainer, domain.Maintenance, domain.Subcommittee)
		adminOnly    = RequireRoles(domain.Admin)
		fleetManager = RequireRoles(domain.Admin, domain.Maintenance)
		coaching     = RequireRoles(domain.Admin, domain.Trainer)
	)

	api := router.Group("/api")
	api.Use(AuthMiddleware(tokenService, authCfg.LegacyHeaders))

	// Boats routes
	boats := api.Group("/boats")
	{
		boats.GET("", h.Boat.ListBoats)
		boats.GET("/availability", h.Boat.Availability)
		boats.GET("/:id", h.Boat.GetBoat)
		boats.GET("/:id/lock", h.Boat.GetLock)
		boats.POST("", fleetManager, h.Boat.CreateBoat)
		boats.PUT("/:id", fleetManager, h.Boat.UpdateBoat)
		boats.DELETE("/:id", fleetManager, h.Boat.DeleteBoat)
	}

	// Reservations routes
	usages := api.Group("/boat-usages")
	{
		usages.GET("", h.Usage.ListUsages)
		usages.GET("/:id", h.Usage.GetUsage)
		usages.POST("", h.Usage.CreateUsage)
		usages.DELETE("/:id", adminOnly, h.Usage.DeleteUsage)
	}

	// Fault reports routes
	reports := api.Group("/boat-reports")
	{
		reports.GET("", h.Report.ListReports)
		reports.GET("/:id", h.Report.GetReport)
		reports.POST("", h.Report.CreateReport)
		reports.PUT("/:id", fleetManager, h.Report.UpdateStatus)
		reports.DELETE("/:id", fleetManager, h.Report.DeleteReport)
	}

	// Users routes
	users := api.Group("/users")
	{
		users.POST("/login", h.User.Login)
		users.POST("/request-password-change", h.User.RequestPasswordChange)
		users.POST("/dev-request-password-change", h.User.DevRequestPasswordChange)
		users.POST("/confirm-password-change", h.User.ConfirmPasswordChange)
		users.POST("/change-password", h.User.ChangePassword)
		users.GET("/trainers", h.User.ListTrainers)
		users.GET("", adminOnly, h.User.ListUsers)
		users.GET("/:id", adminOnly, h.User.GetUser)
		users.POST("", adminOnly, h.User.CreateUser)
		users.PUT("/:id", adminOnly, h.User.UpdateUser)
		users.DELETE("/:id", adminOnly, h.User.DeleteUser)
	}

	// Students routes
	students := api.Group("/students")
	{
		students.GET("", h.Student.ListStudents)
		students.GET("/:id", h.Student.GetStudent)
		students.POST("", coaching, h.Student.CreateStudent)
		students.PUT("/:id", coaching, h.Student.UpdateStudent)
		students.DELETE("/:id", coaching, h.Student.DeleteStudent)
	}

	// Technical sheets routes
	sheets := api.Group("/technical-sheets")
	{
		sheets.GET("", h.Student.ListSheets)
		sheets.GET("/:id", h.Student.GetSheet)
		sheets.POST("", coaching, h.Student.CreateSheet)
		sheets.PUT("/:id", coaching, h.Student.UpdateSheet)
		sheets.DELETE("/:id", coaching, h.Student.DeleteSheet)
	}

	// Announcements routes
	announcements := api.Group("/announcements")
	{
		announcements.GET("", h.News.ListAnnouncements)
		announcements.GET("/:id", h.News.GetAnnouncement)
		announcements.POST("", anyStaff, h.News.CreateAnnouncement)
		announcements.PUT("/:id", anyStaff, h.News.UpdateAnnouncement)
		announcements.DELETE("/:id", anyStaff, h.News.DeleteAnnouncement)
	}

	// Events routes
	events := api.Group("/events")
	{
		events.GET("", h.News.ListEvents)
		events.GET("/:id", h.News.GetEvent)
		events.POST("", anyStaff, h.News.CreateEvent)
		events.PUT("/:id", anyStaff, h.News.UpdateEvent)
		events.DELETE("/:id", anyStaff, h.News.DeleteEvent)
	}

	return &Router{
		router: router,
		server: &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second},
	}, nil
}

// splitOrigins returns nil for "*" or an empty value.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			return nil
		}
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Serve blocks until the listener fails or Shutdown is called.
func (r *Router) Serve(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if err := r.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
