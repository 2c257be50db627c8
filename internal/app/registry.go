package app

import (
	"database/sql"

	"leavesync/internal/assistant"
	"leavesync/internal/balance"
	"leavesync/internal/calendar"
	"leavesync/internal/company"
	"leavesync/internal/config"
	"leavesync/internal/holiday"
	"leavesync/internal/leave"
	"leavesync/internal/leavetype"
	"leavesync/internal/messaging/kafka"
	"leavesync/internal/rbac"
	"leavesync/internal/shared/counter"
	"leavesync/internal/workweek"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg config.Config,
) error {
	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	workweekRepo := workweek.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leavetypeRepo := leavetype.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	companyService := company.NewService(companyRepo)
	workweekService := workweek.NewService(workweekRepo)
	holidayService := holiday.NewService(holidayRepo)
	leavetypeService := leavetype.NewService(leavetypeRepo)
	balanceService := balance.NewService(balanceRepo, leavetypeService)
	leaveService := leave.NewService(db, leaveRepo, counterRepo, outboxRepo, balanceService, leavetypeService)

	assistantClient := assistant.NewClient(assistant.Config{
		APIKey:  cfg.Assistant.APIKey,
		Model:   cfg.Assistant.Model,
		BaseURL: cfg.Assistant.BaseURL,
		Timeout: cfg.Assistant.Timeout,
	})
	assistantService := assistant.NewService(assistantClient)

	// Enhancement only runs with a configured key; without one the calendar
	// stays purely deterministic.
	var enhancer calendar.Enhancer
	if cfg.Assistant.Enabled() {
		enhancer = assistantService
	}

	calendarService := calendar.NewService(
		workweekService,
		holidayService,
		leaveService,
		balanceService,
		enhancer,
		rdb,
		calendar.ServiceConfig{
			LookaheadDays: cfg.Calendar.SuggestionLookaheadDays,
			CacheTTL:      cfg.Calendar.CacheTTL,
		},
	)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService)
	workweekHandler := workweek.NewHandler(workweekService)
	holidayHandler := holiday.NewHandler(holidayService)
	leavetypeHandler := leavetype.NewHandler(leavetypeService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveHandler := leave.NewHandler(leaveService)
	calendarHandler := calendar.NewHandler(calendarService)
	assistantHandler := assistant.NewHandler(assistantService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		company.RegisterRoutes(api, companyHandler, enforcer, cfg.JWTSecret)
		workweek.RegisterRoutes(api, workweekHandler, enforcer, cfg.JWTSecret)
		holiday.RegisterRoutes(api, holidayHandler, enforcer, cfg.JWTSecret)
		leavetype.RegisterRoutes(api, leavetypeHandler, enforcer, cfg.JWTSecret)
		balance.RegisterRoutes(api, balanceHandler, enforcer, cfg.JWTSecret)
		leave.RegisterRoutes(api, leaveHandler, enforcer, cfg.JWTSecret, rdb)
		calendar.RegisterRoutes(api, calendarHandler, enforcer, cfg.JWTSecret)
		assistant.RegisterRoutes(api, assistantHandler, enforcer, cfg.JWTSecret)
	}

	return nil
}
