package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pregnancy-tracker/internal/assessment"
	"pregnancy-tracker/internal/chat"
	"pregnancy-tracker/internal/config"
	"pregnancy-tracker/internal/journal"
	"pregnancy-tracker/internal/logger"
	"pregnancy-tracker/internal/metrics"
	"pregnancy-tracker/internal/platform/database"
	"pregnancy-tracker/internal/platform/gemini"
	"pregnancy-tracker/internal/platform/mailer"
	"pregnancy-tracker/internal/report"
	"pregnancy-tracker/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	ctx := context.Background()

	// 1. Infrastructure
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	log.Info("connected to database")

	runMigrations(cfg, log)

	rdb, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("could not connect to redis", zap.Error(err))
	}
	defer rdb.Close()
	log.Info("connected to redis")

	// 2. Clients
	var textGen assessment.TextGenerator
	if c := gemini.NewClient(cfg.Gemini); c != nil {
		textGen = c
		log.Info("gemini client configured", zap.String("model", cfg.Gemini.Model))
	} else {
		log.Warn("no usable Gemini API key, AI paths disabled, deterministic fallbacks active")
	}

	var mail user.Mailer
	if sesMailer, err := mailer.NewSESMailer(ctx, cfg.Email.Region, cfg.Email.From); err != nil {
		log.Warn("SES mailer unavailable, account deletion emails disabled", zap.Error(err))
	} else {
		mail = sesMailer
	}

	// 3. Services
	kb := assessment.DefaultKnowledgeBase()

	userRepo := user.NewRepository(db)
	otpStore := user.NewOTPStore(rdb)
	userSvc := user.NewService(userRepo, otpStore, mail, log.Named("user"))
	userHandler := user.NewHandler(userSvc)

	reportRepo := report.NewRepository(db)
	reportGen := assessment.NewReportGenerator(textGen, kb, log.Named("report-generator"))
	reportSvc := report.NewService(reportRepo, userSvc, reportGen, log.Named("report"))
	reportHandler := report.NewHandler(reportSvc)

	chatRepo := chat.NewRepository(db)
	responder := assessment.NewResponder(textGen, kb, log.Named("responder"))
	chatSvc := chat.NewService(chatRepo, userSvc, reportRepo, responder, log.Named("chat"))
	chatHandler := chat.NewHandler(chatSvc)

	journalRepo := journal.NewRepository(db)
	journalSvc := journal.NewService(journalRepo, log.Named("journal"))
	journalHandler := journal.NewHandler(journalSvc)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/users/{userID}", func(r chi.Router) {
			user.RegisterRoutes(r, userHandler)
			report.RegisterRoutes(r, reportHandler)
			chat.RegisterRoutes(r, chatHandler)
			journal.RegisterRoutes(r, journalHandler)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	log.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := http.ListenAndServe(":"+cfg.Server.Port, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func runMigrations(cfg *config.Config, log *zap.Logger) {
	m, err := migrate.New("file://migrations", cfg.Database.GetURL())
	if err != nil {
		log.Warn("migration init failed", zap.Error(err))
		return
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Warn("migration up failed", zap.Error(err))
		return
	}
	log.Info("migrations applied")
}
