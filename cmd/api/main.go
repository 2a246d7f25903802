package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-staffing-backend/config"
	v1 "go-staffing-backend/internal/delivery/http/v1"
	"go-staffing-backend/internal/repository/postgres"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/auth"
	"go-staffing-backend/pkg/database"
	"go-staffing-backend/pkg/email"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/redis"
	"go-staffing-backend/pkg/storage"
	"go-staffing-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting staffing backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; in-memory fallback when absent)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to process memory", "error", err)
	}

	// 5. Setup Repositories
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	offerRepo := postgres.NewOfferRepository(dbPool)
	consultantRepo := postgres.NewConsultantRepository(dbPool)
	ticketRepo := postgres.NewHrTicketRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	requirementRepo := postgres.NewRequirementRepository(dbPool)
	projectRepo := postgres.NewProjectRepository(dbPool)
	missionRepo := postgres.NewMissionRepository(dbPool)
	approvalRepo := postgres.NewApprovalRepository(dbPool)
	committer := postgres.NewCommitter(dbPool)

	// 6. Setup Email Notifications
	emailService := email.NewService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - workflow notifications disabled")
	}
	notifier := usecase.NewEmailNotifier(emailService, cfg.NotifyEmailTo)

	// 7. Setup CV artifact storage (optional)
	var cvStore *storage.CVStore
	if cfg.S3Bucket != "" {
		storeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		cvStore, err = storage.NewCVStore(storeCtx, storage.Config{
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
		})
		cancel()
		if err != nil {
			logger.Log.Warn("CV storage unavailable, raw CV artifacts will not be archived", "error", err)
			cvStore = nil
		}
	}

	// 8. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, interviewRepo, cvStore, validate)
	offerUC := usecase.NewOfferUsecase(offerRepo, candidateRepo, consultantRepo, ticketRepo, committer, notifier, validate)
	requirementUC := usecase.NewRequirementUsecase(requirementRepo, projectRepo, companyRepo, candidateRepo, consultantRepo, committer, notifier, validate)
	missionUC := usecase.NewMissionUsecase(missionRepo, consultantRepo, committer)
	approvalUC := usecase.NewApprovalUsecase(approvalRepo, consultantRepo, committer, notifier)
	reportUC := usecase.NewReportUsecase(consultantRepo, missionRepo)
	companyUC := usecase.NewCompanyUsecase(companyRepo)

	// 9. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.JWKSUrl)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC:   candidateUC,
		OfferUC:       offerUC,
		RequirementUC: requirementUC,
		MissionUC:     missionUC,
		ApprovalUC:    approvalUC,
		ReportUC:      reportUC,
		CompanyUC:     companyUC,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
