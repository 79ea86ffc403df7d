package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/gemini"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/controller"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/middleware"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/http/router"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/infobip"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/file"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/memory"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/mongostore"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/postgres"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/somaluganda-remit/src/internal/adapter/sendgrid"
	"github.com/api-sage/somaluganda-remit/src/internal/config"
	"github.com/api-sage/somaluganda-remit/src/internal/jobs"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	"github.com/api-sage/somaluganda-remit/src/internal/scheduler"
	"github.com/api-sage/somaluganda-remit/src/internal/usecase/service_interfaces"
	"github.com/api-sage/somaluganda-remit/src/internal/usecase/services"
	"github.com/joho/godotenv"
)

const sessionTTL = 2 * time.Hour

type stores struct {
	ledger      repo_interfaces.LedgerRepository
	preferences repo_interfaces.PreferenceRepository
	close       func(ctx context.Context) error
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(rootCtx, cfg)
	if err != nil {
		log.Fatalf("open ledger store: %v", err)
	}

	messaging := infobip.NewClient(infobip.Options{
		BaseURL:        cfg.InfobipBaseURL,
		APIKey:         cfg.InfobipAPIKey,
		WhatsAppSender: cfg.WhatsAppSender,
		SMSSenderID:    cfg.SMSSenderID,
		EmailSender:    cfg.EmailSender,
		RetryMax:       cfg.NotifyRetryMax,
		Timeout:        cfg.NotifyTimeout,
	})
	email, err := emailSender(cfg, messaging)
	if err != nil {
		log.Fatalf("configure email: %v", err)
	}

	var (
		generator service_interfaces.StatusGenerator
		assistant service_interfaces.AssistantModel
	)
	if !cfg.Offline() {
		client, err := gemini.NewClient(rootCtx, gemini.Options{
			APIKey:             cfg.GenAIAPIKey,
			BaseURL:            cfg.GenAIBaseURL,
			Model:              cfg.GenAIModel,
			AgentNumberSomalia: cfg.AgentNumberSomalia,
			AgentNumberUganda:  cfg.AgentNumberUganda,
			RetryMax:           cfg.NotifyRetryMax,
			Timeout:            cfg.GenAITimeout,
		})
		if err != nil {
			log.Fatalf("configure gemini client: %v", err)
		}
		generator = client
		assistant = client
	}

	sessions := memory.NewSessionRepository(sessionTTL)
	dispatcher := services.NewDispatcher(rootCtx, cfg.NotifyTimeout)
	ledgerService := services.NewLedgerService(st.ledger)
	notificationService := services.NewNotificationService(email, messaging, cfg.AdminEmail)
	agents := services.AgentNumbers{Somalia: cfg.AgentNumberSomalia, Uganda: cfg.AgentNumberUganda}

	wizardService := services.NewWizardService(sessions, agents)
	submissionService := services.NewSubmissionService(sessions, ledgerService, generator, notificationService, dispatcher, services.SubmissionOptions{
		Offline:       cfg.Offline(),
		StatusTimeout: cfg.GenAITimeout,
	})
	adminService := services.NewAdminService(ledgerService, notificationService, services.AdminOptions{
		Pin:           cfg.AdminPin,
		PinHash:       cfg.AdminPinHash,
		NotifyTimeout: cfg.NotifyTimeout,
	})

	handler := router.New(
		middleware.AdminPin(adminService.VerifyPin),
		controller.NewTransferController(wizardService, submissionService),
		controller.NewAdminController(adminService),
		controller.NewQuoteController(services.NewQuoteService()),
		controller.NewBankController(services.NewBankService(memory.NewBankRepository())),
		controller.NewAssistantController(services.NewAssistantService(assistant, cfg.Offline(), cfg.GenAITimeout)),
		controller.NewPreferenceController(services.NewPreferenceService(st.preferences)),
	)

	cronScheduler, err := scheduler.NewScheduler(
		jobs.NewJobRunner(ledgerService, notificationService, cfg.NotifyTimeout*3),
		scheduler.Schedule{AdminDigest: cfg.DigestSchedule},
	)
	if err != nil {
		log.Fatalf("configure scheduler: %v", err)
	}
	cronScheduler.Start()

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.GenAITimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", logger.Fields{
			"address":     server.Addr,
			"ledgerStore": cfg.LedgerStore,
			"offline":     cfg.Offline(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-rootCtx.Done()
	logger.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", err, nil)
	}
	cronScheduler.Stop()
	dispatcher.Wait()
	if err := st.close(shutdownCtx); err != nil {
		logger.Error("ledger store close failed", err, nil)
	}

	logger.Info("shutdown complete", nil)
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.LedgerStore {
	case config.LedgerStorePostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return stores{}, err
		}
		applied, err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir)
		if err != nil {
			_ = db.Close()
			return stores{}, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("postgres migrations applied", logger.Fields{"applied": applied})
		return stores{
			ledger:      postgres.NewLedgerRepository(db),
			preferences: postgres.NewPreferenceRepository(db),
			close:       func(context.Context) error { return db.Close() },
		}, nil

	case config.LedgerStoreMongo:
		client, db, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return stores{}, err
		}
		ledger := mongostore.NewLedgerRepository(db)
		if err := ledger.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return stores{}, fmt.Errorf("ensure indexes: %w", err)
		}
		return stores{
			ledger:      ledger,
			preferences: mongostore.NewPreferenceRepository(db),
			close:       client.Disconnect,
		}, nil

	default:
		store, err := file.NewLedgerStore(cfg.LedgerFile)
		if err != nil {
			return stores{}, err
		}
		return stores{
			ledger:      store,
			preferences: store,
			close:       func(context.Context) error { return nil },
		}, nil
	}
}

func emailSender(cfg config.Config, infobipClient *infobip.Client) (service_interfaces.EmailSender, error) {
	if cfg.EmailProvider == config.EmailProviderSendGrid {
		return sendgrid.NewEmailSender(cfg.SendGridAPIKey, cfg.EmailSender, "")
	}
	return infobipClient, nil
}
