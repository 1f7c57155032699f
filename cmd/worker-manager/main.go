// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	awsclients "scheme-workers/internal/common/aws"
	"scheme-workers/internal/common/config"
	"scheme-workers/internal/common/database"
	"scheme-workers/internal/common/errors"
	"scheme-workers/internal/common/logger"
	"scheme-workers/internal/common/observability"
	"scheme-workers/internal/engine"

	// Assistant Workers (4)
	br "scheme-workers/internal/workers/assistant/build-reply"
	ci "scheme-workers/internal/workers/assistant/classify-intent"
	ee "scheme-workers/internal/workers/assistant/evaluate-eligibility"
	vaq "scheme-workers/internal/workers/assistant/validate-admin-query"

	// Catalog Workers (1)
	ss "scheme-workers/internal/workers/catalog/search-schemes"

	// Notification Workers (1)
	ser "scheme-workers/internal/workers/notification/send-eligibility-report"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	tracing, err := observability.NewTracing(cfg.App.Name, os.Getenv("JAEGER_ENDPOINT"))
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}
	defer tracing.Shutdown()

	ctx := context.Background()

	// --- Init Engine (fail fast on invalid lexicon/catalog) ---
	eng, err := engine.New(engine.Options{
		LexiconPath:     cfg.Engine.LexiconPath,
		CatalogPath:     cfg.Engine.CatalogPath,
		DefaultLanguage: cfg.Engine.DefaultLanguage,
		Logger:          log,
	})
	if err != nil {
		if errors.IsConfigError(err) {
			zapLog.Fatal("engine configuration invalid", zap.Error(err))
		}
		zapLog.Fatal("engine init failed", zap.Error(err))
	}
	zapLog.Info("Classification and eligibility engine loaded",
		zap.Int("programs", len(eng.Catalog().Programs)),
		zap.String("defaultLanguage", cfg.Engine.DefaultLanguage),
	)

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Notification Clients ---
	var emailSender ser.EmailSender
	var smsSender ser.SMSSender
	if cfg.Notifications.Email.Enabled {
		sesClient, err := awsclients.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		emailSender = sesClient
		zapLog.Info("SES email client initialized", zap.String("region", cfg.Notifications.AWS.Region))
	}
	if cfg.Notifications.SMS.Enabled {
		snsClient, err := awsclients.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		smsSender = snsClient
		zapLog.Info("SNS sms client initialized", zap.String("region", cfg.Notifications.AWS.Region))
	}

	// --- START: Register ALL 6 Workers ---

	// --- 1. Assistant Workers (4) ---
	if cfg.Workers[ci.TaskType].Enabled {
		handler := ci.NewHandler(
			&ci.Config{
				Timeout:  time.Duration(cfg.Workers[ci.TaskType].Timeout) * time.Millisecond,
				CacheTTL: 10 * time.Minute,
			},
			eng, redis, log,
		)
		startWorker(zeebeClient, ci.TaskType, cfg.Workers[ci.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[vaq.TaskType].Enabled {
		handler := vaq.NewHandler(
			&vaq.Config{
				Timeout: time.Duration(cfg.Workers[vaq.TaskType].Timeout) * time.Millisecond,
			},
			eng, log,
		)
		startWorker(zeebeClient, vaq.TaskType, cfg.Workers[vaq.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ee.TaskType].Enabled {
		handler := ee.NewHandler(
			&ee.Config{
				Timeout:      time.Duration(cfg.Workers[ee.TaskType].Timeout) * time.Millisecond,
				QueryTimeout: 5 * time.Second,
			},
			eng, pg.DB, log,
		)
		startWorker(zeebeClient, ee.TaskType, cfg.Workers[ee.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[br.TaskType].Enabled {
		handler := br.NewHandler(
			&br.Config{
				Timeout:      time.Duration(cfg.Workers[br.TaskType].Timeout) * time.Millisecond,
				RegistryPath: cfg.Engine.RegistryPath,
				AppVersion:   cfg.App.Version,
			},
			eng, log,
		)
		startWorker(zeebeClient, br.TaskType, cfg.Workers[br.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Catalog Workers (1) ---
	if cfg.Workers[ss.TaskType].Enabled {
		handler := ss.NewHandler(
			&ss.Config{
				Timeout:     time.Duration(cfg.Workers[ss.TaskType].Timeout) * time.Millisecond,
				SchemeIndex: cfg.Engine.SchemeIndex,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, ss.TaskType, cfg.Workers[ss.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Notification Workers (1) ---
	if cfg.Workers[ser.TaskType].Enabled {
		handler := ser.NewHandler(
			&ser.Config{
				Timeout:     time.Duration(cfg.Workers[ser.TaskType].Timeout) * time.Millisecond,
				FromEmail:   cfg.Notifications.Email.FromEmail,
				SMSSenderID: cfg.Notifications.SMS.SMSSenderID,
			},
			emailSender, smsSender, log,
		)
		startWorker(zeebeClient, ser.TaskType, cfg.Workers[ser.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All 6 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
