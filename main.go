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

	"github.com/AliaksandrTarashkevich/ppianieal/controllers/check"
	"github.com/AliaksandrTarashkevich/ppianieal/controllers/webhook"
	"github.com/AliaksandrTarashkevich/ppianieal/database"
	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/router"
	"github.com/AliaksandrTarashkevich/ppianieal/services/conversation"
	"github.com/AliaksandrTarashkevich/ppianieal/services/food"
	"github.com/AliaksandrTarashkevich/ppianieal/services/job"
	"github.com/AliaksandrTarashkevich/ppianieal/services/rabbitmq"
	"github.com/AliaksandrTarashkevich/ppianieal/services/scheduler"
	"github.com/AliaksandrTarashkevich/ppianieal/services/session"
	"github.com/AliaksandrTarashkevich/ppianieal/services/storage"
	"github.com/AliaksandrTarashkevich/ppianieal/services/store"
	"github.com/AliaksandrTarashkevich/ppianieal/services/summary"
	"github.com/AliaksandrTarashkevich/ppianieal/services/telegram"
	"github.com/AliaksandrTarashkevich/ppianieal/services/trackLog"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"
	"github.com/AliaksandrTarashkevich/ppianieal/utils"

	logLib "github.com/AliaksandrTarashkevich/ppianieal/services/log"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const (
	dispatcherBuffer = 64
	shutdownTimeout  = 10 * time.Second
)

func main() {

	// env
	var envService utils.EnvService
	envService.InitEnv()
	failOnError(envService.Validate(), "Invalid configuration")
	fmt.Println("config loaded...")

	trackLog.LogTrackInit()
	var logService logLib.LogService
	logger := logService.LoggerInit("main").WithFields(logrus.Fields{"task": "main"})

	failOnError(database.InitDatabasePool(), "Failed to open the database")
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := utils.EnvConfig
	location := utils.Location()

	storeService := store.New(database.DB, logger.WithFields(logrus.Fields{"task": "store"}), cfg.Nutrition.MinCalories)
	insertActivityLog(storeService, logger, "nutrition.worker.init", "worker started")

	bot, err := telegram.New(cfg.Telegram.Token, cfg.Telegram.Debug, logger.WithFields(logrus.Fields{"task": "telegram"}))
	failOnError(err, "Failed to connect to telegram")

	sessions := newSessionStore(ctx, logger)
	dialog := conversation.New(conversation.Deps{
		Messenger: bot,
		Sessions:  sessions,
		Store:     storeService,
		Analyzer:  newAnalyzer(ctx, logger),
		Reporter:  summary.New(storeService, cfg.Nutrition.StepsCoefficient),
		Images:    newImages(ctx, logger),
	}, conversation.Options{
		Location:           location,
		ActiveHoursStart:   cfg.Bot.ActiveHoursStart,
		ActiveHoursEnd:     cfg.Bot.ActiveHoursEnd,
		OperatorID:         cfg.Telegram.OperatorID,
		MaleBodyFatImage:   cfg.Storage.MaleBodyFatImage,
		FemaleBodyFatImage: cfg.Storage.FemaleBodyFatImage,
		MealExampleImage:   cfg.Storage.MealExampleImage,
	}, logger.WithFields(logrus.Fields{"task": "dialog"}))

	// handlers keep running until the dispatcher is stopped, after the signal
	dispatcher := conversation.NewDispatcher(dialog, cfg.ConcurrentAmount, dispatcherBuffer, logger.WithFields(logrus.Fields{"task": "dispatcher"}))
	dispatcher.Start(context.Background())

	jobService := job.New(storeService, bot, dialog, location, logger.WithFields(logrus.Fields{"task": "job"}))
	var enqueuer scheduler.Enqueuer = jobService
	if cfg.RabbitMQ.Domain != "" {
		if conn, err := NutritionQueue(jobService, logger); err != nil {
			logger.WithFields(logrus.Fields{"error": err.Error()}).Error("job queue unavailable, running jobs in process")
		} else {
			enqueuer = conn
		}
	}

	sched, err := scheduler.New(scheduler.Triggers(*cfg), enqueuer, location, logger.WithFields(logrus.Fields{"task": "scheduler"}))
	failOnError(err, "Invalid schedule")
	dialog.Scheduler = sched
	if userIDs, err := storeService.ListUserIDs(); err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Error("users not loaded, reminders start after their next onboarding")
	} else if err := sched.RegisterAll(userIDs); err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Warn("some users have no reminders")
	}
	sched.Start()

	var hook *webhook.WebhookController
	polling := make(chan struct{})
	if cfg.Telegram.Mode == enums.TelegramModeWebhook {
		failOnError(bot.SetWebhook(cfg.Telegram.WebhookURL), "Failed to set the telegram webhook")
		hook = webhook.New(bot, dispatcher)
		close(polling)
	} else {
		go func() {
			defer close(polling)
			if err := bot.Poll(ctx, dispatcher); err != nil {
				logger.WithFields(logrus.Fields{"error": err.Error()}).Error("polling stopped")
				stop()
			}
		}()
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Router.Port),
		Handler: router.Router(sched, hook),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"error": err.Error()}).Error("http server stopped")
			stop()
		}
	}()

	dialog.NotifyOperator(ctx, "🚀 Бот запущен")
	logger.WithFields(logrus.Fields{"mode": cfg.Telegram.Mode, "users": sched.Count()}).Info("worker started")

	<-ctx.Done()
	logger.Info("shutting down")

	<-polling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Warn("http server not stopped cleanly")
	}
	dispatcher.Stop()
	sched.Stop()

	dialog.NotifyOperator(shutdownCtx, "🛑 Бот остановлен")
	insertActivityLog(storeService, logger, "nutrition.worker.shutdown", "worker stopped")
	logger.Error("worker shutdown")
}

// NutritionQueue consumes scheduled jobs from the queue and returns the connection they are
// published on.
func NutritionQueue(jobService *job.JobService, logger *logrus.Entry) (*rabbitmq.Connection, error) {
	queue := utils.EnvConfig.RabbitMQ.Queue
	conn := rabbitmq.NewConnection(check.QueueConnectionName, []string{queue}, logger.WithFields(logrus.Fields{"task": "queue"}))

	if err := conn.Connect(); err != nil {
		return nil, err
	}
	if err := conn.BindQueue(); err != nil {
		return nil, err
	}
	deliveries, err := conn.Consume()
	if err != nil {
		return nil, err
	}

	for q, d := range deliveries {
		go conn.HandleConsumedDeliveries(q, d, NutritionHandler(jobService, logger))
	}
	logger.WithFields(logrus.Fields{"queue": queue}).Info("waiting for jobs")
	return conn, nil
}

func NutritionHandler(jobService *job.JobService, logger *logrus.Entry) func(*rabbitmq.Connection, string, <-chan amqp.Delivery) {
	return func(c *rabbitmq.Connection, q string, deliveries <-chan amqp.Delivery) {
		for d := range deliveries {
			param, err := rabbitmq.DecodeJob(d.Body)
			if err != nil {
				logger.WithFields(logrus.Fields{"queue": q, "error": err.Error()}).Warn("job dropped")
				continue
			}
			// failures are already in the activity log
			_ = jobService.Start(context.Background(), param)
		}
	}
}

func newSessionStore(ctx context.Context, logger *logrus.Entry) session.Store {
	cfg := utils.EnvConfig.Redis
	if cfg.Addr == "" {
		return session.NewMemoryStore()
	}
	sessions, err := session.NewRedisStore(ctx, cfg.Addr, cfg.Password, cfg.DB, cfg.SessionTTL)
	if err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Error("redis unavailable, keeping sessions in memory")
		return session.NewMemoryStore()
	}
	return sessions
}

func newAnalyzer(ctx context.Context, logger *logrus.Entry) *food.FoodService {
	cfg := utils.EnvConfig.Gemini
	foodLogger := logger.WithFields(logrus.Fields{"task": "food"})
	if cfg.APIKey == "" {
		logger.Warn("gemini.api_key is not set, meal photos will not be analyzed")
		return food.New(nil, foodLogger)
	}
	generator, err := food.NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
	if err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Error("gemini unavailable, meal photos will not be analyzed")
		return food.New(nil, foodLogger)
	}
	return food.New(generator, foodLogger)
}

// newImages returns nil when no bucket is configured; pictures then fall back to text.
func newImages(ctx context.Context, logger *logrus.Entry) conversation.Images {
	cfg := utils.EnvConfig.Storage
	if cfg.Bucket == "" {
		return nil
	}
	images, err := storage.New(ctx, storage.Options{
		Endpoint:     cfg.Endpoint,
		Region:       cfg.Region,
		Bucket:       cfg.Bucket,
		AccessKey:    cfg.AccessKey,
		SecretKey:    cfg.SecretKey,
		SignedURLTTL: cfg.SignedURLTTL,
	})
	if err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Error("object storage unavailable")
		return nil
	}
	return images
}

func insertActivityLog(storeService *store.StoreService, logger *logrus.Entry, logName, message string) {
	data := structs.ActivityLogJsonModel{Type: logName, Result: true, Message: message}
	if err := storeService.InsertActivityLog(logName, 0, data); err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Warn("activity log not written")
	}
}

func failOnError(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %s", msg, err)
	}
}
