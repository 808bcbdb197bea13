package main

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/drivers/database"
	"clinic-admin-service/internal/app/drivers/logger"
	"clinic-admin-service/internal/app/drivers/messaging"
	"clinic-admin-service/internal/app/services/core/notifications"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	zapLogger.Info("Starting notification worker",
		zap.String("version", Version),
		zap.String("env", internalConfig.App.Env),
	)

	bootstrap := &config.Bootstrap{
		MongoDB:        database.NewMongoDB(driverConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	notificationRepository := notifications.NewNotificationMongoRepository(context.Background(), bootstrap.MongoDB, internalConfig.MongoDB.DbName, zapLogger)
	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, zapLogger)

	worker, err := notifications.NewWorker(
		zapLogger,
		bootstrap.RabbitMQ,
		internalConfig.RabbitMQ.EventQueue,
		internalConfig.RabbitMQ.WorkerPrefetch,
		notificationUsecase,
	)
	if err != nil {
		log.Fatalf("Error creating notification worker: %v", err)
	}

	err = worker.Start(context.Background())
	if err != nil {
		log.Fatalf("Error starting notification worker: %v", err)
	}

	janitor := notifications.NewJanitor(
		zapLogger,
		notificationUsecase,
		internalConfig.Notification.PurgeCronSpec,
		internalConfig.Notification.Retention(),
	)
	janitor.Start(context.Background())

	bootstrap.WorkerStop = func() {
		worker.Stop()
		janitor.Stop()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error closing drivers: %v", err)
	}

	log.Println("Worker exiting")
}
