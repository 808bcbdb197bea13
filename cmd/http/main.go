package main

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/delivery/http/controllers"
	"clinic-admin-service/internal/app/delivery/http/middlewares"
	"clinic-admin-service/internal/app/delivery/http/routers"
	"clinic-admin-service/internal/app/drivers/database"
	"clinic-admin-service/internal/app/drivers/logger"
	"clinic-admin-service/internal/app/drivers/messaging"
	"clinic-admin-service/internal/app/drivers/storage"
	"clinic-admin-service/internal/app/services/core/access"
	"clinic-admin-service/internal/app/services/core/appointments"
	"clinic-admin-service/internal/app/services/core/attachments"
	"clinic-admin-service/internal/app/services/core/auth"
	"clinic-admin-service/internal/app/services/core/billings"
	"clinic-admin-service/internal/app/services/core/clinics"
	"clinic-admin-service/internal/app/services/core/insurances"
	medicalRecords "clinic-admin-service/internal/app/services/core/medical_records"
	"clinic-admin-service/internal/app/services/core/notifications"
	"clinic-admin-service/internal/app/services/core/session"
	"clinic-admin-service/internal/app/services/core/users"
	"clinic-admin-service/internal/app/services/shared/audit"
	"clinic-admin-service/internal/app/services/shared/events"
	"clinic-admin-service/internal/app/services/shared/querycache"
	"clinic-admin-service/internal/app/services/shared/ratelimiter"
	"clinic-admin-service/internal/app/services/shared/redis"
	storageRepository "clinic-admin-service/internal/app/services/shared/storage"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	zapLogger.Info("Starting clinic admin service",
		zap.String("version", Version),
		zap.String("tag", Tag),
		zap.String("env", internalConfig.App.Env),
	)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Postgres:       database.NewPostgresDB(driverConfig),
		Redis:          database.NewRedisClient(driverConfig),
		MongoDB:        database.NewMongoDB(driverConfig),
		Minio:          storage.NewMinio(driverConfig, internalConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err := bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Access
	enforcer, err := access.NewEnforcer(internalConfig.RBAC.ModelPath, internalConfig.RBAC.PolicyPath)
	if err != nil {
		return err
	}
	accessService := access.NewAccessService(enforcer, log)

	// Audit & events
	auditRepository := audit.NewAuditMongoRepository(bootstrap.MongoDB, internalConfig.MongoDB.DbName)
	auditService := audit.NewAuditService(auditRepository, log)

	eventPublisher, err := events.NewRabbitMQPublisher(bootstrap.RabbitMQ, internalConfig.RabbitMQ.EventQueue)
	if err != nil {
		return err
	}
	eventService := events.NewEventService(eventPublisher, log)

	// Repositories
	userRepository := users.NewUserPostgresRepository(bootstrap.Postgres)
	clinicRepository := clinics.NewClinicPostgresRepository(bootstrap.Postgres)
	insuranceRepository := insurances.NewInsurancePostgresRepository(bootstrap.Postgres)
	appointmentRepository := appointments.NewAppointmentPostgresRepository(bootstrap.Postgres)
	billingRepository := billings.NewBillingPostgresRepository(bootstrap.Postgres)
	medicalRecordRepository := medicalRecords.NewMedicalRecordPostgresRepository(bootstrap.Postgres)

	// Cached readers
	queryClients := querycache.NewQueryClients(
		redisRepository,
		userRepository,
		clinicRepository,
		insuranceRepository,
		appointmentRepository,
		billingRepository,
		medicalRecordRepository,
		log,
		querycache.Config{
			Prefix: internalConfig.Cache.Prefix,
			TTL:    internalConfig.Cache.TTL,
		},
	)

	// Usecases
	userUsecase := users.NewUserUsecase(userRepository, queryClients, accessService, auditService, eventService, log)
	clinicUsecase := clinics.NewClinicUsecase(clinicRepository, queryClients, accessService, auditService, eventService, log)
	insuranceUsecase := insurances.NewInsuranceUsecase(insuranceRepository, queryClients, accessService, auditService, eventService, log)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, queryClients, accessService, auditService, eventService, log)
	billingUsecase := billings.NewBillingUsecase(billingRepository, queryClients, accessService, auditService, eventService, log)
	medicalRecordUsecase := medicalRecords.NewMedicalRecordUsecase(medicalRecordRepository, queryClients, accessService, auditService, eventService, log)

	sessionService := session.NewSessionService(redisRepository)
	failureLimiter := ratelimiter.NewFixedWindowLimiter(redisRepository, log)
	authUsecase := auth.NewAuthUsecase(userRepository, sessionService, accessService, failureLimiter, internalConfig, log)

	minioStorage := storageRepository.NewMinioStorage(bootstrap.Minio, internalConfig.Minio.BucketName)
	attachmentUsecase := attachments.NewAttachmentUsecase(minioStorage, queryClients, accessService, auditService, internalConfig, log)

	notificationRepository := notifications.NewNotificationMongoRepository(context.Background(), bootstrap.MongoDB, internalConfig.MongoDB.DbName, log)
	notificationUsecase := notifications.NewNotificationUsecase(notificationRepository, log)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(log, authUsecase, accessService, internalConfig)

	// Controllers
	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, &routers.Controllers{
		Auth:          controllers.NewAuthController(log, authUsecase, internalConfig),
		AppConfig:     controllers.NewAppConfigController(log, accessService, internalConfig),
		User:          controllers.NewUserController(log, userUsecase, internalConfig),
		Clinic:        controllers.NewClinicController(log, clinicUsecase, internalConfig),
		Insurance:     controllers.NewInsuranceController(log, insuranceUsecase, internalConfig),
		Appointment:   controllers.NewAppointmentController(log, appointmentUsecase, internalConfig),
		Billing:       controllers.NewBillingController(log, billingUsecase, internalConfig),
		MedicalRecord: controllers.NewMedicalRecordController(log, medicalRecordUsecase, internalConfig),
		Attachment:    controllers.NewAttachmentController(log, attachmentUsecase, internalConfig),
		Notification:  controllers.NewNotificationController(log, notificationUsecase, internalConfig),
	})

	return nil
}
