package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-service/internal/app/config"
	"campus-service/internal/app/delivery/http/controllers"
	"campus-service/internal/app/delivery/http/middlewares"
	"campus-service/internal/app/delivery/http/routers"
	"campus-service/internal/app/drivers/database"
	"campus-service/internal/app/drivers/logger"
	"campus-service/internal/app/services/core/conflicts"
	"campus-service/internal/app/services/core/occurrences"
	"campus-service/internal/app/services/core/patterns"
	"campus-service/internal/app/services/core/scheduling"
	"campus-service/internal/app/services/core/timetables"
	"campus-service/internal/app/services/shared/locker"
	sharedredis "campus-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	postgresDB := database.NewPostgresDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	bootstrapTheApp(bootstrap, postgresDB)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()
	logrus.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := postgresDB.Close(); err != nil {
		logrus.Errorf("Failed closing postgres: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Failed closing drivers: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap, postgresDB *sql.DB) {
	// Shared
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// Middlewares
	m := middlewares.New(bootstrap.Logger, bootstrap.InternalConfig)

	// Repositories
	patternRepository := patterns.NewPatternPostgresRepository(postgresDB, bootstrap.Logger)
	timetableRepository := timetables.NewTimetablePostgresRepository(postgresDB, bootstrap.Logger)
	periodRepository := timetables.NewPeriodPostgresRepository(postgresDB, bootstrap.Logger)

	// Patterns and occurrences
	patternUsecase := patterns.NewPatternUsecase(patternRepository, timetableRepository, redisRepository, bootstrap.Logger)
	occurrenceUsecase := occurrences.NewOccurrenceUsecase(
		patternRepository,
		redisRepository,
		bootstrap.Logger,
		time.Duration(bootstrap.InternalConfig.App.OccurrenceCacheTTLInMinute)*time.Minute,
	)
	patternController := controllers.NewPatternController(patternUsecase, occurrenceUsecase, bootstrap.Logger)

	// Timetables and conflicts
	conflictDetector := conflicts.NewConflictDetector(periodRepository, bootstrap.Logger)
	schedulingUsecase := scheduling.NewSchedulingUsecase(
		timetableRepository,
		periodRepository,
		conflictDetector,
		lockService,
		bootstrap.Logger,
		time.Duration(bootstrap.InternalConfig.App.ResourceLockTTLInSecond)*time.Second,
	)
	timetableController := controllers.NewTimetableController(schedulingUsecase, bootstrap.Logger)
	conflictController := controllers.NewConflictController(schedulingUsecase, bootstrap.Logger)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, m, patternController, timetableController, conflictController)
}
