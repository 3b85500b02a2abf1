package config

import (
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type (
	InternalConfig struct {
		App App
	}

	DriverConfig struct {
		PostgresDB PostgresDB
		Redis      Redis
		Logger     Logger
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeout            int
		RequestBodyLimitInMegabyte int

		// Scheduling core knobs
		OccurrenceCacheTTLInMinute int
		ResourceLockTTLInSecond    int
	}

	PostgresDB struct {
		Host     string
		Port     string
		Username string
		Password string
		DBName   string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)

type Bootstrap struct {
	Router         *chi.Mux
	Redis          *redis.Client
	Logger         *zap.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
}
