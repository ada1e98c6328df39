package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/connection"
)

// BuildApp connects the infrastructure and wires every module's routes onto
// the router. Redis carries idempotency keys, rate limits and the forecast
// cache, so it is required alongside Postgres.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID())

	if err := registerModules(router, sqlDB, gormDB, rdb); err != nil {
		return err
	}

	zap.L().Info("application wired",
		zap.String("db_host", os.Getenv("DB_HOST")),
		zap.String("redis_addr", os.Getenv("REDIS_ADDR")),
	)

	return nil
}
