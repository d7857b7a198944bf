package infra

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitPostgresql(dsn string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Error("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		zap.L().Error("Error closing database connection", zap.Error(err))
	} else {
		zap.L().Info("PostgreSQL database connection closed successfully")
	}
}

func StartTransaction(ctx context.Context, db *gorm.DB, opts *sql.TxOptions) *gorm.DB {
	tx := db.WithContext(ctx).Begin(opts)
	if tx.Error != nil {
		zap.L().Error("Error starting transaction", zap.Error(tx.Error))
	}
	return tx
}

// ReleaseTransaction commits unless err is set or ctx was cancelled, and returns the final error.
func ReleaseTransaction(ctx context.Context, tx *gorm.DB, err error) error {
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			zap.L().Warn("Error rollback transaction", zap.Error(rollbackErr), zap.NamedError("cause", err))
		}
		return err
	}
	if commitErr := tx.Commit().Error; commitErr != nil {
		zap.L().Error("Error committing transaction", zap.Error(commitErr))
		return commitErr
	}
	return nil
}

// Transaction runs fn inside one transaction. A panic rolls back and is re-raised.
func Transaction(ctx context.Context, db *gorm.DB, opts *sql.TxOptions, fn func(tx *gorm.DB) error) (err error) {
	tx := StartTransaction(ctx, db, opts)
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	err = fn(tx)
	return ReleaseTransaction(ctx, tx, err)
}
