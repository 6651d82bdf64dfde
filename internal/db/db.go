package db

import (
	"fmt"
	"log"
	"sync"

	"truefeedback/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	handle  *gorm.DB
	once    sync.Once
	initErr error
)

// Init opens the database connection and runs migrations. Idempotent: a
// second call is a no-op returning the first call's result.
func Init(dsn string) error {
	once.Do(func() {
		handle, initErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if initErr != nil {
			initErr = fmt.Errorf("failed to connect to database: %w", initErr)
			return
		}
		log.Println("Database connection established")

		if err := handle.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
			initErr = fmt.Errorf("failed to migrate database: %w", err)
			return
		}
		log.Println("Database migration completed")
	})
	return initErr
}

// Get returns the shared handle. Init must have succeeded.
func Get() *gorm.DB {
	return handle
}

// Close releases the underlying connection pool.
func Close() error {
	if handle == nil {
		return nil
	}
	sqlDB, err := handle.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
