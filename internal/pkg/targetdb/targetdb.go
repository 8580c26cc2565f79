package targetdb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mitgajera/Blockchain-indexer/app/models"
)

const testTimeout = 5 * time.Second

// ConnectionParams carries everything needed to reach a user's target
// database. Kept separate from the stored model so connectivity can be
// tested before a record exists.
type ConnectionParams struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSL      bool
}

// ParamsFromModel converts a stored connection record into dial parameters.
func ParamsFromModel(conn *models.DbConnection) ConnectionParams {
	return ConnectionParams{
		Host:     conn.Host,
		Port:     conn.Port,
		Database: conn.Database,
		Username: conn.Username,
		Password: conn.Password,
		SSL:      conn.SSL,
	}
}

// DSN renders the keyword/value Postgres connection string.
func (p ConnectionParams) DSN() string {
	sslmode := "disable"
	if p.SSL {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.Username, p.Password, p.Database, sslmode)
}

// TestResult reports the outcome of a connectivity check.
type TestResult struct {
	OK      bool   `json:"success"`
	Message string `json:"message"`
}

// TestConnection opens a short-lived connection, verifies liveness within a
// bounded timeout and tears everything down regardless of outcome. It never
// panics past this boundary; all failures land in the result message.
func TestConnection(ctx context.Context, params ConnectionParams) TestResult {
	ctx, cancel := context.WithTimeout(ctx, testTimeout)
	defer cancel()

	db, err := open(params)
	if err != nil {
		return TestResult{OK: false, Message: fmt.Sprintf("Connection failed: %v", err)}
	}
	defer closeHandle(db)

	sqlDB, err := db.DB()
	if err != nil {
		return TestResult{OK: false, Message: fmt.Sprintf("Connection failed: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return TestResult{OK: false, Message: fmt.Sprintf("Connection failed: %v", err)}
	}
	return TestResult{OK: true, Message: "Connection successful"}
}

func open(params ConnectionParams) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(params.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func closeHandle(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
