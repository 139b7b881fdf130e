package config

import (
	"fmt"
	"log"
	"precinct-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDB(cfg *Config) {
	db, err := OpenDB(cfg.DBDriver, cfg.DBDSN, cfg.DBLogLevel)
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}

	fmt.Println("Database connected!")

	// Auto Migration: tables are created from the structs in internal/model
	if err := Migrate(db); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	DB = db
}

// OpenDB opens a gorm connection for the given driver.
// MySQL DSN: user:password@tcp(127.0.0.1:3306)/precinct?charset=utf8mb4&parseTime=True&loc=Local
func OpenDB(driver, dsn, logLevel string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(logLevel)),
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Shift{},
		&model.Schedule{},
		&model.LeaveRequest{},
		&model.OvertimeRequest{},
		&model.TrainingRequest{},
		&model.CourtRequest{},
		&model.Event{},
		&model.Notification{},
	)
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	case "warn", "":
		return logger.Warn
	}
	log.Printf("config: unknown DB_LOG_LEVEL %q, using warn", level)
	return logger.Warn
}
