package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	models "Roomio/models/postgres"
	"Roomio/pkg/logger"

	_ "github.com/lib/pq"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectGORM returns a GORM DB instance connected to PostgreSQL
func ConnectGORM(cfg *Config) (*gorm.DB, error) {
	// NOTE: gorm is layered over a lib/pq *sql.DB, see https://github.com/go-gorm/gorm/issues/5409
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	gormConfig := &gorm.Config{}
	if cfg.VerbosePostgres {
		gormConfig.Logger = gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Info,
				IgnoreRecordNotFoundError: true,
				Colorful:                  !cfg.IsProduction(),
			},
		)
	} else {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Info("Connected to PostgreSQL", "host", cfg.DBHost, "database", cfg.DBName)
	return db, nil
}

// MigrateDatabase migrates the GORM models to the PostgreSQL database
func MigrateDatabase(db *gorm.DB) error {
	// NOTE: AutoMigrate needs postgres driver v1.4.0, newer tags break it:
	// https://github.com/pilinux/gorest/issues/167#issuecomment-1947114560
	err := db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Like{},
		&models.Chat{},
		&models.Message{},
		&models.PinnedMessage{},
		&models.Group{},
		&models.GroupMember{},
		&models.GroupInvite{},
		&models.Expense{},
		&models.ExpenseShare{},
		&models.MarketplaceItem{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	logger.Info("PostgreSQL database migrated successfully")
	return nil
}
