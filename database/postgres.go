package database

import (
	"fmt"
	"log/slog"

	"skillswap-service/config"
	"skillswap-service/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Postgres *gorm.DB

// GormConfig is shared by the postgres connection and the sqlite test
// databases. References between rows are not enforced by the schema.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

func PostgresConnect() error {
	var err error
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.Config("POSTGRES_HOST"),
		config.Config("POSTGRES_PORT"),
		config.Config("POSTGRES_USER"),
		config.Config("POSTGRES_PASSWORD"),
		config.Config("POSTGRES_DB"),
	)
	Postgres, err = gorm.Open(postgres.Open(dsn), GormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect postgres: %w", err)
	}

	slog.Info("Connection opened to Postgres")
	if err := Migrate(Postgres); err != nil {
		return err
	}
	slog.Info("Postgres Database Migrated")
	return nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Offer{},
		&model.Request{},
		&model.Message{},
		&model.Exchange{},
		&model.Notification{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func PostgresClose() error {
	if Postgres == nil {
		return nil
	}
	sqlDB, err := Postgres.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
