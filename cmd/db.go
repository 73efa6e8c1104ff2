package cmd

import (
	"fmt"

	"orderdesk/internal/adapters/out/postgres/eventrepo"
	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/adapters/out/postgres/outboxrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenDatabase connects to PostgreSQL and migrates the schema.
func OpenDatabase(config Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost,
		config.DBPort,
		config.DBUser,
		config.DBPassword,
		config.DBName,
		config.DBSslMode,
	)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&eventrepo.EventDTO{},
		&outboxrepo.NotificationDTO{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
