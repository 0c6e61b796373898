package util

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"farm-market-session/repository"
)

func (c DBConfig) dsn(dbName string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, dbName, c.Port, c.SSLMode)
}

// InitDB connects to postgres, creating the database on first run, and migrates the session table
func InitDB(cfg DBConfig) (*gorm.DB, error) {
	// 1. BOOTSTRAP: CREATE DATABASE IF NOT EXISTS
	if err := ensureDatabase(cfg); err != nil {
		return nil, err
	}

	// 2. CONNECT TO APP DATABASE
	db, err := gorm.Open(postgres.Open(cfg.dsn(cfg.Name)), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to application database: %w", err)
	}

	// 3. AUTO MIGRATE
	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	// 4. CONFIGURE CONNECTION POOL
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying DB object: %w", err)
	}

	// A single session owner never needs many connections
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Println("Database connected, migrated, and pool configured!")
	return db, nil
}

func ensureDatabase(cfg DBConfig) error {
	tempDB, err := gorm.Open(postgres.Open(cfg.dsn("postgres")), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to postgres instance: %w", err)
	}
	sqlDB, err := tempDB.DB()
	if err != nil {
		return fmt.Errorf("get underlying DB object: %w", err)
	}
	defer sqlDB.Close()

	var exists bool
	if err := tempDB.Raw("SELECT EXISTS(SELECT 1 FROM pg_catalog.pg_database WHERE datname = ?)", cfg.Name).Scan(&exists).Error; err != nil {
		return fmt.Errorf("check database: %w", err)
	}
	if exists {
		return nil
	}

	log.Printf("Database '%s' not found. Creating...", cfg.Name)
	if err := tempDB.Exec(fmt.Sprintf("CREATE DATABASE %q", cfg.Name)).Error; err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	log.Println("Database created successfully.")
	return nil
}
