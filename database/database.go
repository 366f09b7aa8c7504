package database

import (
	"fmt"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/models"
	"github.com/AliaksandrTarashkevich/ppianieal/utils"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// DB is the process-wide connection pool
var DB *gorm.DB

// InitDatabasePool opens the pool described by utils.EnvConfig.Database and migrates the tables.
func InitDatabasePool() error {
	cfg := utils.EnvConfig.Database

	db, err := gorm.Open(cfg.Client, dsn())
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.Client, err)
	}

	db.DB().SetMaxIdleConns(int(cfg.MaxIdle))
	db.DB().SetMaxOpenConns(int(cfg.MaxOpenConn))
	if lifeTime, err := time.ParseDuration(cfg.MaxLifeTime); err == nil {
		db.DB().SetConnMaxLifetime(lifeTime)
	}
	db.LogMode(cfg.LogEnable == 1)

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			db.Close()
			return err
		}
	}

	DB = db
	return nil
}

// Migrate creates or updates every table the bot uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...).Error; err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// OpenMemory returns a single-connection sqlite database with all tables migrated.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	// every new connection would get its own empty in-memory database
	db.DB().SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the pool if it was opened.
func Close() {
	if DB != nil {
		DB.Close()
	}
}

func dsn() string {
	cfg := utils.EnvConfig.Database
	if cfg.URL != "" {
		return cfg.URL
	}

	port := cfg.Port
	switch cfg.Client {
	case "mysql":
		if port == "" {
			port = "3306"
		}
		params := cfg.Params
		if params == "" {
			params = "charset=utf8mb4&parseTime=True&loc=Local"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", cfg.User, cfg.Password, cfg.Host, port, cfg.Db, params)
	case "sqlite3":
		if cfg.Db == "" {
			return "nutrition.db"
		}
		return cfg.Db
	default:
		if port == "" {
			port = "5432"
		}
		params := cfg.Params
		if params == "" {
			params = "sslmode=disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s %s", cfg.Host, port, cfg.User, cfg.Db, cfg.Password, params)
	}
}
