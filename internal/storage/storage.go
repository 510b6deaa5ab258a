package storage

import (
	"embed"
	"fmt"
	"sync"

	"itconnect-backend/internal/config"
	"itconnect-backend/internal/util/logger"

	"github.com/golang-migrate/migrate/v4"
	migrate_postgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrationsFs embed.FS

var log = logger.GetLogger()

var (
	db     *gorm.DB
	dbOnce sync.Once
)

// GetDb returns the shared gorm connection, opening it on first use.
func GetDb() *gorm.DB {
	dbOnce.Do(func() {
		var err error

		db, err = gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
		})
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			panic(err)
		}
	})

	return db
}

// RunMigrations applies all pending SQL migrations embedded in the binary.
func RunMigrations() error {
	sqlDb, err := GetDb().DB()
	if err != nil {
		return fmt.Errorf("could not get sql.DB from gorm: %w", err)
	}

	source, err := iofs.New(migrationsFs, "migrations")
	if err != nil {
		return fmt.Errorf("could not read embedded migrations: %w", err)
	}

	driver, err := migrate_postgres.WithInstance(sqlDb, &migrate_postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	migration, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := migration.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	version, dirty, err := migration.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("could not read migration version: %w", err)
	}

	log.Info("Migrations applied", "version", version, "dirty", dirty)
	return nil
}
