// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/javajoker/sustainchain-backend/internal/config"
	"github.com/javajoker/sustainchain-backend/internal/models"
)

// Models lists every table in foreign-key dependency order.
var Models = []interface{}{
	&models.Organization{},
	&models.User{},
	&models.Supplier{},
	&models.Product{},
	&models.SupplyChainNode{},
	&models.Connection{},
	&models.Grievance{},
	&models.SatelliteAlert{},
	&models.KPI{},
	&models.Survey{},
	&models.Question{},
	&models.SurveyResponse{},
	&models.AdminSettings{},
	&models.AuditLog{},
	&models.AdminNotification{},
}

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg.LogLevel)),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Dialector{DriverName: "sqlite", DSN: cfg.DSN()}
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	if cfg.Driver == config.DriverSQLite {
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithField("driver", cfg.Driver).Info("Database connection established successfully")
	return db, nil
}

// OpenSQLite opens a SQLite database file with foreign keys enforced. Used by
// tests and local tooling.
func OpenSQLite(path string) (*gorm.DB, error) {
	return Initialize(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: path,
		LogLevel:   "silent",
	})
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db)

	logrus.Info("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_suppliers_org_active ON suppliers(organization_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_supplier_verified ON products(supplier_id, is_verified, is_deforestation_free)",
		"CREATE INDEX IF NOT EXISTS idx_connections_source_target ON connections(source_id, target_id)",
		"CREATE INDEX IF NOT EXISTS idx_grievances_supplier_status ON grievances(supplier_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_satellite_alerts_region_date ON satellite_alerts(region, alert_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_kpis_org_name_date ON kpis(organization_id, name, date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_questions_survey_order ON questions(survey_id, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_survey_responses_question_supplier ON survey_responses(question_id, supplier_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_admin_notifications_status ON admin_notifications(status, priority)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			// Continue with other indexes instead of failing completely
			logrus.WithError(err).WithField("index", index).Warn("Failed to create index")
		}
	}
}

// Reset drops every table and recreates the schema.
func Reset(db *gorm.DB) error {
	logrus.Warn("Resetting database schema")

	if db.Dialector.Name() == "postgres" {
		for i := len(Models) - 1; i >= 0; i-- {
			stmt := &gorm.Statement{DB: db}
			if err := stmt.Parse(Models[i]); err != nil {
				return fmt.Errorf("failed to resolve table name: %w", err)
			}
			if err := db.Exec("DROP TABLE IF EXISTS " + pq.QuoteIdentifier(stmt.Schema.Table) + " CASCADE").Error; err != nil {
				return fmt.Errorf("failed to drop %s: %w", stmt.Schema.Table, err)
			}
		}
	} else {
		for i := len(Models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(Models[i]); err != nil {
				return fmt.Errorf("failed to drop table: %w", err)
			}
		}
	}

	return RunMigrations(db)
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
