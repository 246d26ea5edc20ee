// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func (d *DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return SQLiteDSN(d.SQLitePath)
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// SQLiteDSN turns a file path into a modernc DSN with foreign keys enforced
// and a busy timeout so concurrent writers wait instead of failing.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
