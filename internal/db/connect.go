package db

import (
	"fmt"

	"github.com/lbeguerie/obras/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a MySQL DSN from store configuration.
func DSN(c config.MySQLConfig) string {
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4", c.User, c.Host, c.Port, c.Database)
}

// Connect opens a GORM connection to the configured store. Constraint
// violations are translated to gorm.ErrDuplicatedKey regardless of
// driver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	switch cfg.Store.Driver {
	case config.DriverSQLite:
		gdb, err := gorm.Open(sqlite.Open(cfg.Store.Path), gcfg)
		if err != nil {
			return nil, fmt.Errorf("db: open sqlite %s: %w", cfg.Store.Path, err)
		}
		return gdb, nil
	case config.DriverMySQL:
		gdb, err := gorm.Open(mysql.Open(DSN(cfg.Store.MySQL)), gcfg)
		if err != nil {
			return nil, fmt.Errorf("db: connect to %s:%d/%s: %w",
				cfg.Store.MySQL.Host, cfg.Store.MySQL.Port, cfg.Store.MySQL.Database, err)
		}
		return gdb, nil
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.Store.Driver)
	}
}
