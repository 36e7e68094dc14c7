package db

import (
	"fmt"

	"github.com/lbeguerie/obras/internal/models"
	"gorm.io/gorm"
)

// AllModels returns every GORM model, catalogs first so foreign keys
// resolve during migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.TipoObra{},
		&models.AreaResponsable{},
		&models.Barrio{},
		&models.Obra{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table. Used by `obras db reset` and tests.
func Reset(gdb *gorm.DB) error {
	all := AllModels()
	// Drop in reverse order so the Obra table goes before its catalogs.
	for i := len(all) - 1; i >= 0; i-- {
		if err := gdb.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("db: drop table %T: %w", all[i], err)
		}
	}
	return nil
}
