package db

import (
	"path/filepath"
	"testing"

	"github.com/lbeguerie/obras/internal/config"
	"github.com/lbeguerie/obras/internal/models"
)

func TestDSN(t *testing.T) {
	got := DSN(config.MySQLConfig{Host: "127.0.0.1", Port: 3306, User: "root", Database: "obras_urbanas"})
	want := "root@tcp(127.0.0.1:3306)/obras_urbanas?parseTime=true&charset=utf8mb4"
	if got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestConnect_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "obras.db")

	gdb, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect(): %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate(): %v", err)
	}

	for _, tabla := range []string{"obras", "tipo_obras", "area_responsables", "barrios"} {
		if !gdb.Migrator().HasTable(tabla) {
			t.Errorf("table %s missing after migrate", tabla)
		}
	}
}

func TestConnect_DriverDesconocido(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = "oracle"
	if _, err := Connect(cfg); err == nil {
		t.Fatal("Connect() should reject an unknown driver")
	}
}

func TestReset(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "obras.db")

	gdb, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect(): %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate(): %v", err)
	}
	if err := gdb.Create(&models.Barrio{Nombre: "palermo"}).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := Reset(gdb); err != nil {
		t.Fatalf("Reset(): %v", err)
	}
	if gdb.Migrator().HasTable("obras") {
		t.Error("obras table should be dropped after Reset")
	}
}
