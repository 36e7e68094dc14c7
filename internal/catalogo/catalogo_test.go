package catalogo

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lbeguerie/obras/internal/db"
	"github.com/lbeguerie/obras/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func TestObtenerOCrearTipo_Idempotente(t *testing.T) {
	gdb := testDB(t)

	a, err := ObtenerOCrearTipo(gdb, "Escuela")
	if err != nil {
		t.Fatalf("ObtenerOCrearTipo(): %v", err)
	}
	b, err := ObtenerOCrearTipo(gdb, "Escuela")
	if err != nil {
		t.Fatalf("ObtenerOCrearTipo() segunda vez: %v", err)
	}
	if a.ID != b.ID {
		t.Errorf("ids %d y %d, want one row", a.ID, b.ID)
	}

	c, err := ObtenerOCrearTipo(gdb, "Hospital")
	if err != nil {
		t.Fatalf("ObtenerOCrearTipo(Hospital): %v", err)
	}
	if c.ID == a.ID {
		t.Error("distinct names should get distinct rows")
	}
}

func TestObtenerOCrearBarrio_Normaliza(t *testing.T) {
	gdb := testDB(t)

	variantes := []string{"Palermo", "PALERMO ", "Palérmo", " palermo"}
	var primero uint
	for _, v := range variantes {
		b, err := ObtenerOCrearBarrio(gdb, v)
		if err != nil {
			t.Fatalf("ObtenerOCrearBarrio(%q): %v", v, err)
		}
		if b.Nombre != "palermo" {
			t.Errorf("Nombre = %q, want palermo", b.Nombre)
		}
		if primero == 0 {
			primero = b.ID
		} else if b.ID != primero {
			t.Errorf("ObtenerOCrearBarrio(%q) id = %d, want %d", v, b.ID, primero)
		}
	}

	barrios, err := Barrios(gdb)
	if err != nil {
		t.Fatalf("Barrios(): %v", err)
	}
	if len(barrios) != 1 {
		t.Errorf("Barrios() = %v, want exactly one row", barrios)
	}
}

func TestObtenerOCrear_NombreVacio(t *testing.T) {
	gdb := testDB(t)
	// A blank name must fail even when rows exist that a blank
	// condition could accidentally match.
	if err := gdb.Create(&models.TipoObra{Nombre: "Escuela"}).Error; err != nil {
		t.Fatalf("seed tipo: %v", err)
	}

	for _, nombre := range []string{"", "   "} {
		if _, err := ObtenerOCrearTipo(gdb, nombre); !errors.Is(err, ErrNombreVacio) {
			t.Errorf("ObtenerOCrearTipo(%q): err = %v, want ErrNombreVacio", nombre, err)
		}
		if _, err := ObtenerOCrearArea(gdb, nombre); !errors.Is(err, ErrNombreVacio) {
			t.Errorf("ObtenerOCrearArea(%q): err = %v, want ErrNombreVacio", nombre, err)
		}
		if _, err := ObtenerOCrearBarrio(gdb, nombre); !errors.Is(err, ErrNombreVacio) {
			t.Errorf("ObtenerOCrearBarrio(%q): err = %v, want ErrNombreVacio", nombre, err)
		}
	}

	tipos, err := Tipos(gdb)
	if err != nil {
		t.Fatalf("Tipos(): %v", err)
	}
	if !reflect.DeepEqual(tipos, []string{"Escuela"}) {
		t.Errorf("Tipos() = %v, want the seeded row untouched", tipos)
	}
}

func TestObtenerOCrear_RecortaEspacios(t *testing.T) {
	gdb := testDB(t)

	a, err := ObtenerOCrearTipo(gdb, "Escuela")
	if err != nil {
		t.Fatalf("ObtenerOCrearTipo(): %v", err)
	}
	b, err := ObtenerOCrearTipo(gdb, "  Escuela ")
	if err != nil {
		t.Fatalf("ObtenerOCrearTipo(padded): %v", err)
	}
	if a.ID != b.ID {
		t.Errorf("ids %d y %d, want one row regardless of padding", a.ID, b.ID)
	}
}

func TestListadosOrdenados(t *testing.T) {
	gdb := testDB(t)
	for _, n := range []string{"Salud", "Educacion", "Ambiente"} {
		if _, err := ObtenerOCrearArea(gdb, n); err != nil {
			t.Fatalf("ObtenerOCrearArea(%q): %v", n, err)
		}
	}

	areas, err := Areas(gdb)
	if err != nil {
		t.Fatalf("Areas(): %v", err)
	}
	quiere := []string{"Ambiente", "Educacion", "Salud"}
	if !reflect.DeepEqual(areas, quiere) {
		t.Errorf("Areas() = %v, want %v", areas, quiere)
	}
}
