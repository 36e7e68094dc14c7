package obra

import (
	"errors"
	"testing"

	"github.com/lbeguerie/obras/internal/catalogo"
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

func crearObra(t *testing.T, gdb *gorm.DB, nombre string) *models.Obra {
	t.Helper()
	o, err := Crear(gdb, CrearOpts{
		Nombre: nombre,
		Tipo:   "Escuela",
		Area:   "Ministerio de Educacion",
		Barrio: "Palermo",
		Comuna: "14",
	})
	if err != nil {
		t.Fatalf("Crear(%q): %v", nombre, err)
	}
	return o
}

func TestCrear(t *testing.T) {
	gdb := testDB(t)
	o := crearObra(t, gdb, "Escuela Primaria N1")

	if o.ID == 0 {
		t.Error("Crear() should assign an id")
	}
	if o.Etapa != models.EtapaProyecto {
		t.Errorf("Etapa = %q, want Proyecto", o.Etapa)
	}
	if o.TipoObraID == nil || o.AreaID == nil || o.BarrioID == nil {
		t.Error("Crear() should resolve the three catalog references")
	}
}

func TestCrear_NombreObligatorio(t *testing.T) {
	gdb := testDB(t)
	if _, err := Crear(gdb, CrearOpts{Tipo: "Escuela", Area: "Educacion", Barrio: "Flores"}); err == nil {
		t.Fatal("Crear() without nombre should fail")
	}
}

func TestCrear_CatalogoVacio(t *testing.T) {
	gdb := testDB(t)
	crearObra(t, gdb, "Escuela Existente") // seeds all three catalogs

	casos := []CrearOpts{
		{Nombre: "Obra Sin Tipo", Tipo: "", Area: "Salud", Barrio: "Flores"},
		{Nombre: "Obra Sin Area", Tipo: "Hospital", Area: " ", Barrio: "Flores"},
		{Nombre: "Obra Sin Barrio", Tipo: "Hospital", Area: "Salud", Barrio: ""},
	}
	for _, opts := range casos {
		if _, err := Crear(gdb, opts); !errors.Is(err, catalogo.ErrNombreVacio) {
			t.Errorf("Crear(%q): err = %v, want ErrNombreVacio", opts.Nombre, err)
		}
	}

	// None of the rejected creations may leave a row behind.
	total, err := Total(gdb)
	if err != nil {
		t.Fatalf("Total(): %v", err)
	}
	if total != 1 {
		t.Errorf("Total() = %d, want only the seeded obra", total)
	}
}

func TestCrear_NombreDuplicado(t *testing.T) {
	gdb := testDB(t)
	crearObra(t, gdb, "Escuela Primaria N1")

	_, err := Crear(gdb, CrearOpts{
		Nombre: "Escuela Primaria N1",
		Tipo:   "Hospital",
		Area:   "Salud",
		Barrio: "Caballito",
	})
	if !errors.Is(err, ErrNombreDuplicado) {
		t.Fatalf("Crear() repeated nombre: err = %v, want ErrNombreDuplicado", err)
	}
}

func TestObtener_Preload(t *testing.T) {
	gdb := testDB(t)
	creada := crearObra(t, gdb, "Escuela Primaria N1")

	o, err := Obtener(gdb, creada.ID)
	if err != nil {
		t.Fatalf("Obtener(): %v", err)
	}
	if o.TipoObra == nil || o.TipoObra.Nombre != "Escuela" {
		t.Errorf("TipoObra = %+v, want Escuela", o.TipoObra)
	}
	if o.Area == nil || o.Area.Nombre != "Ministerio de Educacion" {
		t.Errorf("Area = %+v", o.Area)
	}
	if o.Barrio == nil || o.Barrio.Nombre != "palermo" {
		t.Errorf("Barrio = %+v, want normalized palermo", o.Barrio)
	}
}

func TestObtener_NoEncontrada(t *testing.T) {
	gdb := testDB(t)
	if _, err := Obtener(gdb, 999); !errors.Is(err, ErrNoEncontrada) {
		t.Fatalf("Obtener(999): err = %v, want ErrNoEncontrada", err)
	}
}

func TestListarYTotal(t *testing.T) {
	gdb := testDB(t)
	crearObra(t, gdb, "Obra A")
	crearObra(t, gdb, "Obra B")

	obras, err := Listar(gdb)
	if err != nil {
		t.Fatalf("Listar(): %v", err)
	}
	if len(obras) != 2 {
		t.Fatalf("Listar() = %d obras, want 2", len(obras))
	}
	if obras[0].Nombre != "Obra A" || obras[1].Nombre != "Obra B" {
		t.Errorf("Listar() order = %q, %q", obras[0].Nombre, obras[1].Nombre)
	}

	total, err := Total(gdb)
	if err != nil {
		t.Fatalf("Total(): %v", err)
	}
	if total != 2 {
		t.Errorf("Total() = %d, want 2", total)
	}
}
