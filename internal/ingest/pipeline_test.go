package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lbeguerie/obras/internal/config"
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

func fila(nombre, barrio string, extra map[string]string) map[string]string {
	f := map[string]string{"nombre": nombre, "barrio": barrio}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func TestCargar(t *testing.T) {
	gdb := testDB(t)
	filas := []map[string]string{
		fila("Plaza Central", "Palermo", map[string]string{
			"tipo":             "Espacio Publico",
			"area_responsable": "Ministerio de Espacio Publico",
			"etapa":            "en obra",
			"monto_contrato":   "$1.234.567,89",
			"comuna":           "14",
		}),
		fila("Escuela 12", "Flores", map[string]string{
			"tipo":  "Escuela",
			"etapa": "finalizada",
		}),
	}

	res, err := Cargar(gdb, filas)
	if err != nil {
		t.Fatalf("Cargar(): %v", err)
	}
	if res.Leidas != 2 || res.Insertadas != 2 || res.Duplicadas != 0 || res.Descartadas != 0 {
		t.Fatalf("Resultado = %+v", res)
	}

	var o models.Obra
	if err := gdb.Where("nombre = ?", "Plaza Central").First(&o).Error; err != nil {
		t.Fatalf("buscar Plaza Central: %v", err)
	}
	if o.Etapa != models.EtapaEnEjecucion {
		t.Errorf("Etapa = %q, want En Ejecucion via synonym", o.Etapa)
	}
	if !o.MontoContrato.Valid || o.MontoContrato.Decimal.String() != "1234567.89" {
		t.Errorf("MontoContrato = %v", o.MontoContrato)
	}
	if o.TipoObraID == nil || o.BarrioID == nil {
		t.Error("catalog references should resolve")
	}
}

func TestCargar_DeduplicaNombreBarrio(t *testing.T) {
	gdb := testDB(t)
	filas := []map[string]string{
		fila("Plaza Central", "Palermo", nil),
		fila("Plaza Central", "Palérmo ", nil), // same barrio after normalization
		fila("Plaza Central", "Flores", nil),   // same name, different barrio
	}

	res, err := Cargar(gdb, filas)
	if err != nil {
		t.Fatalf("Cargar(): %v", err)
	}
	if res.Insertadas != 2 {
		t.Errorf("Insertadas = %d, want 2", res.Insertadas)
	}
	if res.Duplicadas != 1 {
		t.Errorf("Duplicadas = %d, want 1", res.Duplicadas)
	}

	var barrios int64
	if err := gdb.Model(&models.Barrio{}).Count(&barrios).Error; err != nil {
		t.Fatalf("contar barrios: %v", err)
	}
	if barrios != 2 {
		t.Errorf("barrios = %d, want 2 (palermo, flores)", barrios)
	}
}

func TestCargar_Idempotente(t *testing.T) {
	gdb := testDB(t)
	filas := []map[string]string{
		fila("Plaza Central", "Palermo", nil),
		fila("Escuela 12", "Flores", nil),
	}

	if _, err := Cargar(gdb, filas); err != nil {
		t.Fatalf("primera carga: %v", err)
	}
	res, err := Cargar(gdb, filas)
	if err != nil {
		t.Fatalf("segunda carga: %v", err)
	}
	if res.Insertadas != 0 || res.Duplicadas != 2 {
		t.Errorf("segunda carga = %+v, want 0 insertadas, 2 duplicadas", res)
	}

	var total int64
	if err := gdb.Model(&models.Obra{}).Count(&total).Error; err != nil {
		t.Fatalf("contar obras: %v", err)
	}
	if total != 2 {
		t.Errorf("obras = %d, want 2", total)
	}
}

func TestCargar_DescartaFilasIncompletas(t *testing.T) {
	gdb := testDB(t)
	filas := []map[string]string{
		fila("", "Palermo", nil),
		fila("Plaza Sin Barrio", "", nil),
		fila("Plaza Central", "Palermo", nil),
	}

	res, err := Cargar(gdb, filas)
	if err != nil {
		t.Fatalf("Cargar(): %v", err)
	}
	if res.Descartadas != 2 || res.Insertadas != 1 {
		t.Errorf("Resultado = %+v, want 2 descartadas, 1 insertada", res)
	}
}

func TestCargar_SinDatos(t *testing.T) {
	gdb := testDB(t)

	if _, err := Cargar(gdb, nil); !errors.Is(err, ErrSinDatos) {
		t.Fatalf("Cargar(nil): err = %v, want ErrSinDatos", err)
	}

	// All rows discarded counts as no data too.
	soloBasura := []map[string]string{fila("", "", nil)}
	if _, err := Cargar(gdb, soloBasura); !errors.Is(err, ErrSinDatos) {
		t.Fatalf("Cargar(basura): err = %v, want ErrSinDatos", err)
	}
}

func TestEjecutar_ReportaLineasMalformadas(t *testing.T) {
	gdb := testDB(t)
	ruta := filepath.Join(t.TempDir(), "obras.csv")
	contenido := "nombre;barrio\n\"Plaza\" Rota;Palermo\nEscuela 12;Flores\n"
	if err := os.WriteFile(ruta, []byte(contenido), 0o644); err != nil {
		t.Fatalf("escribir csv: %v", err)
	}

	res, err := Ejecutar(gdb, Opciones{Ruta: ruta, Delimitador: ';', Codificacion: config.EncodingUTF8})
	if err != nil {
		t.Fatalf("Ejecutar(): %v", err)
	}
	if res.Insertadas != 1 {
		t.Errorf("Insertadas = %d, want 1", res.Insertadas)
	}
	if len(res.Fallas) != 1 {
		t.Fatalf("Fallas = %v, want the malformed line reported", res.Fallas)
	}
	if res.Fallas[0].Linea != 2 || !strings.Contains(res.Fallas[0].Motivo, "linea malformada") {
		t.Errorf("Falla = %+v", res.Fallas[0])
	}
}

func TestCargar_EtapaVaciaDefaultProyecto(t *testing.T) {
	gdb := testDB(t)
	res, err := Cargar(gdb, []map[string]string{fila("Plaza Central", "Palermo", nil)})
	if err != nil {
		t.Fatalf("Cargar(): %v", err)
	}
	if res.Insertadas != 1 {
		t.Fatalf("Insertadas = %d", res.Insertadas)
	}

	var o models.Obra
	if err := gdb.First(&o).Error; err != nil {
		t.Fatalf("leer obra: %v", err)
	}
	if o.Etapa != models.EtapaProyecto {
		t.Errorf("Etapa = %q, want Proyecto default", o.Etapa)
	}
}

func TestCargar_TipoYAreaOpcionales(t *testing.T) {
	gdb := testDB(t)
	res, err := Cargar(gdb, []map[string]string{fila("Plaza Central", "Palermo", nil)})
	if err != nil {
		t.Fatalf("Cargar(): %v", err)
	}
	if res.Insertadas != 1 {
		t.Fatalf("Insertadas = %d", res.Insertadas)
	}

	var o models.Obra
	if err := gdb.First(&o).Error; err != nil {
		t.Fatalf("leer obra: %v", err)
	}
	if o.TipoObraID != nil || o.AreaID != nil {
		t.Error("empty tipo/area should leave the references nil")
	}
	var tipos, areas int64
	gdb.Model(&models.TipoObra{}).Count(&tipos)
	gdb.Model(&models.AreaResponsable{}).Count(&areas)
	if tipos != 0 || areas != 0 {
		t.Errorf("catalogos = %d tipos, %d areas, want 0", tipos, areas)
	}
}
