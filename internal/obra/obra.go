// Package obra provides creation and the lifecycle state machine for
// public-works records.
package obra

import (
	"errors"
	"fmt"

	"github.com/lbeguerie/obras/internal/catalogo"
	"github.com/lbeguerie/obras/internal/models"
	"gorm.io/gorm"
)

// ErrNombreDuplicado rejects interactive creation when another obra
// already carries the name.
var ErrNombreDuplicado = errors.New("obra: ya existe una obra con ese nombre")

// ErrNoEncontrada reports a lookup by id that matched nothing.
var ErrNoEncontrada = errors.New("obra: no encontrada")

// CrearOpts holds the data collected for a new obra. Tipo, Area and
// Barrio are catalog names, resolved or created on the fly.
type CrearOpts struct {
	Nombre      string
	Entorno     string
	Descripcion string
	Direccion   string
	Comuna      string
	Tipo        string
	Area        string
	Barrio      string
}

// Crear registers a new obra in etapa Proyecto. The nombre must be
// globally unique; collisions are a user-facing rejection, not a store
// fault.
func Crear(gdb *gorm.DB, opts CrearOpts) (*models.Obra, error) {
	if opts.Nombre == "" {
		return nil, fmt.Errorf("obra: nombre es obligatorio")
	}

	var repetidas int64
	if err := gdb.Model(&models.Obra{}).Where("nombre = ?", opts.Nombre).Count(&repetidas).Error; err != nil {
		return nil, fmt.Errorf("obra: verificar nombre %q: %w", opts.Nombre, err)
	}
	if repetidas > 0 {
		return nil, fmt.Errorf("%w: %q", ErrNombreDuplicado, opts.Nombre)
	}

	tipo, err := catalogo.ObtenerOCrearTipo(gdb, opts.Tipo)
	if err != nil {
		return nil, err
	}
	area, err := catalogo.ObtenerOCrearArea(gdb, opts.Area)
	if err != nil {
		return nil, err
	}
	barrio, err := catalogo.ObtenerOCrearBarrio(gdb, opts.Barrio)
	if err != nil {
		return nil, err
	}

	o := models.Obra{
		Nombre:      opts.Nombre,
		Etapa:       models.EtapaProyecto,
		Entorno:     opts.Entorno,
		Descripcion: opts.Descripcion,
		Direccion:   opts.Direccion,
		Comuna:      opts.Comuna,
		TipoObraID:  &tipo.ID,
		AreaID:      &area.ID,
		BarrioID:    &barrio.ID,
	}
	if err := gdb.Create(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %q", ErrNombreDuplicado, opts.Nombre)
		}
		return nil, fmt.Errorf("obra: crear %q: %w", opts.Nombre, err)
	}
	return &o, nil
}

// Obtener loads one obra with its catalog references.
func Obtener(gdb *gorm.DB, id uint) (*models.Obra, error) {
	var o models.Obra
	err := gdb.Preload("TipoObra").Preload("Area").Preload("Barrio").First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNoEncontrada, id)
		}
		return nil, fmt.Errorf("obra: obtener %d: %w", id, err)
	}
	return &o, nil
}

// Listar returns all obras ordered by id.
func Listar(gdb *gorm.DB) ([]models.Obra, error) {
	var obras []models.Obra
	if err := gdb.Order("id ASC").Find(&obras).Error; err != nil {
		return nil, fmt.Errorf("obra: listar: %w", err)
	}
	return obras, nil
}

// Total counts stored obras. The shell uses it for the run-once
// ingestion check at startup.
func Total(gdb *gorm.DB) (int64, error) {
	var n int64
	if err := gdb.Model(&models.Obra{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("obra: contar: %w", err)
	}
	return n, nil
}
