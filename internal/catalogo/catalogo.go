// Package catalogo resolves the three reference catalogs (tipo de
// obra, área responsable, barrio) by get-or-create on normalized name.
package catalogo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lbeguerie/obras/internal/models"
	"github.com/lbeguerie/obras/internal/normalize"
	"gorm.io/gorm"
)

// ErrNombreVacio rejects catalog resolution on a blank name. A blank
// condition would otherwise match an arbitrary existing row.
var ErrNombreVacio = errors.New("catalogo: nombre vacio")

// ObtenerOCrearTipo resolves a TipoObra by exact name, creating it on
// first reference. The store's unique index on nombre keeps this
// idempotent.
func ObtenerOCrearTipo(gdb *gorm.DB, nombre string) (*models.TipoObra, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: tipo de obra", ErrNombreVacio)
	}
	var t models.TipoObra
	if err := gdb.Where("nombre = ?", nombre).Attrs(models.TipoObra{Nombre: nombre}).FirstOrCreate(&t).Error; err != nil {
		return nil, fmt.Errorf("catalogo: tipo de obra %q: %w", nombre, err)
	}
	return &t, nil
}

// ObtenerOCrearArea resolves an AreaResponsable by exact name.
func ObtenerOCrearArea(gdb *gorm.DB, nombre string) (*models.AreaResponsable, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: area responsable", ErrNombreVacio)
	}
	var a models.AreaResponsable
	if err := gdb.Where("nombre = ?", nombre).Attrs(models.AreaResponsable{Nombre: nombre}).FirstOrCreate(&a).Error; err != nil {
		return nil, fmt.Errorf("catalogo: area responsable %q: %w", nombre, err)
	}
	return &a, nil
}

// ObtenerOCrearBarrio resolves a Barrio. The name is normalized before
// lookup so every spelling of the same neighbourhood hits one row.
func ObtenerOCrearBarrio(gdb *gorm.DB, nombre string) (*models.Barrio, error) {
	clave := normalize.Barrio(nombre)
	if clave == "" {
		return nil, fmt.Errorf("%w: barrio", ErrNombreVacio)
	}
	var b models.Barrio
	if err := gdb.Where("nombre = ?", clave).Attrs(models.Barrio{Nombre: clave}).FirstOrCreate(&b).Error; err != nil {
		return nil, fmt.Errorf("catalogo: barrio %q: %w", clave, err)
	}
	return &b, nil
}

// Tipos lists all work-type names, ordered.
func Tipos(gdb *gorm.DB) ([]string, error) {
	return nombres(gdb, &models.TipoObra{}, "tipos de obra")
}

// Areas lists all responsible-area names, ordered.
func Areas(gdb *gorm.DB) ([]string, error) {
	return nombres(gdb, &models.AreaResponsable{}, "areas responsables")
}

// Barrios lists all neighbourhood names, ordered.
func Barrios(gdb *gorm.DB) ([]string, error) {
	return nombres(gdb, &models.Barrio{}, "barrios")
}

func nombres(gdb *gorm.DB, modelo interface{}, etiqueta string) ([]string, error) {
	var out []string
	if err := gdb.Model(modelo).Order("nombre ASC").Pluck("nombre", &out).Error; err != nil {
		return nil, fmt.Errorf("catalogo: listar %s: %w", etiqueta, err)
	}
	return out, nil
}
