// Package indicadores computes read-only aggregate indicators over the
// stored obras. Absent numeric fields stay out of sums and averages;
// SQL NULL semantics do that for free.
package indicadores

import (
	"database/sql"
	"fmt"

	"github.com/lbeguerie/obras/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ConteoEtapa is the obra count for one etapa.
type ConteoEtapa struct {
	Etapa    string
	Cantidad int64
}

// InversionTipo is the count and summed contract amount for one tipo.
type InversionTipo struct {
	Tipo     string
	Cantidad int64
	Monto    decimal.NullDecimal
}

// ConteoBarrio is the obra count for one barrio.
type ConteoBarrio struct {
	Barrio   string
	Cantidad int64
}

// PorEtapa counts obras per etapa.
func PorEtapa(gdb *gorm.DB) ([]ConteoEtapa, error) {
	var out []ConteoEtapa
	err := gdb.Model(&models.Obra{}).
		Select("etapa, COUNT(*) as cantidad").
		Group("etapa").
		Order("etapa ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("indicadores: por etapa: %w", err)
	}
	return out, nil
}

// PorTipo counts obras and sums contract amounts per tipo de obra.
// Rows without an amount count toward cantidad but not toward monto.
func PorTipo(gdb *gorm.DB) ([]InversionTipo, error) {
	var out []InversionTipo
	err := gdb.Model(&models.Obra{}).
		Select("tipo_obras.nombre as tipo, COUNT(obras.id) as cantidad, SUM(obras.monto_contrato) as monto").
		Joins("JOIN tipo_obras ON tipo_obras.id = obras.tipo_obra_id").
		Group("tipo_obras.nombre").
		Order("tipo_obras.nombre ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("indicadores: por tipo: %w", err)
	}
	return out, nil
}

// InversionTotal sums every contract amount. Invalid (NULL) when no
// obra carries one.
func InversionTotal(gdb *gorm.DB) (decimal.NullDecimal, error) {
	var total decimal.NullDecimal
	row := gdb.Model(&models.Obra{}).Select("SUM(monto_contrato)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("indicadores: inversion total: %w", err)
	}
	return total, nil
}

// FinalizadasEnPlazo counts finished obras whose term is at most
// maxMeses months. Obras without a recorded term are excluded.
func FinalizadasEnPlazo(gdb *gorm.DB, maxMeses int) (int64, error) {
	var n int64
	err := gdb.Model(&models.Obra{}).
		Where("etapa = ? AND plazo_meses IS NOT NULL AND plazo_meses <= ?", models.EtapaFinalizada, maxMeses).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("indicadores: finalizadas en plazo: %w", err)
	}
	return n, nil
}

// AvancePromedioEnEjecucion averages the progress percent over obras
// currently En Ejecucion. Invalid when none are.
func AvancePromedioEnEjecucion(gdb *gorm.DB) (sql.NullFloat64, error) {
	var avg sql.NullFloat64
	row := gdb.Model(&models.Obra{}).
		Select("AVG(porcentaje_avance)").
		Where("etapa = ?", models.EtapaEnEjecucion).
		Row()
	if err := row.Scan(&avg); err != nil {
		return sql.NullFloat64{}, fmt.Errorf("indicadores: avance promedio: %w", err)
	}
	return avg, nil
}

// TopBarrios returns the n barrios with the most obras.
func TopBarrios(gdb *gorm.DB, n int) ([]ConteoBarrio, error) {
	var out []ConteoBarrio
	err := gdb.Model(&models.Obra{}).
		Select("barrios.nombre as barrio, COUNT(obras.id) as cantidad").
		Joins("JOIN barrios ON barrios.id = obras.barrio_id").
		Group("barrios.nombre").
		Order("cantidad DESC, barrios.nombre ASC").
		Limit(n).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("indicadores: top barrios: %w", err)
	}
	return out, nil
}

// Comunas lists the distinct comuna identifiers present, ordered.
func Comunas(gdb *gorm.DB) ([]string, error) {
	var out []string
	err := gdb.Model(&models.Obra{}).
		Distinct().
		Where("comuna <> ''").
		Order("comuna ASC").
		Pluck("comuna", &out).Error
	if err != nil {
		return nil, fmt.Errorf("indicadores: comunas: %w", err)
	}
	return out, nil
}

// BarriosPorComunas lists the distinct barrios with obras in any of
// the given comunas.
func BarriosPorComunas(gdb *gorm.DB, comunas []string) ([]string, error) {
	if len(comunas) == 0 {
		return nil, nil
	}
	var out []string
	err := gdb.Model(&models.Barrio{}).
		Distinct().
		Joins("JOIN obras ON obras.barrio_id = barrios.id").
		Where("obras.comuna IN ?", comunas).
		Order("barrios.nombre ASC").
		Pluck("barrios.nombre", &out).Error
	if err != nil {
		return nil, fmt.Errorf("indicadores: barrios por comunas: %w", err)
	}
	return out, nil
}
