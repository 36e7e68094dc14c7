// Package ingest bulk-loads the public-works dataset: it reads the
// semicolon-delimited source, cleans every row, resolves catalog
// references and inserts deduplicated Obra records inside one
// transaction per run.
package ingest

import (
	"errors"
	"fmt"

	"github.com/lbeguerie/obras/internal/catalogo"
	"github.com/lbeguerie/obras/internal/models"
	"github.com/lbeguerie/obras/internal/normalize"
	"gorm.io/gorm"
)

// ErrSinDatos reports that the source produced no loadable rows.
var ErrSinDatos = errors.New("ingest: no hay datos para cargar")

// Falla records one skipped row and why.
type Falla struct {
	Linea  int
	Motivo string
}

// Resultado summarizes one pipeline run.
type Resultado struct {
	Leidas      int
	Descartadas int
	Insertadas  int
	Duplicadas  int
	Fallas      []Falla
}

// Ejecutar reads the source and loads it. A missing or unreadable
// source aborts before any write; an empty cleaned dataset returns
// ErrSinDatos. Malformed source lines are carried into the result's
// fault list so the caller can report them.
func Ejecutar(gdb *gorm.DB, opts Opciones) (*Resultado, error) {
	filas, saltadas, err := LeerCSV(opts)
	if err != nil {
		return nil, err
	}
	res, err := Cargar(gdb, filas)
	if res == nil {
		res = &Resultado{}
	}
	res.Fallas = append(saltadas, res.Fallas...)
	return res, err
}

// Cargar loads cleaned rows into the store inside one transaction.
// Row-level faults (duplicates, constraint hits, catalog errors) are
// counted and the batch continues; only a store failure outside the
// per-row handling rolls the whole load back.
func Cargar(gdb *gorm.DB, filas []map[string]string) (*Resultado, error) {
	if len(filas) == 0 {
		return nil, ErrSinDatos
	}

	res := &Resultado{Leidas: len(filas)}
	err := gdb.Transaction(func(tx *gorm.DB) error {
		for i, raw := range filas {
			linea := i + 2 // 1-based, after the header line
			fila, ok := normalize.LimpiarFila(raw)
			if !ok {
				res.Descartadas++
				continue
			}
			if err := insertar(tx, fila, linea, res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: cargar: %w", err)
	}
	if res.Insertadas == 0 && res.Duplicadas == 0 && len(res.Fallas) == 0 {
		return res, ErrSinDatos
	}
	return res, nil
}

// insertar resolves catalogs and writes one Obra. Per-row problems are
// recorded in res and return nil so the batch continues.
func insertar(tx *gorm.DB, fila *normalize.Fila, linea int, res *Resultado) error {
	var tipoID, areaID *uint
	if fila.TipoObra != "" {
		t, err := catalogo.ObtenerOCrearTipo(tx, fila.TipoObra)
		if err != nil {
			res.Fallas = append(res.Fallas, Falla{Linea: linea, Motivo: err.Error()})
			return nil
		}
		tipoID = &t.ID
	}
	if fila.Area != "" {
		a, err := catalogo.ObtenerOCrearArea(tx, fila.Area)
		if err != nil {
			res.Fallas = append(res.Fallas, Falla{Linea: linea, Motivo: err.Error()})
			return nil
		}
		areaID = &a.ID
	}
	barrio, err := catalogo.ObtenerOCrearBarrio(tx, fila.Barrio)
	if err != nil {
		res.Fallas = append(res.Fallas, Falla{Linea: linea, Motivo: err.Error()})
		return nil
	}

	var existentes int64
	if err := tx.Model(&models.Obra{}).
		Where("nombre = ? AND barrio_id = ?", fila.Nombre, barrio.ID).
		Count(&existentes).Error; err != nil {
		return fmt.Errorf("verificar duplicado en linea %d: %w", linea, err)
	}
	if existentes > 0 {
		res.Duplicadas++
		return nil
	}

	etapa := fila.Etapa
	if etapa == "" {
		etapa = models.EtapaProyecto
	}
	plazo := fila.PlazoMeses
	mano := fila.ManoObra

	obra := models.Obra{
		Nombre:        fila.Nombre,
		Etapa:         etapa,
		Entorno:       fila.Entorno,
		Descripcion:   fila.Descripcion,
		Beneficiarios: fila.Beneficiarios,
		Compromiso:    fila.Compromiso,
		Destacada:     fila.Destacada,
		BAElige:       fila.BAElige,
		Enlace:        fila.Enlace,

		TipoObraID: tipoID,
		AreaID:     areaID,
		BarrioID:   &barrio.ID,

		EmpresaLicitacion: fila.EmpresaLicitacion,
		NroContratacion:   fila.NroContratacion,
		CuitContratista:   fila.CuitContratista,
		ContratacionTipo:  fila.ContratacionTipo,
		NroExpediente:     fila.NroExpediente,
		LicitacionAnio:    fila.LicitacionAnio,

		MontoContrato:        fila.MontoContrato,
		FuenteFinanciamiento: fila.FuenteFinanciamiento,
		PorcentajeAvance:     fila.PorcentajeAvance,

		FechaInicio:     fila.FechaInicio,
		FechaFinInicial: fila.FechaFinInicial,
		PlazoMeses:      &plazo,

		Comuna:    fila.Comuna,
		Direccion: fila.Direccion,
		Latitud:   fila.Latitud,
		Longitud:  fila.Longitud,
		ManoObra:  &mano,
	}

	if err := tx.Create(&obra).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			res.Duplicadas++
			return nil
		}
		res.Fallas = append(res.Fallas, Falla{Linea: linea, Motivo: err.Error()})
		return nil
	}
	res.Insertadas++
	return nil
}
