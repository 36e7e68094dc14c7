package obra

import (
	"errors"
	"fmt"
	"time"

	"github.com/lbeguerie/obras/internal/models"
	"gorm.io/gorm"
)

// Operation names, one per lifecycle transition.
const (
	OpIniciarContratacion = "iniciar_contratacion"
	OpAdjudicar           = "adjudicar"
	OpIniciarEjecucion    = "iniciar_ejecucion"
	OpActualizarAvance    = "actualizar_avance"
	OpIncrementarPlazo    = "incrementar_plazo"
	OpIncrementarManoObra = "incrementar_mano_obra"
	OpFinalizar           = "finalizar"
	OpRescindir           = "rescindir"
)

// ErrTransicionInvalida rejects an operation invoked while the obra is
// not in the stage that allows it.
var ErrTransicionInvalida = errors.New("obra: transicion invalida")

// ErrAvanceInvalido rejects a progress percent outside 0-100.
var ErrAvanceInvalido = errors.New("obra: porcentaje de avance fuera de rango")

// Transiciones is the single source of truth for the lifecycle: for
// each etapa, the operations it allows and the etapa each one leads
// to. Stages absent from the map (Finalizada, Rescindida, and any
// stage imported verbatim from the dataset) allow no operations.
var Transiciones = map[string]map[string]string{
	models.EtapaProyecto: {
		OpIniciarContratacion: models.EtapaEnContratacion,
	},
	models.EtapaEnContratacion: {
		OpAdjudicar: models.EtapaAdjudicada,
	},
	models.EtapaAdjudicada: {
		OpIniciarEjecucion: models.EtapaEnEjecucion,
	},
	models.EtapaEnEjecucion: {
		OpActualizarAvance:    models.EtapaEnEjecucion,
		OpIncrementarPlazo:    models.EtapaEnEjecucion,
		OpIncrementarManoObra: models.EtapaEnEjecucion,
		OpFinalizar:           models.EtapaFinalizada,
		OpRescindir:           models.EtapaRescindida,
	},
}

// Operaciones lists the operations legal in the given etapa, in menu
// order.
func Operaciones(etapa string) []string {
	ops := Transiciones[etapa]
	orden := []string{
		OpIniciarContratacion, OpAdjudicar, OpIniciarEjecucion,
		OpActualizarAvance, OpIncrementarPlazo, OpIncrementarManoObra,
		OpFinalizar, OpRescindir,
	}
	var out []string
	for _, op := range orden {
		if _, ok := ops[op]; ok {
			out = append(out, op)
		}
	}
	return out
}

// siguiente resolves the etapa the operation leads to from the current
// one, or an ErrTransicionInvalida naming both.
func siguiente(actual, op string) (string, error) {
	if sig, ok := Transiciones[actual][op]; ok {
		return sig, nil
	}
	return "", fmt.Errorf("%w: %s no esta permitida en etapa %q", ErrTransicionInvalida, op, actual)
}

// transicion runs one lifecycle operation: it re-reads the current
// etapa inside the transaction (state may have changed since the
// caller last saw it), validates the move, and persists etapa plus the
// operation's fields as one update.
func transicion(gdb *gorm.DB, id uint, op string, cambios func(o *models.Obra) map[string]interface{}) (*models.Obra, error) {
	var o models.Obra
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&o, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrNoEncontrada, id)
			}
			return fmt.Errorf("obra: obtener %d: %w", id, err)
		}

		sig, err := siguiente(o.Etapa, op)
		if err != nil {
			return err
		}

		updates := cambios(&o)
		updates["etapa"] = sig
		if err := tx.Model(&o).Updates(updates).Error; err != nil {
			return fmt.Errorf("obra: %s en obra %d: %w", op, id, err)
		}
		// Re-read so the caller sees exactly what was persisted.
		if err := tx.First(&o, id).Error; err != nil {
			return fmt.Errorf("obra: releer %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// IniciarContratacion moves Proyecto → En Contratacion.
func IniciarContratacion(gdb *gorm.DB, id uint, tipoContratacion, nroContratacion string) (*models.Obra, error) {
	return transicion(gdb, id, OpIniciarContratacion, func(*models.Obra) map[string]interface{} {
		return map[string]interface{}{
			"contratacion_tipo": tipoContratacion,
			"nro_contratacion":  nroContratacion,
		}
	})
}

// Adjudicar moves En Contratacion → Adjudicada.
func Adjudicar(gdb *gorm.DB, id uint, empresa, nroExpediente string) (*models.Obra, error) {
	return transicion(gdb, id, OpAdjudicar, func(*models.Obra) map[string]interface{} {
		return map[string]interface{}{
			"empresa_licitacion": empresa,
			"nro_expediente":     nroExpediente,
		}
	})
}

// IniciarEjecucionOpts carries the data required to start works.
type IniciarEjecucionOpts struct {
	Destacada            bool
	FechaInicio          time.Time
	FechaFinInicial      time.Time
	FuenteFinanciamiento string
	ManoObra             int
}

// IniciarEjecucion moves Adjudicada → En Ejecucion.
func IniciarEjecucion(gdb *gorm.DB, id uint, opts IniciarEjecucionOpts) (*models.Obra, error) {
	return transicion(gdb, id, OpIniciarEjecucion, func(*models.Obra) map[string]interface{} {
		return map[string]interface{}{
			"destacada":             opts.Destacada,
			"fecha_inicio":          opts.FechaInicio,
			"fecha_fin_inicial":     opts.FechaFinInicial,
			"fuente_financiamiento": opts.FuenteFinanciamiento,
			"mano_obra":             opts.ManoObra,
		}
	})
}

// ActualizarAvance updates the progress percent; the obra stays En
// Ejecucion.
func ActualizarAvance(gdb *gorm.DB, id uint, porcentaje int) (*models.Obra, error) {
	if porcentaje < 0 || porcentaje > 100 {
		return nil, fmt.Errorf("%w: %d", ErrAvanceInvalido, porcentaje)
	}
	return transicion(gdb, id, OpActualizarAvance, func(*models.Obra) map[string]interface{} {
		return map[string]interface{}{"porcentaje_avance": porcentaje}
	})
}

// IncrementarPlazo adds months to the current term, treating an absent
// term as 0.
func IncrementarPlazo(gdb *gorm.DB, id uint, meses int) (*models.Obra, error) {
	return transicion(gdb, id, OpIncrementarPlazo, func(o *models.Obra) map[string]interface{} {
		actual := 0
		if o.PlazoMeses != nil {
			actual = *o.PlazoMeses
		}
		return map[string]interface{}{"plazo_meses": actual + meses}
	})
}

// IncrementarManoObra adds headcount, treating an absent count as 0.
func IncrementarManoObra(gdb *gorm.DB, id uint, cantidad int) (*models.Obra, error) {
	return transicion(gdb, id, OpIncrementarManoObra, func(o *models.Obra) map[string]interface{} {
		actual := 0
		if o.ManoObra != nil {
			actual = *o.ManoObra
		}
		return map[string]interface{}{"mano_obra": actual + cantidad}
	})
}

// Finalizar moves En Ejecucion → Finalizada, forcing the progress
// percent to 100.
func Finalizar(gdb *gorm.DB, id uint) (*models.Obra, error) {
	return transicion(gdb, id, OpFinalizar, func(*models.Obra) map[string]interface{} {
		return map[string]interface{}{"porcentaje_avance": 100}
	})
}

// Rescindir moves En Ejecucion → Rescindida.
func Rescindir(gdb *gorm.DB, id uint) (*models.Obra, error) {
	return transicion(gdb, id, OpRescindir, func(*models.Obra) map[string]interface{} {
		return map[string]interface{}{}
	})
}
