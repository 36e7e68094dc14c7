package shell

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/lbeguerie/obras/internal/models"
	"github.com/lbeguerie/obras/internal/obra"
	"gorm.io/gorm"
)

// etiquetas maps operation names to menu labels.
var etiquetas = map[string]string{
	obra.OpIniciarContratacion: "Iniciar contratacion",
	obra.OpAdjudicar:           "Adjudicar obra",
	obra.OpIniciarEjecucion:    "Iniciar obra (En Ejecucion)",
	obra.OpActualizarAvance:    "Actualizar porcentaje de avance",
	obra.OpIncrementarPlazo:    "Incrementar plazo",
	obra.OpIncrementarManoObra: "Incrementar mano de obra",
	obra.OpFinalizar:           "Finalizar obra",
	obra.OpRescindir:           "Rescindir obra",
}

// gestionarObra offers, in a loop, exactly the operations legal in the
// obra's current etapa.
func gestionarObra(gdb *gorm.DB, out io.Writer, id uint) error {
	for {
		o, err := obra.Obtener(gdb, id)
		if err != nil {
			if errors.Is(err, obra.ErrNoEncontrada) {
				fmt.Fprintf(out, "Obra con id %d no encontrada.\n", id)
				return nil
			}
			return err
		}

		ops := obra.Operaciones(o.Etapa)
		if len(ops) == 0 {
			fmt.Fprintf(out, "La obra %q esta %s. No admite mas cambios de etapa.\n", o.Nombre, o.Etapa)
			return nil
		}

		opciones := make([]huh.Option[string], 0, len(ops)+1)
		for _, op := range ops {
			opciones = append(opciones, huh.NewOption(etiquetas[op], op))
		}
		opciones = append(opciones, huh.NewOption("Volver al menu principal", "volver"))

		var elegida string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("%s (id %d) - etapa actual: %s", o.Nombre, o.ID, o.Etapa)).
				Options(opciones...).
				Value(&elegida),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if elegida == "volver" {
			return nil
		}

		if err := ejecutarOperacion(gdb, out, o, elegida); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func ejecutarOperacion(gdb *gorm.DB, out io.Writer, o *models.Obra, op string) error {
	switch op {
	case obra.OpIniciarContratacion:
		return formContratacion(gdb, out, o.ID)
	case obra.OpAdjudicar:
		return formAdjudicacion(gdb, out, o.ID)
	case obra.OpIniciarEjecucion:
		return formInicioEjecucion(gdb, out, o.ID)
	case obra.OpActualizarAvance:
		return formAvance(gdb, out, o)
	case obra.OpIncrementarPlazo:
		return formPlazo(gdb, out, o.ID)
	case obra.OpIncrementarManoObra:
		return formManoObra(gdb, out, o.ID)
	case obra.OpFinalizar:
		actualizada, err := obra.Finalizar(gdb, o.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "La obra %q paso a %s con %d%% de avance.\n",
			actualizada.Nombre, actualizada.Etapa, actualizada.PorcentajeAvance)
		return nil
	case obra.OpRescindir:
		actualizada, err := obra.Rescindir(gdb, o.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "La obra %q paso a %s.\n", actualizada.Nombre, actualizada.Etapa)
		return nil
	}
	return fmt.Errorf("shell: operacion desconocida %q", op)
}

func formContratacion(gdb *gorm.DB, out io.Writer, id uint) error {
	var tipo, nro string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Tipo de contratacion").Value(&tipo).
			Validate(validarObligatorio("el tipo de contratacion")),
		huh.NewInput().Title("Numero de contratacion").Value(&nro).
			Validate(validarObligatorio("el numero de contratacion")),
	))
	if err := form.Run(); err != nil {
		return err
	}
	o, err := obra.IniciarContratacion(gdb, id, tipo, nro)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "La obra %q paso a %s. Numero de contratacion: %s\n", o.Nombre, o.Etapa, nro)
	return nil
}

func formAdjudicacion(gdb *gorm.DB, out io.Writer, id uint) error {
	var empresa, expediente string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Empresa licitante").Value(&empresa).
			Validate(validarObligatorio("la empresa")),
		huh.NewInput().Title("Numero de expediente").Value(&expediente).
			Validate(validarObligatorio("el numero de expediente")),
	))
	if err := form.Run(); err != nil {
		return err
	}
	o, err := obra.Adjudicar(gdb, id, empresa, expediente)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "La obra %q paso a %s. Empresa: %s\n", o.Nombre, o.Etapa, empresa)
	return nil
}

func formInicioEjecucion(gdb *gorm.DB, out io.Writer, id uint) error {
	var (
		destacada       bool
		inicio, fin     string
		fuente, personal string
	)
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("¿Obra destacada?").Value(&destacada),
		huh.NewInput().Title("Fecha de inicio (AAAA-MM-DD)").Placeholder("2026-03-01").
			Value(&inicio).Validate(validarFecha),
		huh.NewInput().Title("Fecha estimada de finalizacion (AAAA-MM-DD)").Placeholder("2027-03-01").
			Value(&fin).Validate(validarFecha),
		huh.NewInput().Title("Fuente de financiamiento").Value(&fuente).
			Validate(validarObligatorio("la fuente de financiamiento")),
		huh.NewInput().Title("Cantidad de mano de obra").Placeholder("0").Value(&personal),
	))
	if err := form.Run(); err != nil {
		return err
	}

	fechaInicio, _ := time.Parse("2006-01-02", inicio)
	fechaFin, _ := time.Parse("2006-01-02", fin)
	o, err := obra.IniciarEjecucion(gdb, id, obra.IniciarEjecucionOpts{
		Destacada:            destacada,
		FechaInicio:          fechaInicio,
		FechaFinInicial:      fechaFin,
		FuenteFinanciamiento: fuente,
		// Invalid headcount input defaults to 0 at this boundary.
		ManoObra: enteroODefecto(personal, 0),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "La obra %q paso a %s. Inicio: %s\n", o.Nombre, o.Etapa, inicio)
	return nil
}

func formAvance(gdb *gorm.DB, out io.Writer, o *models.Obra) error {
	var pct string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Porcentaje de avance (actual: %d%%)", o.PorcentajeAvance)).
			Value(&pct).Validate(validarPorcentaje),
	))
	if err := form.Run(); err != nil {
		return err
	}
	actualizada, err := obra.ActualizarAvance(gdb, o.ID, enteroODefecto(pct, 0))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "La obra %q actualizo su avance a %d%%.\n", actualizada.Nombre, actualizada.PorcentajeAvance)
	return nil
}

func formPlazo(gdb *gorm.DB, out io.Writer, id uint) error {
	var meses string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Meses a incrementar").Placeholder("0").Value(&meses),
	))
	if err := form.Run(); err != nil {
		return err
	}
	o, err := obra.IncrementarPlazo(gdb, id, enteroODefecto(meses, 0))
	if err != nil {
		return err
	}
	if o.PlazoMeses != nil {
		fmt.Fprintf(out, "La obra %q ahora tiene un plazo de %d meses.\n", o.Nombre, *o.PlazoMeses)
	}
	return nil
}

func formManoObra(gdb *gorm.DB, out io.Writer, id uint) error {
	var cantidad string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Incremento de mano de obra").Placeholder("0").Value(&cantidad),
	))
	if err := form.Run(); err != nil {
		return err
	}
	o, err := obra.IncrementarManoObra(gdb, id, enteroODefecto(cantidad, 0))
	if err != nil {
		return err
	}
	if o.ManoObra != nil {
		fmt.Fprintf(out, "La obra %q ahora registra %d de mano de obra.\n", o.Nombre, *o.ManoObra)
	}
	return nil
}
