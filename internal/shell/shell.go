// Package shell implements the interactive operator menu: create an
// obra, walk an existing obra through its lifecycle, print indicators.
// All operator input is collected and validated here; domain packages
// only ever see well-typed values.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/lbeguerie/obras/internal/catalogo"
	"github.com/lbeguerie/obras/internal/obra"
	"gorm.io/gorm"
)

// Run drives the main menu loop until the operator exits.
func Run(gdb *gorm.DB, out io.Writer) error {
	for {
		var opcion string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Gestion de Obras Urbanas").
				Options(
					huh.NewOption("Crear nueva obra", "nueva"),
					huh.NewOption("Gestionar obra existente", "gestionar"),
					huh.NewOption("Mostrar indicadores", "indicadores"),
					huh.NewOption("Salir", "salir"),
				).
				Value(&opcion),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		var err error
		switch opcion {
		case "nueva":
			err = nuevaObra(gdb, out)
		case "gestionar":
			err = seleccionarObra(gdb, out)
		case "indicadores":
			err = mostrarIndicadores(gdb, out)
		case "salir":
			return nil
		}
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			// Faults in one menu action return control to the menu.
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

// nuevaObra collects the creation form, registers the obra in etapa
// Proyecto and drops into its management menu.
func nuevaObra(gdb *gorm.DB, out io.Writer) error {
	tipos, _ := catalogo.Tipos(gdb)
	areas, _ := catalogo.Areas(gdb)
	barrios, _ := catalogo.Barrios(gdb)

	var opts obra.CrearOpts
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Nombre de la obra").Value(&opts.Nombre).
				Validate(validarObligatorio("el nombre")),
			huh.NewInput().Title("Entorno (ej. Via Publica, Edificio)").Value(&opts.Entorno),
			huh.NewInput().Title("Descripcion").Value(&opts.Descripcion),
		),
		huh.NewGroup(
			huh.NewInput().Title("Tipo de obra (ej. Escuela, Hospital)").
				Suggestions(tipos).Value(&opts.Tipo).
				Validate(validarObligatorio("el tipo de obra")),
			huh.NewInput().Title("Area responsable").
				Suggestions(areas).Value(&opts.Area).
				Validate(validarObligatorio("el area responsable")),
			huh.NewInput().Title("Barrio").
				Suggestions(barrios).Value(&opts.Barrio).
				Validate(validarObligatorio("el barrio")),
			huh.NewInput().Title("Direccion").Value(&opts.Direccion),
			huh.NewInput().Title("Comuna (opcional)").Value(&opts.Comuna),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	o, err := obra.Crear(gdb, opts)
	if err != nil {
		if errors.Is(err, obra.ErrNombreDuplicado) {
			fmt.Fprintf(out, "Ya existe una obra llamada %q. Elija otro nombre.\n", opts.Nombre)
			return nil
		}
		return err
	}
	fmt.Fprintf(out, "Obra %q creada (id %d) en etapa %s.\n", o.Nombre, o.ID, o.Etapa)
	return gestionarObra(gdb, out, o.ID)
}

// seleccionarObra lists stored obras and prompts for an id.
func seleccionarObra(gdb *gorm.DB, out io.Writer) error {
	obras, err := obra.Listar(gdb)
	if err != nil {
		return err
	}
	if len(obras) == 0 {
		fmt.Fprintln(out, "No hay obras en la base de datos.")
		return nil
	}

	for _, o := range obras {
		fmt.Fprintf(out, "  %d\t%s\t(%s)\n", o.ID, o.Nombre, o.Etapa)
	}

	var idTexto string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Id de la obra a gestionar").Value(&idTexto).
			Validate(validarEnteroPositivo),
	))
	if err := form.Run(); err != nil {
		return err
	}

	id, _ := strconv.Atoi(strings.TrimSpace(idTexto))
	return gestionarObra(gdb, out, uint(id))
}

// validarObligatorio rejects blank input for a required field.
func validarObligatorio(campo string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s es obligatorio", campo)
		}
		return nil
	}
}
