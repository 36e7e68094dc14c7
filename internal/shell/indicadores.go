package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/lbeguerie/obras/internal/catalogo"
	"github.com/lbeguerie/obras/internal/indicadores"
	"gorm.io/gorm"
)

// mostrarIndicadores prints every report section, prompting for the
// comuna filter.
func mostrarIndicadores(gdb *gorm.DB, out io.Writer) error {
	fmt.Fprintln(out, "--- Indicadores de Obras ---")

	areas, err := catalogo.Areas(gdb)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nAreas responsables:")
	listar(out, areas, "No hay areas responsables.")

	tipos, err := catalogo.Tipos(gdb)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nTipos de obra:")
	listar(out, tipos, "No hay tipos de obra.")

	etapas, err := indicadores.PorEtapa(gdb)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nObras por etapa:")
	for _, e := range etapas {
		fmt.Fprintf(out, "  - %s: %d\n", e.Etapa, e.Cantidad)
	}

	porTipo, err := indicadores.PorTipo(gdb)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nObras y monto de inversion por tipo:")
	for _, t := range porTipo {
		monto := "N/A"
		if t.Monto.Valid {
			monto = "$" + t.Monto.Decimal.StringFixed(2)
		}
		fmt.Fprintf(out, "  - %s: cantidad = %d, inversion total = %s\n", t.Tipo, t.Cantidad, monto)
	}

	if err := filtrarBarrios(gdb, out); err != nil {
		return err
	}

	enPlazo, err := indicadores.FinalizadasEnPlazo(gdb, 24)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nObras finalizadas en 24 meses o menos: %d\n", enPlazo)

	promedio, err := indicadores.AvancePromedioEnEjecucion(gdb)
	if err != nil {
		return err
	}
	if promedio.Valid {
		fmt.Fprintf(out, "Avance promedio de obras en ejecucion: %.1f%%\n", promedio.Float64)
	} else {
		fmt.Fprintln(out, "No hay obras en ejecucion.")
	}

	top, err := indicadores.TopBarrios(gdb, 5)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nBarrios con mas obras:")
	for _, b := range top {
		fmt.Fprintf(out, "  - %s: %d\n", b.Barrio, b.Cantidad)
	}

	total, err := indicadores.InversionTotal(gdb)
	if err != nil {
		return err
	}
	if total.Valid {
		fmt.Fprintf(out, "\nMonto total de inversion: $%s\n", total.Decimal.StringFixed(2))
	} else {
		fmt.Fprintln(out, "\nNo hay informacion de inversion disponible.")
	}

	fmt.Fprintln(out, "--- Fin de Indicadores ---")
	return nil
}

// filtrarBarrios prompts for comunas and lists the barrios with obras
// in them.
func filtrarBarrios(gdb *gorm.DB, out io.Writer) error {
	comunas, err := indicadores.Comunas(gdb)
	if err != nil {
		return err
	}
	if len(comunas) == 0 {
		fmt.Fprintln(out, "\nNo hay informacion de comunas en la base de datos.")
		return nil
	}

	fmt.Fprintf(out, "\nComunas disponibles: %s\n", strings.Join(comunas, ", "))
	var entrada string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Comunas a filtrar (ej. 1,2,3 o todas)").Value(&entrada),
	))
	if err := form.Run(); err != nil {
		return err
	}

	validas, ignoradas := parseComunas(entrada, comunas)
	for _, ig := range ignoradas {
		fmt.Fprintf(out, "Advertencia: %q no es una comuna valida (1-15), se ignora.\n", ig)
	}
	if len(validas) == 0 {
		fmt.Fprintln(out, "No se ingresaron comunas validas para filtrar.")
		return nil
	}

	barrios, err := indicadores.BarriosPorComunas(gdb, validas)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Barrios en comunas %s:\n", strings.Join(validas, ", "))
	listar(out, barrios, "No hay barrios asociados a obras en esas comunas.")
	return nil
}

func listar(out io.Writer, items []string, vacio string) {
	if len(items) == 0 {
		fmt.Fprintf(out, "  %s\n", vacio)
		return
	}
	for _, it := range items {
		fmt.Fprintf(out, "  - %s\n", it)
	}
}
