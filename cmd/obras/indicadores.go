package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/lbeguerie/obras/internal/catalogo"
	"github.com/lbeguerie/obras/internal/indicadores"
	"github.com/spf13/cobra"
)

func newIndicadoresCmd() *cobra.Command {
	var (
		configPath string
		top        int
		plazoMax   int
		comunas    []string
	)

	cmd := &cobra.Command{
		Use:   "indicadores",
		Short: "Print aggregate indicators over the stored obras",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			areas, err := catalogo.Areas(gdb)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Areas responsables: %s\n", strings.Join(areas, ", "))

			tipos, err := catalogo.Tipos(gdb)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Tipos de obra: %s\n\n", strings.Join(tipos, ", "))

			etapas, err := indicadores.PorEtapa(gdb)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ETAPA\tCANTIDAD")
			for _, e := range etapas {
				fmt.Fprintf(w, "%s\t%d\n", e.Etapa, e.Cantidad)
			}
			w.Flush()

			porTipo, err := indicadores.PorTipo(gdb)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIPO\tCANTIDAD\tINVERSION")
			for _, t := range porTipo {
				fmt.Fprintf(w, "%s\t%d\t%s\n", t.Tipo, t.Cantidad, formatMonto(t.Monto))
			}
			w.Flush()

			if len(comunas) > 0 {
				barrios, err := indicadores.BarriosPorComunas(gdb, comunas)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nBarrios en comunas %s: %s\n",
					strings.Join(comunas, ", "), strings.Join(barrios, ", "))
			}

			enPlazo, err := indicadores.FinalizadasEnPlazo(gdb, plazoMax)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nObras finalizadas en %d meses o menos: %d\n", plazoMax, enPlazo)

			promedio, err := indicadores.AvancePromedioEnEjecucion(gdb)
			if err != nil {
				return err
			}
			if promedio.Valid {
				fmt.Fprintf(out, "Avance promedio en ejecucion: %.1f%%\n", promedio.Float64)
			}

			topBarrios, err := indicadores.TopBarrios(gdb, top)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "\nBarrios con mas obras:")
			for _, b := range topBarrios {
				fmt.Fprintf(out, "  %s: %d\n", b.Barrio, b.Cantidad)
			}

			total, err := indicadores.InversionTotal(gdb)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nMonto total de inversion: %s\n", formatMonto(total))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	cmd.Flags().IntVar(&top, "top", 5, "how many barrios to rank")
	cmd.Flags().IntVar(&plazoMax, "plazo-max", 24, "term bound in months for the finished-on-time count")
	cmd.Flags().StringSliceVar(&comunas, "comunas", nil, "comma-separated comuna ids to filter barrios by")
	return cmd
}
