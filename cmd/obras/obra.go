package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/lbeguerie/obras/internal/obra"
	"github.com/spf13/cobra"
)

func newObraCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "obra",
		Short: "Obra management commands",
	}

	cmd.AddCommand(newObraNewCmd())
	cmd.AddCommand(newObraListCmd())
	cmd.AddCommand(newObraShowCmd())
	cmd.AddCommand(newObraContratarCmd())
	cmd.AddCommand(newObraAdjudicarCmd())
	cmd.AddCommand(newObraIniciarCmd())
	cmd.AddCommand(newObraAvanceCmd())
	cmd.AddCommand(newObraPlazoCmd())
	cmd.AddCommand(newObraManoObraCmd())
	cmd.AddCommand(newObraFinalizarCmd())
	cmd.AddCommand(newObraRescindirCmd())
	return cmd
}

// parseID parses the positional obra id argument.
func parseID(arg string) (uint, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("id invalido %q: debe ser un entero positivo", arg)
	}
	return uint(n), nil
}

func newObraNewCmd() *cobra.Command {
	var (
		configPath string
		opts       obra.CrearOpts
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new obra in etapa Proyecto",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			o, err := obra.Crear(gdb, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Obra %q creada (id %d) en etapa %s\n", o.Nombre, o.ID, o.Etapa)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	cmd.Flags().StringVar(&opts.Nombre, "nombre", "", "nombre de la obra (required)")
	cmd.Flags().StringVar(&opts.Tipo, "tipo", "", "tipo de obra (required)")
	cmd.Flags().StringVar(&opts.Area, "area", "", "area responsable (required)")
	cmd.Flags().StringVar(&opts.Barrio, "barrio", "", "barrio (required)")
	cmd.Flags().StringVar(&opts.Entorno, "entorno", "", "entorno")
	cmd.Flags().StringVar(&opts.Descripcion, "descripcion", "", "descripcion")
	cmd.Flags().StringVar(&opts.Direccion, "direccion", "", "direccion")
	cmd.Flags().StringVar(&opts.Comuna, "comuna", "", "comuna")
	cmd.MarkFlagRequired("nombre")
	cmd.MarkFlagRequired("tipo")
	cmd.MarkFlagRequired("area")
	cmd.MarkFlagRequired("barrio")
	return cmd
}

func newObraListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List obras",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			obras, err := obra.Listar(gdb)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOMBRE\tETAPA\tAVANCE")
			for _, o := range obras {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d%%\n", o.ID, o.Nombre, o.Etapa, o.PorcentajeAvance)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	return cmd
}

func newObraShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one obra in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			o, err := obra.Obtener(gdb, id)
			if err != nil {
				return err
			}

			tipo, area, barrio := "-", "-", "-"
			if o.TipoObra != nil {
				tipo = o.TipoObra.Nombre
			}
			if o.Area != nil {
				area = o.Area.Nombre
			}
			if o.Barrio != nil {
				barrio = o.Barrio.Nombre
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%d\n", o.ID)
			fmt.Fprintf(w, "Nombre:\t%s\n", o.Nombre)
			fmt.Fprintf(w, "Etapa:\t%s\n", o.Etapa)
			fmt.Fprintf(w, "Tipo:\t%s\n", tipo)
			fmt.Fprintf(w, "Area:\t%s\n", area)
			fmt.Fprintf(w, "Barrio:\t%s\n", barrio)
			fmt.Fprintf(w, "Avance:\t%d%%\n", o.PorcentajeAvance)
			fmt.Fprintf(w, "Monto contrato:\t%s\n", formatMonto(o.MontoContrato))
			fmt.Fprintf(w, "Fuente:\t%s\n", o.FuenteFinanciamiento)
			fmt.Fprintf(w, "Fecha inicio:\t%s\n", formatFecha(o.FechaInicio))
			fmt.Fprintf(w, "Fecha fin inicial:\t%s\n", formatFecha(o.FechaFinInicial))
			fmt.Fprintf(w, "Plazo (meses):\t%s\n", formatEntero(o.PlazoMeses))
			fmt.Fprintf(w, "Mano de obra:\t%s\n", formatEntero(o.ManoObra))
			fmt.Fprintf(w, "Comuna:\t%s\n", o.Comuna)
			fmt.Fprintf(w, "Direccion:\t%s\n", o.Direccion)
			fmt.Fprintf(w, "Creada:\t%s\n", o.CreadoEn.Format(time.RFC3339))
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	return cmd
}

func newObraContratarCmd() *cobra.Command {
	var (
		configPath string
		tipo       string
		numero     string
	)

	cmd := &cobra.Command{
		Use:   "contratar <id>",
		Short: "Move an obra from Proyecto to En Contratacion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			o, err := obra.IniciarContratacion(gdb, id, tipo, numero)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Obra %q ahora en etapa %s\n", o.Nombre, o.Etapa)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	cmd.Flags().StringVar(&tipo, "tipo", "", "tipo de contratacion (required)")
	cmd.Flags().StringVar(&numero, "numero", "", "numero de contratacion (required)")
	cmd.MarkFlagRequired("tipo")
	cmd.MarkFlagRequired("numero")
	return cmd
}

func newObraAdjudicarCmd() *cobra.Command {
	var (
		configPath string
		empresa    string
		expediente string
	)

	cmd := &cobra.Command{
		Use:   "adjudicar <id>",
		Short: "Award an obra to a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			o, err := obra.Adjudicar(gdb, id, empresa, expediente)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Obra %q adjudicada a %s (etapa %s)\n", o.Nombre, empresa, o.Etapa)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	cmd.Flags().StringVar(&empresa, "empresa", "", "empresa licitante (required)")
	cmd.Flags().StringVar(&expediente, "expediente", "", "numero de expediente (required)")
	cmd.MarkFlagRequired("empresa")
	cmd.MarkFlagRequired("expediente")
	return cmd
}

func newObraIniciarCmd() *cobra.Command {
	var (
		configPath string
		destacada  bool
		inicio     string
		fin        string
		fuente     string
		manoObra   int
	)

	cmd := &cobra.Command{
		Use:   "iniciar <id>",
		Short: "Start works on an awarded obra",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			fechaInicio, err := time.Parse("2006-01-02", inicio)
			if err != nil {
				return fmt.Errorf("fecha de inicio invalida %q: use AAAA-MM-DD", inicio)
			}
			fechaFin, err := time.Parse("2006-01-02", fin)
			if err != nil {
				return fmt.Errorf("fecha de fin invalida %q: use AAAA-MM-DD", fin)
			}
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			o, err := obra.IniciarEjecucion(gdb, id, obra.IniciarEjecucionOpts{
				Destacada:            destacada,
				FechaInicio:          fechaInicio,
				FechaFinInicial:      fechaFin,
				FuenteFinanciamiento: fuente,
				ManoObra:             manoObra,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Obra %q en ejecucion desde %s\n", o.Nombre, inicio)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	cmd.Flags().BoolVar(&destacada, "destacada", false, "marcar como obra destacada")
	cmd.Flags().StringVar(&inicio, "inicio", "", "fecha de inicio AAAA-MM-DD (required)")
	cmd.Flags().StringVar(&fin, "fin", "", "fecha estimada de fin AAAA-MM-DD (required)")
	cmd.Flags().StringVar(&fuente, "fuente", "", "fuente de financiamiento (required)")
	cmd.Flags().IntVar(&manoObra, "mano-obra", 0, "cantidad de mano de obra")
	cmd.MarkFlagRequired("inicio")
	cmd.MarkFlagRequired("fin")
	cmd.MarkFlagRequired("fuente")
	return cmd
}

func newObraAvanceCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "avance <id> <porcentaje>",
		Short: "Update the progress percent of an obra en ejecucion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			pct, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("porcentaje invalido %q: debe ser un entero", args[1])
			}
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			o, err := obra.ActualizarAvance(gdb, id, pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Obra %q avanzo a %d%%\n", o.Nombre, o.PorcentajeAvance)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	return cmd
}

func newObraPlazoCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plazo <id> <meses>",
		Short: "Extend the term of an obra en ejecucion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			meses, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("meses invalidos %q: debe ser un entero", args[1])
			}
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			o, err := obra.IncrementarPlazo(gdb, id, meses)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Obra %q ahora tiene plazo de %s meses\n", o.Nombre, formatEntero(o.PlazoMeses))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	return cmd
}

func newObraManoObraCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "mano-obra <id> <cantidad>",
		Short: "Add labor headcount to an obra en ejecucion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cantidad, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("cantidad invalida %q: debe ser un entero", args[1])
			}
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			o, err := obra.IncrementarManoObra(gdb, id, cantidad)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Obra %q ahora registra %s de mano de obra\n", o.Nombre, formatEntero(o.ManoObra))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	return cmd
}

func newObraFinalizarCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "finalizar <id>",
		Short: "Finish an obra en ejecucion (progress forced to 100%)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			o, err := obra.Finalizar(gdb, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Obra %q finalizada con %d%% de avance\n", o.Nombre, o.PorcentajeAvance)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	return cmd
}

func newObraRescindirCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "rescindir <id>",
		Short: "Rescind the contract of an obra en ejecucion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			o, err := obra.Rescindir(gdb, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Obra %q rescindida\n", o.Nombre)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	return cmd
}
