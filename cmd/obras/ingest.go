package main

import (
	"errors"
	"fmt"

	"github.com/lbeguerie/obras/internal/db"
	"github.com/lbeguerie/obras/internal/ingest"
	"github.com/lbeguerie/obras/internal/obra"
	"github.com/spf13/cobra"
)

func newIngestCmd() *cobra.Command {
	var (
		configPath string
		csvPath    string
		ifEmpty    bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load the obras dataset from CSV",
		Long:  "Reads the semicolon-delimited dataset, cleans every row and loads it in one transaction, skipping duplicates by (nombre, barrio).",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gdb); err != nil {
				return err
			}

			if ifEmpty {
				total, err := obra.Total(gdb)
				if err != nil {
					return err
				}
				if total > 0 {
					fmt.Fprintf(out, "La base ya contiene %d obras; se omite la carga.\n", total)
					return nil
				}
			}

			opts := ingest.OpcionesDesdeConfig(cfg)
			if csvPath != "" {
				opts.Ruta = csvPath
			}

			res, err := ingest.Ejecutar(gdb, opts)
			if err != nil {
				if errors.Is(err, ingest.ErrSinDatos) {
					if res != nil {
						for _, f := range res.Fallas {
							fmt.Fprintf(out, "Fila %d omitida: %s\n", f.Linea, f.Motivo)
						}
					}
					fmt.Fprintln(out, "No hay datos para cargar.")
					return nil
				}
				return err
			}

			fmt.Fprintf(out, "Filas leidas: %d\n", res.Leidas)
			fmt.Fprintf(out, "Descartadas por limpieza: %d\n", res.Descartadas)
			fmt.Fprintf(out, "Insertadas: %d\n", res.Insertadas)
			fmt.Fprintf(out, "Duplicadas omitidas: %d\n", res.Duplicadas)
			for _, f := range res.Fallas {
				fmt.Fprintf(out, "Fila %d omitida: %s\n", f.Linea, f.Motivo)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	cmd.Flags().StringVar(&csvPath, "csv", "", "override the CSV path from config")
	cmd.Flags().BoolVar(&ifEmpty, "if-empty", false, "load only when the store has no obras")
	return cmd
}
