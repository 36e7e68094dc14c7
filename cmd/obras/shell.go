package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lbeguerie/obras/internal/db"
	"github.com/lbeguerie/obras/internal/ingest"
	"github.com/lbeguerie/obras/internal/obra"
	"github.com/lbeguerie/obras/internal/shell"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newShellCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive menu for managing obras",
		Long:  "Migrates the schema, loads the dataset when the store is empty, and opens the interactive menu.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("shell requiere una terminal interactiva")
			}
			out := cmd.OutOrStdout()

			cfg, gdb, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gdb); err != nil {
				return err
			}

			// Run-once ingestion: only when the store holds no obras.
			total, err := obra.Total(gdb)
			if err != nil {
				return err
			}
			if total == 0 {
				fmt.Fprintln(out, "Base de datos vacia. Cargando datos desde CSV...")
				res, err := ingest.Ejecutar(gdb, ingest.OpcionesDesdeConfig(cfg))
				switch {
				case errors.Is(err, ingest.ErrSinDatos):
					fmt.Fprintln(out, "No hay datos para cargar.")
				case err != nil:
					fmt.Fprintf(out, "Error al cargar datos: %v\n", err)
				default:
					fmt.Fprintf(out, "Carga completada: %d insertadas, %d duplicadas, %d descartadas.\n",
						res.Insertadas, res.Duplicadas, res.Descartadas)
				}
			} else {
				fmt.Fprintf(out, "La base ya contiene %d obras; se omite la carga.\n", total)
			}

			return shell.Run(gdb, out)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "obras.yaml", "path to config file")
	return cmd
}
