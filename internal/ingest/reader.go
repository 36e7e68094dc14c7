package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lbeguerie/obras/internal/config"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Opciones parameterizes one read of the source dataset.
type Opciones struct {
	Ruta         string
	Delimitador  rune
	Codificacion string
}

// OpcionesDesdeConfig builds reader options from loaded configuration.
func OpcionesDesdeConfig(cfg *config.Config) Opciones {
	return Opciones{
		Ruta:         cfg.CSV.Path,
		Delimitador:  cfg.Delimitador(),
		Codificacion: cfg.CSV.Encoding,
	}
}

// LeerCSV reads the delimited source file into one map per row, keyed
// by raw header name. Malformed lines are skipped and reported in the
// second return, one Falla per line; a bad line never aborts the read.
// Only a structurally unreadable source (missing file, undecodable
// header) is an error.
func LeerCSV(opts Opciones) ([]map[string]string, []Falla, error) {
	f, err := os.Open(opts.Ruta)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: abrir %s: %w", opts.Ruta, err)
	}
	defer f.Close()
	return leer(f, opts)
}

func leer(src io.Reader, opts Opciones) ([]map[string]string, []Falla, error) {
	if opts.Codificacion == config.EncodingLatin1 {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	r := csv.NewReader(src)
	r.Comma = opts.Delimitador
	r.FieldsPerRecord = -1

	encabezado, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: leer encabezado: %w", err)
	}

	var filas []map[string]string
	var saltadas []Falla
	for {
		registro, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				saltadas = append(saltadas, Falla{
					Linea:  perr.Line,
					Motivo: fmt.Sprintf("linea malformada: %v", perr.Err),
				})
				continue
			}
			return nil, nil, fmt.Errorf("ingest: leer fila: %w", err)
		}

		fila := make(map[string]string, len(encabezado))
		for i, col := range encabezado {
			if i < len(registro) {
				fila[col] = registro[i]
			}
		}
		filas = append(filas, fila)
	}
	return filas, saltadas, nil
}
