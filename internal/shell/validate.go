package shell

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// validarFecha accepts only AAAA-MM-DD; the form re-prompts otherwise.
func validarFecha(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("la fecha debe tener formato AAAA-MM-DD")
	}
	return nil
}

// validarEnteroPositivo accepts a positive integer id.
func validarEnteroPositivo(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("ingrese un numero entero positivo")
	}
	return nil
}

// validarPorcentaje accepts an integer between 0 and 100.
func validarPorcentaje(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 100 {
		return fmt.Errorf("ingrese un entero entre 0 y 100")
	}
	return nil
}

// enteroODefecto parses an integer, falling back to def on invalid
// input. Boundary policy for optional numeric fields: unknown means
// the default, never a malformed value reaching the engine.
func enteroODefecto(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// parseComunas turns operator input ("1,2,3" or "todas") into the
// comuna identifiers to filter by. Tokens outside 1-15 are reported in
// the second return and ignored.
func parseComunas(entrada string, disponibles []string) (validas, ignoradas []string) {
	entrada = strings.TrimSpace(entrada)
	if strings.EqualFold(entrada, "todas") {
		return disponibles, nil
	}
	for _, tok := range strings.Split(entrada, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > 15 {
			ignoradas = append(ignoradas, tok)
			continue
		}
		validas = append(validas, tok)
	}
	return validas, ignoradas
}
