package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// sinonimosEtapa folds the stage spellings found in the source data
// into one canonical lower-case label per stage.
var sinonimosEtapa = map[string]string{
	"anteproyecto":        "proyecto",
	"en proyecto":         "proyecto",
	"en ejecución":        "en ejecucion",
	"en obra":             "en ejecucion",
	"en curso":            "en ejecucion",
	"proyecto finalizado": "finalizada",
	"rescisión":           "rescindida",
	"neutralizada":        "paralizada",
}

// Etapa canonicalizes a free-text stage label: lower-case, trim, fold
// synonyms, then re-case to the title form stored in the database.
// Labels with no synonym entry pass through title-cased; rejecting them
// would drop real dataset rows (Paralizada, Desestimada).
func Etapa(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if canon, ok := sinonimosEtapa[s]; ok {
		s = canon
	}
	return cases.Title(language.Spanish).String(s)
}
