// Package normalize contains the pure cleaning functions applied to
// every raw CSV row before it reaches the store. Nothing here touches
// the database: each function maps one cell (or one row) to a typed
// value, and malformed cells coerce to a documented default instead of
// failing the row.
package normalize

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// renombres maps raw CSV column names to the canonical field names
// used downstream.
var renombres = map[string]string{
	"area_responsable":          "area",
	"tipo":                      "tipo_obra",
	"link_interno":              "enlace",
	"expediente-numero":         "nro_expediente",
	"financiamiento":            "fuente_financiamiento",
	"licitacion_oferta_empresa": "empresa_licitacion",
	"lat":                       "latitud",
	"lng":                       "longitud",
}

// Fila is one cleaned, typed row ready for insertion.
type Fila struct {
	Nombre        string
	Entorno       string
	Descripcion   string
	Beneficiarios string
	Compromiso    string
	Enlace        string

	TipoObra string
	Area     string
	Barrio   string
	Etapa    string

	Destacada bool
	BAElige   bool

	EmpresaLicitacion string
	NroContratacion   string
	CuitContratista   string
	ContratacionTipo  string
	NroExpediente     string
	LicitacionAnio    int

	MontoContrato        decimal.NullDecimal
	FuenteFinanciamiento string

	PorcentajeAvance int
	PlazoMeses       int
	ManoObra         int

	FechaInicio     *time.Time
	FechaFinInicial *time.Time

	Comuna    string
	Direccion string
	Latitud   *float64
	Longitud  *float64
}

// Columnas renames raw column names to their canonical form and drops
// the unnamed filler columns some exports carry.
func Columnas(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if strings.Contains(k, "Unnamed:") {
			continue
		}
		if canon, ok := renombres[k]; ok {
			k = canon
		}
		out[k] = v
	}
	return out
}

// LimpiarFila turns one raw row into a typed Fila. The second return is
// false when the row must be omitted from the batch (missing nombre or
// barrio after cleaning).
func LimpiarFila(raw map[string]string) (*Fila, bool) {
	r := Columnas(raw)

	nombre := strings.TrimSpace(r["nombre"])
	barrio := Barrio(r["barrio"])
	if nombre == "" || barrio == "" {
		return nil, false
	}

	f := &Fila{
		Nombre:        nombre,
		Entorno:       strings.TrimSpace(r["entorno"]),
		Descripcion:   strings.TrimSpace(r["descripcion"]),
		Beneficiarios: strings.TrimSpace(r["beneficiarios"]),
		Compromiso:    strings.TrimSpace(r["compromiso"]),
		Enlace:        strings.TrimSpace(r["enlace"]),

		TipoObra: strings.TrimSpace(r["tipo_obra"]),
		Area:     strings.TrimSpace(r["area"]),
		Barrio:   barrio,
		Etapa:    Etapa(r["etapa"]),

		Destacada: Booleano(r["destacada"]),
		BAElige:   Booleano(r["ba_elige"]),

		EmpresaLicitacion: strings.TrimSpace(r["empresa_licitacion"]),
		NroContratacion:   strings.TrimSpace(r["nro_contratacion"]),
		CuitContratista:   strings.TrimSpace(r["cuit_contratista"]),
		ContratacionTipo:  strings.TrimSpace(r["contratacion_tipo"]),
		NroExpediente:     strings.TrimSpace(r["nro_expediente"]),
		LicitacionAnio:    Entero(r["licitacion_anio"]),

		MontoContrato:        Monto(r["monto_contrato"]),
		FuenteFinanciamiento: strings.TrimSpace(r["fuente_financiamiento"]),

		PorcentajeAvance: Entero(r["porcentaje_avance"]),
		PlazoMeses:       Entero(r["plazo_meses"]),
		ManoObra:         Entero(r["mano_obra"]),

		FechaInicio:     Fecha(r["fecha_inicio"]),
		FechaFinInicial: Fecha(r["fecha_fin_inicial"]),

		Comuna:    strings.TrimSpace(r["comuna"]),
		Direccion: strings.TrimSpace(r["direccion"]),
		Latitud:   Flotante(r["latitud"]),
		Longitud:  Flotante(r["longitud"]),
	}
	return f, true
}

// Booleano is total: true exactly when the trimmed, lower-cased value
// is the affirmative token "si". Everything else, empty included, is
// false.
func Booleano(s string) bool {
	return strings.ToLower(strings.TrimSpace(s)) == "si"
}

// fechaLayouts covers the date shapes seen in the dataset.
var fechaLayouts = []string{"2006-01-02", "2006-01-02 15:04:05"}

// Fecha parses a calendar date; unparseable or empty values coerce to
// nil, never to an error.
func Fecha(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range fechaLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Monto rewrites a currency value formatted with a literal $, dots as
// thousands separators and a comma decimal ("$1.234.567,89") into an
// exact decimal. Non-numeric leftovers coerce to absent.
func Monto(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Entero parses an integer, tolerating float-shaped text ("12.0").
// Unparseable values default to 0: for these columns unknown means
// zero, not absent.
func Entero(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// Flotante parses a float; unparseable or empty values coerce to nil.
func Flotante(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

var quitaDiacriticos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Barrio normalizes a neighbourhood name into its catalog key:
// diacritics stripped, lower-cased, trimmed. "Palermo", "PALERMO " and
// "Palérmo" all map to "palermo".
func Barrio(s string) string {
	if out, _, err := transform.String(quitaDiacriticos, s); err == nil {
		s = out
	}
	return strings.ToLower(strings.TrimSpace(s))
}
