// Package search construye consultas tsquery seguras a partir de texto libre.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Language idioma de búsqueda soportado por el índice.
type Language string

const (
	Spanish Language = "es"
	English Language = "en"
)

// MaxTerms límite de términos por consulta; el resto se descarta.
const MaxTerms = 16

var lower = cases.Lower(language.Und)

// ParseLanguage valida el código de idioma. Vacío equivale a español.
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case "", Spanish:
		return Spanish, true
	case English:
		return English, true
	default:
		return "", false
	}
}

// RegConfig configuración de text search de PostgreSQL para el idioma.
func (l Language) RegConfig() string {
	if l == English {
		return "english"
	}
	return "spanish"
}

// VectorColumn columna tsvector de la vista materializada para el idioma.
func (l Language) VectorColumn() string {
	if l == English {
		return "search_vector_en"
	}
	return "search_vector_es"
}

// Terms normaliza (NFC, minúsculas) y separa la consulta en términos.
// Cualquier carácter que no sea letra o dígito actúa como separador, por lo que
// los operadores de tsquery (&, |, !, :, *, paréntesis, comillas) nunca llegan al parser.
func Terms(raw string) []string {
	s := lower.String(norm.NFC.String(raw))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r)
	})
	if len(fields) > MaxTerms {
		fields = fields[:MaxTerms]
	}
	return fields
}

// BuildTSQuery arma el texto para to_tsquery: términos con prefijo unidos por AND.
// Devuelve "" cuando no queda ningún término utilizable.
func BuildTSQuery(raw string) string {
	terms := Terms(raw)
	if len(terms) == 0 {
		return ""
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t + ":*"
	}
	return strings.Join(parts, " & ")
}
