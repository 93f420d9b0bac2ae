package ports

import "context"

// Translator traduce nombres cortos de producto entre español e inglés.
// Cualquier adaptador (Anthropic, mock, nulo) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type Translator interface {
	// Translate traduce text de from a to ("es" | "en").
	Translate(ctx context.Context, text, from, to string) (string, error)
}
