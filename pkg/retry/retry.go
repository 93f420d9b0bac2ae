// Package retry ejecuta una operación completa con reintentos y backoff exponencial.
package retry

import (
	"context"
	"math"
	"time"
)

// Valores por defecto de la política.
const (
	DefaultMaxAttempts = 3
	DefaultMultiplier  = 500 * time.Millisecond
	DefaultMaxWait     = 5 * time.Second
)

// Classifier decide si un error es transitorio y vale la pena reintentar.
type Classifier func(err error) bool

// Policy describe cuántas veces y con qué espera se reintenta.
// La espera antes del intento n+1 es Multiplier * 2^(n-1), acotada por MaxWait.
type Policy struct {
	MaxAttempts int
	Multiplier  time.Duration
	MaxWait     time.Duration

	// Retryable clasifica errores; nil significa "nunca reintentar".
	Retryable Classifier

	// OnRetry se invoca antes de cada espera (intento fallido, espera, error).
	OnRetry func(attempt int, wait time.Duration, err error)

	// Sleep permite reemplazar la espera en tests. nil usa un timer que respeta ctx.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Default devuelve la política por defecto con el clasificador indicado.
func Default(c Classifier) Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		Multiplier:  DefaultMultiplier,
		MaxWait:     DefaultMaxWait,
		Retryable:   c,
	}
}

// Backoff devuelve la espera después del intento fallido número attempt (1-based).
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	wait := float64(p.Multiplier) * math.Pow(2, float64(attempt-1))
	if p.MaxWait > 0 && wait > float64(p.MaxWait) {
		return p.MaxWait
	}
	return time.Duration(wait)
}

// Do ejecuta fn hasta que tenga éxito, devuelva un error no transitorio o se agoten
// los intentos. Al agotarse se devuelve el último error sin envolver.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || p.Retryable == nil || !p.Retryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}
		wait := p.Backoff(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, wait, err)
		}
		if serr := sleep(ctx, wait); serr != nil {
			// cancelado durante la espera: el error relevante sigue siendo el de la operación
			return err
		}
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
