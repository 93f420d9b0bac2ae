// Package translator implementa ports.Translator para nombres de producto.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Proveo-api/internal/application/ports"
)

var _ ports.Translator = (*AnthropicTranslator)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	maxNameLength        = 100
)

var languageNames = map[string]string{"es": "Spanish", "en": "English"}

// ErrNotConfigured se devuelve cuando falta la API key.
var ErrNotConfigured = errors.New("translator: ANTHROPIC_API_KEY no configurado")

// AnthropicTranslator traduce con la API REST de Anthropic (Messages).
type AnthropicTranslator struct {
	apiKey     string
	model      string
	url        string
	httpClient *http.Client
}

// NewAnthropicTranslator construye el adaptador. timeout acota cada llamada HTTP;
// el caso de uso impone además su propio contexto.
func NewAnthropicTranslator(apiKey, model string, timeout time.Duration) *AnthropicTranslator {
	return &AnthropicTranslator{
		apiKey:     apiKey,
		model:      model,
		url:        anthropicMessagesURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithURL reemplaza el endpoint (tests).
func (t *AnthropicTranslator) WithURL(url string) *AnthropicTranslator {
	t.url = url
	return t
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Translate traduce text de from a to. Devuelve solo el texto traducido, sin comillas.
func (t *AnthropicTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if t.apiKey == "" {
		return "", ErrNotConfigured
	}
	fromName, ok := languageNames[from]
	if !ok {
		return "", fmt.Errorf("translator: idioma origen no soportado %q", from)
	}
	toName, ok := languageNames[to]
	if !ok {
		return "", fmt.Errorf("translator: idioma destino no soportado %q", to)
	}

	payload := anthropicRequest{
		Model:     t.model,
		MaxTokens: 64,
		System: fmt.Sprintf("Translate the product category name from %s to %s. "+
			"Reply with the translated name only, no quotes, no explanation.", fromName, toName),
		Messages: []anthropicMessage{{Role: "user", Content: text}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("translator: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("translator: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", t.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("translator: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("translator: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	if err != nil {
		return "", fmt.Errorf("translator: leer respuesta: %w", err)
	}

	var out anthropicResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("translator: HTTP %d, respuesta no JSON: %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return "", fmt.Errorf("translator: Anthropic error (%s): %s", out.Error.Type, out.Error.Message)
		}
		return "", fmt.Errorf("translator: Anthropic HTTP %d", resp.StatusCode)
	}

	for _, c := range out.Content {
		if c.Type != "text" {
			continue
		}
		name := clean(c.Text)
		if name == "" {
			break
		}
		return name, nil
	}
	return "", errors.New("translator: respuesta sin texto")
}

// clean deja la primera línea sin comillas ni espacios y la acota al largo de columna.
func clean(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(strings.TrimSpace(s), `"'“”`)
	if r := []rune(s); len(r) > maxNameLength {
		s = string(r[:maxNameLength])
	}
	return strings.TrimSpace(s)
}

// Noop no traduce: devuelve el texto recibido. Se usa cuando no hay API key.
type Noop struct{}

func (Noop) Translate(_ context.Context, text, _, _ string) (string, error) { return text, nil }

// New devuelve el adaptador de Anthropic si hay API key, o Noop.
func New(apiKey, model string, timeout time.Duration) ports.Translator {
	if apiKey == "" {
		return Noop{}
	}
	return NewAnthropicTranslator(apiKey, model, timeout)
}
