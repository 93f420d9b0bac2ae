// Package image resuelve la referencia de imagen de una empresa a la URL persistida.
package image

import (
	"errors"
	"net/url"
	"strings"

	"github.com/jhoicas/Proveo-api/internal/application/ports"
)

var _ ports.ImageResolver = (*Resolver)(nil)

var (
	ErrEmptyRef       = errors.New("referencia de imagen vacía")
	ErrUnsupportedRef = errors.New("referencia de imagen no soportada")
)

// Resolver acepta URLs http(s) absolutas, data URIs de imagen y, si hay BaseURL,
// claves relativas que se resuelven contra ella.
type Resolver struct {
	base *url.URL
}

// NewResolver construye el resolver. baseURL vacío desactiva las claves relativas.
func NewResolver(baseURL string) (*Resolver, error) {
	r := &Resolver{}
	if baseURL == "" {
		return r, nil
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New("IMAGES_BASE_URL debe ser una URL http(s) absoluta")
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	r.base = u
	return r, nil
}

func (r *Resolver) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrEmptyRef
	}
	if strings.HasPrefix(ref, "data:image/") {
		return ref, nil
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", ErrUnsupportedRef
	}
	if u.IsAbs() {
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", ErrUnsupportedRef
		}
		return u.String(), nil
	}
	if r.base == nil || u.Host != "" {
		return "", ErrUnsupportedRef
	}
	return r.base.ResolveReference(&url.URL{Path: strings.TrimLeft(u.Path, "/"), RawQuery: u.RawQuery}).String(), nil
}
