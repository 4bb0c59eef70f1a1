package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Handler implements article-body extraction for one known site.
type Handler interface {
	Host() string
	Extract(doc *goquery.Document, titleHint string) string
}

// Registry keeps the registered site handlers; unknown hosts fall back to
// the generic heuristics.
type Registry struct {
	handlers []Handler
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a site handler.
func (r *Registry) Register(handler Handler) {
	r.handlers = append(r.handlers, handler)
}

// Resolve matches a request host against the registered handlers.
func (r *Registry) Resolve(host string) (Handler, bool) {
	for _, handler := range r.handlers {
		if strings.Contains(host, handler.Host()) {
			return handler, true
		}
	}
	return nil, false
}
