package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"listing-pricing/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatText is the human-readable checkout summary
	FormatText Format = "text"

	// FormatJSON is the full quote as JSON
	FormatJSON Format = "json"
)

// Renderer writes a formatted quote in a specific format
type Renderer interface {
	// Format returns the format type
	Format() Format

	// Render writes the quote
	Render(w io.Writer, quote *types.PriceQuote) error
}

// Registry maps formats to renderers
type Registry struct {
	renderers map[Format]Renderer
}

// NewRegistry creates a registry holding the given renderers
func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{renderers: make(map[Format]Renderer)}
	for _, renderer := range renderers {
		r.Register(renderer)
	}
	return r
}

// DefaultRegistry holds the text and JSON renderers
func DefaultRegistry(showBreakdown bool) *Registry {
	return NewRegistry(&TextRenderer{ShowBreakdown: showBreakdown}, &JSONRenderer{Indent: true})
}

// Register adds or replaces a renderer
func (r *Registry) Register(renderer Renderer) {
	r.renderers[renderer.Format()] = renderer
}

// Get returns the renderer for a format
func (r *Registry) Get(format Format) (Renderer, bool) {
	renderer, ok := r.renderers[format]
	return renderer, ok
}

// Formats lists registered formats in name order
func (r *Registry) Formats() []Format {
	formats := make([]Format, 0, len(r.renderers))
	for f := range r.renderers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// TextRenderer prints line items, the promotional sentence and, optionally,
// the pipeline breakdown
type TextRenderer struct {
	ShowBreakdown bool
}

// Format returns FormatText
func (t *TextRenderer) Format() Format {
	return FormatText
}

// Render writes the checkout summary
func (t *TextRenderer) Render(w io.Writer, q *types.PriceQuote) error {
	var b strings.Builder
	for _, line := range q.LineItems {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	if q.PromotionalText != "" {
		fmt.Fprintf(&b, "\n%s\n", q.PromotionalText)
	}

	if t.ShowBreakdown {
		bd := q.Breakdown
		b.WriteString("\nBreakdown:\n")
		fmt.Fprintf(&b, "  override:        %s\n", q.Override)
		fmt.Fprintf(&b, "  unit price:      %s\n", bd.UnitPrice.Exact())
		fmt.Fprintf(&b, "  subtotal:        %s\n", bd.Subtotal.Exact())
		fmt.Fprintf(&b, "  duration pct:    %s (+%s auto-renew)\n", bd.DurationDiscount, bd.AutoRenewBonus)
		fmt.Fprintf(&b, "  after duration:  %s\n", bd.AfterDuration.Exact())
		fmt.Fprintf(&b, "  add-ons:         %s\n", bd.AddonTotal.Exact())
		fmt.Fprintf(&b, "  pre-referral:    %s\n", bd.PreReferral.Exact())
		fmt.Fprintf(&b, "  referral pct:    %s\n", bd.ReferralDiscount)
		fmt.Fprintf(&b, "  formula:         %s\n", bd.Formula)
	}

	fmt.Fprintf(&b, "\nQuote %s (catalog %s)\n", q.QuoteID, shortHash(q.CatalogHash))

	_, err := io.WriteString(w, b.String())
	return err
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// JSONRenderer encodes the whole quote
type JSONRenderer struct {
	Indent bool
}

// Format returns FormatJSON
func (j *JSONRenderer) Format() Format {
	return FormatJSON
}

// Render writes the quote as JSON
func (j *JSONRenderer) Render(w io.Writer, q *types.PriceQuote) error {
	enc := json.NewEncoder(w)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(q)
}
