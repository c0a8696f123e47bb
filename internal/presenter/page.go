package presenter

import (
	"fmt"
	"io"
)

// Placeholders shown until a result is presented.
const (
	PlaceholderTitle = "Shares Outstanding"
	PlaceholderText  = "n/a"
)

// Page is an in-memory output surface. It implements Sink.
type Page struct {
	Title    string
	values   map[Field]string
	Rendered bool
}

// NewPage returns a page holding placeholder content.
func NewPage() *Page {
	p := &Page{Title: PlaceholderTitle, values: make(map[Field]string, len(Fields))}
	for _, f := range Fields {
		p.values[f] = PlaceholderText
	}
	return p
}

// SetTitle implements Sink.
func (p *Page) SetTitle(title string) {
	p.Title = title
	p.Rendered = true
}

// SetText implements Sink.
func (p *Page) SetText(field Field, value string) {
	p.values[field] = value
	p.Rendered = true
}

// Text returns the current content of field.
func (p *Page) Text(field Field) string {
	return p.values[field]
}

// WriteTo prints the page as aligned "field: value" lines.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := fmt.Fprintf(w, "%-18s %s\n", "title:", p.Title)
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, f := range Fields {
		n, err = fmt.Fprintf(w, "%-18s %s\n", string(f)+":", p.values[f])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
