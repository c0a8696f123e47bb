// Package presenter writes a resolved summary into an output sink.
package presenter

import (
	"fmt"

	"github.com/okian/shares/internal/domain/shares"
	"github.com/okian/shares/pkg/metrics"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Field names a text element of the output surface.
type Field string

// Output fields, named after the element ids of the rendered page.
const (
	EntityName Field = "share-entity-name"
	MaxValue   Field = "share-max-value"
	MaxYear    Field = "share-max-fy"
	MinValue   Field = "share-min-value"
	MinYear    Field = "share-min-fy"
)

// Fields lists every output field in render order.
var Fields = []Field{EntityName, MaxValue, MaxYear, MinValue, MinYear}

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en-US"

// maxFractionDigits matches the browser's default number formatting.
const maxFractionDigits = 3

// Sink receives the rendered values. Implementations overwrite in place.
type Sink interface {
	SetTitle(title string)
	SetText(field Field, value string)
}

// Presenter formats results for a locale.
type Presenter struct {
	printer *message.Printer
	tag     language.Tag
}

// New creates a Presenter for the BCP 47 locale. An empty locale selects DefaultLocale.
func New(locale string) (*Presenter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrLocale, locale, err)
	}
	return &Presenter{printer: message.NewPrinter(tag), tag: tag}, nil
}

// Locale returns the locale the presenter formats for.
func (p *Presenter) Locale() string { return p.tag.String() }

// FormatNumber groups thousands according to the presenter's locale.
func (p *Presenter) FormatNumber(v float64) string {
	return p.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(maxFractionDigits)))
}

// Title returns the surface title for an entity.
func Title(entityName string) string {
	return entityName + " (Shares Outstanding)"
}

// Present writes res into sink. A nil result leaves the sink untouched.
func (p *Presenter) Present(sink Sink, res *shares.Result) {
	if res == nil || sink == nil {
		return
	}
	sink.SetTitle(Title(res.EntityName))
	sink.SetText(EntityName, res.EntityName)
	sink.SetText(MaxValue, p.FormatNumber(res.Max.Value))
	sink.SetText(MaxYear, res.Max.FiscalYear)
	sink.SetText(MinValue, p.FormatNumber(res.Min.Value))
	sink.SetText(MinYear, res.Min.FiscalYear)
	metrics.RecordRender()
}
