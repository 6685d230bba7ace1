// Package render turns the ticker state into what the marquee shows.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"

	common "github.com/usa-trezo/en-us/internal/app/common/exception_handler"
	"github.com/usa-trezo/en-us/internal/app/services/state"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var tickerTemplate = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// LoadingText is the placeholder shown until the first snapshot lands.
const LoadingText = "Loading prices..."

type Item struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Change string `json:"change"`
	Tone   Tone   `json:"tone"`
}

// String is the plain-text form of one marquee entry.
func (i Item) String() string {
	return i.Symbol + " " + i.Price + " " + i.Change
}

type View struct {
	Loading   bool
	Version   uint64
	UpdatedAt time.Time
	Items     []Item
}

// Render is a pure function of v.
func (f *Formatter) Render(v state.View) View {
	out := View{
		Loading:   v.Loading,
		Version:   v.Version,
		UpdatedAt: v.UpdatedAt,
		Items:     make([]Item, 0, len(v.Entries)),
	}
	for _, e := range v.Entries {
		out.Items = append(out.Items, Item{
			ID:     e.ID,
			Symbol: strings.ToUpper(e.Symbol),
			Price:  f.Price(e.CurrentPrice),
			Change: FormatChange(e.PriceChangePercentage24h),
			Tone:   ToneOf(e.PriceChangePercentage24h),
		})
	}
	return out
}

// Text is the marquee as one line, or the loading placeholder.
func (v View) Text() string {
	if v.Loading {
		return LoadingText
	}
	parts := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, "  ")
}

// Fragment renders the ticker markup shared by the page and the websocket push.
func Fragment(v View) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tickerTemplate.ExecuteTemplate(&buf, "ticker", v); err != nil {
		return "", common.NewCustomError(common.ErrRender, "Failed to render ticker", err)
	}
	return template.HTML(buf.String()), nil
}
