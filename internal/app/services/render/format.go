package render

import (
	"fmt"

	common "github.com/usa-trezo/en-us/internal/app/common/exception_handler"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Tone is the colour class of a 24h change.
type Tone string

const (
	ToneUp   Tone = "up"
	ToneDown Tone = "down"
	ToneNone Tone = "none"
)

// MissingChange is shown when the upstream has no 24h change for an asset.
const MissingChange = "N/A"

type Formatter struct {
	printer *message.Printer
}

func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, common.NewCustomError(common.ErrLocale, fmt.Sprintf("Unsupported locale %q", locale), err)
	}
	return &Formatter{printer: message.NewPrinter(tag)}, nil
}

// Price groups thousands the way the locale does and keeps at most three
// fraction digits, without padding.
func (f *Formatter) Price(v float64) string {
	return "$" + f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// FormatChange renders a 24h change with exactly two decimals.
func FormatChange(change *float64) string {
	if change == nil {
		return MissingChange
	}
	return decimal.NewFromFloat(*change).StringFixed(2) + "%"
}

// ToneOf treats zero as non-negative.
func ToneOf(change *float64) Tone {
	switch {
	case change == nil:
		return ToneNone
	case *change < 0:
		return ToneDown
	default:
		return ToneUp
	}
}
