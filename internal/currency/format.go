// Package currency renders amounts as display strings for the supported
// currency codes. Formatting is pure and deterministic: the number body
// comes from golang.org/x/text for the currency's canonical locale, the
// symbol and its placement from a static table.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCode is the fallback for unknown currency codes. Not an error:
// the original behavior defaults the whole app to INR.
const DefaultCode = "INR"

type config struct {
	symbol string
	tag    language.Tag
	// decimalSep is the locale's decimal separator, "." when empty.
	decimalSep string
	// suffix places the symbol after the number (de-DE euro convention,
	// separated by a space). All others prefix.
	suffix bool
}

var configs = map[string]config{
	"INR": {symbol: "₹", tag: language.MustParse("en-IN")},
	"USD": {symbol: "$", tag: language.MustParse("en-US")},
	"EUR": {symbol: "€", tag: language.MustParse("de-DE"), decimalSep: ",", suffix: true},
	"GBP": {symbol: "£", tag: language.MustParse("en-GB")},
	"JPY": {symbol: "¥", tag: language.MustParse("ja-JP")},
	"AUD": {symbol: "A$", tag: language.MustParse("en-AU")},
	"CAD": {symbol: "C$", tag: language.MustParse("en-CA")},
}

// Codes lists the supported currency codes in display order.
var Codes = []string{"INR", "USD", "EUR", "GBP", "JPY", "AUD", "CAD"}

// Supported reports whether code is one of the seven known currencies.
func Supported(code string) bool {
	_, ok := configs[code]
	return ok
}

// Format renders amount for the given currency code, with locale grouping
// and exactly two fraction digits. Unknown codes format as INR.
//
// The integer and fraction parts are taken from the decimal itself, so
// amounts keep their exact digits at magnitudes where a float64 round
// trip would lose precision. Only the locale grouping of the integer
// part goes through x/text.
func Format(amount decimal.Decimal, code string) string {
	cfg, ok := configs[code]
	if !ok {
		cfg = configs[DefaultCode]
	}

	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	rounded := amount.Round(2)
	units := rounded.Truncate(0)
	cents := rounded.Sub(units).Shift(2).IntPart()

	var body string
	if units.BigInt().IsInt64() {
		p := message.NewPrinter(cfg.tag)
		body = p.Sprintf("%v", number.Decimal(units.IntPart()))
	} else {
		// Past int64 the grouping is dropped rather than the digits.
		body = units.String()
	}
	sep := cfg.decimalSep
	if sep == "" {
		sep = "."
	}
	body += sep + fmt.Sprintf("%02d", cents)

	var s string
	if cfg.suffix {
		s = body + " " + cfg.symbol
	} else {
		s = cfg.symbol + body
	}
	if neg {
		return "-" + s
	}
	return s
}
