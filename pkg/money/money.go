package money

import (
	"math/big"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultScale is the number of fraction digits used when an input does not
// declare data-scale.
const DefaultScale = 2

// DefaultLocale is the display locale.
var DefaultLocale = language.BrazilianPortuguese

// Parse reads a user-typed amount and returns it as a dot-decimal string
// rounded to scale fraction digits. Anything other than digits, separators and
// a leading minus sign is ignored. ok is false when no digit is present.
func Parse(input string, scale int) (string, bool) {
	if scale < 0 {
		scale = 0
	}
	trimmed := strings.TrimSpace(input)
	negative := false

	var cleaned strings.Builder
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.':
			cleaned.WriteRune(r)
		case r == '-' && cleaned.Len() == 0:
			negative = true
		}
	}

	raw := cleaned.String()
	intPart, fracPart := raw, ""
	if last := strings.LastIndexAny(raw, ",."); last >= 0 {
		intPart, fracPart = raw[:last], raw[last+1:]
	}
	intPart = digitsOnly(intPart)
	fracPart = digitsOnly(fracPart)
	if intPart == "" && fracPart == "" {
		return "", false
	}
	if intPart == "" {
		intPart = "0"
	}

	literal := intPart
	if fracPart != "" {
		literal += "." + fracPart
	}
	value, ok := new(big.Rat).SetString(literal)
	if !ok {
		return "", false
	}
	if negative {
		value.Neg(value)
	}
	out := value.FloatString(scale)
	if strings.TrimLeft(out, "-0.") == "" {
		out = strings.TrimPrefix(out, "-")
	}
	return out, true
}

// Format renders a canonical amount, as returned by Parse, for display in
// the default locale. Invalid input formats as the empty string.
func Format(canonical string, scale int) string {
	return FormatIn(DefaultLocale, canonical, scale)
}

// FormatIn is Format for an explicit locale. The amount is rounded and
// grouped from its exact decimal form, so large values keep every digit.
func FormatIn(tag language.Tag, canonical string, scale int) string {
	if scale < 0 {
		scale = 0
	}
	value, ok := new(big.Rat).SetString(strings.TrimSpace(canonical))
	if !ok {
		return ""
	}
	fixed := value.FloatString(scale)
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	group, decimal := separators(tag)

	var b strings.Builder
	if negative && strings.Trim(fixed, "0.") != "" {
		b.WriteByte('-')
	}
	for idx, r := range intPart {
		if idx > 0 && (len(intPart)-idx)%3 == 0 {
			b.WriteString(group)
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteString(decimal)
		b.WriteString(fracPart)
	}
	return b.String()
}

// separators reads the grouping and decimal symbols of tag off a formatted
// sample, falling back to "," and "." when the locale does not use Latin
// digits.
func separators(tag language.Tag) (group, decimal string) {
	sample := message.NewPrinter(tag).Sprint(number.Decimal(1234.5, number.Scale(1)))
	one := strings.Index(sample, "1")
	hundreds := strings.Index(sample, "234")
	five := strings.LastIndex(sample, "5")
	if one < 0 || hundreds <= one || five <= hundreds+2 {
		return ",", "."
	}
	return sample[one+1 : hundreds], sample[hundreds+3 : five]
}

// EditText converts a canonical amount into the text shown while editing:
// no grouping and the locale decimal comma.
func EditText(canonical string) string {
	return strings.Replace(canonical, ".", ",", 1)
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
