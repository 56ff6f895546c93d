package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats an integer amount as "Bs 12.500" using dot as thousands separator.
func FormatMoney(symbol string, amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if symbol != "" {
		b.WriteString(symbol)
		b.WriteByte(' ')
	}
	b.WriteString(groupThousands(strconv.FormatInt(amount, 10)))
	return b.String()
}

// FormatDecimal formats a possibly fractional amount. Whole values print without decimals,
// otherwise two decimals follow a comma: "Bs 1.234,50".
func FormatDecimal(symbol string, amount float64) string {
	cents := int64(math.Round(amount * 100))
	if cents%100 == 0 {
		return FormatMoney(symbol, cents/100)
	}
	frac := cents % 100
	if frac < 0 {
		frac = -frac
	}
	whole := FormatMoney(symbol, cents/100)
	if cents < 0 && cents/100 == 0 {
		whole = "-" + whole
	}
	fracStr := strconv.FormatInt(frac, 10)
	if len(fracStr) == 1 {
		fracStr = "0" + fracStr
	}
	return whole + "," + fracStr
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3)

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
