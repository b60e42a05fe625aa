package model

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators, e.g. "12,345"
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// FormatEPA renders an EPA/play value with three decimals
func FormatEPA(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// FormatTotal renders a total EPA value with one decimal
func FormatTotal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
