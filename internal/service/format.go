package service

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// formatAmount renders whole dollars with US grouping, e.g. $25,000
func formatAmount(v float64) string {
	return amountPrinter.Sprintf("$%d", int64(math.Round(v)))
}
