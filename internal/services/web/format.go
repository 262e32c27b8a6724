package web

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// pageTimestampFormat renders timestamps on pages.
const pageTimestampFormat = "2006-01-02 15:04"

var printer = message.NewPrinter(language.English)

func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func formatPercent(value float64) string {
	return printer.Sprintf("%.1f%%", value)
}

func formatRate(value float64) string {
	return printer.Sprintf("%.2f%%", value)
}

func formatTime(value time.Time) string {
	return value.Format(pageTimestampFormat)
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(pageTimestampFormat)
}
