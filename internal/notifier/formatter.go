package notifier

import (
	"fmt"
	"strings"

	"CrossWatch/internal/model"
)

// FormatHelp is the /start reply.
func FormatHelp() string {
	return "👋 Hello! I'm your Crossover bot.\n\n" +
		"Commands:\n" +
		"/watchlist - show current watchlist\n" +
		"/addstock SYMBOL - add SYMBOL to watchlist\n" +
		"/removestock SYMBOL - remove SYMBOL from watchlist\n" +
		"/signal SYMBOL - check current crossover for SYMBOL\n" +
		"/price SYMBOL - get latest price\n\n" +
		"Example:\n" +
		"/addstock RELIANCE.NS\n" +
		"/signal INFY.NS"
}

// FormatWatchlist renders the tracked symbols.
func FormatWatchlist(symbols []string) string {
	if len(symbols) == 0 {
		return "Watchlist is empty."
	}
	return "Current watchlist:\n" + strings.Join(symbols, "\n")
}

func signalLabel(s model.Signal) string {
	switch s {
	case model.GoldenCross:
		return "✅ Golden Cross"
	case model.DeathCross:
		return "❌ Death Cross"
	case model.InsufficientData:
		return "N/A (not enough data)"
	default:
		return "No Crossover"
	}
}

// FormatSignalReport renders a /signal reply for one symbol.
func FormatSignalReport(symbol string, daily, hourly model.CrossoverResult) string {
	return fmt.Sprintf("<b>%s</b>\nDaily: %s\nHourly: %s",
		symbol, signalLabel(daily.Signal), signalLabel(hourly.Signal))
}

// FormatPrice renders a /price reply.
func FormatPrice(symbol string, price float64) string {
	return fmt.Sprintf("💹 %s latest closing price: %.2f", symbol, price)
}

// FormatAlert renders a sweep notification for one or more new crossovers.
// Each line is "SYMBOL (interval): signal".
func FormatAlert(events []model.CrossoverResult) string {
	if len(events) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("⚡ <b>Crossover Alert!</b>\n\n")
	for _, evt := range events {
		b.WriteString(fmt.Sprintf("%s (%s): %s\n", evt.Symbol, evt.Interval, signalLabel(evt.Signal)))
	}
	return strings.TrimRight(b.String(), "\n")
}
