package handlers

import (
	"fmt"
	"strings"

	"assistbot/bot/currency"
	"assistbot/bot/hotels"
	"assistbot/bot/storage"
	"assistbot/bot/weather"
	"assistbot/core/telegram/format"
)

// md escapes user-provided text for Markdown replies.
func md(s string) string {
	out, err := format.EscapeMarkdown(s, format.MarkdownV1, "")
	if err != nil {
		return s
	}
	return out
}

func renderWeather(r weather.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Weather in %s, %s*\n\n", md(r.City), md(r.Country))
	fmt.Fprintf(&b, "Temperature: %.1f°C (feels like %.1f°C)\n", r.Temp, r.FeelsLike)
	fmt.Fprintf(&b, "Humidity: %d%%\n", r.Humidity)
	fmt.Fprintf(&b, "Wind: %.1f m/s\n", r.WindSpeed)
	fmt.Fprintf(&b, "Conditions: %s", md(r.Description))
	return b.String()
}

func renderHotels(city string, list []hotels.Hotel) string {
	if len(list) == 0 {
		return fmt.Sprintf("No hotels found in %s for that price. Try a different price.", city)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*Hotels in %s:*\n", md(city))
	for i, h := range list {
		fmt.Fprintf(&b, "\n%d. *%s*\n", i+1, md(h.Name))
		if h.Stars > 0 {
			fmt.Fprintf(&b, "   Stars: %.1f\n", h.Stars)
		}
		if h.Address != "" {
			fmt.Fprintf(&b, "   Address: %s\n", md(h.Address))
		}
		if h.Price != "" {
			fmt.Fprintf(&b, "   Price: %s\n", md(h.Price))
		}
	}
	return b.String()
}

func renderRates(r currency.Rates) string {
	return fmt.Sprintf("*Currency rates (CBR)*\n\nUSD: %.2f ₽\nEUR: %.2f ₽", r.USD, r.EUR)
}

func renderHabits(list []storage.Habit) string {
	if len(list) == 0 {
		return "You have no habits yet. Add one!"
	}
	var b strings.Builder
	b.WriteString("*Your habits:*\n")
	for i, h := range list {
		mark := ""
		if h.Completed {
			mark = " ✅"
		}
		fmt.Fprintf(&b, "\n%d. *%s*%s\n   %s", i+1, md(h.Name), mark, md(h.Description))
	}
	return b.String()
}

func renderActiveTasks(list []storage.Task) string {
	if len(list) == 0 {
		return "You have no active tasks. Add one!"
	}
	var b strings.Builder
	b.WriteString("*Your tasks:*\n")
	for i, t := range list {
		fmt.Fprintf(&b, "\n%d. %s (%s)", i+1, md(t.Text), md(t.Category))
	}
	b.WriteString("\n\nTap a button below to complete a task.")
	return b.String()
}

func renderCompletedTasks(list []storage.Task) string {
	if len(list) == 0 {
		return "Nothing completed yet."
	}
	var b strings.Builder
	b.WriteString("*Completed tasks:*\n")
	for i, t := range list {
		line := fmt.Sprintf("\n%d. %s (%s)", i+1, md(t.Text), md(t.Category))
		b.WriteString(line)
		if t.DoneAt != nil {
			fmt.Fprintf(&b, ", done %s", t.DoneAt.Format("02.01.2006"))
		}
	}
	return b.String()
}

// historyWeatherResult compacts a report for the audit file.
func historyWeatherResult(r weather.Report) string {
	return fmt.Sprintf("%.1fC, %s", r.Temp, r.Description)
}

// historyHotelsResult compacts a search outcome for the audit file.
func historyHotelsResult(list []hotels.Hotel) string {
	if len(list) == 0 {
		return "no results"
	}
	names := make([]string, 0, len(list))
	for _, h := range list {
		names = append(names, h.Name)
	}
	return fmt.Sprintf("%d offers: %s", len(list), strings.Join(names, "; "))
}
