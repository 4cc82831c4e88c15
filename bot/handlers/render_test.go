package handlers

import (
	"strings"
	"testing"
	"time"

	"assistbot/bot/currency"
	"assistbot/bot/hotels"
	"assistbot/bot/session"
	"assistbot/bot/storage"
	"assistbot/bot/weather"
)

func TestRenderWeather(t *testing.T) {
	out := renderWeather(weather.Report{
		City: "Paris", Country: "FR",
		Temp: 18.4, FeelsLike: 17.9, Humidity: 62, WindSpeed: 3.1,
		Description: "light rain",
	})
	for _, want := range []string{"Paris", "FR", "18.4", "17.9", "62%", "3.1", "light rain"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderWeatherEscapesCity(t *testing.T) {
	out := renderWeather(weather.Report{City: "Foo_bar", Country: "XX"})
	if !strings.Contains(out, `Foo\_bar`) {
		t.Fatalf("underscore not escaped:\n%s", out)
	}
}

func TestRenderHotelsEmpty(t *testing.T) {
	out := renderHotels("Paris", nil)
	if !strings.Contains(out, "No hotels found") {
		t.Fatalf("unexpected empty rendering: %s", out)
	}
}

func TestRenderHotels(t *testing.T) {
	out := renderHotels("Paris", []hotels.Hotel{
		{Name: "Hotel du Nord", Price: "RUB 5,100", Address: "1 Rue Test", Stars: 4},
		{Name: "Budget Inn"},
	})
	for _, want := range []string{"1. ", "Hotel du Nord", "RUB 5,100", "1 Rue Test", "4.0", "2. ", "Budget Inn"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Stars: 0.0") {
		t.Error("zero star rating should be omitted")
	}
}

func TestRenderRates(t *testing.T) {
	out := renderRates(currency.Rates{USD: 92.53, EUR: 99.18})
	if !strings.Contains(out, "92.53") || !strings.Contains(out, "99.18") {
		t.Fatalf("rates missing:\n%s", out)
	}
}

func TestRenderTasks(t *testing.T) {
	done := time.Date(2026, time.May, 15, 0, 0, 0, 0, time.UTC)
	active := renderActiveTasks([]storage.Task{{Text: "Buy milk", Category: "groceries"}})
	if !strings.Contains(active, "Buy milk") || !strings.Contains(active, "groceries") {
		t.Fatalf("active rendering:\n%s", active)
	}
	completed := renderCompletedTasks([]storage.Task{{Text: "Buy milk", Category: "groceries", DoneAt: &done}})
	if !strings.Contains(completed, "15.05.2026") {
		t.Fatalf("completed rendering:\n%s", completed)
	}
	if renderActiveTasks(nil) == "" || renderCompletedTasks(nil) == "" {
		t.Fatal("empty lists need a friendly message")
	}
}

func TestMenuMarkupCoversAllMenus(t *testing.T) {
	for _, m := range []session.Menu{session.MenuMain, session.MenuHabits, session.MenuTasks, session.MenuCancel} {
		markup := MenuMarkup(m)
		if markup == nil || len(markup.ReplyKeyboard) == 0 {
			t.Fatalf("menu %v produced an empty keyboard", m)
		}
	}
}

func TestMenuMarkupLabelsMatchDispatch(t *testing.T) {
	// Every button the main menu shows must be a recognized literal,
	// otherwise a tap would fall through to the unknown-text reply.
	markup := MenuMarkup(session.MenuMain)
	for _, row := range markup.ReplyKeyboard {
		for _, btn := range row {
			_, effects := session.Transition(nil, btn.Text)
			if len(effects) == 1 {
				if st, ok := effects[0].(session.SendText); ok && st.Text == session.MsgChooseOption {
					t.Errorf("button %q is not wired to a transition", btn.Text)
				}
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 24); got != "short" {
		t.Fatalf("truncate short: %q", got)
	}
	long := strings.Repeat("x", 30)
	got := truncate(long, 24)
	if len([]rune(got)) != 24 || !strings.HasSuffix(got, "…") {
		t.Fatalf("truncate long: %q", got)
	}
}
