package session

import (
	"reflect"
	"testing"
)

func allPendingStates() []Pending {
	return []Pending{
		nil,
		AwaitWeatherCity{},
		AwaitHotelCity{},
		AwaitHotelCheckIn{City: "Paris"},
		AwaitHotelPrice{City: "Paris", CheckIn: MonthDay{Day: 15, Month: 5}},
		AwaitHabitName{},
		AwaitHabitDescription{HabitName: "reading"},
		AwaitTaskText{},
	}
}

func TestMenuLiteralsAlwaysWin(t *testing.T) {
	literals := []string{
		BtnWeather, BtnHotels, BtnHabits, BtnTodo, BtnCurrency,
		BtnAddHabit, BtnMyHabits, BtnAddTask, BtnMyTasks, BtnDoneTasks,
		BtnMainMenu, BtnCancel,
	}
	for _, st := range allPendingStates() {
		for _, lit := range literals {
			got, effects := Transition(st, lit)
			want, wantEffects, ok := menuDispatch(lit)
			if !ok {
				t.Fatalf("literal %q not in dispatch table", lit)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("state %T, literal %q: got pending %#v, want %#v", st, lit, got, want)
			}
			if !reflect.DeepEqual(effects, wantEffects) {
				t.Fatalf("state %T, literal %q: effects %#v, want %#v", st, lit, effects, wantEffects)
			}
		}
	}
}

func TestReturnToMainMenuEscapesAnyFlow(t *testing.T) {
	for _, st := range allPendingStates() {
		got, effects := Transition(st, BtnMainMenu)
		if got != nil {
			t.Fatalf("state %T: expected pending reset, got %#v", st, got)
		}
		if len(effects) != 1 {
			t.Fatalf("state %T: expected one effect, got %d", st, len(effects))
		}
		menu, ok := effects[0].(SendMenu)
		if !ok || menu.Menu != MenuMain {
			t.Fatalf("state %T: expected main menu, got %#v", st, effects[0])
		}
	}
}

func TestWeatherCityAccepted(t *testing.T) {
	got, effects := Transition(AwaitWeatherCity{}, "Paris")
	if got != nil {
		t.Fatalf("expected pending reset, got %#v", got)
	}
	if len(effects) != 1 {
		t.Fatalf("expected exactly one effect, got %d", len(effects))
	}
	call, ok := effects[0].(CallWeather)
	if !ok || call.City != "Paris" {
		t.Fatalf("expected CallWeather{Paris}, got %#v", effects[0])
	}
}

func TestWeatherCityEmptyRepromptsIdempotently(t *testing.T) {
	st := Pending(AwaitWeatherCity{})
	for i := 0; i < 3; i++ {
		var effects []Effect
		st, effects = Transition(st, "   ")
		if _, ok := st.(AwaitWeatherCity); !ok {
			t.Fatalf("iteration %d: pending changed to %#v", i, st)
		}
		if len(effects) != 1 {
			t.Fatalf("iteration %d: expected one effect, got %d", i, len(effects))
		}
		if txt, ok := effects[0].(SendText); !ok || txt.Text != MsgEmptyCity {
			t.Fatalf("iteration %d: expected empty-city re-prompt, got %#v", i, effects[0])
		}
	}
}

func TestHotelCheckInParsing(t *testing.T) {
	start := AwaitHotelCheckIn{City: "Paris"}

	got, effects := Transition(start, "15.05")
	price, ok := got.(AwaitHotelPrice)
	if !ok {
		t.Fatalf("expected AwaitHotelPrice, got %#v", got)
	}
	if price.City != "Paris" || price.CheckIn != (MonthDay{Day: 15, Month: 5}) {
		t.Fatalf("accumulated fields wrong: %#v", price)
	}
	if txt, ok := effects[0].(SendText); !ok || txt.Text != MsgPromptPrice {
		t.Fatalf("expected price prompt, got %#v", effects[0])
	}

	for _, bad := range []string{"32.13", "abc", "", "15", "0.5", "31.02"} {
		got, effects := Transition(start, bad)
		if !reflect.DeepEqual(got, Pending(start)) {
			t.Fatalf("input %q: pending changed to %#v", bad, got)
		}
		if txt, ok := effects[0].(SendText); !ok || txt.Text != MsgBadCheckIn {
			t.Fatalf("input %q: expected date re-prompt, got %#v", bad, effects[0])
		}
	}
}

func TestHotelPriceParsing(t *testing.T) {
	start := AwaitHotelPrice{City: "Paris", CheckIn: MonthDay{Day: 15, Month: 5}}

	got, effects := Transition(start, "5000")
	if got != nil {
		t.Fatalf("expected pending reset, got %#v", got)
	}
	call, ok := effects[0].(CallHotelSearch)
	if !ok {
		t.Fatalf("expected CallHotelSearch, got %#v", effects[0])
	}
	if call.City != "Paris" || call.Price != 5000.0 || call.CheckIn != start.CheckIn {
		t.Fatalf("unexpected search parameters: %#v", call)
	}

	for _, bad := range []string{"0", "-10", "abc", ""} {
		got, effects := Transition(start, bad)
		if !reflect.DeepEqual(got, Pending(start)) {
			t.Fatalf("input %q: pending changed to %#v", bad, got)
		}
		if txt, ok := effects[0].(SendText); !ok || txt.Text != MsgBadPrice {
			t.Fatalf("input %q: expected price re-prompt, got %#v", bad, effects[0])
		}
	}
}

func TestHabitFlowAccumulates(t *testing.T) {
	got, _ := Transition(AwaitHabitName{}, "reading")
	desc, ok := got.(AwaitHabitDescription)
	if !ok || desc.HabitName != "reading" {
		t.Fatalf("expected AwaitHabitDescription{reading}, got %#v", got)
	}

	got, effects := Transition(desc, "20 pages every evening")
	if got != nil {
		t.Fatalf("expected pending reset, got %#v", got)
	}
	persist, ok := effects[0].(PersistHabit)
	if !ok || persist.Name != "reading" || persist.Description != "20 pages every evening" {
		t.Fatalf("expected PersistHabit, got %#v", effects[0])
	}
}

func TestTaskSplit(t *testing.T) {
	got, effects := Transition(AwaitTaskText{}, "Buy milk, groceries")
	if got != nil {
		t.Fatalf("expected pending reset, got %#v", got)
	}
	persist, ok := effects[0].(PersistTask)
	if !ok || persist.Text != "Buy milk" || persist.Category != "groceries" {
		t.Fatalf("expected PersistTask{Buy milk, groceries}, got %#v", effects[0])
	}

	for _, bad := range []string{"Buy milk", "Buy milk,", ", groceries", ",", ""} {
		got, effects := Transition(AwaitTaskText{}, bad)
		if _, ok := got.(AwaitTaskText); !ok {
			t.Fatalf("input %q: pending changed to %#v", bad, got)
		}
		if txt, ok := effects[0].(SendText); !ok || txt.Text != MsgBadTask {
			t.Fatalf("input %q: expected task re-prompt, got %#v", bad, effects[0])
		}
	}
}

func TestHotelFlowEndToEnd(t *testing.T) {
	var st Pending
	var effects []Effect
	var searches []CallHotelSearch

	step := func(input string) {
		st, effects = Transition(st, input)
		for _, e := range effects {
			if call, ok := e.(CallHotelSearch); ok {
				searches = append(searches, call)
			}
		}
	}

	step(BtnHotels)
	if _, ok := st.(AwaitHotelCity); !ok {
		t.Fatalf("after menu press: %#v", st)
	}
	step("Paris")
	if _, ok := st.(AwaitHotelCheckIn); !ok {
		t.Fatalf("after city: %#v", st)
	}
	step("15.05")
	if _, ok := st.(AwaitHotelPrice); !ok {
		t.Fatalf("after date: %#v", st)
	}
	step("5000")

	if st != nil {
		t.Fatalf("expected session reset after search, got %#v", st)
	}
	if len(searches) != 1 {
		t.Fatalf("expected exactly one hotel search, got %d", len(searches))
	}
	want := CallHotelSearch{City: "Paris", CheckIn: MonthDay{Day: 15, Month: 5}, Price: 5000.0}
	if searches[0] != want {
		t.Fatalf("search parameters: got %#v, want %#v", searches[0], want)
	}
}

func TestNoPendingNoLiteralFallsBack(t *testing.T) {
	got, effects := Transition(nil, "what can you do?")
	if got != nil {
		t.Fatalf("expected state unchanged, got %#v", got)
	}
	if txt, ok := effects[0].(SendText); !ok || txt.Text != MsgChooseOption {
		t.Fatalf("expected fallback message, got %#v", effects[0])
	}
}

func TestMonthDayString(t *testing.T) {
	md := MonthDay{Day: 5, Month: 9}
	if md.String() != "05.09" {
		t.Fatalf("got %q", md.String())
	}
}
