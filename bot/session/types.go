// Package session implements the conversation state machine. A user
// session holds at most one pending question; Transition interprets the
// next incoming text against it and yields side effects for the
// handlers to apply.
package session

import "fmt"

// Pending identifies the question the bot is waiting an answer for.
// A nil Pending means no conversation is in progress. Multi-step
// variants carry exactly the fields accumulated so far, so an invalid
// combination of flags cannot be represented.
type Pending interface {
	pending()
}

// AwaitWeatherCity waits for a city name for the weather forecast.
type AwaitWeatherCity struct{}

// AwaitHotelCity waits for a city name for the hotel search.
type AwaitHotelCity struct{}

// AwaitHotelCheckIn waits for a check-in date; the city is already known.
type AwaitHotelCheckIn struct {
	City string
}

// AwaitHotelPrice waits for a price per night; city and date are known.
type AwaitHotelPrice struct {
	City    string
	CheckIn MonthDay
}

// AwaitHabitName waits for the name of a new habit.
type AwaitHabitName struct{}

// AwaitHabitDescription waits for the description; the name is known.
type AwaitHabitDescription struct {
	HabitName string
}

// AwaitTaskText waits for a "<text>, <category>" task line.
type AwaitTaskText struct{}

func (AwaitWeatherCity) pending()      {}
func (AwaitHotelCity) pending()        {}
func (AwaitHotelCheckIn) pending()     {}
func (AwaitHotelPrice) pending()       {}
func (AwaitHabitName) pending()        {}
func (AwaitHabitDescription) pending() {}
func (AwaitTaskText) pending()         {}

// MonthDay is a calendar day without a year, as entered by the user.
type MonthDay struct {
	Day   int
	Month int
}

// String renders the value back in the day.month input format.
func (m MonthDay) String() string {
	return fmt.Sprintf("%02d.%02d", m.Day, m.Month)
}

// Menu identifies a reply keyboard to attach to an outgoing message.
type Menu int

const (
	// MenuMain is the top-level option keyboard.
	MenuMain Menu = iota
	// MenuHabits is the habit tracker submenu.
	MenuHabits
	// MenuTasks is the to-do list submenu.
	MenuTasks
	// MenuCancel is a single cancel row shown while awaiting input.
	MenuCancel
)

// Effect is a side effect requested by a transition. Handlers apply
// effects in order; the state machine itself stays pure.
type Effect interface {
	effect()
}

// SendText replies with plain text, keyboard unchanged.
type SendText struct {
	Text string
}

// SendMenu replies with text and attaches the given keyboard.
type SendMenu struct {
	Text string
	Menu Menu
}

// CallWeather requests a weather lookup for the city.
type CallWeather struct {
	City string
}

// CallHotelSearch requests a hotel search with the accumulated inputs.
type CallHotelSearch struct {
	City    string
	CheckIn MonthDay
	Price   float64
}

// CallCurrency requests the daily currency rates.
type CallCurrency struct{}

// PersistHabit stores a completed habit entry.
type PersistHabit struct {
	Name        string
	Description string
}

// PersistTask stores a new task.
type PersistTask struct {
	Text     string
	Category string
}

// ShowHabits lists the user's habits.
type ShowHabits struct{}

// ShowActiveTasks lists tasks not yet completed.
type ShowActiveTasks struct{}

// ShowCompletedTasks lists completed tasks.
type ShowCompletedTasks struct{}

func (SendText) effect()           {}
func (SendMenu) effect()           {}
func (CallWeather) effect()        {}
func (CallHotelSearch) effect()    {}
func (CallCurrency) effect()       {}
func (PersistHabit) effect()       {}
func (PersistTask) effect()        {}
func (ShowHabits) effect()         {}
func (ShowActiveTasks) effect()    {}
func (ShowCompletedTasks) effect() {}
