package session

import "strings"

// Menu button literals. Dispatch matches the exact button text, so
// these double as the protocol between keyboards and the state machine.
const (
	BtnWeather   = "🌤 Weather forecast"
	BtnHotels    = "🏨 Hotel search"
	BtnHabits    = "📋 Habit training"
	BtnTodo      = "📝 To-do list"
	BtnCurrency  = "💱 Currency rates"
	BtnMainMenu  = "⬅️ Return to main menu"
	BtnCancel    = "❌ Cancel"
	BtnAddHabit  = "➕ Add habit"
	BtnMyHabits  = "📖 My habits"
	BtnAddTask   = "➕ Add task"
	BtnMyTasks   = "📋 My tasks"
	BtnDoneTasks = "✅ Completed"
)

// User-facing prompts and re-prompts.
const (
	MsgMainMenu        = "Main menu:"
	MsgHabitMenu       = "Welcome to the habit tracker! Choose an action:"
	MsgTaskMenu        = "To-do list. Choose an action:"
	MsgChooseOption    = "Please choose a menu option."
	MsgPromptCity      = "Enter a city for the weather forecast:"
	MsgEmptyCity       = "City name cannot be empty. Enter a city:"
	MsgPromptHotelCity = "Enter a city for the hotel search:"
	MsgPromptCheckIn   = "Enter the check-in date (day.month, e.g. 15.05):"
	MsgBadCheckIn      = "Invalid date format. Enter the date as day.month (e.g. 15.05):"
	MsgPromptPrice     = "Enter an approximate price per night:"
	MsgBadPrice        = "The price must be a number greater than zero. Enter the price per night:"
	MsgPromptHabitName = "Enter the habit name:"
	MsgEmptyHabitName  = "The habit name cannot be empty. Enter the habit name:"
	MsgPromptHabitDesc = "Enter the habit description:"
	MsgEmptyHabitDesc  = "The description cannot be empty. Enter the habit description:"
	MsgPromptTask      = "Enter the task as: <text>, <category>\nExample: Buy milk, groceries"
	MsgBadTask         = "Invalid format. Example: Buy milk, groceries"
)

// menuDispatch maps a menu literal to its transition. Literals always
// win over a pending question: this is what lets "Return to main menu"
// escape any flow and keeps button presses from being swallowed as
// answers.
func menuDispatch(text string) (Pending, []Effect, bool) {
	switch text {
	case BtnWeather:
		return AwaitWeatherCity{}, []Effect{SendMenu{Text: MsgPromptCity, Menu: MenuCancel}}, true
	case BtnHotels:
		return AwaitHotelCity{}, []Effect{SendMenu{Text: MsgPromptHotelCity, Menu: MenuCancel}}, true
	case BtnHabits:
		return nil, []Effect{SendMenu{Text: MsgHabitMenu, Menu: MenuHabits}}, true
	case BtnTodo:
		return nil, []Effect{SendMenu{Text: MsgTaskMenu, Menu: MenuTasks}}, true
	case BtnCurrency:
		return nil, []Effect{CallCurrency{}}, true
	case BtnAddHabit:
		return AwaitHabitName{}, []Effect{SendMenu{Text: MsgPromptHabitName, Menu: MenuCancel}}, true
	case BtnMyHabits:
		return nil, []Effect{ShowHabits{}}, true
	case BtnAddTask:
		return AwaitTaskText{}, []Effect{SendMenu{Text: MsgPromptTask, Menu: MenuCancel}}, true
	case BtnMyTasks:
		return nil, []Effect{ShowActiveTasks{}}, true
	case BtnDoneTasks:
		return nil, []Effect{ShowCompletedTasks{}}, true
	case BtnMainMenu, BtnCancel:
		return nil, []Effect{SendMenu{Text: MsgMainMenu, Menu: MenuMain}}, true
	}
	return nil, nil, false
}

// Transition interprets one incoming text against the current pending
// question. Precedence: menu literal, then pending answer, then the
// static fallback. It is pure: all I/O is expressed as effects.
func Transition(p Pending, text string) (Pending, []Effect) {
	if next, effects, ok := menuDispatch(strings.TrimSpace(text)); ok {
		return next, effects
	}

	switch st := p.(type) {
	case AwaitWeatherCity:
		city := strings.TrimSpace(text)
		if city == "" {
			return st, []Effect{SendText{Text: MsgEmptyCity}}
		}
		return nil, []Effect{CallWeather{City: city}}

	case AwaitHotelCity:
		city := strings.TrimSpace(text)
		if city == "" {
			return st, []Effect{SendText{Text: MsgEmptyCity}}
		}
		return AwaitHotelCheckIn{City: city}, []Effect{SendText{Text: MsgPromptCheckIn}}

	case AwaitHotelCheckIn:
		checkIn, err := ParseCheckIn(text)
		if err != nil {
			return st, []Effect{SendText{Text: MsgBadCheckIn}}
		}
		return AwaitHotelPrice{City: st.City, CheckIn: checkIn},
			[]Effect{SendText{Text: MsgPromptPrice}}

	case AwaitHotelPrice:
		price, err := ParsePrice(text)
		if err != nil {
			return st, []Effect{SendText{Text: MsgBadPrice}}
		}
		return nil, []Effect{CallHotelSearch{City: st.City, CheckIn: st.CheckIn, Price: price}}

	case AwaitHabitName:
		name := strings.TrimSpace(text)
		if name == "" {
			return st, []Effect{SendText{Text: MsgEmptyHabitName}}
		}
		return AwaitHabitDescription{HabitName: name}, []Effect{SendText{Text: MsgPromptHabitDesc}}

	case AwaitHabitDescription:
		desc := strings.TrimSpace(text)
		if desc == "" {
			return st, []Effect{SendText{Text: MsgEmptyHabitDesc}}
		}
		return nil, []Effect{PersistHabit{Name: st.HabitName, Description: desc}}

	case AwaitTaskText:
		taskText, category, err := SplitTask(text)
		if err != nil {
			return st, []Effect{SendText{Text: MsgBadTask}}
		}
		return nil, []Effect{PersistTask{Text: taskText, Category: category}}
	}

	return p, []Effect{SendText{Text: MsgChooseOption}}
}
