package handlers

import (
	"strconv"

	tele "gopkg.in/telebot.v4"

	"assistbot/bot/session"
	"assistbot/core/telegram/keyboard"
)

// MenuMarkup maps a session menu to its reply keyboard. Button labels
// come from the session package so dispatch and rendering cannot drift.
func MenuMarkup(m session.Menu) *tele.ReplyMarkup {
	switch m {
	case session.MenuHabits:
		return keyboard.ReplyButtons(
			[]string{session.BtnAddHabit, session.BtnMyHabits},
			[]string{session.BtnMainMenu},
		)
	case session.MenuTasks:
		return keyboard.ReplyButtons(
			[]string{session.BtnAddTask, session.BtnMyTasks},
			[]string{session.BtnDoneTasks},
			[]string{session.BtnMainMenu},
		)
	case session.MenuCancel:
		return keyboard.ReplyButtons(
			[]string{session.BtnCancel},
		)
	default:
		return keyboard.ReplyButtons(
			[]string{session.BtnWeather, session.BtnHotels},
			[]string{session.BtnHabits, session.BtnTodo},
			[]string{session.BtnCurrency},
		)
	}
}

const taskDoneAction = "task_done"

// taskListMarkup builds one inline "done" button per active task.
func taskListMarkup(ids []int64, labels []string) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(ids))
	for i, id := range ids {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   labels[i],
			Unique: taskDoneAction,
			Data:   strconv.FormatInt(id, 10),
		})
	}
	return keyboard.InlineButtons(buttons)
}
