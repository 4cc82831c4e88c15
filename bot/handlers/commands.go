package handlers

import (
	"fmt"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"assistbot/bot/session"
	"assistbot/core/logger"
	tg "assistbot/core/telegram"
	"assistbot/core/telegram/commands"
	tghelpers "assistbot/core/telegram/helpers"
)

// Register wires commands, the callback handler and the text fallback
// into the registry.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Start the bot and show the main menu",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.Help,
		Description: "What this bot can do",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     h.Stats,
		Description: "Usage counters",
		AdminOnly:   true,
		Hidden:      true,
	})

	if err := reg.RegisterCallback(taskDoneAction, h.TaskDone); err != nil {
		logger.TWire.Warn("callback registration failed",
			slog.String("event", "register"),
			slog.String("err", err.Error()),
		)
	}
}

// Start greets the user, stores the account and resets any pending
// conversation.
func (h *Handlers) Start(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	user, err := h.users.GetOrCreate(ctx, sender.ID, profileOf(sender))
	if err != nil {
		return h.replyFailure(c, err)
	}
	h.sessions.Reset(sender.ID)

	if h.cfg.WelcomePhoto != "" {
		photo := &tele.Photo{File: tele.FromDisk(h.cfg.WelcomePhoto)}
		if err := c.Send(photo); err != nil {
			logger.TG.Warn("welcome photo skipped",
				slog.String("event", "start"),
				slog.String("err", err.Error()),
			)
		}
	}

	greeting := fmt.Sprintf("Hi, %s! I can fetch the weather, find hotels, track habits and keep your to-do list.", user.FirstName)
	return tghelpers.SendText(c, greeting, &tele.SendOptions{ReplyMarkup: MenuMarkup(session.MenuMain)})
}

// Help describes the menu options and commands.
func (h *Handlers) Help(c tele.Context) error {
	var b strings.Builder
	b.WriteString("*What I can do:*\n\n")
	fmt.Fprintf(&b, "%s: current weather for any city\n", session.BtnWeather)
	fmt.Fprintf(&b, "%s: offers around your price per night\n", session.BtnHotels)
	fmt.Fprintf(&b, "%s: build and review your habits\n", session.BtnHabits)
	fmt.Fprintf(&b, "%s: tasks with categories and completion\n", session.BtnTodo)
	fmt.Fprintf(&b, "%s: today's USD and EUR rates\n", session.BtnCurrency)
	b.WriteString("\nCommands:\n/start: show the main menu\n/help: this message")
	return tghelpers.SendMD(c, b.String(), MenuMarkup(session.MenuMain))
}

// Stats reports usage counters. Admin-only, hidden from the command menu.
func (h *Handlers) Stats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	userCount, err := h.users.Count(ctx)
	if err != nil {
		return h.replyFailure(c, err)
	}
	taskStats, err := h.tasks.GlobalStats(ctx)
	if err != nil {
		return h.replyFailure(c, err)
	}

	text := fmt.Sprintf("*Stats*\n\nUsers: %d\nTasks: %d (%d done, %d active)",
		userCount, taskStats.Total, taskStats.Done, taskStats.Active)
	return tghelpers.SendMD(c, text)
}
