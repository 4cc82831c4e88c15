// Package handlers binds the conversation state machine, providers and
// repositories to Telegram updates.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"assistbot/bot/apperr"
	"assistbot/bot/config"
	"assistbot/bot/currency"
	"assistbot/bot/history"
	"assistbot/bot/hotels"
	"assistbot/bot/session"
	"assistbot/bot/storage"
	"assistbot/bot/weather"
	"assistbot/core/logger"
	"assistbot/core/telegram/format"
	tghelpers "assistbot/core/telegram/helpers"
)

// Handlers aggregates everything the update handlers need.
type Handlers struct {
	cfg      *config.Config
	sessions *session.Manager
	users    *storage.Users
	tasks    *storage.Tasks
	habits   *storage.Habits
	weather  *weather.Client
	hotels   *hotels.Client
	currency *currency.Client
	history  *history.Log
}

// Deps lists the constructor dependencies explicitly.
type Deps struct {
	Config   *config.Config
	Sessions *session.Manager
	Users    *storage.Users
	Tasks    *storage.Tasks
	Habits   *storage.Habits
	Weather  *weather.Client
	Hotels   *hotels.Client
	Currency *currency.Client
	History  *history.Log
}

// New constructs the handler set.
func New(d Deps) *Handlers {
	return &Handlers{
		cfg:      d.Config,
		sessions: d.Sessions,
		users:    d.Users,
		tasks:    d.Tasks,
		habits:   d.Habits,
		weather:  d.Weather,
		hotels:   d.Hotels,
		currency: d.Currency,
		history:  d.History,
	}
}

// Conversation handles every plain-text message: it runs one transition
// under the per-user lock and then applies the resulting effects in
// order. Provider calls happen outside the lock so a slow lookup cannot
// swallow the user's next button press.
func (h *Handlers) Conversation(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	user, err := h.users.GetOrCreate(ctx, sender.ID, profileOf(sender))
	if err != nil {
		return h.replyFailure(c, err)
	}

	effects := h.sessions.Do(sender.ID, func(p session.Pending) (session.Pending, []session.Effect) {
		return session.Transition(p, c.Text())
	})

	for _, e := range effects {
		if err := h.apply(ctx, c, user, e); err != nil {
			return err
		}
	}
	return nil
}

// UnknownText replies when no conversation handler is wired. With the
// conversation route installed this is unreachable, but the registry
// requires a fallback.
func (h *Handlers) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, session.MsgChooseOption,
			&tele.SendOptions{ReplyMarkup: MenuMarkup(session.MenuMain)})
	}
}

// UnknownDocument is the route for non-text attachments.
func (h *Handlers) UnknownDocument() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, "I can only work with text messages. Use the menu below.",
			&tele.SendOptions{ReplyMarkup: MenuMarkup(session.MenuMain)})
	}
}

// UnknownCallback answers taps on buttons from retired messages.
func (h *Handlers) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "This button is no longer active."})
	}
}

func (h *Handlers) apply(ctx context.Context, c tele.Context, user storage.User, e session.Effect) error {
	switch e := e.(type) {
	case session.SendText:
		return tghelpers.SendText(c, e.Text)

	case session.SendMenu:
		return tghelpers.SendText(c, e.Text, &tele.SendOptions{ReplyMarkup: MenuMarkup(e.Menu)})

	case session.CallWeather:
		return h.doWeather(ctx, c, user, e.City)

	case session.CallHotelSearch:
		return h.doHotelSearch(ctx, c, user, e)

	case session.CallCurrency:
		return h.doCurrency(ctx, c)

	case session.PersistHabit:
		if _, err := h.habits.Add(ctx, user.ID, e.Name, e.Description); err != nil {
			return h.replyFailure(c, err)
		}
		return tghelpers.SendText(c, fmt.Sprintf("Habit %q added!", e.Name),
			&tele.SendOptions{ReplyMarkup: MenuMarkup(session.MenuHabits)})

	case session.PersistTask:
		if _, err := h.tasks.Create(ctx, user.ID, e.Text, e.Category); err != nil {
			return h.replyFailure(c, err)
		}
		return tghelpers.SendText(c, fmt.Sprintf("Task added to %q.", e.Category),
			&tele.SendOptions{ReplyMarkup: MenuMarkup(session.MenuTasks)})

	case session.ShowHabits:
		list, err := h.habits.List(ctx, user.ID)
		if err != nil {
			return h.replyFailure(c, err)
		}
		return tghelpers.SendMD(c, renderHabits(list), MenuMarkup(session.MenuHabits))

	case session.ShowActiveTasks:
		return h.showActiveTasks(ctx, c, user)

	case session.ShowCompletedTasks:
		list, err := h.tasks.Completed(ctx, user.ID)
		if err != nil {
			return h.replyFailure(c, err)
		}
		return tghelpers.SendMD(c, renderCompletedTasks(list), MenuMarkup(session.MenuTasks))
	}

	logger.TG.Warn("unhandled effect",
		slog.String("event", "conversation.apply"),
		slog.String("kind", fmt.Sprintf("%T", e)),
	)
	return nil
}

func (h *Handlers) doWeather(ctx context.Context, c tele.Context, user storage.User, city string) error {
	ctx, cancel := context.WithTimeout(ctx, h.cfg.ProviderTimeout())
	defer cancel()

	report, err := h.weather.Fetch(ctx, city)
	if err != nil {
		return h.replyFailure(c, err)
	}
	h.audit(history.Entry{
		UserName: displayName(user),
		Kind:     "weather",
		Query:    city,
		Result:   historyWeatherResult(report),
	})
	return tghelpers.SendMD(c, renderWeather(report), MenuMarkup(session.MenuMain))
}

func (h *Handlers) doHotelSearch(ctx context.Context, c tele.Context, user storage.User, e session.CallHotelSearch) error {
	ctx, cancel := context.WithTimeout(ctx, h.cfg.ProviderTimeout())
	defer cancel()

	list, err := h.hotels.Search(ctx, e.City, e.CheckIn, e.Price)
	if err != nil {
		return h.replyFailure(c, err)
	}
	h.audit(history.Entry{
		UserName: displayName(user),
		Kind:     "hotels",
		Query:    fmt.Sprintf("%s, %s, %.0f", e.City, e.CheckIn, e.Price),
		Result:   historyHotelsResult(list),
	})
	return tghelpers.SendMD(c, renderHotels(e.City, list), MenuMarkup(session.MenuMain))
}

func (h *Handlers) doCurrency(ctx context.Context, c tele.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.cfg.ProviderTimeout())
	defer cancel()

	rates, err := h.currency.Fetch(ctx)
	if err != nil {
		return h.replyFailure(c, err)
	}
	return tghelpers.SendMD(c, renderRates(rates), MenuMarkup(session.MenuMain))
}

func (h *Handlers) showActiveTasks(ctx context.Context, c tele.Context, user storage.User) error {
	list, err := h.tasks.Active(ctx, user.ID)
	if err != nil {
		return h.replyFailure(c, err)
	}
	if len(list) == 0 {
		return tghelpers.SendText(c, renderActiveTasks(list),
			&tele.SendOptions{ReplyMarkup: MenuMarkup(session.MenuTasks)})
	}

	ids := make([]int64, len(list))
	labels := make([]string, len(list))
	for i, t := range list {
		ids[i] = t.ID
		labels[i] = "✅ " + strconv.Itoa(i+1) + ". " + truncate(t.Text, 24)
	}
	return tghelpers.SendMD(c, renderActiveTasks(list), taskListMarkup(ids, labels))
}

// audit appends to the lookup history; failures are logged and dropped
// so auditing never breaks the user's request.
func (h *Handlers) audit(e history.Entry) {
	if h.history == nil {
		return
	}
	if err := h.history.Append(e); err != nil {
		logger.SVCHistory.Warn("append dropped",
			slog.String("event", "history.append"),
			slog.String("kind", e.Kind),
			slog.String("err", err.Error()),
		)
	}
}

// replyFailure maps an error to the single user-facing reply allowed
// per failed flow and returns the error for the summary log.
func (h *Handlers) replyFailure(c tele.Context, err error) error {
	var svcErr *apperr.ServiceError
	msg := "Something went wrong on our side. Please try again later."
	if errors.As(err, &svcErr) {
		msg = svcErr.UserMessage()
	}
	_ = tghelpers.SendText(c, msg, &tele.SendOptions{ReplyMarkup: MenuMarkup(session.MenuMain)})
	return err
}

func profileOf(sender *tele.User) storage.Profile {
	return storage.Profile{
		FirstName: sender.FirstName,
		LastName:  optString(sender.LastName),
		Username:  optString(sender.Username),
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func displayName(u storage.User) string {
	if un := format.DerefString(u.Username, ""); un != "" {
		return fmt.Sprintf("%s (@%s)", u.FirstName, un)
	}
	return u.FirstName
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
