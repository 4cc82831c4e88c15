package handlers

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"assistbot/core/logger"
	tghelpers "assistbot/core/telegram/helpers"
)

// ActivityMiddleware records the user on every update and bumps
// last_activity before the handler runs. Store failures are logged and
// do not block the update.
func (h *Handlers) ActivityMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender != nil {
			ctx := tghelpers.BuildContext(c)
			if _, err := h.users.GetOrCreate(ctx, sender.ID, profileOf(sender)); err != nil {
				logger.SVCUsers.Warn("activity update failed",
					slog.String("event", "users.activity"),
					slog.Int64("tg_user_id", sender.ID),
					slog.String("err", err.Error()),
				)
			}
		}
		return next(c)
	}
}
