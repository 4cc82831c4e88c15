package handlers

import (
	"errors"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"assistbot/core/logger"
	"assistbot/core/telegram/netutil"
)

// OnError is the bot-wide error sink. Handlers already sent their one
// user-facing reply before returning, so this only classifies and logs.
// Users who blocked the bot and transient network hiccups are demoted
// to debug noise.
func (h *Handlers) OnError(err error, c tele.Context) {
	if err == nil {
		return
	}

	if errors.Is(err, tele.ErrBlockedByUser) || errors.Is(err, tele.ErrUserIsDeactivated) {
		logger.TG.Debug("recipient gone",
			slog.String("event", "tg.error"),
			slog.String("err", err.Error()),
		)
		return
	}
	if netutil.ShouldRetry(err) {
		logger.TG.Debug("transient network error",
			slog.String("event", "tg.error"),
			slog.Bool("retryable", true),
			slog.String("err", err.Error()),
		)
		return
	}

	attrs := []any{
		slog.String("event", "tg.error"),
		slog.String("err", err.Error()),
	}
	if c != nil && c.Sender() != nil {
		attrs = append(attrs, slog.Int64("tg_user_id", c.Sender().ID))
	}
	logger.TG.Error("handler error", attrs...)
}
