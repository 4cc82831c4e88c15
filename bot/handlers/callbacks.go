package handlers

import (
	"context"
	"errors"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"assistbot/bot/storage"
	"assistbot/core/telegram/callbacks"
	tghelpers "assistbot/core/telegram/helpers"
)

// TaskDone completes the task named in the callback payload and
// refreshes the task list message in place.
func (h *Handlers) TaskDone(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	taskID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Broken button, open the list again."})
	}

	user, err := tghelpers.CurrentUser[storage.User](ctx, h.users, sender.ID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Send /start first."})
		}
		return h.replyFailure(c, err)
	}

	err = h.tasks.Complete(ctx, user.ID, taskID)
	if errors.Is(err, storage.ErrTaskNotFound) {
		// Already done or someone else's button. A toast is enough.
		return c.Respond(&tele.CallbackResponse{Text: "That task is already completed."})
	}
	if err != nil {
		return h.replyFailure(c, err)
	}

	_ = c.Respond(&tele.CallbackResponse{Text: "Task completed!"})
	return h.refreshActiveTasks(ctx, c, user)
}

// refreshActiveTasks edits the tapped list message to the current
// state, so stale "done" buttons disappear after each completion.
func (h *Handlers) refreshActiveTasks(ctx context.Context, c tele.Context, user storage.User) error {
	list, err := h.tasks.Active(ctx, user.ID)
	if err != nil {
		return h.replyFailure(c, err)
	}

	if len(list) == 0 {
		return tghelpers.EditMD(c, renderActiveTasks(list))
	}

	ids := make([]int64, len(list))
	labels := make([]string, len(list))
	for i, t := range list {
		ids[i] = t.ID
		labels[i] = "✅ " + strconv.Itoa(i+1) + ". " + truncate(t.Text, 24)
	}
	return tghelpers.EditMD(c, renderActiveTasks(list), taskListMarkup(ids, labels))
}
