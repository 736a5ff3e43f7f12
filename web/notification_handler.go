package web

import (
	"net/http"

	"github.com/morsafarhq/morsafar/types"
)

func (h *Handler) notifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in types.ListNotifications
	in.SetActor(actorFrom(ctx))

	nn, err := h.Service.Notifications(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	if nn == nil {
		nn = []types.Notification{} // non null array
	}

	h.respond(w, nn, http.StatusOK)
}

func (h *Handler) readNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := types.ReadNotification{NotificationID: r.PathValue("notificationID")}
	in.SetActor(actorFrom(ctx))

	if err := h.Service.ReadNotification(ctx, in); err != nil {
		h.respondErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
