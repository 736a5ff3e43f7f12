package web

import (
	"encoding/json"
	"net/http"

	"github.com/morsafarhq/morsafar/types"
)

func (h *Handler) friendCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.Service.FriendCode(ctx, actorFrom(ctx))
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusOK)
}

func (h *Handler) generateFriendCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.Service.GenerateFriendCode(ctx, actorFrom(ctx))
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusOK)
}

func (h *Handler) sendFriendRequest(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var reqBody struct {
		FriendCode string `json:"friendCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		h.respondErr(w, errBadRequest)
		return
	}

	ctx := r.Context()
	in := types.SendFriendRequest{Code: reqBody.FriendCode}
	in.SetActor(actorFrom(ctx))

	out, err := h.Service.SendFriendRequest(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusCreated)
}

func (h *Handler) acceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := types.ReviewFriendRequest{FriendshipID: r.PathValue("friendshipID")}
	in.SetActor(actorFrom(ctx))

	out, err := h.Service.AcceptFriendRequest(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusOK)
}

func (h *Handler) rejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := types.ReviewFriendRequest{FriendshipID: r.PathValue("friendshipID")}
	in.SetActor(actorFrom(ctx))

	out, err := h.Service.RejectFriendRequest(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusOK)
}

func (h *Handler) removeFriendship(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := types.RemoveFriendship{FriendshipID: r.PathValue("friendshipID")}
	in.SetActor(actorFrom(ctx))

	if err := h.Service.RemoveFriendship(ctx, in); err != nil {
		h.respondErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) friends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ff, err := h.Service.Friends(ctx, actorFrom(ctx))
	if err != nil {
		h.respondErr(w, err)
		return
	}

	if ff == nil {
		ff = []types.Friend{} // non null array
	}

	h.respond(w, ff, http.StatusOK)
}

func (h *Handler) pendingFriendRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ff, err := h.Service.PendingFriendRequests(ctx, actorFrom(ctx))
	if err != nil {
		h.respondErr(w, err)
		return
	}

	if ff == nil {
		ff = []types.Friendship{} // non null array
	}

	h.respond(w, ff, http.StatusOK)
}
