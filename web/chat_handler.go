package web

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/morsafarhq/morsafar/types"
)

func (h *Handler) getOrCreateConversation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var reqBody struct {
		GroupID   string              `json:"groupID"`
		BookingID string              `json:"bookingID"`
		Roster    []types.RosterEntry `json:"roster"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		h.respondErr(w, errBadRequest)
		return
	}

	ctx := r.Context()
	in := types.GetOrCreateConversation{
		GroupID:   reqBody.GroupID,
		BookingID: reqBody.BookingID,
		Roster:    reqBody.Roster,
	}
	in.SetActor(actorFrom(ctx))

	out, err := h.Service.GetOrCreateConversation(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusOK)
}

func (h *Handler) conversation(w http.ResponseWriter, r *http.Request) {
	if wantsSSE(r) {
		h.conversationStream(w, r)
		return
	}

	ctx := r.Context()
	in := types.RetrieveConversation{ConversationID: r.PathValue("conversationID")}
	in.SetActor(actorFrom(ctx))

	out, err := h.Service.Conversation(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusOK)
}

func (h *Handler) conversationStream(w http.ResponseWriter, r *http.Request) {
	f, ok := w.(http.Flusher)
	if !ok {
		h.respondErr(w, errStreamingUnsupported)
		return
	}

	ctx := r.Context()
	in := types.RetrieveConversation{ConversationID: r.PathValue("conversationID")}
	in.SetActor(actorFrom(ctx))

	cc, err := h.Service.ConversationStream(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	writeSSEHeaders(w)

	for {
		select {
		case c, ok := <-cc:
			if !ok {
				return
			}

			h.writeSSE(w, c)
			f.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func (h *Handler) messages(w http.ResponseWriter, r *http.Request) {
	if wantsSSE(r) {
		h.messageStream(w, r)
		return
	}

	ctx := r.Context()
	in := types.ListMessages{ConversationID: r.PathValue("conversationID")}
	in.SetActor(actorFrom(ctx))

	mm, err := h.Service.Messages(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	if mm == nil {
		mm = []types.Message{} // non null array
	}

	h.respond(w, mm, http.StatusOK)
}

func (h *Handler) messageStream(w http.ResponseWriter, r *http.Request) {
	f, ok := w.(http.Flusher)
	if !ok {
		h.respondErr(w, errStreamingUnsupported)
		return
	}

	ctx := r.Context()
	in := types.ListMessages{ConversationID: r.PathValue("conversationID")}
	in.SetActor(actorFrom(ctx))

	mm, err := h.Service.MessageStream(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	writeSSEHeaders(w)

	for {
		select {
		case msgs, ok := <-mm:
			if !ok {
				return
			}

			if msgs == nil {
				msgs = []types.Message{} // non null array
			}

			h.writeSSE(w, msgs)
			f.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var reqBody struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		h.respondErr(w, errBadRequest)
		return
	}

	ctx := r.Context()
	in := types.SendMessage{
		ConversationID: r.PathValue("conversationID"),
		Body:           reqBody.Body,
	}
	in.SetActor(actorFrom(ctx))

	out, err := h.Service.SendMessage(ctx, in)
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respond(w, out, http.StatusCreated)
}

func (h *Handler) markConversationRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := types.MarkConversationRead{ConversationID: r.PathValue("conversationID")}
	in.SetActor(actorFrom(ctx))

	if err := h.Service.MarkConversationRead(ctx, in); err != nil {
		h.respondErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func wantsSSE(r *http.Request) bool {
	a, _, err := mime.ParseMediaType(r.Header.Get("Accept"))
	return err == nil && a == "text/event-stream"
}

func writeSSEHeaders(w http.ResponseWriter) {
	header := w.Header()
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("Content-Type", "text/event-stream; charset=utf-8")
}
