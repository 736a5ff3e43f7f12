package web

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/morsafarhq/morsafar/service"
)

type Handler struct {
	Service *service.Service
	Logger  *slog.Logger

	handler http.Handler
	once    sync.Once
}

func (h *Handler) init() {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/friend-code", h.friendCode)
	mux.HandleFunc("POST /api/friend-code", h.generateFriendCode)
	mux.HandleFunc("POST /api/friend-requests", h.sendFriendRequest)
	mux.HandleFunc("GET /api/friend-requests", h.pendingFriendRequests)
	mux.HandleFunc("POST /api/friend-requests/{friendshipID}/accept", h.acceptFriendRequest)
	mux.HandleFunc("POST /api/friend-requests/{friendshipID}/reject", h.rejectFriendRequest)
	mux.HandleFunc("GET /api/friends", h.friends)
	mux.HandleFunc("DELETE /api/friendships/{friendshipID}", h.removeFriendship)
	mux.HandleFunc("GET /api/notifications", h.notifications)
	mux.HandleFunc("POST /api/notifications/{notificationID}/read", h.readNotification)
	mux.HandleFunc("POST /api/conversations", h.getOrCreateConversation)
	mux.HandleFunc("GET /api/conversations/{conversationID}", h.conversation)
	mux.HandleFunc("GET /api/conversations/{conversationID}/messages", h.messages)
	mux.HandleFunc("POST /api/conversations/{conversationID}/messages", h.sendMessage)
	mux.HandleFunc("POST /api/conversations/{conversationID}/read", h.markConversationRead)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Metrics must wrap the mux directly: the actor middleware hands the
	// mux a clone, and the mux stamps the matched Pattern on whichever
	// request it is given.
	h.handler = mux
	h.handler = h.withMetrics(h.handler)
	h.handler = h.withActor(h.handler)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.once.Do(h.init)
	h.handler.ServeHTTP(w, r)
}
