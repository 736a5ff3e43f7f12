package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/morsafarhq/morsafar/types"
)

// Identity arrives from the gateway that already authenticated the
// request. These headers are trusted; this server must not be exposed
// without that gateway in front.
const (
	headerUserID     = "X-User-Id"
	headerUserName   = "X-User-Name"
	headerUserAvatar = "X-User-Avatar"
)

type ctxKey int

const ctxKeyActor ctxKey = iota

func (h *Handler) withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := types.Actor{
			UserID:      strings.TrimSpace(r.Header.Get(headerUserID)),
			DisplayName: strings.TrimSpace(r.Header.Get(headerUserName)),
		}
		if avatar := strings.TrimSpace(r.Header.Get(headerUserAvatar)); avatar != "" {
			actor.Avatar = &avatar
		}

		ctx := context.WithValue(r.Context(), ctxKeyActor, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFrom(ctx context.Context) types.Actor {
	actor, _ := ctx.Value(ctxKeyActor).(types.Actor)
	return actor
}
