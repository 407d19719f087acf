// internal/app/features/collections/login.go
package collections

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	uierrors "github.com/dalemusser/luctportal/internal/app/features/errors"
	recordstore "github.com/dalemusser/luctportal/internal/app/store/records"
	"github.com/dalemusser/luctportal/internal/app/system/limits"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
)

// Login handles POST /auth/login with {"email", "password"}. It answers 200
// with the user (no password) or 401; it never says which half was wrong.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rec, ok := readRecord(w, r, limits.MaxLoginBody)
	if !ok {
		return
	}
	email, _ := rec["email"].(string)
	password, _ := rec["password"].(string)

	if h.Limiter != nil {
		if msg, allowed := h.Limiter.Check(r, email); !allowed {
			h.Log.Warn("login throttled", zap.String("email", email))
			uierrors.Message(w, http.StatusTooManyRequests, msg)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "login")
	defer cancel()

	user, err := h.Records.Authenticate(ctx, email, password)
	if errors.Is(err, recordstore.ErrInvalidCredentials) {
		uierrors.Message(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		h.fail(w, r, "users", err)
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}
	uierrors.WriteJSON(w, http.StatusOK, user)
}
