// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	uierrors "github.com/dalemusser/luctportal/internal/app/features/errors"
	"github.com/dalemusser/luctportal/internal/app/features/shared"
	"github.com/dalemusser/luctportal/internal/app/system/auth"
	"github.com/dalemusser/luctportal/internal/app/system/storeclient"
	"github.com/dalemusser/luctportal/internal/app/system/submission"
	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
	"github.com/dalemusser/luctportal/internal/app/system/validation"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// Messages shown on the login and registration forms.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgServerError        = "Server error"
	MsgUnableToRegister   = "Unable to register"
)

// Authenticator checks credentials against the store.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (models.User, error)
}

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, f submission.RegisterForm) (models.User, error)
}

type Handler struct {
	Auth       Authenticator
	Registrar  Registrar
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(a Authenticator, reg Registrar, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Auth: a, Registrar: reg, SessionMgr: sessionMgr, ErrLog: errLog, Log: logger}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signedIn struct {
	User      models.User `json:"user"`
	Dashboard string      `json:"dashboard"`
}

// HandleLogin handles POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !shared.DecodeJSON(w, r, &in) {
		return
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		uierrors.Message(w, http.StatusUnauthorized, MsgInvalidCredentials)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "login")
	defer cancel()

	user, err := h.Auth.Authenticate(ctx, email, in.Password)
	if errors.Is(err, storeclient.ErrInvalidCredentials) {
		h.Log.Info("login rejected", zap.String("email", email))
		uierrors.Message(w, http.StatusUnauthorized, MsgInvalidCredentials)
		return
	}
	if err != nil {
		if re, ok := storeclient.AsRemote(err); ok && re.Status == http.StatusTooManyRequests {
			uierrors.Message(w, http.StatusTooManyRequests, re.Reason())
			return
		}
		h.ErrLog.Log(r, "login: store error", err)
		uierrors.Message(w, http.StatusBadGateway, MsgServerError)
		return
	}

	h.signIn(w, r, http.StatusOK, user)
}

// HandleRegister handles POST /register. A new account is signed in
// straight away.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var form submission.RegisterForm
	if !shared.DecodeJSON(w, r, &form) {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "register")
	defer cancel()

	user, err := h.Registrar.Register(ctx, form)
	if err != nil {
		if ve, ok := validation.As(err); ok {
			uierrors.WriteJSON(w, http.StatusUnprocessableEntity, uierrors.Body{Message: MsgUnableToRegister, Fields: ve.Fields})
			return
		}
		if storeclient.IsConflict(err) {
			uierrors.Message(w, http.StatusConflict, storeclient.Reason(err))
			return
		}
		h.ErrLog.Log(r, "register: store error", err)
		uierrors.Message(w, http.StatusBadGateway, MsgUnableToRegister)
		return
	}

	h.Log.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	h.signIn(w, r, http.StatusCreated, user)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, status int, user models.User) {
	user = user.Public()
	if err := h.SessionMgr.SignIn(w, r, user); err != nil {
		h.ErrLog.Log(r, "save session", err)
		uierrors.Message(w, http.StatusInternalServerError, MsgServerError)
		return
	}
	uierrors.WriteJSON(w, status, signedIn{User: user, Dashboard: auth.DashboardPath(user.Role)})
}

// ServeMe handles GET /me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u := shared.User(r)
	uierrors.WriteJSON(w, http.StatusOK, struct {
		*auth.SessionUser
		Dashboard string `json:"dashboard"`
	}{u, auth.DashboardPath(u.Role)})
}
