// Package authform drives the login and registration form.
package authform

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hongminglow/labubu-portal/internal/feedback"
	"github.com/hongminglow/labubu-portal/internal/models"
	"github.com/hongminglow/labubu-portal/internal/models/dto"
)

// Mode selects which form is shown.
type Mode string

const (
	Login    Mode = "login"
	Register Mode = "register"
)

// MinPasswordLength is enforced locally before registration.
const MinPasswordLength = 6

// DashboardRoute is where a successful submit sends the visitor.
const DashboardRoute = "/dashboard"

// AuthService is the subset of the auth client the form needs.
type AuthService interface {
	Login(ctx context.Context, email, password string) (dto.AuthResult, error)
	Register(ctx context.Context, email, password, phone, name, referralCode string) (dto.AuthResult, error)
}

// SessionSaver persists a successful login.
type SessionSaver interface {
	SaveSession(ctx context.Context, sid, token string, user models.User) error
}

// Fields are the values of both forms. Login uses Email and Password only.
type Fields struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	ReferralCode    string `json:"referral_code"`
}

// State is the renderable form state.
type State struct {
	Mode    Mode              `json:"mode"`
	Loading bool              `json:"loading"`
	Error   *feedback.Message `json:"error,omitempty"`
}

// Controller is the login/registration state machine for one visitor.
type Controller struct {
	auth     AuthService
	sessions SessionSaver
	sid      string
	logger   *zap.Logger

	mode    Mode
	loading bool
	errs    feedback.Reporter
}

func New(auth AuthService, sessions SessionSaver, sid string, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		auth:     auth,
		sessions: sessions,
		sid:      sid,
		logger:   logger,
		mode:     Login,
		errs:     feedback.NewInline(),
	}
}

// SetMode switches between login and registration and clears any error.
func (c *Controller) SetMode(mode Mode) {
	c.mode = mode
	c.errs.Clear()
}

// Toggle flips the mode.
func (c *Controller) Toggle() {
	if c.mode == Login {
		c.SetMode(Register)
		return
	}
	c.SetMode(Login)
}

func (c *Controller) State() State {
	return State{Mode: c.mode, Loading: c.loading, Error: c.errs.Current()}
}

// Submit validates and sends the form for the current mode. It returns the route to
// navigate to, which is empty when the submit failed.
func (c *Controller) Submit(ctx context.Context, f Fields) string {
	c.errs.Clear()

	if c.mode == Register {
		if msg := Validate(f); msg != "" {
			c.errs.Report(msg)
			return ""
		}
	}

	c.loading = true
	defer func() { c.loading = false }()

	var (
		res      dto.AuthResult
		err      error
		fallback string
	)
	if c.mode == Register {
		fallback = feedback.MsgRegisterFailed
		res, err = c.auth.Register(ctx, f.Email, f.Password, f.Phone, f.Name, f.ReferralCode)
	} else {
		fallback = feedback.MsgLoginFailed
		res, err = c.auth.Login(ctx, f.Email, f.Password)
	}
	if err != nil {
		c.logger.Info("auth submit failed", zap.String("mode", string(c.mode)), zap.Error(err))
		c.errs.Report(feedback.Describe(err, fallback))
		return ""
	}
	if res.Token == "" || res.User == nil {
		c.errs.Report(fallback)
		return ""
	}
	if err := c.sessions.SaveSession(ctx, c.sid, res.Token, *res.User); err != nil {
		c.logger.Error("persist session failed", zap.Error(err))
		c.errs.Report(fallback)
		return ""
	}
	return DashboardRoute
}

// Validate applies the registration checks that run before any network call.
// Email, phone, and name are left to the auth service.
func Validate(f Fields) string {
	if f.Password != f.ConfirmPassword {
		return feedback.MsgPasswordMismatch
	}
	if utf8.RuneCountInString(f.Password) < MinPasswordLength {
		return feedback.MsgPasswordTooShort
	}
	return ""
}
