// Package user serves account registration and login.
package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/neofin-server/internal/auth"
	"github.com/carson-networks/neofin-server/internal/handlers/v1/respond"
	"github.com/carson-networks/neofin-server/internal/logging"
	"github.com/carson-networks/neofin-server/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*service.Session, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
}

func RegisterAll(api huma.API, svc AuthService) {
	NewRegisterHandler(svc).Register(api)
	NewLoginHandler(svc).Register(api)
}

type User struct {
	ID    string `json:"id" doc:"User UUID"`
	Email string `json:"email"`
}

type CredentialsInput struct {
	Body struct {
		Email    string `json:"email" minLength:"3" maxLength:"254"`
		Password string `json:"password" minLength:"1" maxLength:"72"`
	}
}

type SessionOutput struct {
	Body struct {
		Success bool   `json:"success"`
		Token   string `json:"token" doc:"Bearer token for the Authorization header"`
		User    User   `json:"user"`
	}
}

func toSessionOutput(session *service.Session) *SessionOutput {
	out := &SessionOutput{}
	out.Body.Success = true
	out.Body.Token = session.Token
	out.Body.User = User{ID: session.User.ID, Email: session.User.Email}
	return out
}

type RegisterHandler struct {
	AuthService AuthService
}

func NewRegisterHandler(svc AuthService) *RegisterHandler {
	return &RegisterHandler{AuthService: svc}
}

func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register-user",
		Method:        http.MethodPost,
		Path:          "/api/auth/register",
		Summary:       "Create an account",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
		Metadata:      map[string]any{auth.PublicMetadataKey: true},
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *CredentialsInput) (*SessionOutput, error) {
	var session *service.Session
	err := logging.Timed(logging.GetLogData(ctx), "registerUserMs", func() (err error) {
		session, err = h.AuthService.Register(ctx, input.Body.Email, input.Body.Password)
		return err
	})
	if errors.Is(err, service.ErrConflict) {
		return nil, respond.NewError(http.StatusConflict, "Email already registered")
	}
	if err != nil {
		return nil, respond.FromService(ctx, err, "Not Found")
	}
	return toSessionOutput(session), nil
}

type LoginHandler struct {
	AuthService AuthService
}

func NewLoginHandler(svc AuthService) *LoginHandler {
	return &LoginHandler{AuthService: svc}
}

func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login-user",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Sign in",
		Tags:        []string{"Auth"},
		Metadata:    map[string]any{auth.PublicMetadataKey: true},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *CredentialsInput) (*SessionOutput, error) {
	var session *service.Session
	err := logging.Timed(logging.GetLogData(ctx), "loginUserMs", func() (err error) {
		session, err = h.AuthService.Login(ctx, input.Body.Email, input.Body.Password)
		return err
	})
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return nil, respond.NewError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return nil, respond.FromService(ctx, err, "Not Found")
	}
	return toSessionOutput(session), nil
}
