package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"warehouse/internal/middleware/auth"
	"warehouse/internal/mykafka"
	"warehouse/internal/repository"
	"warehouse/internal/service"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Producer *mykafka.Producer
}

type credentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role"     form:"role"`
}

// CreateCookie builds the token cookie. Secure mirrors whether the request
// arrived over TLS.
func CreateCookie(value string, exp time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, credentialsRequest{})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	if errs := validateCredentials(&req); len(errs) > 0 {
		return validationResponse(c, errs)
	}

	user, err := h.Auth.Register(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserExists):
			return c.JSON(http.StatusConflict, map[string]any{
				"status": "error",
				"errors": map[string]string{"username": "username is already taken"},
			})
		case errors.Is(err, service.ErrInvalidRole):
			return validationResponse(c, map[string]string{"role": err.Error()})
		default:
			return errorResponse(c, http.StatusInternalServerError, "could not register user")
		}
	}

	h.publish(c, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.Redirect(http.StatusSeeOther, "/Auth/Login")
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, credentialsRequest{})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid request body")
	}

	result, err := h.Auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return errorResponse(c, http.StatusUnauthorized, "invalid username or password")
		}
		return errorResponse(c, http.StatusInternalServerError, "could not log in")
	}

	secure := c.Request().TLS != nil
	c.SetCookie(CreateCookie(result.Token, result.ExpiresAt, secure))

	h.publish(c, map[string]any{
		"type":     "user_logged_in",
		"userID":   result.User.ID,
		"username": result.User.Username,
	})

	return c.Redirect(http.StatusSeeOther, "/Product/Index")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	secure := c.Request().TLS != nil
	c.SetCookie(DeleteCookie(secure))
	return c.JSON(http.StatusOK, Response{
		Status:  "ok",
		Message: "logged out",
	})
}

func validateCredentials(req *credentialsRequest) map[string]string {
	errs := map[string]string{}
	if req.Username == "" {
		errs["username"] = "username is required"
	}
	if req.Password == "" {
		errs["password"] = "password is required"
	}
	return errs
}
