package http

import (
	"net/http"

	mw "github.com/JohnClaps/heslgbmw-ltrs/internal/adapter/middleware"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	token, usr, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token, "user": usr})
}

type registerReq struct {
	Email     string `json:"email" validate:"required,email"`
	StudentID string `json:"student_id"`
	Password  string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	usr, err := h.uc.Register(c.Request().Context(), auth.RegisterInput(req))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user":    usr,
		"message": "account activated successfully, you can now log in",
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := mw.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
	}
	return c.JSON(http.StatusOK, u)
}
