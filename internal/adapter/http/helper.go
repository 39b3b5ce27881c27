package http

import (
	"errors"
	"net/http"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/loan"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/auth"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/checkout"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/payment"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// writeErr maps domain errors onto HTTP codes and renders the standard
// {"error": ...} payload.
func writeErr(c echo.Context, err error) error {
	var ve *checkout.ValidationError

	code := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, loan.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		code, msg = http.StatusNotFound, "not found"
	case errors.Is(err, loan.ErrInvalidTransition), errors.Is(err, loan.ErrNotActive):
		code = http.StatusConflict
	case errors.Is(err, loan.ErrExceedsBalance):
		code = http.StatusUnprocessableEntity
	case errors.As(err, &ve):
		code, msg = http.StatusBadRequest, ve.Message
	case errors.Is(err, checkout.ErrDeclined):
		code = http.StatusBadGateway
	case errors.Is(err, checkout.ErrWrongStep), errors.Is(err, checkout.ErrAlreadySubmitted):
		code = http.StatusConflict
	case errors.Is(err, payment.ErrNonPositiveAmount), errors.Is(err, payment.ErrInvalidMethod):
		code = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		code = http.StatusUnauthorized
	case errors.Is(err, auth.ErrUnknownIdentity):
		code = http.StatusNotFound
	}
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(code, map[string]string{"error": msg})
}
