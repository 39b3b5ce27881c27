package http

import (
	"net/http"

	mw "github.com/JohnClaps/heslgbmw-ltrs/internal/adapter/middleware"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/loan"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/transaction"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/user"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/checkout"
	loanUC "github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	loans    *loanUC.Usecase
	checkout *checkout.Service
}

func NewPaymentHandler(loans *loanUC.Usecase, svc *checkout.Service) *PaymentHandler {
	return &PaymentHandler{loans: loans, checkout: svc}
}

type payReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
	Method string  `json:"method" validate:"required,paymethod"`

	PhoneNumber string               `json:"phone_number"`
	Bank        checkout.BankDetails `json:"bank"`
	Card        checkout.CardDetails `json:"card"`
}

// Pay drives one full wizard run for the loan in the path: method
// selection, detail validation, then confirmation and submission to the
// gateway. A validation failure surfaces before anything is charged.
func (h *PaymentHandler) Pay(c echo.Context) error {
	u, ok := mw.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
	}
	var req payReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	loanID := c.Param("loan_id")
	dto, err := h.loans.Get(c.Request().Context(), loanID)
	if err != nil {
		return writeErr(c, err)
	}
	if dto.UserID != u.ID && u.Role != user.RoleAdmin {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	// The ledger re-checks these under the row lock, but checking here
	// means a payment the ledger would refuse is never charged at the
	// gateway first.
	if dto.Status != string(loan.StatusActive) {
		return writeErr(c, loan.ErrNotActive)
	}
	if req.Amount > dto.RemainingBalance {
		return writeErr(c, loan.ErrExceedsBalance)
	}

	session, err := checkout.NewSession(loanID, req.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := session.SelectMethod(transaction.Method(req.Method)); err != nil {
		return writeErr(c, err)
	}
	if err := session.EnterDetails(checkout.Details{
		PhoneNumber: req.PhoneNumber,
		Bank:        req.Bank,
		Card:        req.Card,
	}); err != nil {
		return writeErr(c, err)
	}

	result, err := h.checkout.Submit(c.Request().Context(), session)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// Banks exposes the fixed bank directory the wizard offers for transfers.
func (h *PaymentHandler) Banks(c echo.Context) error {
	return c.JSON(http.StatusOK, checkout.Banks)
}
