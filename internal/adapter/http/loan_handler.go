package http

import (
	"net/http"

	mw "github.com/JohnClaps/heslgbmw-ltrs/internal/adapter/middleware"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/user"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/approval"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct {
	loans     *loan.Usecase
	approvals *approval.Usecase
}

func NewLoanHandler(loans *loan.Usecase, approvals *approval.Usecase) *LoanHandler {
	return &LoanHandler{loans: loans, approvals: approvals}
}

type createLoanReq struct {
	Amount     float64 `json:"amount" validate:"required,gte=50000,lte=2000000,dec2"`
	TermMonths int     `json:"term_months" validate:"required,gte=6,lte=60"`
	Purpose    string  `json:"purpose" validate:"required,purpose"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	u, ok := mw.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.loans.Create(c.Request().Context(), loan.CreateLoanInput{
		UserID:     u.ID,
		Amount:     req.Amount,
		TermMonths: req.TermMonths,
		Purpose:    req.Purpose,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	u, ok := mw.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
	}
	dto, err := h.loans.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	// owners see their own loans; admins see all
	if dto.UserID != u.ID && u.Role != user.RoleAdmin {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListMyLoans(c echo.Context) error {
	u, ok := mw.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
	}
	dtos, err := h.loans.ListForOwner(c.Request().Context(), u.ID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) ListAllLoans(c echo.Context) error {
	dtos, err := h.loans.ListAll(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	dto, err := h.approvals.Approve(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	dto, err := h.approvals.Reject(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
