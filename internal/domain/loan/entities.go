package loan

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

type Purpose string

const (
	PurposeTuition       Purpose = "tuition"
	PurposeBooks         Purpose = "books"
	PurposeAccommodation Purpose = "accommodation"
	PurposeResearch      Purpose = "research"
	PurposeEquipment     Purpose = "equipment"
	PurposeOther         Purpose = "other"
)

// Valid reports whether p is one of the recognized loan purposes.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeTuition, PurposeBooks, PurposeAccommodation,
		PurposeResearch, PurposeEquipment, PurposeOther:
		return true
	}
	return false
}

type Loan struct {
	ID               uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	UserID           uint64         `gorm:"column:user_id;index:idx_loans_user" json:"user_id"`
	Principal        float64        `gorm:"type:decimal(18,2)" json:"principal"`
	RemainingBalance float64        `gorm:"type:decimal(18,2);column:remaining_balance" json:"remaining_balance"`
	TermMonths       int            `gorm:"column:term_months" json:"term_months"`
	AnnualRate       float64        `gorm:"type:decimal(6,2);column:annual_rate" json:"annual_rate"`
	Purpose          Purpose        `gorm:"size:16" json:"purpose"`
	Status           Status         `gorm:"type:enum('pending','active','completed','rejected');default:'pending'" json:"status"`
	StartDate        *time.Time     `gorm:"column:start_date" json:"start_date,omitempty"`
	LastPaymentDate  *time.Time     `gorm:"column:last_payment_date" json:"last_payment_date,omitempty"`
	StatusUpdatedAt  time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// WithBorrower is the admin read model: a loan joined with its borrower.
type WithBorrower struct {
	Loan
	BorrowerName string `json:"borrower_name"`
	StudentID    string `json:"student_id"`
}

// PortfolioStats are the global aggregates shown on the admin dashboard.
type PortfolioStats struct {
	TotalLoans      int64   `json:"total_loans"`
	ActiveBorrowers int64   `json:"active_borrowers"`
	TotalDisbursed  float64 `json:"total_disbursed"`
	ActiveLoans     int64   `json:"active_loans"`
	PendingLoans    int64   `json:"pending_loans"`
	CompletedLoans  int64   `json:"completed_loans"`
}

// BorrowerStats are the per-borrower aggregates shown on the student dashboard.
type BorrowerStats struct {
	TotalBorrowed      float64 `json:"total_borrowed"`
	OutstandingBalance float64 `json:"outstanding_balance"`
	TotalLoans         int64   `json:"total_loans"`
}
