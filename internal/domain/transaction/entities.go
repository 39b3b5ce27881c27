package transaction

import "time"

type Method string

const (
	MethodAirtelMoney  Method = "airtel_money"
	MethodTNMMpamba    Method = "tnm_mpamba"
	MethodBankTransfer Method = "bank_transfer"
	MethodDebitCard    Method = "debit_card"
)

// Valid reports whether m is a supported payment method.
func (m Method) Valid() bool {
	switch m {
	case MethodAirtelMoney, MethodTNMMpamba, MethodBankTransfer, MethodDebitCard:
		return true
	}
	return false
}

// Mobile reports whether m is a mobile-money method.
func (m Method) Mobile() bool {
	return m == MethodAirtelMoney || m == MethodTNMMpamba
}

const TypePayment = "Payment"

type Transaction struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	TxID          string    `gorm:"size:32;uniqueIndex:ux_transactions_tx_id" json:"tx_id"`
	LoanID        uint64    `gorm:"column:loan_id;not null;index" json:"-"`
	Amount        float64   `gorm:"type:decimal(18,2)" json:"amount"`
	Type          string    `gorm:"size:16" json:"type"`
	Method        Method    `gorm:"size:16;column:payment_method" json:"payment_method"`
	AccountNumber string    `gorm:"size:64;column:account_number" json:"account_number"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }
