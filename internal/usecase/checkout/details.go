package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError reports the first failing wizard field with a message
// fit for direct display.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// Bank is an entry in the fixed PayChangu bank directory.
type Bank struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var Banks = []Bank{
	{Code: "NBM", Name: "National Bank of Malawi"},
	{Code: "STB", Name: "Standard Bank Malawi"},
	{Code: "FDH", Name: "FDH Bank"},
	{Code: "NBS", Name: "NBS Bank"},
	{Code: "CDH", Name: "CDH Investment Bank"},
	{Code: "INDE", Name: "INDE Bank"},
	{Code: "OPPORTUNITY", Name: "Opportunity Bank"},
}

func bankByCode(code string) (Bank, bool) {
	for _, b := range Banks {
		if b.Code == code {
			return b, true
		}
	}
	return Bank{}, false
}

// Malawian mobile number: optional +265/265/0 prefix, carrier code
// 99/88/77/21, then 7 digits.
var (
	rePhone  = regexp.MustCompile(`^(\+265|265|0)?(99|88|77|21)\d{7}$`)
	reExpiry = regexp.MustCompile(`^\d{2}/\d{2}$`)
	reCVV    = regexp.MustCompile(`^\d{3,4}$`)
	reDigits = regexp.MustCompile(`^\d+$`)
)

type BankDetails struct {
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

type CardDetails struct {
	CardholderName string `json:"cardholder_name"`
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
}

// Details carries the method-specific fields entered at the DetailEntry
// step. Only the group matching the selected method is inspected.
type Details struct {
	PhoneNumber string      `json:"phone_number"`
	Bank        BankDetails `json:"bank"`
	Card        CardDetails `json:"card"`
}

func validatePhone(phone string) error {
	if phone == "" {
		return &ValidationError{Field: "phone_number", Message: "phone number is required"}
	}
	if !rePhone.MatchString(strings.ReplaceAll(phone, " ", "")) {
		return &ValidationError{Field: "phone_number", Message: "enter a valid Malawian phone number (e.g. +265 991 234 567)"}
	}
	return nil
}

func validateBank(d BankDetails) error {
	if d.BankCode == "" {
		return &ValidationError{Field: "bank_code", Message: "bank is required"}
	}
	if _, ok := bankByCode(d.BankCode); !ok {
		return &ValidationError{Field: "bank_code", Message: fmt.Sprintf("unknown bank code %q", d.BankCode)}
	}
	if d.AccountNumber == "" {
		return &ValidationError{Field: "account_number", Message: "account number is required"}
	}
	if len(d.AccountNumber) < 8 {
		return &ValidationError{Field: "account_number", Message: "enter a valid account number"}
	}
	if d.AccountName == "" {
		return &ValidationError{Field: "account_name", Message: "account holder name is required"}
	}
	return nil
}

func validateCard(d CardDetails) error {
	if d.CardholderName == "" {
		return &ValidationError{Field: "cardholder_name", Message: "cardholder name is required"}
	}
	cleaned := strings.ReplaceAll(d.CardNumber, " ", "")
	if cleaned == "" {
		return &ValidationError{Field: "card_number", Message: "card number is required"}
	}
	if len(cleaned) < 13 || len(cleaned) > 19 || !reDigits.MatchString(cleaned) {
		return &ValidationError{Field: "card_number", Message: "enter a valid card number"}
	}
	// Pattern check only; the month is not range-checked.
	if !reExpiry.MatchString(d.ExpiryDate) {
		return &ValidationError{Field: "expiry_date", Message: "enter expiry date in MM/YY format"}
	}
	if !reCVV.MatchString(d.CVV) {
		return &ValidationError{Field: "cvv", Message: "enter a valid CVV"}
	}
	return nil
}
