package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/transaction"
)

// The wizard walks MethodSelection -> DetailEntry -> Confirmation. Back
// transitions keep the entered fields. Submit is only reachable from
// Confirmation and is single-use on success.
type Step string

const (
	StepMethodSelection Step = "method_selection"
	StepDetailEntry     Step = "detail_entry"
	StepConfirmation    Step = "confirmation"
	stepDone            Step = "done"
)

var (
	ErrWrongStep        = errors.New("operation not allowed in current wizard step")
	ErrAlreadySubmitted = errors.New("payment already submitted")
)

// Session is one run of the payment collection wizard for a single loan.
// It never mutates loan state itself; a successful submit hands a
// validated instruction to the payment usecase.
type Session struct {
	loanID  string
	amount  float64
	step    Step
	method  transaction.Method
	details Details
}

func NewSession(loanID string, amount float64) (*Session, error) {
	if loanID == "" {
		return nil, errors.New("loan id is required")
	}
	if amount <= 0 {
		return nil, errors.New("payment amount must be positive")
	}
	return &Session{loanID: loanID, amount: amount, step: StepMethodSelection}, nil
}

func (s *Session) Step() Step                 { return s.step }
func (s *Session) Method() transaction.Method { return s.method }
func (s *Session) Amount() float64            { return s.amount }
func (s *Session) Fee() float64               { return Fee(s.amount, s.method) }
func (s *Session) Total() float64             { return Total(s.amount, s.method) }

// SelectMethod moves MethodSelection -> DetailEntry. Unconditional once a
// supported method is chosen.
func (s *Session) SelectMethod(m transaction.Method) error {
	if s.step != StepMethodSelection {
		return ErrWrongStep
	}
	if !m.Valid() {
		return &ValidationError{Field: "payment_method", Message: fmt.Sprintf("unsupported payment method %q", m)}
	}
	s.method = m
	s.step = StepDetailEntry
	return nil
}

// EnterDetails validates the method-specific fields and, on success, moves
// DetailEntry -> Confirmation. A failing field keeps the session in
// DetailEntry and returns a single *ValidationError.
func (s *Session) EnterDetails(d Details) error {
	if s.step != StepDetailEntry {
		return ErrWrongStep
	}
	var err error
	switch {
	case s.method.Mobile():
		err = validatePhone(d.PhoneNumber)
	case s.method == transaction.MethodBankTransfer:
		err = validateBank(d.Bank)
	case s.method == transaction.MethodDebitCard:
		err = validateCard(d.Card)
	}
	if err != nil {
		return err
	}
	s.details = d
	s.step = StepConfirmation
	return nil
}

// Back steps Confirmation -> DetailEntry -> MethodSelection, preserving
// whatever was entered.
func (s *Session) Back() error {
	switch s.step {
	case StepConfirmation:
		s.step = StepDetailEntry
	case StepDetailEntry:
		s.step = StepMethodSelection
	default:
		return ErrWrongStep
	}
	return nil
}

// accountNumber is the opaque identifier recorded on the ledger
// transaction: the phone number for mobile money, bank code plus account
// for transfers, and the masked PAN for cards.
func (s *Session) accountNumber() string {
	switch {
	case s.method.Mobile():
		return strings.ReplaceAll(s.details.PhoneNumber, " ", "")
	case s.method == transaction.MethodBankTransfer:
		return s.details.Bank.BankCode + "-" + s.details.Bank.AccountNumber
	default:
		pan := strings.ReplaceAll(s.details.Card.CardNumber, " ", "")
		if len(pan) > 4 {
			pan = pan[len(pan)-4:]
		}
		return "****" + pan
	}
}

// reference identifies the charge at the gateway.
func (s *Session) reference(now time.Time) string {
	return fmt.Sprintf("LOAN-%s-%d", s.loanID, now.UnixMilli())
}
