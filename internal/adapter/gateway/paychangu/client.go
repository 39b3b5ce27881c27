// Package paychangu is the HTTP client for the PayChangu collection API.
// Declines come back as errors wrapping checkout.ErrDeclined so callers
// can tell them from transport failures.
package paychangu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/checkout"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL   string
	secretKey string
	httpc     *http.Client
}

func New(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpc:     &http.Client{Timeout: defaultTimeout},
	}
}

type chargeRequest struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Method    string  `json:"method"`
	Phone     string  `json:"phone,omitempty"`
	BankCode  string  `json:"bank_code,omitempty"`
	Account   string  `json:"account_number,omitempty"`
	Name      string  `json:"account_name,omitempty"`
	Card      *card   `json:"card,omitempty"`
	Reference string  `json:"reference"`
	ChargeID  string  `json:"charge_id"`
}

type card struct {
	Holder string `json:"holder"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

type chargeResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

func (c *Client) Charge(ctx context.Context, req checkout.ChargeRequest) (*checkout.ChargeResult, error) {
	body := chargeRequest{
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    string(req.Method),
		Phone:     req.Phone,
		Reference: req.Reference,
		ChargeID:  uuid.NewString(),
	}
	if req.Bank.BankCode != "" {
		body.BankCode = req.Bank.BankCode
		body.Account = req.Bank.AccountNumber
		body.Name = req.Bank.AccountName
	}
	if req.Card.CardNumber != "" {
		body.Card = &card{
			Holder: req.Card.CardholderName,
			Number: req.Card.CardNumber,
			Expiry: req.Card.ExpiryDate,
			CVV:    req.Card.CVV,
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paychangu: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("paychangu: read response: %w", err)
	}

	var out chargeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("paychangu: decode response (http %d): %w", resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusPaymentRequired || out.Status == "failed":
		msg := out.Message
		if msg == "" {
			msg = "payment was declined"
		}
		return nil, fmt.Errorf("%w: %s", checkout.ErrDeclined, msg)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("paychangu: http %d: %s", resp.StatusCode, out.Message)
	}
	return &checkout.ChargeResult{TransactionID: out.TransactionID}, nil
}
