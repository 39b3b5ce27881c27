package paychangu

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/transaction"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/checkout"
)

func mobileCharge() checkout.ChargeRequest {
	return checkout.ChargeRequest{
		Amount:    20_300,
		Currency:  "MWK",
		Method:    transaction.MethodAirtelMoney,
		Phone:     "0991234567",
		Reference: "LOAN-abc-1700000000000",
	}
}

func TestCharge_Success(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/payment" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "transaction_id": "ch_42"})
	}))
	defer srv.Close()

	c := New(srv.URL, "sk_test")
	res, err := c.Charge(context.Background(), mobileCharge())
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if res.TransactionID != "ch_42" {
		t.Errorf("transaction id = %q", res.TransactionID)
	}
	if gotAuth != "Bearer sk_test" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody["amount"] != 20_300.0 || gotBody["currency"] != "MWK" || gotBody["phone"] != "0991234567" {
		t.Errorf("body = %+v", gotBody)
	}
	// every charge carries a fresh uuid
	if id, _ := gotBody["charge_id"].(string); len(id) != 36 {
		t.Errorf("charge_id = %v", gotBody["charge_id"])
	}
}

func TestCharge_DeclineStatuses(t *testing.T) {
	cases := []struct {
		name string
		code int
		body string
	}{
		{"402 payment required", http.StatusPaymentRequired, `{"status":"failed","message":"insufficient funds"}`},
		{"failed with 200", http.StatusOK, `{"status":"failed","message":"do not honor"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL, "sk_test")
			_, err := c.Charge(context.Background(), mobileCharge())
			if !errors.Is(err, checkout.ErrDeclined) {
				t.Fatalf("err = %v, want ErrDeclined", err)
			}
			if !strings.Contains(err.Error(), "insufficient funds") && !strings.Contains(err.Error(), "do not honor") {
				t.Errorf("message lost: %v", err)
			}
		})
	}
}

func TestCharge_ServerErrorIsNotDecline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"upstream exploded"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "sk_test")
	_, err := c.Charge(context.Background(), mobileCharge())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, checkout.ErrDeclined) {
		t.Fatal("5xx must not read as a decline")
	}
}

func TestCharge_BankAndCardPayloads(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "transaction_id": "ch_1"})
	}))
	defer srv.Close()
	c := New(srv.URL, "sk_test")

	bank := mobileCharge()
	bank.Method = transaction.MethodBankTransfer
	bank.Phone = ""
	bank.Bank = checkout.BankDetails{BankCode: "NBM", AccountNumber: "00012345", AccountName: "Chisomo Banda"}
	if _, err := c.Charge(context.Background(), bank); err != nil {
		t.Fatalf("bank Charge: %v", err)
	}
	if gotBody["bank_code"] != "NBM" || gotBody["account_number"] != "00012345" {
		t.Errorf("bank body = %+v", gotBody)
	}

	cardReq := mobileCharge()
	cardReq.Method = transaction.MethodDebitCard
	cardReq.Phone = ""
	cardReq.Card = checkout.CardDetails{CardholderName: "C Banda", CardNumber: "4111111111111111", ExpiryDate: "08/27", CVV: "123"}
	if _, err := c.Charge(context.Background(), cardReq); err != nil {
		t.Fatalf("card Charge: %v", err)
	}
	cardBody, _ := gotBody["card"].(map[string]any)
	if cardBody == nil || cardBody["number"] != "4111111111111111" {
		t.Errorf("card body = %+v", gotBody)
	}
}
