package gatewaymock

import (
	"context"
	"errors"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/checkout"
)

var _ checkout.Gateway = (*Gateway)(nil)

var errUnimplemented = errors.New("gatewaymock: ChargeFn not set")

// Gateway is a function-backed mock that satisfies checkout.Gateway.
type Gateway struct {
	ChargeFn func(ctx context.Context, req checkout.ChargeRequest) (*checkout.ChargeResult, error)

	// Calls records every request Charge received, in order.
	Calls []checkout.ChargeRequest
}

func (m *Gateway) Charge(ctx context.Context, req checkout.ChargeRequest) (*checkout.ChargeResult, error) {
	m.Calls = append(m.Calls, req)
	if m.ChargeFn != nil {
		return m.ChargeFn(ctx, req)
	}
	return nil, errUnimplemented
}
