package checkout

import (
	"context"
	"time"

	"circles-backend/internal/model"

	"github.com/google/uuid"
)

const DefaultProcessingDelay = 2 * time.Second

// Charge is what a gateway is asked to collect.
type Charge struct {
	Reference     string
	ProjectID     string
	UserID        string
	Amount        int64
	PaymentMethod model.PaymentMethod
	Nonce         string
}

type ChargeResult struct {
	TransactionID string
	Status        string
}

// Gateway collects a charge. Implementations must return promptly once ctx
// is cancelled.
type Gateway interface {
	Charge(ctx context.Context, charge Charge) (*ChargeResult, error)
}

// GatewayFunc adapts a plain function to Gateway.
type GatewayFunc func(ctx context.Context, charge Charge) (*ChargeResult, error)

func (f GatewayFunc) Charge(ctx context.Context, charge Charge) (*ChargeResult, error) {
	return f(ctx, charge)
}

// MockGateway approves every charge after a fixed latency. No money moves.
type MockGateway struct {
	latency time.Duration
}

func NewMockGateway(latency time.Duration) *MockGateway {
	return &MockGateway{latency: latency}
}

func (g *MockGateway) Charge(ctx context.Context, charge Charge) (*ChargeResult, error) {
	timer := time.NewTimer(g.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return &ChargeResult{
		TransactionID: "mock_" + uuid.NewString(),
		Status:        "settled",
	}, nil
}
