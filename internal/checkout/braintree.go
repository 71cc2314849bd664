package checkout

import (
	"context"
	"fmt"

	"circles-backend/internal/errorx"
	"circles-backend/internal/model"

	"github.com/braintree-go/braintree-go"
)

// BraintreeGateway charges card nonces through Braintree as immediate sales.
type BraintreeGateway struct {
	bt *braintree.Braintree
}

func NewBraintreeGateway(bt *braintree.Braintree) *BraintreeGateway {
	return &BraintreeGateway{bt: bt}
}

// Amounts are held in paise, so they map onto a scale-2 decimal unchanged.
func braintreeAmount(amount int64) *braintree.Decimal {
	return braintree.NewDecimal(amount, 2)
}

func (g *BraintreeGateway) Charge(ctx context.Context, charge Charge) (*ChargeResult, error) {
	if charge.PaymentMethod != model.PaymentCard {
		return nil, errorx.New(errorx.BadRequest, "payment method %s is not supported by braintree", charge.PaymentMethod)
	}
	if charge.Nonce == "" {
		return nil, errorx.New(errorx.BadRequest, "payment method nonce is required")
	}

	req := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintreeAmount(charge.Amount),
		PaymentMethodNonce: charge.Nonce,
		OrderId:            charge.Reference,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	}

	tx, err := g.bt.Transaction().Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create braintree transaction: %w", err)
	}

	switch tx.Status {
	case braintree.TransactionStatusProcessorDeclined, braintree.TransactionStatusGatewayRejected:
		return nil, fmt.Errorf("%w: %s", errorx.ErrPaymentDeclined, tx.ProcessorResponseText)
	}

	return &ChargeResult{TransactionID: tx.Id, Status: string(tx.Status)}, nil
}
