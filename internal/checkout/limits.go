package checkout

import (
	"circles-backend/internal/errorx"
	"circles-backend/internal/model"
)

const (
	DefaultMinimumInvestment int64 = 10000
	DefaultMaximumInvestment int64 = 1000000
)

// Limits are the platform-wide bounds on a single investment, inclusive.
type Limits struct {
	MinimumInvestment int64 `json:"minimumInvestment"`
	MaximumInvestment int64 `json:"maximumInvestment"`
}

func DefaultLimits() Limits {
	return Limits{MinimumInvestment: DefaultMinimumInvestment, MaximumInvestment: DefaultMaximumInvestment}
}

// Attempt is one submission of the checkout form.
type Attempt struct {
	Amount        int64               `json:"amount"`
	TierID        string              `json:"tierId,omitempty"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	Nonce         string              `json:"nonce,omitempty"`
}

// Validate checks a against the limits and the tier ladder. All problems are
// reported together.
func (l Limits) Validate(a Attempt, tiers []model.PerkTier) error {
	v := errorx.NewValidationError()

	if a.Amount < l.MinimumInvestment {
		v.Add("amount", "minimum investment is %d", l.MinimumInvestment)
	}
	if a.Amount > l.MaximumInvestment {
		v.Add("amount", "maximum investment is %d", l.MaximumInvestment)
	}
	if !a.PaymentMethod.Valid() {
		v.Add("paymentMethod", "unsupported payment method %q", a.PaymentMethod)
	}
	if a.TierID != "" {
		tier := FindTier(tiers, a.TierID)
		switch {
		case tier == nil:
			v.Add("tierId", "unknown tier %q", a.TierID)
		case a.Amount < tier.MinAmount:
			v.Add("amount", "%s tier requires at least %d", tier.Name, tier.MinAmount)
		}
	}
	return v.OrNil()
}
