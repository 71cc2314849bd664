package model

// PerkTier is a reward bracket unlocked at MinAmount (inclusive).
type PerkTier struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	MinAmount      int64    `json:"minAmount"`
	EstimatedValue int64    `json:"estimatedValue"`
	Perks          []string `json:"perks"`
	Popular        bool     `json:"popular,omitempty"`
}

type PaymentMethod string

const (
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
	PaymentCard       PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentUPI, PaymentNetBanking, PaymentCard:
		return true
	}
	return false
}
