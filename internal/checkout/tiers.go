package checkout

import (
	"circles-backend/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultReturnRate is the projected uplift shown next to an amount.
var DefaultReturnRate = decimal.RequireFromString("0.15")

// DefaultTiers returns the perk ladder offered on every project.
func DefaultTiers() []model.PerkTier {
	return []model.PerkTier{
		{
			ID: "supporter", Name: "Supporter", MinAmount: 10000, EstimatedValue: 2500,
			Perks: []string{"Digital thank you card", "Early access to trailer", "Supporter badge"},
		},
		{
			ID: "backer", Name: "Backer", MinAmount: 25000, EstimatedValue: 8000, Popular: true,
			Perks: []string{"All Supporter perks", "Name in credits", "Exclusive behind-the-scenes content", "Digital poster"},
		},
		{
			ID: "producer", Name: "Producer", MinAmount: 75000, EstimatedValue: 15000,
			Perks: []string{"All Backer perks", "Premiere screening invite", "Signed merchandise", "Producer credit"},
		},
		{
			ID: "executive", Name: "Executive Producer", MinAmount: 150000, EstimatedValue: 35000,
			Perks: []string{"All Producer perks", "Set visit", "Meet the cast", "Executive producer credit"},
		},
	}
}

// SelectTier returns the tier with the highest floor not above amount. Equal
// floors resolve to the earliest tier; nil means amount is below every floor.
func SelectTier(tiers []model.PerkTier, amount int64) *model.PerkTier {
	best := -1
	for i := range tiers {
		if tiers[i].MinAmount > amount {
			continue
		}
		if best < 0 || tiers[i].MinAmount > tiers[best].MinAmount {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	t := tiers[best]
	return &t
}

func FindTier(tiers []model.PerkTier, id string) *model.PerkTier {
	for i := range tiers {
		if tiers[i].ID == id {
			t := tiers[i]
			return &t
		}
	}
	return nil
}

// EstimatedReturn is amount * (1 + rate), rounded half away from zero.
func EstimatedReturn(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(decimal.NewFromInt(1).Add(rate)).Round(0).IntPart()
}

// EstimatedGain is the uplift part of EstimatedReturn.
func EstimatedGain(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}

type Quote struct {
	Amount          int64           `json:"amount"`
	Tier            *model.PerkTier `json:"tier"`
	EstimatedReturn int64           `json:"estimatedReturn"`
	EstimatedGain   int64           `json:"estimatedGain"`
	ReturnRate      string          `json:"returnRate"`
}

func NewQuote(tiers []model.PerkTier, amount int64, rate decimal.Decimal) Quote {
	return Quote{
		Amount:          amount,
		Tier:            SelectTier(tiers, amount),
		EstimatedReturn: EstimatedReturn(amount, rate),
		EstimatedGain:   EstimatedGain(amount, rate),
		ReturnRate:      rate.String(),
	}
}
