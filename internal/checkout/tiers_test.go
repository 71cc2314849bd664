package checkout

import (
	"testing"

	"circles-backend/internal/errorx"
	"circles-backend/internal/model"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSelectTier(t *testing.T) {
	tiers := []model.PerkTier{{ID: "a", MinAmount: 10000}, {ID: "b", MinAmount: 25000}, {ID: "c", MinAmount: 75000}}

	got := SelectTier(tiers, 30000)
	require.NotNil(t, got)
	require.Equal(t, int64(25000), got.MinAmount)

	require.Nil(t, SelectTier(tiers, 9999))
	require.Equal(t, "a", SelectTier(tiers, 10000).ID)
	require.Equal(t, "c", SelectTier(tiers, 5_000_000).ID)
	require.Nil(t, SelectTier(nil, 10000))
}

func TestSelectTier_TieGoesToFirst(t *testing.T) {
	tiers := []model.PerkTier{{ID: "first", MinAmount: 100}, {ID: "second", MinAmount: 100}, {ID: "low", MinAmount: 50}}
	require.Equal(t, "first", SelectTier(tiers, 150).ID)
}

func TestSelectTier_ReturnsCopy(t *testing.T) {
	tiers := DefaultTiers()
	got := SelectTier(tiers, 25000)
	got.Name = "changed"
	require.Equal(t, "Backer", tiers[1].Name)
}

func TestSelectTierMonotonic(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	tiers := DefaultTiers()

	properties.Property("floor never decreases as amount grows", prop.ForAll(
		func(a1, a2 int64) bool {
			if a1 > a2 {
				a1, a2 = a2, a1
			}
			t1, t2 := SelectTier(tiers, a1), SelectTier(tiers, a2)
			if t1 == nil {
				return true
			}
			return t2 != nil && t1.MinAmount <= t2.MinAmount
		},
		gen.Int64Range(0, 300000), gen.Int64Range(0, 300000),
	))

	properties.Property("selected floor is at most the amount", prop.ForAll(
		func(a int64) bool {
			tier := SelectTier(tiers, a)
			return tier == nil || tier.MinAmount <= a
		},
		gen.Int64Range(0, 300000),
	))

	properties.TestingRun(t)
}

func TestEstimatedReturn(t *testing.T) {
	tests := []struct {
		amount     int64
		wantReturn int64
		wantGain   int64
	}{
		{10000, 11500, 1500},
		{25000, 28750, 3750},
		{10, 12, 2},
		{1, 1, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.wantReturn, EstimatedReturn(tt.amount, DefaultReturnRate), "return for %d", tt.amount)
		require.Equal(t, tt.wantGain, EstimatedGain(tt.amount, DefaultReturnRate), "gain for %d", tt.amount)
	}

	require.Equal(t, int64(12000), EstimatedReturn(10000, decimal.RequireFromString("0.2")))
}

func TestNewQuote(t *testing.T) {
	q := NewQuote(DefaultTiers(), 80000, DefaultReturnRate)
	require.Equal(t, "producer", q.Tier.ID)
	require.Equal(t, int64(92000), q.EstimatedReturn)
	require.Equal(t, int64(12000), q.EstimatedGain)
	require.Equal(t, "0.15", q.ReturnRate)

	require.Nil(t, NewQuote(DefaultTiers(), 500, DefaultReturnRate).Tier)
}

func TestLimitsValidate(t *testing.T) {
	limits := DefaultLimits()
	tiers := DefaultTiers()

	require.NoError(t, limits.Validate(Attempt{Amount: 25000, TierID: "backer", PaymentMethod: model.PaymentUPI}, tiers))
	require.NoError(t, limits.Validate(Attempt{Amount: 10000, PaymentMethod: model.PaymentCard}, tiers))
	require.NoError(t, limits.Validate(Attempt{Amount: 1000000, PaymentMethod: model.PaymentNetBanking}, tiers))

	tests := []struct {
		name   string
		in     Attempt
		fields []string
	}{
		{"below minimum", Attempt{Amount: 5000, PaymentMethod: model.PaymentUPI}, []string{"amount"}},
		{"above maximum", Attempt{Amount: 1000001, PaymentMethod: model.PaymentUPI}, []string{"amount"}},
		{"bad method", Attempt{Amount: 20000, PaymentMethod: "cash"}, []string{"paymentMethod"}},
		{"unknown tier", Attempt{Amount: 20000, TierID: "gold", PaymentMethod: model.PaymentCard}, []string{"tierId"}},
		{"under tier floor", Attempt{Amount: 20000, TierID: "producer", PaymentMethod: model.PaymentCard}, []string{"amount"}},
		{"everything", Attempt{Amount: 1, TierID: "gold"}, []string{"amount", "paymentMethod", "tierId"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := limits.Validate(tt.in, tiers)
			require.Error(t, err)
			require.True(t, errorx.IsValidation(err))

			var ve *errorx.ValidationError
			require.ErrorAs(t, err, &ve)
			fields := make([]string, 0, len(ve.Fields))
			for f := range ve.Fields {
				fields = append(fields, f)
			}
			require.ElementsMatch(t, tt.fields, fields)
		})
	}
}
