package client

import (
	"circles-backend/internal/config"

	"github.com/braintree-go/braintree-go"
)

// NewBraintreeClient builds the Braintree SDK gateway for the configured
// environment.
func NewBraintreeClient(cfg *config.Braintree) *braintree.Braintree {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	return braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)
}
