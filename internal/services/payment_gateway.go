package services

import (
	"context"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/account"
	"github.com/stripe/stripe-go/v81/accountlink"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
)

// PaymentGateway is the narrow surface of the payment processor the core
// consumes: connected accounts, destination-charged intents and webhook
// verification. The Stripe calls never join a local transaction.
type PaymentGateway interface {
	CreateConnectedAccount(ctx context.Context, email string) (string, error)
	OnboardingLink(ctx context.Context, accountID string) (string, error)
	CreatePaymentIntent(ctx context.Context, params IntentParams) (*IntentResult, error)
	VerifyWebhook(payload []byte, signature string) (*stripe.Event, error)
}

type IntentParams struct {
	AmountMinor        int64
	Currency           string
	DestinationAccount string
	FeeMinor           int64
	DonationID         string
}

type IntentResult struct {
	IntentID     string
	ClientSecret string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	AppBaseURL    string
}

type stripeGateway struct {
	cfg StripeConfig
}

func NewStripeGateway(cfg StripeConfig) PaymentGateway {
	stripe.Key = cfg.SecretKey
	return &stripeGateway{cfg: cfg}
}

func (g *stripeGateway) CreateConnectedAccount(ctx context.Context, email string) (string, error) {
	params := &stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
	}
	params.Context = ctx

	acct, err := account.New(params)
	if err != nil {
		return "", err
	}
	return acct.ID, nil
}

func (g *stripeGateway) OnboardingLink(ctx context.Context, accountID string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(g.cfg.AppBaseURL + "/payments/onboarding/refresh"),
		ReturnURL:  stripe.String(g.cfg.AppBaseURL + "/payments/onboarding/return"),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx

	link, err := accountlink.New(params)
	if err != nil {
		return "", err
	}
	return link.URL, nil
}

func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, p IntentParams) (*IntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(p.AmountMinor),
		Currency:             stripe.String(p.Currency),
		ApplicationFeeAmount: stripe.Int64(p.FeeMinor),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(p.DestinationAccount),
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("donation_id", p.DonationID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}
	return &IntentResult{IntentID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *stripeGateway) VerifyWebhook(payload []byte, signature string) (*stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.cfg.WebhookSecret)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
