package payment

import (
	"context"

	"bookcars/internal/pkg/config"
	"bookcars/internal/pkg/errs"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
)

var (
	errIntentCreate = errs.New("failed to create payment intent")
	errRefundCreate = errs.New("failed to create refund")
)

// StripeProvider charges bookings through Stripe payment intents. The intent
// ID becomes the booking's payment reference.
type StripeProvider struct {
	currency string
}

func NewStripeProvider(cfg config.Config) *StripeProvider {
	stripe.Key = cfg.Stripe.SecretKey
	return &StripeProvider{currency: cfg.Stripe.Currency}
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amountCents int64, description, receiptEmail string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amountCents),
		Currency:     stripe.String(p.currency),
		Description:  stripe.String(description),
		ReceiptEmail: stripe.String(receiptEmail),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", errs.Mark(err, errIntentCreate)
	}
	return intent.ID, nil
}

func (p *StripeProvider) Refund(ctx context.Context, paymentRef string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentRef),
	}
	params.Context = ctx

	if _, err := refund.New(params); err != nil {
		return errs.Mark(err, errRefundCreate)
	}
	return nil
}
