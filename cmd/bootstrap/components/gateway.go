package components

import (
	"bookcars/internal/infra/jobs"
	"bookcars/internal/infra/mail"
	"bookcars/internal/infra/payment"
	"bookcars/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			payment.NewStripeProvider,
			fx.As(new(commands.PaymentProvider)),
		),
		fx.Annotate(
			mail.NewSendGridMailer,
			fx.As(new(jobs.Mailer)),
		),
	),
)
