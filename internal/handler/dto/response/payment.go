package response

import (
	"rinto/internal/usecase/commands"
)

type PaymentIntentResponse struct {
	Reference    string `json:"reference"`
	ClientSecret string `json:"clientSecret"`
}

func FromPaymentIntent(intent *commands.PaymentIntent) *PaymentIntentResponse {
	return &PaymentIntentResponse{
		Reference:    intent.Reference,
		ClientSecret: intent.ClientSecret,
	}
}
