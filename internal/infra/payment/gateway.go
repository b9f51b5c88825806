package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"rinto/internal/pkg/config"
	"rinto/internal/pkg/errs"
	"rinto/internal/usecase/commands"
)

// HTTPGateway talks to the card-processing provider over its REST API.
// The provider holds the money flow; this side only opens intents and
// later receives the outcome callback on the public API.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPGateway(cfg config.PaymentConfig) *HTTPGateway {
	return &HTTPGateway{
		baseURL: cfg.ProviderURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type createIntentRequest struct {
	AmountCents int64             `json:"amount_cents"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata"`
}

type createIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

func (g *HTTPGateway) CreateIntent(ctx context.Context, amountCents int64, meta commands.IntentMetadata) (*commands.PaymentIntent, error) {
	body, err := json.Marshal(createIntentRequest{
		AmountCents: amountCents,
		Currency:    "usd",
		Metadata: map[string]string{
			"booking_id": meta.BookingID.String(),
			"listing_id": meta.ListingID.String(),
			"renter_id":  meta.RenterID.String(),
		},
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode intent request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payment_intents", bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build intent request")
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "payment provider request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errs.New(fmt.Sprintf("payment provider returned status %d", resp.StatusCode))
	}

	var decoded createIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errs.Wrap(err, "failed to decode intent response")
	}
	if decoded.ID == "" {
		return nil, errs.New("payment provider returned empty intent id")
	}

	return &commands.PaymentIntent{
		Reference:    decoded.ID,
		ClientSecret: decoded.ClientSecret,
	}, nil
}
