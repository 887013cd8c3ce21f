package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fitmo-inc/fitmo/internal/domain/billing"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

const (
	defaultAPIBaseURL     = "https://api.stripe.com"
	defaultRequestTimeout = 15 * time.Second
	// Maximum response body size for provider API responses (1MB)
	maxResponseSize = 1 << 20
)

// StripeConfig carries the credentials and tuning for the Stripe client.
type StripeConfig struct {
	SecretKey      string
	APIBaseURL     string
	TimeoutSeconds int
}

// StripeGateway talks to the Stripe REST API with form-encoded requests.
// Only the two operations the billing core needs are implemented.
type StripeGateway struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

var _ billing.PaymentGateway = (*StripeGateway)(nil)

func NewStripeGateway(cfg StripeConfig, logger logger.Interface) *StripeGateway {
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}

	timeout := defaultRequestTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &StripeGateway{
		secretKey: cfg.SecretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, params billing.CheckoutParams) (*billing.CheckoutSession, error) {
	interval := "month"
	if params.Cycle == billing.CycleAnnual {
		interval = "year"
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("customer_email", params.CustomerEmail)
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("client_reference_id", params.SubjectSID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(params.Currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.Amount, 10))
	form.Set("line_items[0][price_data][recurring][interval]", interval)
	form.Set("line_items[0][price_data][product_data][name]", params.PlanName)
	form.Set("metadata[subject_sid]", params.SubjectSID)

	body, err := g.post(ctx, "/v1/checkout/sessions", form)
	if err != nil {
		return nil, err
	}

	var session checkoutSessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session response: %w", err)
	}
	if session.ID == "" || session.URL == "" {
		return nil, fmt.Errorf("provider returned incomplete checkout session")
	}

	g.logger.Infow("created checkout session",
		"session_id", session.ID,
		"subject_sid", params.SubjectSID)

	return &billing.CheckoutSession{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

func (g *StripeGateway) CancelSubscription(ctx context.Context, providerSubscriptionID string) error {
	endpoint := fmt.Sprintf("/v1/subscriptions/%s", url.PathEscape(providerSubscriptionID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, g.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build cancel request: %w", err)
	}
	req.SetBasicAuth(g.secretKey, "")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return g.decodeError(resp)
	}

	g.logger.Infow("cancelled provider subscription",
		"provider_subscription_id", providerSubscriptionID)
	return nil
}

func (g *StripeGateway) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(g.secretKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, g.decodeError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}
	return body, nil
}

func (g *StripeGateway) decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))

	var apiErr stripeErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		g.logger.Warnw("provider API error",
			"status", resp.StatusCode,
			"type", apiErr.Error.Type,
			"code", apiErr.Error.Code,
			"message", apiErr.Error.Message)
		return fmt.Errorf("provider error (%d): %s", resp.StatusCode, apiErr.Error.Message)
	}

	return fmt.Errorf("provider error (%d)", resp.StatusCode)
}
