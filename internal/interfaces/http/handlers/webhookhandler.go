package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/application/billing/usecases"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/payment"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
	"github.com/fitmo-inc/fitmo/internal/shared/utils"
)

// Maximum accepted webhook payload size (256KB)
const maxWebhookPayloadSize = 256 << 10

const signatureHeader = "Stripe-Signature"

type WebhookHandler struct {
	verifier         *payment.WebhookVerifier
	processWebhookUC *usecases.ProcessWebhookEventUseCase
	logger           logger.Interface
}

func NewWebhookHandler(
	verifier *payment.WebhookVerifier,
	processWebhookUC *usecases.ProcessWebhookEventUseCase,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:         verifier,
		processWebhookUC: processWebhookUC,
		logger:           logger.NewLogger(),
	}
}

// stripeEvent is the provider's webhook envelope, narrowed to the fields the
// reconciler consumes.
type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object stripeEventObject `json:"object"`
	} `json:"data"`
}

type stripeEventObject struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	Subscription       string `json:"subscription"`
	Status             string `json:"status"`
	Paid               bool   `json:"paid"`
	AmountDue          int64  `json:"amount_due"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	PeriodStart        int64  `json:"period_start"`
	PeriodEnd          int64  `json:"period_end"`
	ClientReferenceID  string `json:"client_reference_id"`

	Metadata struct {
		SubjectSID string `json:"subject_sid"`
		PlanKey    string `json:"plan_key"`
		Cycle      string `json:"cycle"`
	} `json:"metadata"`
}

// HandleStripeWebhook verifies and reconciles a provider event. Replayed and
// unrecognized events return 200 so the provider stops retrying; only
// signature failures (400) and processing failures (500) are errors.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read payload")
		return
	}

	if err := h.verifier.Verify(payload, c.GetHeader(signatureHeader), biztime.NowUTC()); err != nil {
		h.logger.Warnw("rejected webhook with invalid signature", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid signature")
		return
	}

	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Warnw("rejected malformed webhook payload", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "malformed payload")
		return
	}

	cmd := toWebhookCommand(event)
	if err := h.processWebhookUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Errorw("failed to process webhook event",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to process event")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"received": true})
}

func toWebhookCommand(event stripeEvent) usecases.WebhookEventCommand {
	obj := event.Data.Object

	cmd := usecases.WebhookEventCommand{
		EventID:            event.ID,
		Type:               event.Type,
		ProviderCustomerID: obj.Customer,
		ProviderStatus:     obj.Status,
		AmountDue:          obj.AmountDue,
		PlanKey:            obj.Metadata.PlanKey,
		Cycle:              obj.Metadata.Cycle,
	}

	// The checkout session references the subject; subscription and invoice
	// events carry the subscription id in different fields.
	switch event.Type {
	case usecases.EventCheckoutCompleted:
		cmd.ProviderSubscriptionID = obj.Subscription
		cmd.SubjectSID = obj.ClientReferenceID
		if cmd.SubjectSID == "" {
			cmd.SubjectSID = obj.Metadata.SubjectSID
		}
	case usecases.EventInvoicePaid, usecases.EventInvoiceFailed:
		cmd.ProviderInvoiceID = obj.ID
		cmd.ProviderSubscriptionID = obj.Subscription
		cmd.InvoicePaid = obj.Paid
		cmd.PeriodStart = unixTime(obj.PeriodStart)
		cmd.PeriodEnd = unixTime(obj.PeriodEnd)
	default:
		cmd.ProviderSubscriptionID = obj.ID
	}

	if cmd.PeriodStart.IsZero() {
		cmd.PeriodStart = unixTime(obj.CurrentPeriodStart)
	}
	if cmd.PeriodEnd.IsZero() {
		cmd.PeriodEnd = unixTime(obj.CurrentPeriodEnd)
	}

	return cmd
}

func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
