package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/application/billing/usecases"
	"github.com/fitmo-inc/fitmo/internal/shared/id"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
	"github.com/fitmo-inc/fitmo/internal/shared/utils"
)

type BillingHandler struct {
	createCheckoutUC *usecases.CreateCheckoutUseCase
	listInvoicesUC   *usecases.ListMyInvoicesUseCase
	getInvoiceUC     *usecases.GetInvoiceUseCase
	logger           logger.Interface
}

func NewBillingHandler(
	createCheckoutUC *usecases.CreateCheckoutUseCase,
	listInvoicesUC *usecases.ListMyInvoicesUseCase,
	getInvoiceUC *usecases.GetInvoiceUseCase,
) *BillingHandler {
	return &BillingHandler{
		createCheckoutUC: createCheckoutUC,
		listInvoicesUC:   listInvoicesUC,
		getInvoiceUC:     getInvoiceUC,
		logger:           logger.NewLogger(),
	}
}

type CreateCheckoutRequest struct {
	PlanKey         string `json:"plan_key" binding:"required" validate:"required,min=1,max=64"`
	Cycle           string `json:"cycle" binding:"required" validate:"required,oneof=monthly annual"`
	OrganizationSID string `json:"organization_id" validate:"omitempty,max=64"`
	SuccessURL      string `json:"success_url" binding:"required" validate:"required,url"`
	CancelURL       string `json:"cancel_url" binding:"required" validate:"required,url"`
}

// CreateCheckout opens a hosted checkout session with the payment provider.
// Local state stays untouched until the provider confirms via webhook.
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	trainerID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	email, err := currentUserEmail(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create checkout", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result, err := h.createCheckoutUC.Execute(c.Request.Context(), usecases.CreateCheckoutCommand{
		TrainerID:       trainerID,
		TrainerEmail:    email,
		PlanKey:         req.PlanKey,
		Cycle:           req.Cycle,
		OrganizationSID: req.OrganizationSID,
		SuccessURL:      req.SuccessURL,
		CancelURL:       req.CancelURL,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Checkout session created")
}

func (h *BillingHandler) ListMyInvoices(c *gin.Context) {
	trainerID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result, err := h.listInvoicesUC.Execute(c.Request.Context(), usecases.ListMyInvoicesCommand{
		TrainerID: trainerID,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *BillingHandler) GetInvoice(c *gin.Context) {
	trainerID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	invoiceSID, err := utils.ParseSIDParam(c, "sid", id.PrefixInvoice, "invoice")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result, err := h.getInvoiceUC.Execute(c.Request.Context(), usecases.GetInvoiceCommand{
		TrainerID:  trainerID,
		InvoiceSID: invoiceSID,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
