package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/application/subscription/usecases"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
	"github.com/fitmo-inc/fitmo/internal/shared/utils"
)

type SubscriptionHandler struct {
	getMySubscriptionUC  *usecases.GetMySubscriptionUseCase
	startSubscriptionUC  *usecases.StartSubscriptionUseCase
	upgradePlanUC        *usecases.UpgradePlanUseCase
	previewUpgradeUC     *usecases.PreviewUpgradeUseCase
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase
	logger               logger.Interface
}

func NewSubscriptionHandler(
	getMySubscriptionUC *usecases.GetMySubscriptionUseCase,
	startSubscriptionUC *usecases.StartSubscriptionUseCase,
	upgradePlanUC *usecases.UpgradePlanUseCase,
	previewUpgradeUC *usecases.PreviewUpgradeUseCase,
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		getMySubscriptionUC:  getMySubscriptionUC,
		startSubscriptionUC:  startSubscriptionUC,
		upgradePlanUC:        upgradePlanUC,
		previewUpgradeUC:     previewUpgradeUC,
		cancelSubscriptionUC: cancelSubscriptionUC,
		logger:               logger.NewLogger(),
	}
}

type StartSubscriptionRequest struct {
	PlanKey  string `json:"plan_key" binding:"required"`
	UseTrial bool   `json:"use_trial"`
}

type ChangePlanRequest struct {
	NewPlanKey string `json:"new_plan_key" binding:"required"`
}

func (h *SubscriptionHandler) GetMySubscription(c *gin.Context) {
	trainerID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result, err := h.getMySubscriptionUC.Execute(c.Request.Context(), usecases.GetMySubscriptionCommand{
		TrainerID: trainerID,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) StartSubscription(c *gin.Context) {
	trainerID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	var req StartSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for start subscription", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.startSubscriptionUC.Execute(c.Request.Context(), usecases.StartSubscriptionCommand{
		TrainerID: trainerID,
		PlanKey:   req.PlanKey,
		UseTrial:  req.UseTrial,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription started successfully")
}

func (h *SubscriptionHandler) UpgradePlan(c *gin.Context) {
	trainerID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for upgrade plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.upgradePlanUC.Execute(c.Request.Context(), usecases.UpgradePlanCommand{
		TrainerID:  trainerID,
		NewPlanKey: req.NewPlanKey,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan changed successfully", result)
}

// PreviewUpgrade quotes the prorated cost of a plan change without applying
// it.
func (h *SubscriptionHandler) PreviewUpgrade(c *gin.Context) {
	trainerID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	newPlanKey := c.Query("new_plan_key")
	if newPlanKey == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "new_plan_key is required")
		return
	}

	result, err := h.previewUpgradeUC.Execute(c.Request.Context(), usecases.PreviewUpgradeCommand{
		TrainerID:  trainerID,
		NewPlanKey: newPlanKey,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	trainerID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	if err := h.cancelSubscriptionUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		TrainerID: trainerID,
	}); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled", nil)
}
