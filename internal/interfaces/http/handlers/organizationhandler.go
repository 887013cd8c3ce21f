package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/application/organization/usecases"
	"github.com/fitmo-inc/fitmo/internal/shared/id"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
	"github.com/fitmo-inc/fitmo/internal/shared/utils"
)

type OrganizationHandler struct {
	createOrganizationUC *usecases.CreateOrganizationUseCase
	getOrganizationUC    *usecases.GetOrganizationUseCase
	addTrainerUC         *usecases.AddTrainerUseCase
	removeTrainerUC      *usecases.RemoveTrainerUseCase
	inviteTrainerUC      *usecases.InviteTrainerUseCase
	listTrainersUC       *usecases.ListTrainersUseCase
	purchaseSeatsUC      *usecases.PurchaseSeatsUseCase
	changeOrgPlanUC      *usecases.ChangeOrgPlanUseCase
	logger               logger.Interface
}

func NewOrganizationHandler(
	createOrganizationUC *usecases.CreateOrganizationUseCase,
	getOrganizationUC *usecases.GetOrganizationUseCase,
	addTrainerUC *usecases.AddTrainerUseCase,
	removeTrainerUC *usecases.RemoveTrainerUseCase,
	inviteTrainerUC *usecases.InviteTrainerUseCase,
	listTrainersUC *usecases.ListTrainersUseCase,
	purchaseSeatsUC *usecases.PurchaseSeatsUseCase,
	changeOrgPlanUC *usecases.ChangeOrgPlanUseCase,
) *OrganizationHandler {
	return &OrganizationHandler{
		createOrganizationUC: createOrganizationUC,
		getOrganizationUC:    getOrganizationUC,
		addTrainerUC:         addTrainerUC,
		removeTrainerUC:      removeTrainerUC,
		inviteTrainerUC:      inviteTrainerUC,
		listTrainersUC:       listTrainersUC,
		purchaseSeatsUC:      purchaseSeatsUC,
		changeOrgPlanUC:      changeOrgPlanUC,
		logger:               logger.NewLogger(),
	}
}

type CreateOrganizationRequest struct {
	Name    string `json:"name" binding:"required" validate:"required,min=1,max=200"`
	Email   string `json:"email" binding:"required" validate:"required,email"`
	PlanKey string `json:"plan_key" validate:"omitempty,min=1,max=64"`
}

type AddTrainerRequest struct {
	TrainerID uint `json:"trainer_id" binding:"required"`
}

type InviteTrainerRequest struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
}

type PurchaseSeatsRequest struct {
	SeatCount int `json:"seat_count" binding:"required,min=1"`
}

func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	ownerEmail, err := currentUserEmail(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create organization", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result, err := h.createOrganizationUC.Execute(c.Request.Context(), usecases.CreateOrganizationCommand{
		OwnerID:    ownerID,
		OwnerEmail: ownerEmail,
		Name:       req.Name,
		Email:      req.Email,
		PlanKey:    req.PlanKey,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Organization created successfully")
}

func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	orgSID, err := utils.ParseSIDParam(c, "sid", id.PrefixOrganization, "organization")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result, err := h.getOrganizationUC.Execute(c.Request.Context(), usecases.GetOrganizationCommand{
		OrganizationSID: orgSID,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *OrganizationHandler) AddTrainer(c *gin.Context) {
	requesterID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	orgSID, err := utils.ParseSIDParam(c, "sid", id.PrefixOrganization, "organization")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	var req AddTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add trainer", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.addTrainerUC.Execute(c.Request.Context(), usecases.AddTrainerCommand{
		RequesterID:     requesterID,
		OrganizationSID: orgSID,
		TrainerID:       req.TrainerID,
	}); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trainer added to organization", nil)
}

func (h *OrganizationHandler) RemoveTrainer(c *gin.Context) {
	requesterID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	orgSID, err := utils.ParseSIDParam(c, "sid", id.PrefixOrganization, "organization")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	trainerID, err := utils.ParseUintParam(c, "trainer_id", "trainer")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	if err := h.removeTrainerUC.Execute(c.Request.Context(), usecases.RemoveTrainerCommand{
		RequesterID:     requesterID,
		OrganizationSID: orgSID,
		TrainerID:       trainerID,
	}); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trainer removed from organization", nil)
}

func (h *OrganizationHandler) InviteTrainer(c *gin.Context) {
	requesterID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	orgSID, err := utils.ParseSIDParam(c, "sid", id.PrefixOrganization, "organization")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	var req InviteTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for invite trainer", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result, err := h.inviteTrainerUC.Execute(c.Request.Context(), usecases.InviteTrainerCommand{
		RequesterID:     requesterID,
		OrganizationSID: orgSID,
		Email:           req.Email,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Invitation sent")
}

func (h *OrganizationHandler) ListTrainers(c *gin.Context) {
	requesterID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	orgSID, err := utils.ParseSIDParam(c, "sid", id.PrefixOrganization, "organization")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result, err := h.listTrainersUC.Execute(c.Request.Context(), usecases.ListTrainersCommand{
		RequesterID:     requesterID,
		OrganizationSID: orgSID,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *OrganizationHandler) PurchaseSeats(c *gin.Context) {
	requesterID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	orgSID, err := utils.ParseSIDParam(c, "sid", id.PrefixOrganization, "organization")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	var req PurchaseSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for purchase seats", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.purchaseSeatsUC.Execute(c.Request.Context(), usecases.PurchaseSeatsCommand{
		RequesterID:     requesterID,
		OrganizationSID: orgSID,
		SeatCount:       req.SeatCount,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Seats purchased successfully")
}

func (h *OrganizationHandler) ChangePlan(c *gin.Context) {
	requesterID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	orgSID, err := utils.ParseSIDParam(c, "sid", id.PrefixOrganization, "organization")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change organization plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.changeOrgPlanUC.Execute(c.Request.Context(), usecases.ChangeOrgPlanCommand{
		RequesterID:     requesterID,
		OrganizationSID: orgSID,
		NewPlanKey:      req.NewPlanKey,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Organization plan changed", result)
}
