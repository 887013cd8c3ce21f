package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/application/organization/usecases"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
	"github.com/fitmo-inc/fitmo/internal/shared/utils"
)

type InvitationHandler struct {
	listMyInvitationsUC *usecases.ListMyInvitationsUseCase
	acceptInvitationUC  *usecases.AcceptInvitationUseCase
	logger              logger.Interface
}

func NewInvitationHandler(
	listMyInvitationsUC *usecases.ListMyInvitationsUseCase,
	acceptInvitationUC *usecases.AcceptInvitationUseCase,
) *InvitationHandler {
	return &InvitationHandler{
		listMyInvitationsUC: listMyInvitationsUC,
		acceptInvitationUC:  acceptInvitationUC,
		logger:              logger.NewLogger(),
	}
}

type AcceptInvitationRequest struct {
	Token string `json:"token" binding:"required"`
}

// ListMyInvitations returns pending invitations addressed to the
// authenticated trainer's email.
func (h *InvitationHandler) ListMyInvitations(c *gin.Context) {
	email, err := currentUserEmail(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result, err := h.listMyInvitationsUC.Execute(c.Request.Context(), usecases.ListMyInvitationsCommand{
		Email: email,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
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

	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for accept invitation", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.acceptInvitationUC.Execute(c.Request.Context(), usecases.AcceptInvitationCommand{
		Token:        req.Token,
		TrainerID:    trainerID,
		TrainerEmail: email,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Invitation accepted", result)
}
