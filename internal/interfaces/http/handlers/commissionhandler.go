package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/application/commission/usecases"
	"github.com/fitmo-inc/fitmo/internal/shared/id"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
	"github.com/fitmo-inc/fitmo/internal/shared/utils"
)

type CommissionHandler struct {
	applyCommissionUC *usecases.ApplyBookingCommissionUseCase
	getEarningsUC     *usecases.GetEarningsUseCase
	logger            logger.Interface
}

func NewCommissionHandler(
	applyCommissionUC *usecases.ApplyBookingCommissionUseCase,
	getEarningsUC *usecases.GetEarningsUseCase,
) *CommissionHandler {
	return &CommissionHandler{
		applyCommissionUC: applyCommissionUC,
		getEarningsUC:     getEarningsUC,
		logger:            logger.NewLogger(),
	}
}

// ApplyCommission splits a completed booking's price between the platform
// and the trainer at the trainer's current plan rate.
func (h *CommissionHandler) ApplyCommission(c *gin.Context) {
	bookingSID, err := utils.ParseSIDParam(c, "sid", id.PrefixBooking, "booking")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result, err := h.applyCommissionUC.Execute(c.Request.Context(), usecases.ApplyBookingCommissionCommand{
		BookingSID: bookingSID,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Commission applied", result)
}

// GetEarnings summarizes the authenticated trainer's completed bookings over
// an optional from/to date range (YYYY-MM-DD, business timezone).
func (h *CommissionHandler) GetEarnings(c *gin.Context) {
	trainerID, err := currentUserID(c)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	start, err := utils.ParseDateQuery(c, "from", false)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	end, err := utils.ParseDateQuery(c, "to", true)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result, err := h.getEarningsUC.Execute(c.Request.Context(), usecases.GetEarningsCommand{
		TrainerID: trainerID,
		Start:     start,
		End:       end,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
