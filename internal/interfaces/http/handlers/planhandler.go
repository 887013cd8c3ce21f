package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitmo-inc/fitmo/internal/application/plan/usecases"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
	"github.com/fitmo-inc/fitmo/internal/shared/utils"
)

type PlanHandler struct {
	listPlansUC *usecases.ListPlansUseCase
	getPlanUC   *usecases.GetPlanUseCase
	logger      logger.Interface
}

func NewPlanHandler(
	listPlansUC *usecases.ListPlansUseCase,
	getPlanUC *usecases.GetPlanUseCase,
) *PlanHandler {
	return &PlanHandler{
		listPlansUC: listPlansUC,
		getPlanUC:   getPlanUC,
		logger:      logger.NewLogger(),
	}
}

// ListPlans returns the active plan catalog. The optional "audience" query
// narrows to "trainer" or "organization" plans.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	cmd := usecases.ListPlansCommand{}

	switch c.Query("audience") {
	case "":
	case "trainer":
		orgPlans := false
		cmd.OrgPlans = &orgPlans
	case "organization":
		orgPlans := true
		cmd.OrgPlans = &orgPlans
	default:
		utils.ErrorResponse(c, http.StatusBadRequest, "audience must be trainer or organization")
		return
	}

	plans, err := h.listPlansUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", plans)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "plan key is required")
		return
	}

	result, err := h.getPlanUC.Execute(c.Request.Context(), usecases.GetPlanCommand{Key: key})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
