package controllers

import (
	"net/http"

	"campus-service/internal/app/contracts"
	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/constvars"
	"campus-service/internal/pkg/dto/requests"
	"campus-service/internal/pkg/dto/responses"
	"campus-service/internal/pkg/exceptions"
	"campus-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ConflictController struct {
	Usecase contracts.SchedulingUsecase
	Log     *zap.Logger
}

func NewConflictController(usecase contracts.SchedulingUsecase, log *zap.Logger) *ConflictController {
	return &ConflictController{
		Usecase: usecase,
		Log:     log,
	}
}

// CheckConflicts pre-flights a candidate window against a batch of dates
// without committing anything.
func (c *ConflictController) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	var request requests.CheckConflicts
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	results, err := c.Usecase.CheckConflicts(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	data := make([]responses.DateConflicts, 0, len(results))
	for _, result := range results {
		entry := responses.DateConflicts{
			Date:      result.Date.Format(clockwin.DateLayout),
			DayOfWeek: result.DayOfWeek.String(),
			Conflicts: make([]responses.TimetablePeriod, 0, len(result.Conflicts)),
		}
		for _, period := range result.Conflicts {
			entry.Conflicts = append(entry.Conflicts, period.ConvertIntoResponse())
		}
		data = append(data, entry)
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConflictCheckSuccess, data)
}
