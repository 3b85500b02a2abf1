package controllers

import (
	"net/http"

	"campus-service/internal/app/contracts"
	"campus-service/internal/pkg/constvars"
	"campus-service/internal/pkg/dto/requests"
	"campus-service/internal/pkg/dto/responses"
	"campus-service/internal/pkg/exceptions"
	"campus-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type TimetableController struct {
	Usecase contracts.SchedulingUsecase
	Log     *zap.Logger
}

func NewTimetableController(usecase contracts.SchedulingUsecase, log *zap.Logger) *TimetableController {
	return &TimetableController{
		Usecase: usecase,
		Log:     log,
	}
}

func (c *TimetableController) CreateTimetable(w http.ResponseWriter, r *http.Request) {
	var request requests.CreateTimetable
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	timetable, err := c.Usecase.CreateTimetable(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.TimetableCreatedSuccess, timetable.ConvertIntoResponse())
}

func (c *TimetableController) GetTimetable(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, constvars.URLParamTimetableID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	timetable, err := c.Usecase.GetTimetable(r.Context(), id)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TimetableGetSuccess, timetable.ConvertIntoResponse())
}

func (c *TimetableController) UpdateTimetable(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, constvars.URLParamTimetableID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	var request requests.UpdateTimetable
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	timetable, err := c.Usecase.UpdateTimetable(r.Context(), id, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TimetableUpdatedSuccess, timetable.ConvertIntoResponse())
}

func (c *TimetableController) DeleteTimetable(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, constvars.URLParamTimetableID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	if err := c.Usecase.DeleteTimetable(r.Context(), id); err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TimetableDeletedSuccess, nil)
}

func (c *TimetableController) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	timetableID, err := parseUUIDParam(r, constvars.URLParamTimetableID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	var request requests.CreatePeriod
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	outcome, err := c.Usecase.CreatePeriod(r.Context(), timetableID, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	if len(outcome.Conflicts) > 0 {
		c.writeConflicts(w, outcome)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PeriodCreatedSuccess, outcome.Period.ConvertIntoResponse())
}

func (c *TimetableController) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	periodID, err := parseUUIDParam(r, constvars.URLParamPeriodID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	var request requests.UpdatePeriod
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	outcome, err := c.Usecase.UpdatePeriod(r.Context(), periodID, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	if len(outcome.Conflicts) > 0 {
		c.writeConflicts(w, outcome)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PeriodUpdatedSuccess, outcome.Period.ConvertIntoResponse())
}

func (c *TimetableController) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	periodID, err := parseUUIDParam(r, constvars.URLParamPeriodID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	if err := c.Usecase.DeletePeriod(r.Context(), periodID); err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PeriodDeletedSuccess, nil)
}

func (c *TimetableController) ListPeriods(w http.ResponseWriter, r *http.Request) {
	timetableID, err := parseUUIDParam(r, constvars.URLParamTimetableID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	periods, err := c.Usecase.ListPeriods(r.Context(), timetableID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	data := make([]responses.TimetablePeriod, 0, len(periods))
	for _, period := range periods {
		data = append(data, period.ConvertIntoResponse())
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PeriodListSuccess, data)
}

func (c *TimetableController) writeConflicts(w http.ResponseWriter, outcome *contracts.PeriodCommitOutcome) {
	conflicts := make([]responses.TimetablePeriod, 0, len(outcome.Conflicts))
	for _, period := range outcome.Conflicts {
		conflicts = append(conflicts, period.ConvertIntoResponse())
	}
	utils.BuildConflictResponse(w, constvars.ErrClientScheduleConflict, conflicts)
}
