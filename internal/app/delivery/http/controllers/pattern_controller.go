package controllers

import (
	"net/http"
	"strconv"

	"campus-service/internal/app/contracts"
	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/constvars"
	"campus-service/internal/pkg/dto/requests"
	"campus-service/internal/pkg/dto/responses"
	"campus-service/internal/pkg/exceptions"
	"campus-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PatternController struct {
	Usecase     contracts.PatternUsecase
	Occurrences contracts.OccurrenceUsecase
	Log         *zap.Logger
}

func NewPatternController(usecase contracts.PatternUsecase, occurrences contracts.OccurrenceUsecase, log *zap.Logger) *PatternController {
	return &PatternController{
		Usecase:     usecase,
		Occurrences: occurrences,
		Log:         log,
	}
}

func parseUUIDParam(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, exceptions.ErrURLParamIDValidation(err, param)
	}
	return id, nil
}

func (c *PatternController) CreatePattern(w http.ResponseWriter, r *http.Request) {
	var request requests.CreatePattern
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	pattern, err := c.Usecase.CreatePattern(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PatternCreatedSuccess, pattern.ConvertIntoResponse())
}

func (c *PatternController) GetPattern(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, constvars.URLParamPatternID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	pattern, err := c.Usecase.GetPattern(r.Context(), id)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatternGetSuccess, pattern.ConvertIntoResponse())
}

func (c *PatternController) ListPatterns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get(constvars.URLQueryParamPage))
	pageSize, _ := strconv.Atoi(query.Get(constvars.URLQueryParamPageSize))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	filter := requests.ListPatterns{
		Page:       page,
		PageSize:   pageSize,
		Status:     query.Get(constvars.URLQueryParamStatus),
		Recurrence: query.Get(constvars.URLQueryParamRecurrence),
		StartDate:  query.Get(constvars.URLQueryParamStartDate),
		EndDate:    query.Get(constvars.URLQueryParamEndDate),
	}

	patterns, total, err := c.Usecase.ListPatterns(r.Context(), filter)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	data := make([]responses.SchedulePattern, 0, len(patterns))
	for _, pattern := range patterns {
		data = append(data, pattern.ConvertIntoResponse())
	}
	pagination := utils.BuildPaginationResponse(total, page, pageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.PatternListSuccess, pagination, data)
}

func (c *PatternController) UpdatePattern(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, constvars.URLParamPatternID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	var request requests.UpdatePattern
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	pattern, err := c.Usecase.UpdatePattern(r.Context(), id, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatternUpdatedSuccess, pattern.ConvertIntoResponse())
}

func (c *PatternController) DeletePattern(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, constvars.URLParamPatternID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	if err := c.Usecase.DeletePattern(r.Context(), id); err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatternDeletedSuccess, nil)
}

func (c *PatternController) CreateException(w http.ResponseWriter, r *http.Request) {
	patternID, err := parseUUIDParam(r, constvars.URLParamPatternID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	var request requests.CreateException
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	exception, err := c.Usecase.CreateException(r.Context(), patternID, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ExceptionCreatedSuccess, exception.ConvertIntoResponse())
}

func (c *PatternController) UpdateException(w http.ResponseWriter, r *http.Request) {
	exceptionID, err := parseUUIDParam(r, constvars.URLParamExceptionID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	var request requests.UpdateException
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	exception, err := c.Usecase.UpdateException(r.Context(), exceptionID, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ExceptionUpdatedSuccess, exception.ConvertIntoResponse())
}

func (c *PatternController) DeleteException(w http.ResponseWriter, r *http.Request) {
	exceptionID, err := parseUUIDParam(r, constvars.URLParamExceptionID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	if err := c.Usecase.DeleteException(r.Context(), exceptionID); err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ExceptionDeletedSuccess, nil)
}

// ListOccurrences expands a pattern over the from/to window from the query
// string. Both bounds are required calendar dates.
func (c *PatternController) ListOccurrences(w http.ResponseWriter, r *http.Request) {
	patternID, err := parseUUIDParam(r, constvars.URLParamPatternID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	query := r.URL.Query()
	from, err := clockwin.ParseDate(query.Get(constvars.URLQueryParamFrom))
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInvalidFormat(err, constvars.URLQueryParamFrom))
		return
	}
	to, err := clockwin.ParseDate(query.Get(constvars.URLQueryParamTo))
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInvalidFormat(err, constvars.URLQueryParamTo))
		return
	}

	occurrences, err := c.Occurrences.GenerateOccurrences(r.Context(), patternID, from, to)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	data := make([]responses.Occurrence, 0, len(occurrences))
	for _, occurrence := range occurrences {
		data = append(data, occurrence.ConvertIntoResponse())
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OccurrenceListSuccess, data)
}
