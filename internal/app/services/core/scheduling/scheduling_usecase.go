package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campus-service/internal/app/contracts"
	"campus-service/internal/app/models"
	"campus-service/internal/pkg/clockwin"
	"campus-service/internal/pkg/constvars"
	"campus-service/internal/pkg/dto/requests"
	"campus-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type schedulingUsecase struct {
	timetables contracts.TimetableRepository
	periods    contracts.PeriodRepository
	detector   contracts.ConflictDetector
	locker     contracts.LockerService
	logger     *zap.Logger
	lockTTL    time.Duration
}

var (
	schedulingUsecaseInstance contracts.SchedulingUsecase
	onceSchedulingUsecase     sync.Once
)

func NewSchedulingUsecase(
	timetables contracts.TimetableRepository,
	periods contracts.PeriodRepository,
	detector contracts.ConflictDetector,
	locker contracts.LockerService,
	logger *zap.Logger,
	lockTTL time.Duration,
) contracts.SchedulingUsecase {
	onceSchedulingUsecase.Do(func() {
		schedulingUsecaseInstance = &schedulingUsecase{
			timetables: timetables,
			periods:    periods,
			detector:   detector,
			locker:     locker,
			logger:     logger,
			lockTTL:    lockTTL,
		}
	})
	return schedulingUsecaseInstance
}

func (u *schedulingUsecase) CreateTimetable(ctx context.Context, request requests.CreateTimetable) (*models.Timetable, error) {
	classSectionID, err := uuid.Parse(request.ClassSectionID)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "classSectionId")
	}
	courseOfferingID, err := uuid.Parse(request.CourseOfferingID)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "courseOfferingId")
	}
	patternID, err := parseOptionalUUID(request.PatternID, "patternId")
	if err != nil {
		return nil, err
	}
	startDate, err := clockwin.ParseDate(request.StartDate)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "startDate")
	}
	endDate, err := clockwin.ParseDate(request.EndDate)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "endDate")
	}
	if endDate.Before(startDate) {
		return nil, exceptions.ErrInvalidDateRange()
	}

	timetable := &models.Timetable{
		ClassSectionID:   classSectionID,
		CourseOfferingID: courseOfferingID,
		PatternID:        patternID,
		StartDate:        startDate,
		EndDate:          endDate,
		Status:           models.StatusActive,
	}
	if err := u.timetables.Insert(ctx, timetable); err != nil {
		return nil, err
	}
	u.logger.Info("timetable created",
		zap.String(constvars.LoggingTimetableIDKey, timetable.ID.String()),
	)
	return timetable, nil
}

func (u *schedulingUsecase) GetTimetable(ctx context.Context, id uuid.UUID) (*models.Timetable, error) {
	timetable, err := u.timetables.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if timetable == nil {
		return nil, exceptions.ErrTimetableNotFound(id.String())
	}
	timetable.Periods, err = u.periods.FindByTimetableID(ctx, id)
	if err != nil {
		return nil, err
	}
	return timetable, nil
}

func (u *schedulingUsecase) UpdateTimetable(ctx context.Context, id uuid.UUID, request requests.UpdateTimetable) (*models.Timetable, error) {
	timetable, err := u.timetables.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if timetable == nil {
		return nil, exceptions.ErrTimetableNotFound(id.String())
	}

	if request.ClassSectionID != nil {
		classSectionID, err := uuid.Parse(*request.ClassSectionID)
		if err != nil {
			return nil, exceptions.ErrInvalidFormat(err, "classSectionId")
		}
		timetable.ClassSectionID = classSectionID
	}
	if request.CourseOfferingID != nil {
		courseOfferingID, err := uuid.Parse(*request.CourseOfferingID)
		if err != nil {
			return nil, exceptions.ErrInvalidFormat(err, "courseOfferingId")
		}
		timetable.CourseOfferingID = courseOfferingID
	}
	if request.PatternID != nil {
		patternID, err := parseOptionalUUID(request.PatternID, "patternId")
		if err != nil {
			return nil, err
		}
		timetable.PatternID = patternID
	}
	if request.StartDate != nil {
		startDate, err := clockwin.ParseDate(*request.StartDate)
		if err != nil {
			return nil, exceptions.ErrInvalidFormat(err, "startDate")
		}
		timetable.StartDate = startDate
	}
	if request.EndDate != nil {
		endDate, err := clockwin.ParseDate(*request.EndDate)
		if err != nil {
			return nil, exceptions.ErrInvalidFormat(err, "endDate")
		}
		timetable.EndDate = endDate
	}
	if timetable.EndDate.Before(timetable.StartDate) {
		return nil, exceptions.ErrInvalidDateRange()
	}

	if err := u.timetables.Update(ctx, timetable); err != nil {
		return nil, err
	}
	return timetable, nil
}

func (u *schedulingUsecase) DeleteTimetable(ctx context.Context, id uuid.UUID) error {
	if err := u.timetables.SoftDelete(ctx, id); err != nil {
		return err
	}
	// cascade: a deleted timetable's periods must stop occupying resources
	if err := u.periods.SoftDeleteByTimetableID(ctx, id); err != nil {
		return err
	}
	u.logger.Info("timetable soft-deleted with periods",
		zap.String(constvars.LoggingTimetableIDKey, id.String()),
	)
	return nil
}

func (u *schedulingUsecase) CreatePeriod(ctx context.Context, timetableID uuid.UUID, request requests.CreatePeriod) (*contracts.PeriodCommitOutcome, error) {
	timetable, err := u.timetables.FindByID(ctx, timetableID)
	if err != nil {
		return nil, err
	}
	if timetable == nil {
		return nil, exceptions.ErrTimetableNotFound(timetableID.String())
	}

	dayOfWeek, err := clockwin.ParseWeekday(request.DayOfWeek)
	if err != nil {
		return nil, exceptions.ErrInvalidWeekday(err)
	}
	if _, err := clockwin.ParseWindow(request.StartTime, request.EndTime); err != nil {
		return nil, exceptions.ErrInvalidTimeWindow(err)
	}
	assignmentID, err := uuid.Parse(request.AssignmentID)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "assignmentId")
	}
	facilityID, err := parseOptionalUUID(request.FacilityID, "facilityId")
	if err != nil {
		return nil, err
	}

	period := &models.TimetablePeriod{
		TimetableID:  timetableID,
		DayOfWeek:    int(dayOfWeek),
		StartTime:    request.StartTime,
		EndTime:      request.EndTime,
		Kind:         models.PeriodKind(request.Kind),
		FacilityID:   facilityID,
		AssignmentID: assignmentID,
		Recurring:    request.Recurring,
		Metadata:     request.Metadata,
		Status:       models.StatusActive,
	}
	return u.commitPeriod(ctx, period, nil, u.periods.Insert)
}

func (u *schedulingUsecase) UpdatePeriod(ctx context.Context, periodID uuid.UUID, request requests.UpdatePeriod) (*contracts.PeriodCommitOutcome, error) {
	period, err := u.periods.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, exceptions.ErrPeriodNotFound(periodID.String())
	}

	if request.DayOfWeek != nil {
		dayOfWeek, err := clockwin.ParseWeekday(*request.DayOfWeek)
		if err != nil {
			return nil, exceptions.ErrInvalidWeekday(err)
		}
		period.DayOfWeek = int(dayOfWeek)
	}
	if request.StartTime != nil {
		period.StartTime = *request.StartTime
	}
	if request.EndTime != nil {
		period.EndTime = *request.EndTime
	}
	if _, err := clockwin.ParseWindow(period.StartTime, period.EndTime); err != nil {
		return nil, exceptions.ErrInvalidTimeWindow(err)
	}
	if request.Kind != nil {
		period.Kind = models.PeriodKind(*request.Kind)
	}
	if request.FacilityID != nil {
		facilityID, err := parseOptionalUUID(request.FacilityID, "facilityId")
		if err != nil {
			return nil, err
		}
		period.FacilityID = facilityID
	}
	if request.AssignmentID != nil {
		assignmentID, err := uuid.Parse(*request.AssignmentID)
		if err != nil {
			return nil, exceptions.ErrInvalidFormat(err, "assignmentId")
		}
		period.AssignmentID = assignmentID
	}
	if request.Recurring != nil {
		period.Recurring = *request.Recurring
	}
	if request.Metadata != nil {
		period.Metadata = request.Metadata
	}

	return u.commitPeriod(ctx, period, &periodID, u.periods.Update)
}

func (u *schedulingUsecase) DeletePeriod(ctx context.Context, periodID uuid.UUID) error {
	return u.periods.SoftDelete(ctx, periodID)
}

func (u *schedulingUsecase) ListPeriods(ctx context.Context, timetableID uuid.UUID) ([]models.TimetablePeriod, error) {
	timetable, err := u.timetables.FindByID(ctx, timetableID)
	if err != nil {
		return nil, err
	}
	if timetable == nil {
		return nil, exceptions.ErrTimetableNotFound(timetableID.String())
	}
	return u.periods.FindByTimetableID(ctx, timetableID)
}

func (u *schedulingUsecase) CheckConflicts(ctx context.Context, request requests.CheckConflicts) ([]contracts.DateConflicts, error) {
	resourceID, err := uuid.Parse(request.ResourceID)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, "resourceId")
	}
	window, err := clockwin.ParseWindow(request.StartTime, request.EndTime)
	if err != nil {
		return nil, exceptions.ErrInvalidTimeWindow(err)
	}
	excludePeriodID, err := parseOptionalUUID(request.ExcludePeriodID, "excludePeriodId")
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(request.Dates))
	for _, raw := range request.Dates {
		date, err := clockwin.ParseDate(raw)
		if err != nil {
			return nil, exceptions.ErrInvalidFormat(err, "dates")
		}
		dates = append(dates, date)
	}

	return u.detector.Preflight(ctx, contracts.CheckConflictsInput{
		ResourceKind:    models.ResourceKind(request.ResourceKind),
		ResourceID:      resourceID,
		Dates:           dates,
		Window:          window,
		ExcludePeriodID: excludePeriodID,
	})
}

// commitPeriod is the guarded check-then-act commit. It serialises writers
// touching the same resource slot through Redis locks, re-runs the conflict
// check while holding them and only then lets the write land. Conflicts come
// back in the outcome, not as an error, so callers can report the colliding
// periods.
func (u *schedulingUsecase) commitPeriod(
	ctx context.Context,
	period *models.TimetablePeriod,
	excludePeriodID *uuid.UUID,
	write func(context.Context, *models.TimetablePeriod) error,
) (*contracts.PeriodCommitOutcome, error) {
	release, err := u.lockResources(ctx, period)
	if err != nil {
		return nil, err
	}
	defer release()

	window := period.Window()
	dayOfWeek := clockwin.Weekday(period.DayOfWeek)

	colliding, err := u.detector.Detect(ctx, models.ResourceTeacherAssignment, period.AssignmentID, dayOfWeek, window, excludePeriodID)
	if err != nil {
		return nil, err
	}
	if period.FacilityID != nil {
		facilityColliding, err := u.detector.Detect(ctx, models.ResourceFacility, *period.FacilityID, dayOfWeek, window, excludePeriodID)
		if err != nil {
			return nil, err
		}
		colliding = append(colliding, dedupePeriods(colliding, facilityColliding)...)
	}
	if len(colliding) > 0 {
		u.logger.Info("period commit rejected",
			zap.String(constvars.LoggingTimetableIDKey, period.TimetableID.String()),
			zap.Int(constvars.LoggingConflictsKey, len(colliding)),
		)
		return &contracts.PeriodCommitOutcome{Conflicts: colliding}, nil
	}

	if err := write(ctx, period); err != nil {
		return nil, err
	}
	return &contracts.PeriodCommitOutcome{Period: period}, nil
}

// lockResources takes the per-slot locks the period occupies, assignment
// always and facility when present. Failing to take any of them releases the
// ones already held and reports the slot as busy.
func (u *schedulingUsecase) lockResources(ctx context.Context, period *models.TimetablePeriod) (func(), error) {
	keys := []string{
		fmt.Sprintf(constvars.RedisKeyResourceLockFmt, models.ResourceTeacherAssignment, period.AssignmentID, period.DayOfWeek),
	}
	if period.FacilityID != nil {
		keys = append(keys, fmt.Sprintf(constvars.RedisKeyResourceLockFmt, models.ResourceFacility, *period.FacilityID, period.DayOfWeek))
	}

	type heldLock struct {
		key   string
		value string
	}
	var held []heldLock
	release := func() {
		for _, lock := range held {
			if err := u.locker.Unlock(ctx, lock.key, lock.value); err != nil {
				u.logger.Warn("failed to release resource lock",
					zap.String(constvars.LoggingRedisKey, lock.key),
					zap.Error(err),
				)
			}
		}
	}

	for _, key := range keys {
		acquired, lockValue, err := u.locker.TryLock(ctx, key, u.lockTTL)
		if err != nil {
			release()
			return nil, err
		}
		if !acquired {
			release()
			return nil, exceptions.ErrResourceLockBusy()
		}
		held = append(held, heldLock{key: key, value: lockValue})
	}
	return release, nil
}

func dedupePeriods(existing, candidates []models.TimetablePeriod) []models.TimetablePeriod {
	seen := make(map[uuid.UUID]bool, len(existing))
	for _, period := range existing {
		seen[period.ID] = true
	}
	var fresh []models.TimetablePeriod
	for _, period := range candidates {
		if !seen[period.ID] {
			fresh = append(fresh, period)
		}
	}
	return fresh
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		return nil, exceptions.ErrInvalidFormat(err, field)
	}
	return &parsed, nil
}
