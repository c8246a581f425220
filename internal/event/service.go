package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gwsanta/secret-santa-backend/internal/auditlog"
	"github.com/gwsanta/secret-santa-backend/middleware"
)

var (
	ErrInvalidStageType = errors.New("invalid stage type")
	ErrEventNotFound    = errors.New("event not found")
)

var knownStageTypes = map[string]bool{
	StageRegistration: true,
	StageApproval:     true,
	StageAssignment:   true,
	StageGiftExchange: true,
	StageClosing:      true,
}

// Service wraps business logic for gift exchange events
type Service struct {
	Repo               *Repository
	AuditSvc           auditlog.Service
	DefaultClockOffset int
}

func NewService(r *Repository, auditSvc auditlog.Service, defaultClockOffset int) *Service {
	return &Service{
		Repo:               r,
		AuditSvc:           auditSvc,
		DefaultClockOffset: defaultClockOffset,
	}
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(req *CreateEventRequest, accessContext middleware.AccessContext, ip string) (*Event, error) {
	if !accessContext.CanWrite() || !accessContext.IsAdmin() {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "EVENT_CREATED",
			map[string]interface{}{"name": req.Name, "error": "write access denied"}, ip, "failure")
		return nil, errors.New("write access denied")
	}

	offset := s.DefaultClockOffset
	if req.ClockOffsetHours != nil {
		offset = *req.ClockOffsetHours
	}

	ev := &Event{
		Name:             req.Name,
		Description:      req.Description,
		AwardID:          req.AwardID,
		ClockOffsetHours: offset,
		CreatedBy:        accessContext.UserID,
	}

	for _, st := range req.Stages {
		if !knownStageTypes[st.StageType] {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStageType, st.StageType)
		}
		stage := Stage{
			StageType:     st.StageType,
			StageOrder:    st.StageOrder,
			StartDatetime: st.StartDatetime,
			EndDatetime:   st.EndDatetime,
		}
		if st.IsRequired != nil {
			stage.IsRequired = *st.IsRequired
		}
		if st.IsOptional != nil {
			stage.IsOptional = *st.IsOptional
		}
		ev.Stages = append(ev.Stages, stage)
	}

	if err := s.Repo.CreateEvent(ev); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "EVENT_CREATED",
			map[string]interface{}{"name": req.Name, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &ev.ID, "EVENT_CREATED",
		map[string]interface{}{
			"event_id":     ev.ID,
			"name":         ev.Name,
			"stages":       len(ev.Stages),
			"clock_offset": ev.ClockOffsetHours,
		}, ip, "success")

	return ev, nil
}

// ===========================
// 🔍 Get Event by ID
func (s *Service) GetEventByID(id uint) (*Event, error) {
	ev, err := s.Repo.GetEventByID(id)
	if err != nil {
		return nil, ErrEventNotFound
	}
	return ev, nil
}

// ===========================
// 📄 List Events with Pagination
func (s *Service) ListEvents(limit, offset int, search string) ([]Event, error) {
	return s.Repo.ListEvents(limit, offset, search)
}

// ===========================
// 📊 Event Status (current stage from the event clock)
func (s *Service) GetEventStatus(id uint, now time.Time) (*EventStatusResponse, error) {
	ev, err := s.Repo.GetEventByID(id)
	if err != nil {
		return nil, ErrEventNotFound
	}

	eventNow := EventNow(ev, now)
	stage, pos := CurrentStage(ev, eventNow)

	return &EventStatusResponse{
		EventID:      ev.ID,
		Position:     string(pos),
		CurrentStage: stage,
		EventNow:     eventNow.Format("2006-01-02 15:04:05"),
		CanRegister:  CanRegister(ev, eventNow),
	}, nil
}

// ===========================
// 🛠 Update Event
func (s *Service) UpdateEvent(id uint, req *UpdateEventRequest, accessContext middleware.AccessContext, ip string) error {
	if !accessContext.CanWrite() || !accessContext.IsAdmin() {
		return errors.New("write access denied")
	}

	ev, err := s.Repo.GetEventByID(id)
	if err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &id, "EVENT_UPDATED",
			map[string]interface{}{"event_id": id, "error": "event not found"}, ip, "failure")
		return ErrEventNotFound
	}

	ev.Name = req.Name
	ev.Description = req.Description
	ev.AwardID = req.AwardID
	if req.ClockOffsetHours != nil {
		ev.ClockOffsetHours = *req.ClockOffsetHours
	}

	if err := s.Repo.UpdateEvent(ev); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &id, "EVENT_UPDATED",
			map[string]interface{}{"event_id": id, "error": err.Error()}, ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &id, "EVENT_UPDATED",
		map[string]interface{}{"event_id": id, "name": ev.Name}, ip, "success")
	return nil
}

// ===========================
// 🛠 Upsert Stage
func (s *Service) SaveStage(eventID uint, req *CreateStageRequest, accessContext middleware.AccessContext, ip string) (*Stage, error) {
	if !accessContext.CanWrite() || !accessContext.IsAdmin() {
		return nil, errors.New("write access denied")
	}
	if !knownStageTypes[req.StageType] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStageType, req.StageType)
	}

	if _, err := s.Repo.GetEventByID(eventID); err != nil {
		return nil, ErrEventNotFound
	}

	stage := &Stage{
		EventID:       eventID,
		StageType:     req.StageType,
		StageOrder:    req.StageOrder,
		StartDatetime: req.StartDatetime,
		EndDatetime:   req.EndDatetime,
	}
	if req.IsRequired != nil {
		stage.IsRequired = *req.IsRequired
	}
	if req.IsOptional != nil {
		stage.IsOptional = *req.IsOptional
	}

	if err := s.Repo.SaveStage(stage); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "STAGE_SAVED",
			map[string]interface{}{"event_id": eventID, "stage_type": req.StageType, "error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &eventID, "STAGE_SAVED",
		map[string]interface{}{"event_id": eventID, "stage_type": req.StageType, "stage_order": req.StageOrder}, ip, "success")
	return stage, nil
}

// ===========================
// ❌ Soft Delete Event
func (s *Service) DeleteEvent(id uint, accessContext middleware.AccessContext, ip string) error {
	if !accessContext.CanWrite() || !accessContext.IsAdmin() {
		return errors.New("write access denied")
	}

	ev, err := s.Repo.GetEventByID(id)
	if err != nil {
		return ErrEventNotFound
	}

	if err := s.Repo.DeleteEvent(id); err != nil {
		s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &id, "EVENT_DELETED",
			map[string]interface{}{"event_id": id, "error": err.Error()}, ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, &id, "EVENT_DELETED",
		map[string]interface{}{"event_id": id, "name": ev.Name}, ip, "success")
	return nil
}
