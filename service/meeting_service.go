package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"meetbook-api/logger"
	"meetbook-api/model"
	"meetbook-api/repository"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrMeetingNotFound = errors.New("meeting not found")

const meetingsCacheKey = "meetings:all"

// MeetingService owns the transaction boundaries for all multi-row
// meeting writes: either every participant row of a call is persisted
// or none is.
type MeetingService struct {
	db          *sql.DB
	meetingRepo repository.IMeetingRepository
	cache       ICacheClient
}

func NewMeetingService(db *sql.DB, meetingRepo repository.IMeetingRepository, cache ICacheClient) *MeetingService {
	return &MeetingService{
		db:          db,
		meetingRepo: meetingRepo,
		cache:       cache,
	}
}

// dedupeInvitees drops the organizer and repeated ids so the row set is
// one row per distinct participant.
func dedupeInvitees(organizerID int, invitedIDs []int) []int {
	seen := map[int]bool{organizerID: true}
	var out []int
	for _, id := range invitedIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// CreateMeeting books a meeting for an organizer and a set of invitees.
// A fresh group id ties the rows together; the whole batch is written in
// one transaction. The organizer's row is returned.
func (s *MeetingService) CreateMeeting(ctx context.Context, organizerID int, req model.CreateMeetingRequest) (*model.Meeting, error) {
	invitees := dedupeInvitees(organizerID, req.InvitedIDs)
	groupID := uuid.NewString()

	log := logger.Log.WithFields(logrus.Fields{
		"organizer_id": organizerID,
		"group_id":     groupID,
		"invitees":     len(invitees),
	})
	log.Info("Starting meeting creation")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	organizer := &model.Meeting{
		Title:   req.Title,
		Start:   req.Start,
		End:     req.End,
		UserID:  organizerID,
		GroupID: groupID,
	}
	if err := s.meetingRepo.CreateMeetingTx(tx, organizer); err != nil {
		return nil, fmt.Errorf("could not create organizer row: %w", err)
	}

	for _, inviteeID := range invitees {
		row := &model.Meeting{
			Title:   req.Title,
			Start:   req.Start,
			End:     req.End,
			UserID:  inviteeID,
			GroupID: groupID,
		}
		if err := s.meetingRepo.CreateMeetingTx(tx, row); err != nil {
			return nil, fmt.Errorf("could not create invitee row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	s.cache.Del(ctx, meetingsCacheKey)

	log.Info("Meeting created successfully")
	return organizer, nil
}

// UpdateMeeting rewrites a meeting's title and replaces its invitee set.
// This is a destructive re-create, not a per-row patch: the target row
// keeps its id and group id with the new title, every other row of the
// original occurrence (matched by its title/start/end triple) is
// deleted, and fresh rows are inserted for the new invitees under a new
// group id. All of it happens in one transaction.
func (s *MeetingService) UpdateMeeting(ctx context.Context, meetingID int, req model.UpdateMeetingRequest) (*model.Meeting, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"meeting_id": meetingID,
		"title":      req.Title,
	})
	log.Info("Starting meeting update")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	original, err := s.meetingRepo.GetMeetingByIDTx(tx, meetingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}

	if err := s.meetingRepo.UpdateTitleTx(tx, original.ID, req.Title); err != nil {
		return nil, fmt.Errorf("could not update meeting title: %w", err)
	}

	if err := s.meetingRepo.DeleteSiblingsTx(tx, original.ID, original.Title, original.Start, original.End); err != nil {
		return nil, fmt.Errorf("could not remove previous invitee rows: %w", err)
	}

	newGroupID := uuid.NewString()
	for _, inviteeID := range dedupeInvitees(original.UserID, req.InvitedIDs) {
		row := &model.Meeting{
			Title:   req.Title,
			Start:   original.Start,
			End:     original.End,
			UserID:  inviteeID,
			GroupID: newGroupID,
		}
		if err := s.meetingRepo.CreateMeetingTx(tx, row); err != nil {
			return nil, fmt.Errorf("could not create invitee row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	s.cache.Del(ctx, meetingsCacheKey)

	updated := *original
	updated.Title = req.Title

	log.Info("Meeting updated successfully")
	return &updated, nil
}

// DeleteMeeting removes exactly one participant row. Sibling rows of
// the same group stay in place.
func (s *MeetingService) DeleteMeeting(ctx context.Context, meetingID int) error {
	affected, err := s.meetingRepo.DeleteMeeting(meetingID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMeetingNotFound
	}

	s.cache.Del(ctx, meetingsCacheKey)
	return nil
}

// ListMeetings returns every meeting row, using a cache-aside strategy:
// reads hit Redis first, and every write path invalidates the cached
// list.
func (s *MeetingService) ListMeetings(ctx context.Context) ([]*model.Meeting, error) {
	cached, err := s.cache.Get(ctx, meetingsCacheKey).Result()
	if err == nil {
		var meetings []*model.Meeting
		if err := json.Unmarshal([]byte(cached), &meetings); err == nil {
			return meetings, nil
		}
	}

	meetings, err := s.meetingRepo.GetAllMeetings()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(meetings); err == nil {
		s.cache.Set(ctx, meetingsCacheKey, data, 10*time.Minute)
	}

	return meetings, nil
}
