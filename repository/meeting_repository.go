package repository

import (
	"database/sql"
	"meetbook-api/logger"
	"meetbook-api/model"
	"time"

	"github.com/sirupsen/logrus"
)

// IMeetingRepository defines the contract for meeting database
// operations. Methods taking a *sql.Tx participate in a caller-owned
// transaction; the service layer decides the transaction boundary.
type IMeetingRepository interface {
	CreateMeetingTx(tx *sql.Tx, meeting *model.Meeting) error
	GetMeetingByIDTx(tx *sql.Tx, id int) (*model.Meeting, error)
	UpdateTitleTx(tx *sql.Tx, id int, title string) error
	DeleteSiblingsTx(tx *sql.Tx, id int, title string, start, end time.Time) error
	DeleteMeeting(id int) (int64, error)
	GetAllMeetings() ([]*model.Meeting, error)
	ExistsParticipant(userID int, groupID string) (bool, error)
}

// MeetingRepository implements IMeetingRepository.
type MeetingRepository struct {
	DB *sql.DB
}

func NewMeetingRepository(db *sql.DB) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

// CreateMeetingTx inserts one participant row inside the given transaction.
func (r *MeetingRepository) CreateMeetingTx(tx *sql.Tx, meeting *model.Meeting) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":  meeting.UserID,
		"group_id": meeting.GroupID,
	})
	log.Info("Executing query to create a meeting row")

	query := `INSERT INTO meetings (title, start_time, end_time, user_id, group_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := tx.QueryRow(query, meeting.Title, meeting.Start, meeting.End, meeting.UserID, meeting.GroupID).
		Scan(&meeting.ID, &meeting.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create meeting query")
		return err
	}
	return nil
}

// GetMeetingByIDTx loads one row inside the given transaction, so that
// an update's read-modify-write sequence sees a consistent row.
func (r *MeetingRepository) GetMeetingByIDTx(tx *sql.Tx, id int) (*model.Meeting, error) {
	meeting := &model.Meeting{}
	query := `SELECT id, title, start_time, end_time, user_id, group_id, created_at
		FROM meetings WHERE id = $1`
	err := tx.QueryRow(query, id).
		Scan(&meeting.ID, &meeting.Title, &meeting.Start, &meeting.End, &meeting.UserID, &meeting.GroupID, &meeting.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("meeting_id", id).Error("Failed to execute get meeting by id query")
		}
		return nil, err // sql.ErrNoRows when absent
	}
	return meeting, nil
}

// UpdateTitleTx rewrites the title of a single row inside the given
// transaction.
func (r *MeetingRepository) UpdateTitleTx(tx *sql.Tx, id int, title string) error {
	log := logger.Log.WithFields(logrus.Fields{
		"meeting_id": id,
		"title":      title,
	})
	log.Info("Executing query to update meeting title")

	query := `UPDATE meetings SET title = $1 WHERE id = $2`
	_, err := tx.Exec(query, title, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute update meeting title query")
		return err
	}
	return nil
}

// DeleteSiblingsTx removes every row other than the given one that
// matches the (title, start, end) triple. This is the membership-reset
// step of a meeting update: invitee rows of the superseded occurrence
// are located by the triple, not by group id, because updates reissue
// group ids (see service layer).
func (r *MeetingRepository) DeleteSiblingsTx(tx *sql.Tx, id int, title string, start, end time.Time) error {
	log := logger.Log.WithField("meeting_id", id)
	log.Info("Executing query to delete sibling meeting rows")

	query := `DELETE FROM meetings WHERE id <> $1 AND title = $2 AND start_time = $3 AND end_time = $4`
	_, err := tx.Exec(query, id, title, start, end)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete sibling rows query")
		return err
	}
	return nil
}

// DeleteMeeting removes exactly one row and reports how many rows were
// affected. Sibling rows sharing the group id are untouched.
func (r *MeetingRepository) DeleteMeeting(id int) (int64, error) {
	log := logger.Log.WithField("meeting_id", id)
	log.Info("Executing query to delete a meeting row")

	result, err := r.DB.Exec(`DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete meeting query")
		return 0, err
	}
	return result.RowsAffected()
}

func (r *MeetingRepository) GetAllMeetings() ([]*model.Meeting, error) {
	log := logger.Log
	log.Info("Executing query to get all meetings")

	query := `SELECT id, title, start_time, end_time, user_id, group_id, created_at FROM meetings`
	rows, err := r.DB.Query(query)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for all meetings")
		return nil, err
	}
	defer rows.Close()

	var meetings []*model.Meeting
	for rows.Next() {
		var m model.Meeting
		if err := rows.Scan(&m.ID, &m.Title, &m.Start, &m.End, &m.UserID, &m.GroupID, &m.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan meeting row")
			return nil, err
		}
		meetings = append(meetings, &m)
	}
	return meetings, nil
}

// ExistsParticipant reports whether a row binds the given user to the
// given meeting group. Used by the real-time access guard.
func (r *MeetingRepository) ExistsParticipant(userID int, groupID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM meetings WHERE user_id = $1 AND group_id = $2)`
	err := r.DB.QueryRow(query, userID, groupID).Scan(&exists)
	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"user_id":  userID,
			"group_id": groupID,
		}).Error("Failed to execute participant lookup query")
		return false, err
	}
	return exists, nil
}
