package handler

import (
	"encoding/json"
	"meetbook-api/common"
	"meetbook-api/logger"
	"meetbook-api/model"
	"meetbook-api/service"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type MeetingHandler struct {
	meetingService *service.MeetingService
}

func NewMeetingHandler(meetingService *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

// CreateMeeting godoc
// @Summary      Book a meeting with invited participants
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        request body model.CreateMeetingRequest true "Meeting payload"
// @Success      201 {object} model.Meeting
// @Router       /api/meetings [post]
func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateMeetingRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	organizerID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid session", nil)
	}

	log := logger.Log.WithFields(logrus.Fields{
		"organizer_id": organizerID,
		"title":        req.Title,
	})
	log.Info("Create meeting request received")

	meeting, err := h.meetingService.CreateMeeting(r.Context(), organizerID, req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create meeting", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "data": meeting})
	return nil
}

// ListMeetings returns every meeting row. The calendar view groups rows
// client-side by group id.
func (h *MeetingHandler) ListMeetings(w http.ResponseWriter, r *http.Request) *common.AppError {
	meetings, err := h.meetingService.ListMeetings(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve meetings", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "data": meetings})
	return nil
}

// UpdateMeeting rewrites a meeting's title and invitee set.
func (h *MeetingHandler) UpdateMeeting(w http.ResponseWriter, r *http.Request) *common.AppError {
	meetingID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid meeting id", err)
	}

	var req model.UpdateMeetingRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	meeting, svcErr := h.meetingService.UpdateMeeting(r.Context(), meetingID, req)
	if svcErr != nil {
		if svcErr == service.ErrMeetingNotFound {
			return common.NewAppError(http.StatusNotFound, "Meeting not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update meeting", svcErr)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "success", "data": meeting})
	return nil
}

// DeleteMeeting removes one participant row.
func (h *MeetingHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) *common.AppError {
	meetingID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid meeting id", err)
	}

	if err := h.meetingService.DeleteMeeting(r.Context(), meetingID); err != nil {
		if err == service.ErrMeetingNotFound {
			return common.NewAppError(http.StatusNotFound, "Meeting not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete meeting", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	return nil
}
