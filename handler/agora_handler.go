package handler

import (
	"encoding/json"
	"meetbook-api/common"
	"meetbook-api/logger"
	"meetbook-api/service"
	"net/http"

	"github.com/sirupsen/logrus"
)

type AgoraHandler struct {
	agoraService *service.AgoraService
}

func NewAgoraHandler(agoraService *service.AgoraService) *AgoraHandler {
	return &AgoraHandler{agoraService: agoraService}
}

// GenerateToken issues a real-time session token for a meeting channel.
// Non-participants get a 403 whether or not the channel exists, so the
// endpoint never confirms channel names to outsiders.
func (h *AgoraHandler) GenerateToken(w http.ResponseWriter, r *http.Request) *common.AppError {
	channelName := r.URL.Query().Get("channelName")
	if channelName == "" {
		return common.NewAppError(http.StatusBadRequest, "Channel name is required", nil)
	}

	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid session", nil)
	}

	if !h.agoraService.CanJoin(userID, channelName) {
		logger.Log.WithFields(logrus.Fields{
			"user_id": userID,
			"channel": channelName,
		}).Warn("Channel access denied")
		return common.NewAppError(http.StatusForbidden, "You are not a participant of this meeting", nil)
	}

	token, err := h.agoraService.IssueToken(channelName, userID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not issue channel token", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(token)
	return nil
}
