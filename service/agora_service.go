// file: service/agora_service.go

package service

import (
	"fmt"
	"meetbook-api/config"
	"meetbook-api/logger"
	"meetbook-api/repository"
	"time"

	rtctokenbuilder "github.com/AgoraIO/Tools/DynamicKey/AgoraDynamicKey/go/src/rtctokenbuilder2"
	"github.com/sirupsen/logrus"
)

// rtcTokenLifetime is the fixed validity window of an issued RTC token.
const rtcTokenLifetime = 3600 * time.Second

// RtcToken is the capability credential a client presents to the Agora
// service to join one channel as one user.
type RtcToken struct {
	Token     string `json:"token"`
	UID       int    `json:"uid"`
	AppID     string `json:"appId"`
	ExpiresAt int64  `json:"expiresAt"`
}

// AgoraService gates and issues real-time session tokens. CanJoin is
// the authorization decision; IssueToken trusts its caller and must only
// be reached behind a positive CanJoin.
type AgoraService struct {
	meetingRepo repository.IMeetingRepository
}

func NewAgoraService(meetingRepo repository.IMeetingRepository) *AgoraService {
	return &AgoraService{meetingRepo: meetingRepo}
}

// CanJoin reports whether the user is a participant of the meeting group
// behind the channel. It fails closed: a lookup error denies access just
// like a missing row does.
func (s *AgoraService) CanJoin(userID int, channelName string) bool {
	ok, err := s.meetingRepo.ExistsParticipant(userID, channelName)
	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"channel": channelName,
		}).Warn("Participant lookup failed, denying channel access")
		return false
	}
	return ok
}

// IssueToken builds a publisher token for one channel and user, valid
// for one hour from now.
func (s *AgoraService) IssueToken(channelName string, userID int) (*RtcToken, error) {
	cfg := config.AppConfig.Agora
	expireSeconds := uint32(rtcTokenLifetime / time.Second)

	token, err := rtctokenbuilder.BuildTokenWithUid(
		cfg.AppID,
		cfg.AppCertificate,
		channelName,
		uint32(userID),
		rtctokenbuilder.RolePublisher,
		expireSeconds,
		expireSeconds,
	)
	if err != nil {
		logger.Log.WithError(err).WithField("channel", channelName).Error("Failed to build RTC token")
		return nil, fmt.Errorf("failed to build rtc token: %w", err)
	}

	return &RtcToken{
		Token:     token,
		UID:       userID,
		AppID:     cfg.AppID,
		ExpiresAt: time.Now().Add(rtcTokenLifetime).Unix(),
	}, nil
}
