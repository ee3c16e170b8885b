// file: service/agora_service_test.go

package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgoraService_CanJoin(t *testing.T) {
	t.Run("participant is admitted", func(t *testing.T) {
		mockRepo := new(mockMeetingRepo)
		mockRepo.On("ExistsParticipant", 1, "group-1").Return(true, nil).Once()

		assert.True(t, NewAgoraService(mockRepo).CanJoin(1, "group-1"))
	})

	t.Run("non-participant is denied", func(t *testing.T) {
		mockRepo := new(mockMeetingRepo)
		mockRepo.On("ExistsParticipant", 3, "group-1").Return(false, nil).Once()

		assert.False(t, NewAgoraService(mockRepo).CanJoin(3, "group-1"))
	})

	t.Run("lookup error fails closed", func(t *testing.T) {
		mockRepo := new(mockMeetingRepo)
		mockRepo.On("ExistsParticipant", 1, "group-1").Return(false, errors.New("db down")).Once()

		assert.False(t, NewAgoraService(mockRepo).CanJoin(1, "group-1"))
	})
}

func TestAgoraService_IssueToken(t *testing.T) {
	agoraService := NewAgoraService(nil)

	before := time.Now()
	token, err := agoraService.IssueToken("group-1", 42)
	after := time.Now()

	assert.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, 42, token.UID)
	assert.NotEmpty(t, token.AppID)

	// Expiry is always one hour out from issuance.
	assert.GreaterOrEqual(t, token.ExpiresAt, before.Add(rtcTokenLifetime).Unix())
	assert.LessOrEqual(t, token.ExpiresAt, after.Add(rtcTokenLifetime).Unix())
}

func TestAgoraService_IssueToken_ReissueMovesExpiry(t *testing.T) {
	agoraService := NewAgoraService(nil)

	first, err := agoraService.IssueToken("group-1", 42)
	assert.NoError(t, err)

	// Expiries have second granularity, so put a full second between the
	// two issuances.
	time.Sleep(1100 * time.Millisecond)

	second, err := agoraService.IssueToken("group-1", 42)
	assert.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Greater(t, second.ExpiresAt, first.ExpiresAt)

	// Same channel and user on both: only the validity window moved.
	assert.Equal(t, first.UID, second.UID)
	assert.Equal(t, first.AppID, second.AppID)
}
