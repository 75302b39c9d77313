package services

import (
	"strings"
	"testing"
	"time"

	"garage-club-system/models"
	"garage-club-system/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code := utils.GenerateInviteCode()
		assert.Len(t, code, utils.InviteCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(utils.InviteCharset(), r),
				"code %q contains %q outside the alphabet", code, r)
		}
		seen[code] = true
	}
	// 200 draws from 32^8 should never collide
	assert.Len(t, seen, 200)
}

func TestCreateInvite(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInviteService(db, NewUnlockService(db))

	invite, err := svc.CreateInvite("sender-1")
	require.NoError(t, err)

	assert.Equal(t, models.InviteStatusPending, invite.Status)
	assert.Len(t, invite.Code, utils.InviteCodeLength)
	assert.Nil(t, invite.ReceiverID)
	assert.Nil(t, invite.UsedAt)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), invite.ExpiresAt, time.Minute)
}

func TestAcceptInvite(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInviteService(db, NewUnlockService(db))

	invite, err := svc.CreateInvite("sender-1")
	require.NoError(t, err)

	accepted, err := svc.AcceptInvite(invite.Code, "receiver-1")
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.ReceiverID)
	assert.Equal(t, "receiver-1", *accepted.ReceiverID)
	assert.NotNil(t, accepted.UsedAt)

	// First accepted invite grants the jdm_pack sticker pack to the sender
	var unlocks []models.Unlock
	require.NoError(t, db.Where("user_id = ?", "sender-1").Find(&unlocks).Error)
	require.Len(t, unlocks, 1)
	assert.Equal(t, models.UnlockStickerPack, unlocks[0].Type)
	assert.Equal(t, "jdm_pack", unlocks[0].ItemID)
}

func TestAcceptInviteTwice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInviteService(db, NewUnlockService(db))

	invite, err := svc.CreateInvite("sender-1")
	require.NoError(t, err)

	_, err = svc.AcceptInvite(invite.Code, "receiver-1")
	require.NoError(t, err)

	_, err = svc.AcceptInvite(invite.Code, "receiver-2")
	assert.ErrorIs(t, err, ErrInviteAlreadyUsed)
}

func TestAcceptInviteUnknownCode(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInviteService(db, NewUnlockService(db))

	_, err := svc.AcceptInvite("NOPE2345", "receiver-1")
	assert.ErrorIs(t, err, ErrInviteNotFound)
}

func TestAcceptOwnInvite(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInviteService(db, NewUnlockService(db))

	invite, err := svc.CreateInvite("sender-1")
	require.NoError(t, err)

	_, err = svc.AcceptInvite(invite.Code, "sender-1")
	assert.ErrorIs(t, err, ErrSelfInvite)

	// Invite stays redeemable by someone else
	var fresh models.Invite
	require.NoError(t, db.First(&fresh, "id = ?", invite.ID).Error)
	assert.Equal(t, models.InviteStatusPending, fresh.Status)
}

func TestAcceptExpiredInvite(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInviteService(db, NewUnlockService(db))

	invite, err := svc.CreateInvite("sender-1")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Invite{}).
		Where("id = ?", invite.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, err = svc.AcceptInvite(invite.Code, "receiver-1")
	assert.ErrorIs(t, err, ErrInviteExpired)
}
