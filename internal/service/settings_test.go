package service

import (
	"context"
	"testing"

	"candlescan/internal/dto"
	"candlescan/internal/model"
	"candlescan/pkg/logger"
	"candlescan/pkg/utils"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsFixture(t *testing.T) (SettingsService, *fakeSettingsRepo) {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	repo := newFakeSettingsRepo()
	return NewSettingsService(log, goValidator.New(), repo), repo
}

func TestSettingsGet_ReturnsDefaultsWhenAbsent(t *testing.T) {
	svc, repo := newSettingsFixture(t)

	settings, err := svc.Get(context.Background(), dto.Principal{UserID: "u1", Email: "u1@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "u1", settings.UserID)
	assert.False(t, settings.EmailNotifications)
	require.NotNil(t, settings.NotificationEmail)
	assert.Equal(t, "u1@example.com", *settings.NotificationEmail)

	// Defaults are computed, not persisted.
	assert.Zero(t, repo.upserts)
}

func TestSettingsGet_ReturnsStoredRow(t *testing.T) {
	svc, repo := newSettingsFixture(t)
	repo.byUserID["u1"] = model.Settings{
		ID:                 7,
		UserID:             "u1",
		EmailNotifications: true,
		NotificationEmail:  utils.ToPointer("stored@example.com"),
	}

	settings, err := svc.Get(context.Background(), dto.Principal{UserID: "u1", Email: "session@example.com"})
	require.NoError(t, err)
	assert.True(t, settings.EmailNotifications)
	assert.Equal(t, "stored@example.com", *settings.NotificationEmail)
}

func TestSettingsUpdate_InvalidEmailRejectedWithoutWrite(t *testing.T) {
	svc, repo := newSettingsFixture(t)
	repo.byUserID["u1"] = model.Settings{
		UserID:            "u1",
		NotificationEmail: utils.ToPointer("good@example.com"),
	}

	settings, vErr, err := svc.Update(context.Background(), dto.Principal{UserID: "u1"}, dto.UpdateSettingsRequest{
		NotificationEmail: utils.ToPointer("not-an-email"),
	})
	require.NoError(t, err)
	require.NotNil(t, vErr)
	assert.Nil(t, settings)
	assert.Equal(t, "notificationEmail", vErr.Field)
	assert.Contains(t, vErr.Message, "notificationEmail")

	// Rejected requests must leave the stored value untouched.
	assert.Zero(t, repo.upserts)
	assert.Equal(t, "good@example.com", *repo.byUserID["u1"].NotificationEmail)
}

func TestSettingsUpdate_PartialPatchPreservesOtherFields(t *testing.T) {
	svc, repo := newSettingsFixture(t)
	repo.byUserID["u1"] = model.Settings{
		UserID:             "u1",
		EmailNotifications: true,
		NotificationEmail:  utils.ToPointer("old@example.com"),
	}

	settings, vErr, err := svc.Update(context.Background(), dto.Principal{UserID: "u1"}, dto.UpdateSettingsRequest{
		NotificationEmail: utils.ToPointer("new@example.com"),
	})
	require.NoError(t, err)
	require.Nil(t, vErr)
	assert.True(t, settings.EmailNotifications)
	assert.Equal(t, "new@example.com", *settings.NotificationEmail)
	assert.Equal(t, 1, repo.upserts)
}

func TestSettingsUpdate_CreatesRowWhenAbsent(t *testing.T) {
	svc, repo := newSettingsFixture(t)

	settings, vErr, err := svc.Update(context.Background(), dto.Principal{UserID: "u2"}, dto.UpdateSettingsRequest{
		EmailNotifications: utils.ToPointer(true),
		NotificationEmail:  utils.ToPointer("fresh@example.com"),
	})
	require.NoError(t, err)
	require.Nil(t, vErr)
	assert.Equal(t, "u2", settings.UserID)
	assert.True(t, settings.EmailNotifications)
	assert.Equal(t, "fresh@example.com", *settings.NotificationEmail)

	stored := repo.byUserID["u2"]
	assert.True(t, stored.EmailNotifications)
}
