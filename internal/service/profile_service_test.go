package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileServiceForAvatars(users *fakeUserRepo, images *fakeImageStorage) ProfileService {
	if images == nil {
		return NewProfileService(users, nil, nil, nil, nil, nil, nil, time.UTC)
	}
	return NewProfileService(users, nil, nil, nil, nil, nil, images, time.UTC)
}

func TestUpdateAvatarStoresImage(t *testing.T) {
	users := newFakeUserRepo()
	volunteer := uuid.New()
	users.addProfile(model.Profile{UserID: volunteer, FullName: "Amina"})

	images := &fakeImageStorage{}
	svc := newProfileServiceForAvatars(users, images)

	profile, err := svc.UpdateAvatar(context.Background(), volunteer, strings.NewReader("png"), "me.png")
	require.NoError(t, err)
	require.NotNil(t, profile.AvatarURL)
	assert.Contains(t, *profile.AvatarURL, "/avatars/")

	stored, err := users.FindProfile(context.Background(), volunteer)
	require.NoError(t, err)
	require.NotNil(t, stored.AvatarURL)
	assert.Equal(t, *profile.AvatarURL, *stored.AvatarURL)
}

func TestUpdateAvatarRemovesPreviousImage(t *testing.T) {
	users := newFakeUserRepo()
	volunteer := uuid.New()
	old := "https://images.test/avatars/old.png"
	users.addProfile(model.Profile{UserID: volunteer, FullName: "Amina", AvatarURL: &old})

	images := &fakeImageStorage{}
	svc := newProfileServiceForAvatars(users, images)

	profile, err := svc.UpdateAvatar(context.Background(), volunteer, strings.NewReader("png"), "new.png")
	require.NoError(t, err)
	require.NotNil(t, profile.AvatarURL)
	assert.NotEqual(t, old, *profile.AvatarURL)
	assert.Contains(t, images.deleted, old)
}

func TestUpdateAvatarWithoutStorageFails(t *testing.T) {
	users := newFakeUserRepo()
	volunteer := uuid.New()
	users.addProfile(model.Profile{UserID: volunteer, FullName: "Amina"})

	svc := newProfileServiceForAvatars(users, nil)

	_, err := svc.UpdateAvatar(context.Background(), volunteer, strings.NewReader("png"), "me.png")
	assert.Error(t, err)
}

func TestUpdateAvatarUploadFailureLeavesProfileUntouched(t *testing.T) {
	users := newFakeUserRepo()
	volunteer := uuid.New()
	users.addProfile(model.Profile{UserID: volunteer, FullName: "Amina"})

	images := &fakeImageStorage{uploadErr: assert.AnError}
	svc := newProfileServiceForAvatars(users, images)

	_, err := svc.UpdateAvatar(context.Background(), volunteer, strings.NewReader("png"), "me.png")
	require.Error(t, err)

	stored, err := users.FindProfile(context.Background(), volunteer)
	require.NoError(t, err)
	assert.Nil(t, stored.AvatarURL)
}
