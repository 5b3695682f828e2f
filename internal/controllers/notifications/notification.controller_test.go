package notificationController

import (
	"context"
	"testing"

	"gearguard/internal/apperrors"
	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/repositories/repotest"
	"gearguard/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (NotificationControllerInterface, *repotest.Store, int, int) {
	t.Helper()
	store := repotest.New()
	owner := store.AddUser("tech1", RoleTechnician, nil)
	other := store.AddUser("tech2", RoleTechnician, nil)
	return New(store.Repository(), store, validation.New()), store, owner, other
}

func TestList_AnonymousSeesNothing(t *testing.T) {
	controller, _, owner, _ := setup(t)
	ctx := context.Background()

	_, err := controller.Create(ctx, owner, NotificationInput{Message: "hello"})
	require.NoError(t, err)

	notifications, err := controller.List(ctx, nil, repositories.NotificationFilter{})
	require.NoError(t, err)
	assert.NotNil(t, notifications)
	assert.Empty(t, notifications)
}

func TestList_OnlyOwnNewestFirst(t *testing.T) {
	controller, _, owner, other := setup(t)
	ctx := context.Background()

	first, err := controller.Create(ctx, owner, NotificationInput{Message: "first"})
	require.NoError(t, err)
	second, err := controller.Create(ctx, owner, NotificationInput{Message: "second"})
	require.NoError(t, err)
	_, err = controller.Create(ctx, other, NotificationInput{Message: "not mine"})
	require.NoError(t, err)

	notifications, err := controller.List(ctx, &owner, repositories.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, second.ID, notifications[0].ID)
	assert.Equal(t, first.ID, notifications[1].ID)

	require.NoError(t, controller.MarkRead(ctx, first.ID, owner))
	unread := false
	notifications, err = controller.List(ctx, &owner, repositories.NotificationFilter{IsRead: &unread})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, second.ID, notifications[0].ID)
}

func TestCreate_Validation(t *testing.T) {
	controller, _, owner, _ := setup(t)
	ctx := context.Background()

	_, err := controller.Create(ctx, owner, NotificationInput{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "message", apperrors.FieldOf(err))

	missing := 404
	_, err = controller.Create(ctx, owner, NotificationInput{Message: "x", RelatedRequest: &missing})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "related_request", apperrors.FieldOf(err))
}

func TestMarkRead(t *testing.T) {
	controller, store, owner, other := setup(t)
	ctx := context.Background()

	notification, err := controller.Create(ctx, owner, NotificationInput{Message: "check the lathe"})
	require.NoError(t, err)
	assert.False(t, notification.IsRead)

	t.Run("missing", func(t *testing.T) {
		assert.ErrorIs(t, controller.MarkRead(ctx, 999, owner), apperrors.ErrNotFound)
	})

	t.Run("not the recipient", func(t *testing.T) {
		assert.ErrorIs(t, controller.MarkRead(ctx, notification.ID, other), apperrors.ErrPermission)
		assert.False(t, store.Notifications()[0].IsRead)
	})

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, controller.MarkRead(ctx, notification.ID, owner))
		require.NoError(t, controller.MarkRead(ctx, notification.ID, owner))
		assert.True(t, store.Notifications()[0].IsRead)
	})
}

func TestMarkAllReadAndUnreadCount(t *testing.T) {
	controller, _, owner, other := setup(t)
	ctx := context.Background()

	for _, message := range []string{"a", "b", "c"} {
		_, err := controller.Create(ctx, owner, NotificationInput{Message: message})
		require.NoError(t, err)
	}
	_, err := controller.Create(ctx, other, NotificationInput{Message: "d"})
	require.NoError(t, err)

	count, err := controller.UnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	marked, err := controller.MarkAllRead(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)

	marked, err = controller.MarkAllRead(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, marked)

	count, err = controller.UnreadCount(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
