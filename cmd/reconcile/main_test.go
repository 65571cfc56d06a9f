package main

import (
	"context"
	"errors"
	"testing"

	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_reconcileAll(t *testing.T) {
	ctx := context.Background()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	t.Run("正常系: ページをまたいで数える", func(t *testing.T) {
		users := mocks.NewUserService(t)
		users.On("ListUserIDs", ctx, uuid.Nil, 2).Return([]uuid.UUID{a, b}, nil).Once()
		users.On("ListUserIDs", ctx, b, 2).Return([]uuid.UUID{c}, nil).Once()
		users.On("Reconcile", ctx, a).Return(&model.ReconcileReport{UserID: a, Consistent: true}, nil).Once()
		users.On("Reconcile", ctx, b).Return(&model.ReconcileReport{UserID: b, CachedTotal: 10, LedgerTotal: 20}, nil).Once()
		users.On("Reconcile", ctx, c).Return(&model.ReconcileReport{UserID: c, Consistent: true}, nil).Once()

		checked, mismatched, err := reconcileAll(ctx, users, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, checked)
		assert.Equal(t, 1, mismatched)
	})

	t.Run("異常系: 途中で失敗", func(t *testing.T) {
		users := mocks.NewUserService(t)
		users.On("ListUserIDs", ctx, uuid.Nil, 2).Return([]uuid.UUID{a, b}, nil).Once()
		users.On("Reconcile", ctx, a).Return(nil, model.NewStorageError("UserService.Reconcile", errors.New("db down"))).Once()

		checked, _, err := reconcileAll(ctx, users, 2)
		assert.ErrorIs(t, err, model.ErrStorage)
		assert.Zero(t, checked)
	})
}
