package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finassist/internal/matching"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

func TestService_Suggest(t *testing.T) {
	type testCase struct {
		name     string
		stored   string
		storeErr error
		want     transaction.Category
		wantOK   bool
		wantErr  bool
	}

	tests := []testCase{
		{name: "Match", stored: "Transport", want: transaction.CategoryTransport, wantOK: true},
		{name: "NoMatch", stored: ""},
		{name: "StaleCategoryIgnored", stored: "Groceries"},
		{name: "RepoError", storeErr: errors.New("db error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userID := uuid.New()
			repo := matching.NewMockRepository(ctrl)
			repo.EXPECT().FindMatch(gomock.Any(), userID, "UBER *TRIP").Return(tt.stored, tt.storeErr)

			got, ok, err := matching.NewService(repo).Suggest(context.Background(), userID, "  UBER *TRIP ")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().CreateMapping(gomock.Any(), userID, "UBER", transaction.CategoryTransport).Return(nil)

	svc := matching.NewService(repo)
	require.NoError(t, svc.Learn(context.Background(), userID, " UBER ", transaction.CategoryTransport))

	assert.ErrorIs(t, svc.Learn(context.Background(), userID, "  ", transaction.CategoryFood), matching.ErrEmptyPattern)
	assert.ErrorIs(t, svc.Learn(context.Background(), userID, "X", "Nope"), transaction.ErrInvalidCategory)
}
