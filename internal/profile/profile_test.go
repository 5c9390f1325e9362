package profile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/profile"
)

func TestService_Language(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *profile.MockRepository)
		want      i18n.Language
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Stored",
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(&profile.Profile{Language: i18n.ES}, nil)
			},
			want: i18n.ES,
		},
		{
			name: "NoProfileFallsBackToDefault",
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(nil, profile.ErrNotFound)
			},
			want: i18n.Default,
		},
		{
			name: "StoredValueUnsupported",
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(&profile.Profile{Language: "fr"}, nil)
			},
			want: i18n.Default,
		},
		{
			name: "RepoError",
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := profile.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := profile.NewService(repo).Language(context.Background(), uuid.New())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_SetLanguage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := profile.NewMockRepository(ctrl)
	userID := uuid.New()

	repo.EXPECT().UpsertLanguage(gomock.Any(), userID, i18n.JA).Return(nil)

	svc := profile.NewService(repo)
	require.NoError(t, svc.SetLanguage(context.Background(), userID, i18n.JA))
	assert.ErrorIs(t, svc.SetLanguage(context.Background(), userID, "fr"), i18n.ErrUnsupportedLanguage)
}
