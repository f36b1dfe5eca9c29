package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/akhaled-io/ftaledger/internal/session"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *session.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *session.MockRepository) {
				m.EXPECT().
					CreateSession(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *workflow.Session) error {
						assert.Equal(t, workflow.StageReview, s.Stage)
						assert.NotEqual(t, uuid.Nil, s.ID)
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "RepoError",
			setupMock: func(m *session.MockRepository) {
				m.EXPECT().
					CreateSession(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := session.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := session.NewService(repo)
			got, err := svc.Create(context.Background(), "FY2025")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "FY2025", got.Name)
		})
	}
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := session.NewMockRepository(ctrl)
	repo.EXPECT().
		GetSession(gomock.Any(), id).
		Return(nil, session.ErrNotFound)

	svc := session.NewService(repo)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestService_SaveRoundtrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sess := workflow.New("FY2025")

	repo := session.NewMockRepository(ctrl)
	repo.EXPECT().SaveSession(gomock.Any(), sess).Return(nil)

	svc := session.NewService(repo)
	assert.NoError(t, svc.Save(context.Background(), sess))
}
