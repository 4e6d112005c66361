package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/budget-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/budget-manager/internal/models"
	"github.com/magabrotheeeer/budget-manager/internal/services/auth"
	"github.com/magabrotheeeer/budget-manager/internal/storage"
)

func TestResolver_Resolve(t *testing.T) {
	user := &models.User{ID: "id-1", Email: "test@example.com"}

	tests := []struct {
		name       string
		token      string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantUser   *models.User
		wantErr    error
		errMsg     string
	}{
		{
			name:  "valid token",
			token: "valid-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "valid-token").Return("test@example.com", nil).Once()
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(user, nil).Once()
			},
			wantUser: user,
		},
		{
			name:  "invalid token",
			token: "invalid-token",
			setupMocks: func(_ *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "invalid-token").
					Return("", fmt.Errorf("jwt.ParseToken: %w", jwt.ErrInvalidToken)).Once()
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:  "user deleted after issue",
			token: "orphan-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "orphan-token").Return("gone@example.com", nil).Once()
				r.On("GetUserByEmail", mock.Anything, "gone@example.com").
					Return(nil, storage.ErrUserNotFound).Once()
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:  "storage failure",
			token: "valid-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "valid-token").Return("test@example.com", nil).Once()
				r.On("GetUserByEmail", mock.Anything, "test@example.com").
					Return(nil, errors.New("db down")).Once()
			},
			errMsg: "db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			resolver := auth.NewResolver(jwtMock, repo)

			tt.setupMocks(repo, jwtMock)

			got, err := resolver.Resolve(context.Background(), tt.token)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			case tt.errMsg != "":
				assert.ErrorContains(t, err, tt.errMsg)
				assert.NotErrorIs(t, err, auth.ErrInvalidToken)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUser, got)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}
