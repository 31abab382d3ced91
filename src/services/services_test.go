package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/theleywin/devconnect-backend/src/models"
	"github.com/theleywin/devconnect-backend/src/store"
	"github.com/theleywin/devconnect-backend/src/store/memory"
	"github.com/theleywin/devconnect-backend/src/validation"
)

const testSecret = "services-test-secret-0123456789abcdef"

type fixture struct {
	store    *store.Store
	auth     *AuthService
	profiles *ProfileService
	posts    *PostService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.New().Store()
	v := validation.New()
	return &fixture{
		store:    s,
		auth:     NewAuthService(s.Users, v, testSecret, time.Hour),
		profiles: NewProfileService(s.Profiles, s.Accounts, v),
		posts:    NewPostService(s.Posts, v),
	}
}

func (f *fixture) register(t *testing.T, name, email string) *models.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), validation.RegisterInput{
		Name:      name,
		Email:     email,
		Password:  "secret1",
		Password2: "secret1",
	})
	require.NoError(t, err)
	return user
}

func str(s string) *string { return &s }
