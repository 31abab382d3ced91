package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/theleywin/devconnect-backend/src/apperror"
	"github.com/theleywin/devconnect-backend/src/lib"
	"github.com/theleywin/devconnect-backend/src/models"
	"github.com/theleywin/devconnect-backend/src/store"
	"github.com/theleywin/devconnect-backend/src/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AccountValidator interface {
	Register(in validation.RegisterInput) apperror.FieldErrors
	Login(in validation.LoginInput) apperror.FieldErrors
}

type AuthService struct {
	users     store.Users
	validator AccountValidator
	secret    string
	ttl       time.Duration
}

func NewAuthService(users store.Users, validator AccountValidator, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		validator: validator,
		secret:    secret,
		ttl:       ttl,
	}
}

// Register creates a user with a hashed password and a gravatar avatar.
func (s *AuthService) Register(ctx context.Context, in validation.RegisterInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := invalid(s.validator.Register(in)); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperror.InvalidField("email", "Email already exists")
	case !errors.Is(err, store.ErrNotFound):
		return nil, apperror.StoreFailure("find user", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		Password: string(hashed),
		Avatar:   lib.Gravatar(in.Email),
		Date:     time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, apperror.InvalidField("email", "Email already exists")
		}
		return nil, apperror.StoreFailure("create user", err)
	}
	return user, nil
}

// Login checks the credentials and returns a "Bearer <jwt>" token.
func (s *AuthService) Login(ctx context.Context, in validation.LoginInput) (string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := invalid(s.validator.Login(in)); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", &apperror.AppError{
				Kind:    apperror.KindNotFound,
				Message: "User not found",
				Fields:  apperror.FieldErrors{"email": "User not found"},
			}
		}
		return "", apperror.StoreFailure("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", apperror.InvalidField("password", "Password incorrect")
	}

	token, err := lib.GenerateJWT(user.Id.Hex(), user.Name, user.Avatar, s.secret, s.ttl)
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}

// Authenticate resolves a bearer token (without the "Bearer " prefix) to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	sub, err := lib.VerifyJWT(token, s.secret)
	if err != nil {
		return nil, apperror.Unauthenticated("Unauthorized - Invalid token")
	}

	id, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return nil, apperror.Unauthenticated("Unauthorized - Invalid token")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.Unauthenticated("Unauthorized - User not found")
		}
		return nil, apperror.StoreFailure("find user", err)
	}
	user.Password = ""
	return user, nil
}
