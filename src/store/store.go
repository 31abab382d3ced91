// Package store holds the document store access for users, profiles and posts.
package store

import (
	"context"
	"errors"

	"github.com/theleywin/devconnect-backend/src/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound means the addressed document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrNoMatch means a conditional write matched no document; the caller re-reads to find out why.
	ErrNoMatch = errors.New("conditional write matched no document")

	ErrDuplicateEmail  = errors.New("email already registered")
	ErrDuplicateHandle = errors.New("handle already taken")
	ErrDuplicateUser   = errors.New("profile already exists for user")
)

type Users interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type Profiles interface {
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, userID primitive.ObjectID, fields models.ProfileFields) (*models.Profile, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.ProfileView, error)
	FindByHandle(ctx context.Context, handle string) (*models.ProfileView, error)
	List(ctx context.Context) ([]models.ProfileView, error)
	PushExperience(ctx context.Context, userID primitive.ObjectID, entry models.Experience) (*models.Profile, error)
	PullExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error)
	PushEducation(ctx context.Context, userID primitive.ObjectID, entry models.Education) (*models.Profile, error)
	PullEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error)
}

type Posts interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	// DeleteOwned deletes the post only when owner matches; ErrNoMatch otherwise.
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error
	// PushLike prepends like unless like.User already liked the post; ErrNoMatch otherwise.
	PushLike(ctx context.Context, postID primitive.ObjectID, like models.Like) (*models.Post, error)
	// PullLike removes the user's like; ErrNoMatch when there is none.
	PullLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error)
	PushComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error)
	// PullComment removes the comment when actor wrote it or owns the post; ErrNoMatch otherwise.
	PullComment(ctx context.Context, postID, commentID, actor primitive.ObjectID) (*models.Post, error)
}

// Accounts removes a user together with the profile.
type Accounts interface {
	DeleteAccount(ctx context.Context, userID primitive.ObjectID) error
}

// Store bundles the collections used by the services.
type Store struct {
	Users    Users
	Profiles Profiles
	Posts    Posts
	Accounts Accounts
	// Ping reports whether the backing store is reachable.
	Ping func(ctx context.Context) error
	// Close releases the backing connection.
	Close func(ctx context.Context) error
}
