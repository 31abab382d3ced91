package store

import (
	"context"
	"errors"

	"github.com/theleywin/devconnect-backend/src/lib"
	"github.com/theleywin/devconnect-backend/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoUsers struct {
	coll *mongo.Collection
}

func (s *mongoUsers) Create(ctx context.Context, user *models.User) error {
	defer lib.TrackStoreOp(usersCollection, "insert")()

	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if duplicateIndex(err) == emailIndex {
			return ErrDuplicateEmail
		}
		return failed(ctx, usersCollection, "insert", err)
	}
	return nil
}

func (s *mongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *mongoUsers) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	defer lib.TrackStoreOp(usersCollection, "find")()

	var user models.User
	err := s.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, failed(ctx, usersCollection, "find", err)
	}
	return &user, nil
}
