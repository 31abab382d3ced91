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

type mongoProfiles struct {
	coll *mongo.Collection
}

func (s *mongoProfiles) Create(ctx context.Context, profile *models.Profile) error {
	defer lib.TrackStoreOp(profilesCollection, "insert")()

	if profile.Id.IsZero() {
		profile.Id = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, profile)
	if err == nil {
		return nil
	}
	switch duplicateIndex(err) {
	case handleIndex:
		return ErrDuplicateHandle
	case ownerIndex:
		return ErrDuplicateUser
	}
	return failed(ctx, profilesCollection, "insert", err)
}

func (s *mongoProfiles) Update(ctx context.Context, userID primitive.ObjectID, fields models.ProfileFields) (*models.Profile, error) {
	set := profileSet(fields)
	if len(set) == 0 {
		view, err := s.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &view.Profile, nil
	}

	profile, err := s.findOneAndUpdate(ctx, "update", bson.M{"user": userID}, bson.M{"$set": set})
	if duplicateIndex(err) == handleIndex {
		return nil, ErrDuplicateHandle
	}
	return profile, err
}

func (s *mongoProfiles) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.ProfileView, error) {
	return s.findView(ctx, bson.M{"user": userID})
}

func (s *mongoProfiles) FindByHandle(ctx context.Context, handle string) (*models.ProfileView, error) {
	return s.findView(ctx, bson.M{"handle": handle})
}

func (s *mongoProfiles) List(ctx context.Context) ([]models.ProfileView, error) {
	defer lib.TrackStoreOp(profilesCollection, "aggregate")()

	cursor, err := s.coll.Aggregate(ctx, profileViewPipeline(bson.M{}))
	if err != nil {
		return nil, failed(ctx, profilesCollection, "aggregate", err)
	}
	defer cursor.Close(ctx)

	profiles := []models.ProfileView{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, failed(ctx, profilesCollection, "aggregate", err)
	}
	return profiles, nil
}

func (s *mongoProfiles) PushExperience(ctx context.Context, userID primitive.ObjectID, entry models.Experience) (*models.Profile, error) {
	return s.findOneAndUpdate(ctx, "push_experience", bson.M{"user": userID}, prepend("experience", entry))
}

func (s *mongoProfiles) PullExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return s.findOneAndUpdate(ctx, "pull_experience", bson.M{"user": userID}, pullByID("experience", entryID))
}

func (s *mongoProfiles) PushEducation(ctx context.Context, userID primitive.ObjectID, entry models.Education) (*models.Profile, error) {
	return s.findOneAndUpdate(ctx, "push_education", bson.M{"user": userID}, prepend("education", entry))
}

func (s *mongoProfiles) PullEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return s.findOneAndUpdate(ctx, "pull_education", bson.M{"user": userID}, pullByID("education", entryID))
}

func (s *mongoProfiles) findView(ctx context.Context, match bson.M) (*models.ProfileView, error) {
	defer lib.TrackStoreOp(profilesCollection, "aggregate")()

	cursor, err := s.coll.Aggregate(ctx, profileViewPipeline(match))
	if err != nil {
		return nil, failed(ctx, profilesCollection, "aggregate", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, failed(ctx, profilesCollection, "aggregate", err)
		}
		return nil, ErrNotFound
	}

	var view models.ProfileView
	if err := cursor.Decode(&view); err != nil {
		return nil, failed(ctx, profilesCollection, "decode", err)
	}
	return &view, nil
}

// findOneAndUpdate applies update to the matching profile and returns the document after the write.
// Duplicate key errors are returned unwrapped so callers can classify them.
func (s *mongoProfiles) findOneAndUpdate(ctx context.Context, op string, filter, update bson.M) (*models.Profile, error) {
	defer lib.TrackStoreOp(profilesCollection, op)()

	var profile models.Profile
	err := s.coll.FindOneAndUpdate(ctx, filter, update, afterUpdate()).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		return nil, failed(ctx, profilesCollection, op, err)
	}
	return &profile, nil
}
