package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theleywin/devconnect-backend/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const mockNS = "devconnect.profiles"

func duplicateKeyMessage(index string) string {
	return "E11000 duplicate key error collection: " + mockNS + " index: " + index + " dup key: { handle: \"jdoe\" }"
}

func TestMongoPostsConditionalWrites(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("no match maps to ErrNoMatch", func(mt *mtest.T) {
		posts := &mongoPosts{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := posts.PushLike(ctx, primitive.NewObjectID(), models.Like{Id: primitive.NewObjectID(), User: primitive.NewObjectID()})
		assert.ErrorIs(mt, err, ErrNoMatch)
	})

	mt.Run("comment on a missing post maps to ErrNotFound", func(mt *mtest.T) {
		posts := &mongoPosts{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := posts.PushComment(ctx, primitive.NewObjectID(), models.Comment{Id: primitive.NewObjectID()})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("match returns the document after the write", func(mt *mtest.T) {
		posts := &mongoPosts{coll: mt.Coll}
		postID, fan := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: postID},
			{Key: "text", Value: "Hello DevConnect people"},
			{Key: "likes", Value: bson.A{bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "user", Value: fan}}}},
			{Key: "comments", Value: bson.A{}},
		}}))

		post, err := posts.PushLike(ctx, postID, models.Like{Id: primitive.NewObjectID(), User: fan})
		require.NoError(mt, err)
		assert.Equal(mt, postID, post.Id)
		assert.True(mt, post.HasLike(fan))
	})

	mt.Run("delete of a foreign post maps to ErrNoMatch", func(mt *mtest.T) {
		posts := &mongoPosts{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := posts.DeleteOwned(ctx, primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNoMatch)
	})

	mt.Run("missing post maps to ErrNotFound", func(mt *mtest.T) {
		posts := &mongoPosts{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "devconnect.posts", mtest.FirstBatch))

		_, err := posts.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestMongoProfilesDuplicateKeys(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	handle := "jdoe"

	mt.Run("update onto a taken handle", func(mt *mtest.T) {
		profiles := &mongoProfiles{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: duplicateKeyMessage(handleIndex),
			Name:    "DuplicateKey",
		}))

		_, err := profiles.Update(ctx, primitive.NewObjectID(), models.ProfileFields{Handle: &handle})
		assert.ErrorIs(mt, err, ErrDuplicateHandle)
	})

	mt.Run("update of a missing profile", func(mt *mtest.T) {
		profiles := &mongoProfiles{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := profiles.Update(ctx, primitive.NewObjectID(), models.ProfileFields{Handle: &handle})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("insert with a taken handle", func(mt *mtest.T) {
		profiles := &mongoProfiles{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Code:    11000,
			Message: duplicateKeyMessage(handleIndex),
		}))

		err := profiles.Create(ctx, &models.Profile{User: primitive.NewObjectID(), Handle: handle})
		assert.ErrorIs(mt, err, ErrDuplicateHandle)
	})

	mt.Run("insert for a user who already has a profile", func(mt *mtest.T) {
		profiles := &mongoProfiles{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Code:    11000,
			Message: duplicateKeyMessage(ownerIndex),
		}))

		err := profiles.Create(ctx, &models.Profile{User: primitive.NewObjectID(), Handle: handle})
		assert.ErrorIs(mt, err, ErrDuplicateUser)
	})

	mt.Run("register with a taken email", func(mt *mtest.T) {
		users := &mongoUsers{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Code:    11000,
			Message: "E11000 duplicate key error collection: devconnect.users index: " + emailIndex + " dup key: { email: \"jane@example.com\" }",
		}))

		err := users.Create(ctx, &models.User{Email: "jane@example.com"})
		assert.ErrorIs(mt, err, ErrDuplicateEmail)
	})
}

func TestMongoProfilesFindView(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("decodes the joined owner", func(mt *mtest.T) {
		profiles := &mongoProfiles{coll: mt.Coll}
		profileID, userID := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: profileID},
			{Key: "user", Value: userID},
			{Key: "handle", Value: "jdoe"},
			{Key: "status", Value: "Developer"},
			{Key: "skills", Value: bson.A{"go", "js"}},
			{Key: "social", Value: bson.D{{Key: "twitter", Value: "https://twitter.com/jdoe"}}},
			{Key: "owner", Value: bson.D{
				{Key: "_id", Value: userID},
				{Key: "name", Value: "Jane Doe"},
				{Key: "avatar", Value: "//www.gravatar.com/avatar/x"},
			}},
		}))

		view, err := profiles.FindByHandle(ctx, "jdoe")
		require.NoError(mt, err)
		assert.Equal(mt, profileID, view.Id)
		assert.Equal(mt, userID, view.User)
		assert.Equal(mt, []string{"go", "js"}, view.Skills)
		assert.Equal(mt, "https://twitter.com/jdoe", view.Social.Twitter)
		assert.Equal(mt, models.UserSummary{Id: userID, Name: "Jane Doe", Avatar: "//www.gravatar.com/avatar/x"}, view.Owner)
	})

	mt.Run("no profile maps to ErrNotFound", func(mt *mtest.T) {
		profiles := &mongoProfiles{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNS, mtest.FirstBatch))

		_, err := profiles.FindByUser(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestMongoDeleteAccount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	accounts := func(mt *mtest.T) *mongoAccounts {
		return &mongoAccounts{
			client:   mt.Client,
			users:    mt.DB.Collection(usersCollection),
			profiles: mt.DB.Collection(profilesCollection),
		}
	}

	mt.Run("removes profile and user", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(),
		)

		require.NoError(mt, accounts(mt).DeleteAccount(ctx, primitive.NewObjectID()))
	})

	mt.Run("missing user maps to ErrNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateSuccessResponse(),
		)

		err := accounts(mt).DeleteAccount(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
