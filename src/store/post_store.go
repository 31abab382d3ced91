package store

import (
	"context"
	"errors"

	"github.com/theleywin/devconnect-backend/src/lib"
	"github.com/theleywin/devconnect-backend/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPosts struct {
	coll *mongo.Collection
}

func (s *mongoPosts) Create(ctx context.Context, post *models.Post) error {
	defer lib.TrackStoreOp(postsCollection, "insert")()

	if post.Id.IsZero() {
		post.Id = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, post); err != nil {
		return failed(ctx, postsCollection, "insert", err)
	}
	return nil
}

func (s *mongoPosts) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	defer lib.TrackStoreOp(postsCollection, "find")()

	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, failed(ctx, postsCollection, "find", err)
	}
	return &post, nil
}

func (s *mongoPosts) List(ctx context.Context) ([]models.Post, error) {
	defer lib.TrackStoreOp(postsCollection, "list")()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, failed(ctx, postsCollection, "list", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, failed(ctx, postsCollection, "list", err)
	}
	return posts, nil
}

func (s *mongoPosts) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error {
	defer lib.TrackStoreOp(postsCollection, "delete")()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "user": owner})
	if err != nil {
		return failed(ctx, postsCollection, "delete", err)
	}
	if res.DeletedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

func (s *mongoPosts) PushLike(ctx context.Context, postID primitive.ObjectID, like models.Like) (*models.Post, error) {
	return s.conditionalUpdate(ctx, "push_like", notLikedFilter(postID, like.User), prepend("likes", like))
}

func (s *mongoPosts) PullLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}
	return s.conditionalUpdate(ctx, "pull_like", likedFilter(postID, userID), update)
}

func (s *mongoPosts) PushComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	post, err := s.conditionalUpdate(ctx, "push_comment", bson.M{"_id": postID}, prepend("comments", comment))
	if errors.Is(err, ErrNoMatch) {
		return nil, ErrNotFound
	}
	return post, err
}

func (s *mongoPosts) PullComment(ctx context.Context, postID, commentID, actor primitive.ObjectID) (*models.Post, error) {
	filter := removableCommentFilter(postID, commentID, actor)
	return s.conditionalUpdate(ctx, "pull_comment", filter, pullByID("comments", commentID))
}

// conditionalUpdate applies update when filter matches and returns the post after the write.
func (s *mongoPosts) conditionalUpdate(ctx context.Context, op string, filter, update bson.M) (*models.Post, error) {
	defer lib.TrackStoreOp(postsCollection, op)()

	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx, filter, update, afterUpdate()).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoMatch
	}
	if err != nil {
		return nil, failed(ctx, postsCollection, op, err)
	}
	return &post, nil
}
