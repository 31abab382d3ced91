package services

import (
	"context"
	"errors"
	"time"

	"github.com/theleywin/devconnect-backend/src/apperror"
	"github.com/theleywin/devconnect-backend/src/models"
	"github.com/theleywin/devconnect-backend/src/store"
	"github.com/theleywin/devconnect-backend/src/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostValidator interface {
	Post(in validation.PostInput) apperror.FieldErrors
}

type PostService struct {
	posts     store.Posts
	validator PostValidator
}

func NewPostService(posts store.Posts, validator PostValidator) *PostService {
	return &PostService{
		posts:     posts,
		validator: validator,
	}
}

var (
	errPostNotFound    = apperror.NotFound("Post not found")
	errCommentNotFound = apperror.NotFound("Comment does not exist")
)

// ListPosts returns all posts, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, apperror.StoreFailure("list posts", err)
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, rawID string) (*models.Post, error) {
	id, err := objectID("id", rawID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *PostService) find(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errPostNotFound
		}
		return nil, apperror.StoreFailure("find post", err)
	}
	return post, nil
}

// CreatePost stores a post owned by author. Name and avatar default to the author's.
func (s *PostService) CreatePost(ctx context.Context, author *models.User, in validation.PostInput) (*models.Post, error) {
	if err := invalid(s.validator.Post(in)); err != nil {
		return nil, err
	}

	name, avatar := byline(author, in)
	post := &models.Post{
		User:     author.Id,
		Text:     in.Text,
		Name:     name,
		Avatar:   avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
		Date:     time.Now().UTC(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperror.StoreFailure("create post", err)
	}
	return post, nil
}

// DeletePost removes the post when userID owns it.
func (s *PostService) DeletePost(ctx context.Context, userID primitive.ObjectID, rawPostID string) error {
	postID, err := objectID("id", rawPostID)
	if err != nil {
		return err
	}

	err = s.posts.DeleteOwned(ctx, postID, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNoMatch) {
		return apperror.StoreFailure("delete post", err)
	}

	post, err := s.find(ctx, postID)
	if err != nil {
		return err
	}
	if err := requireOwner(userID, post.User); err != nil {
		return err
	}
	// Owner matches on re-read, so the post was replaced between the two calls.
	return apperror.StoreFailure("delete post", store.ErrNoMatch)
}

func (s *PostService) LikePost(ctx context.Context, userID primitive.ObjectID, rawPostID string) (*models.Post, error) {
	postID, err := objectID("id", rawPostID)
	if err != nil {
		return nil, err
	}

	like := models.Like{Id: primitive.NewObjectID(), User: userID}
	post, err := s.posts.PushLike(ctx, postID, like)
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, store.ErrNoMatch) {
		return nil, apperror.StoreFailure("like post", err)
	}
	if _, err := s.find(ctx, postID); err != nil {
		return nil, err
	}
	return nil, apperror.AlreadyLiked()
}

func (s *PostService) UnlikePost(ctx context.Context, userID primitive.ObjectID, rawPostID string) (*models.Post, error) {
	postID, err := objectID("id", rawPostID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.PullLike(ctx, postID, userID)
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, store.ErrNoMatch) {
		return nil, apperror.StoreFailure("unlike post", err)
	}
	if _, err := s.find(ctx, postID); err != nil {
		return nil, err
	}
	return nil, apperror.NotLiked()
}

// AddComment prepends a comment by author to the post.
func (s *PostService) AddComment(ctx context.Context, author *models.User, rawPostID string, in validation.PostInput) (*models.Post, error) {
	postID, err := objectID("id", rawPostID)
	if err != nil {
		return nil, err
	}
	if err := invalid(s.validator.Post(in)); err != nil {
		return nil, err
	}

	name, avatar := byline(author, in)
	comment := models.Comment{
		Id:     primitive.NewObjectID(),
		User:   author.Id,
		Text:   in.Text,
		Name:   name,
		Avatar: avatar,
		Date:   time.Now().UTC(),
	}
	post, err := s.posts.PushComment(ctx, postID, comment)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errPostNotFound
		}
		return nil, apperror.StoreFailure("add comment", err)
	}
	return post, nil
}

// RemoveComment deletes a comment. Only its author or the post owner may do so.
func (s *PostService) RemoveComment(ctx context.Context, userID primitive.ObjectID, rawPostID, rawCommentID string) (*models.Post, error) {
	postID, err := objectID("id", rawPostID)
	if err != nil {
		return nil, err
	}
	commentID, err := objectID("comment_id", rawCommentID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.PullComment(ctx, postID, commentID, userID)
	if err == nil {
		return post, nil
	}
	if !errors.Is(err, store.ErrNoMatch) {
		return nil, apperror.StoreFailure("remove comment", err)
	}

	post, err = s.find(ctx, postID)
	if err != nil {
		return nil, err
	}
	i := post.CommentIndex(commentID)
	if i < 0 {
		return nil, errCommentNotFound
	}
	if err := requireOwner(userID, post.Comments[i].User, post.User); err != nil {
		return nil, err
	}
	return nil, apperror.StoreFailure("remove comment", store.ErrNoMatch)
}

func byline(author *models.User, in validation.PostInput) (string, string) {
	name, avatar := in.Name, in.Avatar
	if name == "" {
		name = author.Name
	}
	if avatar == "" {
		avatar = author.Avatar
	}
	return name, avatar
}
