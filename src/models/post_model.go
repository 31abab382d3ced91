package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	Id       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User     primitive.ObjectID `json:"user" bson:"user"`
	Text     string             `json:"text" bson:"text"`
	Name     string             `json:"name" bson:"name"`
	Avatar   string             `json:"avatar" bson:"avatar"`
	Likes    []Like             `json:"likes" bson:"likes"`
	Comments []Comment          `json:"comments" bson:"comments"`
	Date     time.Time          `json:"date" bson:"date"`
}

type Like struct {
	Id   primitive.ObjectID `json:"id" bson:"_id"`
	User primitive.ObjectID `json:"user" bson:"user"`
}

type Comment struct {
	Id     primitive.ObjectID `json:"id" bson:"_id"`
	User   primitive.ObjectID `json:"user" bson:"user"`
	Text   string             `json:"text" bson:"text"`
	Name   string             `json:"name" bson:"name"`
	Avatar string             `json:"avatar" bson:"avatar"`
	Date   time.Time          `json:"date" bson:"date"`
}

func (p *Post) HasLike(userID primitive.ObjectID) bool {
	for _, like := range p.Likes {
		if like.User == userID {
			return true
		}
	}
	return false
}

// CommentIndex returns the position of the comment or -1.
func (p *Post) CommentIndex(commentID primitive.ObjectID) int {
	for i, comment := range p.Comments {
		if comment.Id == commentID {
			return i
		}
	}
	return -1
}
