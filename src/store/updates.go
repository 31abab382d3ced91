package store

import (
	"github.com/theleywin/devconnect-backend/src/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// profileSet builds the $set document for the fields present in a profile update.
func profileSet(f models.ProfileFields) bson.M {
	set := bson.M{}
	str := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	str("handle", f.Handle)
	str("company", f.Company)
	str("website", f.Website)
	str("location", f.Location)
	str("status", f.Status)
	str("bio", f.Bio)
	str("githubusername", f.GithubUsername)
	str("social.youtube", f.Youtube)
	str("social.twitter", f.Twitter)
	str("social.facebook", f.Facebook)
	str("social.linkedin", f.Linkedin)
	str("social.instagram", f.Instagram)
	if f.Skills != nil {
		set["skills"] = f.Skills
	}
	return set
}

// prepend pushes value at the front of an embedded array.
func prepend(field string, value interface{}) bson.M {
	return bson.M{"$push": bson.M{
		field: bson.M{"$each": bson.A{value}, "$position": 0},
	}}
}

func pullByID(field string, id primitive.ObjectID) bson.M {
	return bson.M{"$pull": bson.M{field: bson.M{"_id": id}}}
}

func notLikedFilter(postID, userID primitive.ObjectID) bson.M {
	return bson.M{"_id": postID, "likes.user": bson.M{"$ne": userID}}
}

func likedFilter(postID, userID primitive.ObjectID) bson.M {
	return bson.M{"_id": postID, "likes.user": userID}
}

// removableCommentFilter matches the post when the comment exists and actor wrote it or owns the post.
func removableCommentFilter(postID, commentID, actor primitive.ObjectID) bson.M {
	return bson.M{
		"_id": postID,
		"$or": bson.A{
			bson.M{"comments": bson.M{"$elemMatch": bson.M{"_id": commentID, "user": actor}}},
			bson.M{"user": actor, "comments._id": commentID},
		},
	}
}

// profileViewPipeline matches profiles and joins the owner's public fields.
func profileViewPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "user",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$owner", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{"owner.password": 0, "owner.email": 0, "owner.date": 0}}},
	}
}
