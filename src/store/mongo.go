package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theleywin/devconnect-backend/src/lib"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection    = "users"
	profilesCollection = "profiles"
	postsCollection    = "posts"

	emailIndex  = "email_unique"
	handleIndex = "handle_unique"
	ownerIndex  = "user_unique"
)

// NewMongo wires the collection stores over db and makes sure the indexes exist.
func NewMongo(ctx context.Context, client *mongo.Client, dbName string) (*Store, error) {
	db := client.Database(dbName)
	if err := EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}

	users := &mongoUsers{coll: db.Collection(usersCollection)}
	profiles := &mongoProfiles{coll: db.Collection(profilesCollection)}
	posts := &mongoPosts{coll: db.Collection(postsCollection)}

	return &Store{
		Users:    users,
		Profiles: profiles,
		Posts:    posts,
		Accounts: &mongoAccounts{client: client, users: users.coll, profiles: profiles.coll},
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Close: client.Disconnect,
	}, nil
}

// EnsureIndexes creates the unique indexes the profile and user invariants rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName(emailIndex).SetUnique(true)},
		},
		profilesCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetName(ownerIndex).SetUnique(true)},
			{Keys: bson.D{{Key: "handle", Value: 1}}, Options: options.Index().SetName(handleIndex).SetUnique(true)},
		},
		postsCollection: {
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", name, err)
		}
	}
	return nil
}

// duplicateIndex returns the name of the unique index a write violated, or "".
func duplicateIndex(err error) string {
	if !mongo.IsDuplicateKeyError(err) {
		return ""
	}
	msg := err.Error()
	for _, name := range []string{emailIndex, handleIndex, ownerIndex} {
		if strings.Contains(msg, name) {
			return name
		}
	}
	return "unknown"
}

// failed logs a store error and returns it unchanged.
func failed(ctx context.Context, collection, op string, err error) error {
	lib.Logger.ErrorContext(ctx, "store operation failed",
		"collection", collection,
		"operation", op,
		"error", err.Error(),
	)
	return err
}

func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

type mongoAccounts struct {
	client   *mongo.Client
	users    *mongo.Collection
	profiles *mongo.Collection
}

// DeleteAccount removes the profile and the user in one transaction.
// Transactions need a replica set or sharded cluster.
func (a *mongoAccounts) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	defer lib.TrackStoreOp(usersCollection, "delete_account")()

	session, err := a.client.StartSession()
	if err != nil {
		return failed(ctx, usersCollection, "delete_account", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := a.profiles.DeleteOne(sc, bson.M{"user": userID}); err != nil {
			return nil, err
		}
		res, err := a.users.DeleteOne(sc, bson.M{"_id": userID})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return failed(ctx, usersCollection, "delete_account", err)
	}
	return nil
}
