package services

import (
	"github.com/theleywin/devconnect-backend/src/apperror"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// requireOwner returns Forbidden unless actor is one of the allowed owners.
func requireOwner(actor primitive.ObjectID, owners ...primitive.ObjectID) error {
	for _, owner := range owners {
		if owner == actor {
			return nil
		}
	}
	return apperror.Forbidden("User not authorized")
}
