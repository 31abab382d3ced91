// Package services holds the business rules for accounts, profiles and posts.
// Handlers call into these; persistence goes through the store interfaces.
package services

import (
	"github.com/theleywin/devconnect-backend/src/apperror"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectID parses a path parameter. A malformed id is a validation error on field.
func objectID(field, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperror.InvalidField(field, "Invalid "+field)
	}
	return id, nil
}

func invalid(fields apperror.FieldErrors) error {
	if len(fields) == 0 {
		return nil
	}
	return apperror.Validation(fields)
}
