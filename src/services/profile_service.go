package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/theleywin/devconnect-backend/src/apperror"
	"github.com/theleywin/devconnect-backend/src/models"
	"github.com/theleywin/devconnect-backend/src/store"
	"github.com/theleywin/devconnect-backend/src/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfileValidator interface {
	Profile(in validation.ProfileInput) apperror.FieldErrors
	Experience(in validation.ExperienceInput) apperror.FieldErrors
	Education(in validation.EducationInput) apperror.FieldErrors
}

type ProfileService struct {
	profiles  store.Profiles
	accounts  store.Accounts
	validator ProfileValidator
}

func NewProfileService(profiles store.Profiles, accounts store.Accounts, validator ProfileValidator) *ProfileService {
	return &ProfileService{
		profiles:  profiles,
		accounts:  accounts,
		validator: validator,
	}
}

var (
	errNoProfile   = apperror.NotFound("There is no profile for this user")
	errHandleTaken = apperror.Conflict("handle", "That handle already exists")
)

func (s *ProfileService) GetOwnProfile(ctx context.Context, userID primitive.ObjectID) (*models.ProfileView, error) {
	return s.lookup(s.profiles.FindByUser(ctx, userID))
}

func (s *ProfileService) GetProfileByHandle(ctx context.Context, handle string) (*models.ProfileView, error) {
	return s.lookup(s.profiles.FindByHandle(ctx, handle))
}

func (s *ProfileService) GetProfileByUserID(ctx context.Context, rawUserID string) (*models.ProfileView, error) {
	userID, err := objectID("userId", rawUserID)
	if err != nil {
		return nil, err
	}
	return s.lookup(s.profiles.FindByUser(ctx, userID))
}

func (s *ProfileService) lookup(view *models.ProfileView, err error) (*models.ProfileView, error) {
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errNoProfile
		}
		return nil, apperror.StoreFailure("find profile", err)
	}
	return view, nil
}

// ListProfiles returns every profile; an empty slice when there are none.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]models.ProfileView, error) {
	views, err := s.profiles.List(ctx)
	if err != nil {
		return nil, apperror.StoreFailure("list profiles", err)
	}
	return views, nil
}

// UpsertProfile merges the present fields into the caller's profile or creates it.
// created is true when a new profile was inserted.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID primitive.ObjectID, in validation.ProfileInput) (profile *models.Profile, created bool, err error) {
	in.Handle = trimmed(in.Handle)
	in.Status = trimmed(in.Status)
	in.Skills = in.Skills.Normalize()
	if err := invalid(s.validator.Profile(in)); err != nil {
		return nil, false, err
	}
	fields := profileFields(in)

	profile, err = s.update(ctx, userID, fields)
	if !errors.Is(err, store.ErrNotFound) {
		return profile, false, err
	}

	profile = &models.Profile{
		User:       userID,
		Skills:     []string{},
		Experience: []models.Experience{},
		Education:  []models.Education{},
		Date:       time.Now().UTC(),
	}
	fields.Apply(profile)

	switch err := s.profiles.Create(ctx, profile); {
	case err == nil:
		return profile, true, nil
	case errors.Is(err, store.ErrDuplicateHandle):
		return nil, false, errHandleTaken
	case errors.Is(err, store.ErrDuplicateUser):
		// Another request created the profile first.
		profile, err = s.update(ctx, userID, fields)
		if errors.Is(err, store.ErrNotFound) {
			return nil, false, errNoProfile
		}
		return profile, false, err
	default:
		return nil, false, apperror.StoreFailure("create profile", err)
	}
}

// update returns store.ErrNotFound untouched so the caller can fall through to create.
func (s *ProfileService) update(ctx context.Context, userID primitive.ObjectID, fields models.ProfileFields) (*models.Profile, error) {
	profile, err := s.profiles.Update(ctx, userID, fields)
	switch {
	case err == nil:
		return profile, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, err
	case errors.Is(err, store.ErrDuplicateHandle):
		return nil, errHandleTaken
	default:
		return nil, apperror.StoreFailure("update profile", err)
	}
}

func profileFields(in validation.ProfileInput) models.ProfileFields {
	return models.ProfileFields{
		Handle:         in.Handle,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Skills:         []string(in.Skills),
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Youtube:        in.Youtube,
		Twitter:        in.Twitter,
		Facebook:       in.Facebook,
		Linkedin:       in.Linkedin,
		Instagram:      in.Instagram,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func (s *ProfileService) AddExperience(ctx context.Context, userID primitive.ObjectID, in validation.ExperienceInput) (*models.Profile, error) {
	if err := invalid(s.validator.Experience(in)); err != nil {
		return nil, err
	}
	from, to, err := dateRange(in.From, in.To)
	if err != nil {
		return nil, err
	}

	entry := models.Experience{
		Id:          primitive.NewObjectID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
	return s.mutated(s.profiles.PushExperience(ctx, userID, entry))
}

func (s *ProfileService) AddEducation(ctx context.Context, userID primitive.ObjectID, in validation.EducationInput) (*models.Profile, error) {
	if err := invalid(s.validator.Education(in)); err != nil {
		return nil, err
	}
	from, to, err := dateRange(in.From, in.To)
	if err != nil {
		return nil, err
	}

	entry := models.Education{
		Id:           primitive.NewObjectID(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
	return s.mutated(s.profiles.PushEducation(ctx, userID, entry))
}

// RemoveExperience drops the entry with the given id. An unknown id leaves the profile unchanged.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID primitive.ObjectID, rawEntryID string) (*models.Profile, error) {
	entryID, err := objectID("exp_id", rawEntryID)
	if err != nil {
		return nil, err
	}
	return s.mutated(s.profiles.PullExperience(ctx, userID, entryID))
}

// RemoveEducation drops the entry with the given id. An unknown id leaves the profile unchanged.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID primitive.ObjectID, rawEntryID string) (*models.Profile, error) {
	entryID, err := objectID("edu_id", rawEntryID)
	if err != nil {
		return nil, err
	}
	return s.mutated(s.profiles.PullEducation(ctx, userID, entryID))
}

func (s *ProfileService) mutated(profile *models.Profile, err error) (*models.Profile, error) {
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errNoProfile
		}
		return nil, apperror.StoreFailure("update profile", err)
	}
	return profile, nil
}

// DeleteAccount removes the profile and the user together.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	err := s.accounts.DeleteAccount(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return apperror.StoreFailure("delete account", err)
	}
	return nil
}

func dateRange(rawFrom, rawTo string) (time.Time, *time.Time, error) {
	from, err := validation.ParseDate(rawFrom)
	if err != nil {
		return time.Time{}, nil, apperror.InvalidField("from", "From date is invalid")
	}
	if rawTo == "" {
		return from, nil, nil
	}
	to, err := validation.ParseDate(rawTo)
	if err != nil {
		return time.Time{}, nil, apperror.InvalidField("to", "To date is invalid")
	}
	return from, &to, nil
}
