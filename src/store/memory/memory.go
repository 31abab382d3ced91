// Package memory is an in-process implementation of the store interfaces.
// It enforces the same uniqueness and conditional-write rules as the MongoDB store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/theleywin/devconnect-backend/src/models"
	"github.com/theleywin/devconnect-backend/src/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DB struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]models.User
	profiles map[primitive.ObjectID]models.Profile // keyed by owner
	posts    map[primitive.ObjectID]models.Post
}

func New() *DB {
	return &DB{
		users:    map[primitive.ObjectID]models.User{},
		profiles: map[primitive.ObjectID]models.Profile{},
		posts:    map[primitive.ObjectID]models.Post{},
	}
}

// Store exposes db through the store interfaces.
func (db *DB) Store() *store.Store {
	return &store.Store{
		Users:    users{db},
		Profiles: profiles{db},
		Posts:    posts{db},
		Accounts: db,
		Ping:     func(context.Context) error { return nil },
		Close:    func(context.Context) error { return nil },
	}
}

func (db *DB) DeleteAccount(_ context.Context, userID primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users[userID]; !ok {
		return store.ErrNotFound
	}
	delete(db.profiles, userID)
	delete(db.users, userID)
	return nil
}

type users struct{ db *DB }

func (s users) Create(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Email == user.Email {
			return store.ErrDuplicateEmail
		}
	}
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	s.db.users[user.Id] = *user
	return nil
}

func (s users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

type profiles struct{ db *DB }

func (s profiles) Create(_ context.Context, profile *models.Profile) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.profiles[profile.User]; ok {
		return store.ErrDuplicateUser
	}
	if s.handleTaken(profile.Handle, profile.User) {
		return store.ErrDuplicateHandle
	}
	if profile.Id.IsZero() {
		profile.Id = primitive.NewObjectID()
	}
	s.db.profiles[profile.User] = cloneProfile(*profile)
	return nil
}

func (s profiles) Update(_ context.Context, userID primitive.ObjectID, fields models.ProfileFields) (*models.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if fields.Handle != nil && s.handleTaken(*fields.Handle, userID) {
		return nil, store.ErrDuplicateHandle
	}
	fields.Apply(&p)
	s.db.profiles[userID] = cloneProfile(p)
	out := cloneProfile(p)
	return &out, nil
}

func (s profiles) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.ProfileView, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	p, ok := s.db.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return s.view(p), nil
}

func (s profiles) FindByHandle(_ context.Context, handle string) (*models.ProfileView, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, p := range s.db.profiles {
		if p.Handle == handle {
			return s.view(p), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s profiles) List(_ context.Context) ([]models.ProfileView, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]models.ProfileView, 0, len(s.db.profiles))
	for _, p := range s.db.profiles {
		out = append(out, *s.view(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s profiles) PushExperience(_ context.Context, userID primitive.ObjectID, entry models.Experience) (*models.Profile, error) {
	return s.mutate(userID, func(p *models.Profile) {
		p.Experience = append([]models.Experience{entry}, p.Experience...)
	})
}

func (s profiles) PullExperience(_ context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return s.mutate(userID, func(p *models.Profile) {
		kept := p.Experience[:0]
		for _, e := range p.Experience {
			if e.Id != entryID {
				kept = append(kept, e)
			}
		}
		p.Experience = kept
	})
}

func (s profiles) PushEducation(_ context.Context, userID primitive.ObjectID, entry models.Education) (*models.Profile, error) {
	return s.mutate(userID, func(p *models.Profile) {
		p.Education = append([]models.Education{entry}, p.Education...)
	})
}

func (s profiles) PullEducation(_ context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return s.mutate(userID, func(p *models.Profile) {
		kept := p.Education[:0]
		for _, e := range p.Education {
			if e.Id != entryID {
				kept = append(kept, e)
			}
		}
		p.Education = kept
	})
}

func (s profiles) mutate(userID primitive.ObjectID, fn func(p *models.Profile)) (*models.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	p = cloneProfile(p)
	fn(&p)
	s.db.profiles[userID] = p
	out := cloneProfile(p)
	return &out, nil
}

// handleTaken must be called with the lock held.
func (s profiles) handleTaken(handle string, except primitive.ObjectID) bool {
	for owner, p := range s.db.profiles {
		if owner != except && p.Handle == handle {
			return true
		}
	}
	return false
}

// view must be called with the lock held.
func (s profiles) view(p models.Profile) *models.ProfileView {
	v := &models.ProfileView{Profile: cloneProfile(p)}
	if u, ok := s.db.users[p.User]; ok {
		v.Owner = u.Summary()
	}
	return v
}

type posts struct{ db *DB }

func (s posts) Create(_ context.Context, post *models.Post) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if post.Id.IsZero() {
		post.Id = primitive.NewObjectID()
	}
	s.db.posts[post.Id] = clonePost(*post)
	return nil
}

func (s posts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	p, ok := s.db.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := clonePost(p)
	return &out, nil
}

func (s posts) List(_ context.Context) ([]models.Post, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]models.Post, 0, len(s.db.posts))
	for _, p := range s.db.posts {
		out = append(out, clonePost(p))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s posts) DeleteOwned(_ context.Context, id, owner primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.posts[id]
	if !ok || p.User != owner {
		return store.ErrNoMatch
	}
	delete(s.db.posts, id)
	return nil
}

func (s posts) PushLike(_ context.Context, postID primitive.ObjectID, like models.Like) (*models.Post, error) {
	return s.conditional(postID, func(p *models.Post) bool {
		if p.HasLike(like.User) {
			return false
		}
		p.Likes = append([]models.Like{like}, p.Likes...)
		return true
	})
}

func (s posts) PullLike(_ context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	return s.conditional(postID, func(p *models.Post) bool {
		if !p.HasLike(userID) {
			return false
		}
		kept := p.Likes[:0]
		for _, l := range p.Likes {
			if l.User != userID {
				kept = append(kept, l)
			}
		}
		p.Likes = kept
		return true
	})
}

func (s posts) PushComment(_ context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	post, err := s.conditional(postID, func(p *models.Post) bool {
		p.Comments = append([]models.Comment{comment}, p.Comments...)
		return true
	})
	if err == store.ErrNoMatch {
		return nil, store.ErrNotFound
	}
	return post, err
}

func (s posts) PullComment(_ context.Context, postID, commentID, actor primitive.ObjectID) (*models.Post, error) {
	return s.conditional(postID, func(p *models.Post) bool {
		i := p.CommentIndex(commentID)
		if i < 0 {
			return false
		}
		if p.Comments[i].User != actor && p.User != actor {
			return false
		}
		p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
		return true
	})
}

// conditional applies fn to a copy of the post and stores it when fn reports a match.
func (s posts) conditional(postID primitive.ObjectID, fn func(p *models.Post) bool) (*models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.posts[postID]
	if !ok {
		return nil, store.ErrNoMatch
	}
	p = clonePost(p)
	if !fn(&p) {
		return nil, store.ErrNoMatch
	}
	s.db.posts[postID] = p
	out := clonePost(p)
	return &out, nil
}

func cloneProfile(p models.Profile) models.Profile {
	p.Skills = append([]string(nil), p.Skills...)
	p.Experience = append([]models.Experience(nil), p.Experience...)
	p.Education = append([]models.Education(nil), p.Education...)
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []models.Experience{}
	}
	if p.Education == nil {
		p.Education = []models.Education{}
	}
	return p
}

func clonePost(p models.Post) models.Post {
	p.Likes = append([]models.Like{}, p.Likes...)
	p.Comments = append([]models.Comment{}, p.Comments...)
	return p
}
