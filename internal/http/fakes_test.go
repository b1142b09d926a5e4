package http

import (
	"context"
	"sort"
	"sync"
	"time"

	"devhub/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// In-memory stores mirroring the Mongo implementations' error contracts.

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*store.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*store.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *store.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return store.ErrDuplicateEmail
		}
	}
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	cp := *u
	f.users[u.ID.Hex()] = &cp
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*store.User, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, store.ErrMalformedID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return store.ErrMalformedID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]*store.Profile // keyed by user hex id
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: map[string]*store.Profile{}}
}

func (f *fakeProfiles) Upsert(_ context.Context, p *store.Profile) (*store.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := p.UserID.Hex()
	existing, ok := f.profiles[key]
	if !ok {
		cp := *p
		cp.ID = bson.NewObjectID()
		cp.Experience = []store.Experience{}
		cp.Education = []store.Education{}
		cp.CreatedAt = time.Now().UTC()
		f.profiles[key] = &cp
		out := cp
		return &out, nil
	}
	existing.Company = p.Company
	existing.Website = p.Website
	existing.Location = p.Location
	existing.Status = p.Status
	existing.Skills = p.Skills
	existing.Bio = p.Bio
	existing.GithubUsername = p.GithubUsername
	existing.Social = p.Social
	cp := *existing
	return &cp, nil
}

func (f *fakeProfiles) FindByUser(_ context.Context, userID string) (*store.Profile, error) {
	if _, err := bson.ObjectIDFromHex(userID); err != nil {
		return nil, store.ErrMalformedID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) FindAll(_ context.Context) ([]store.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProfiles) DeleteByUser(_ context.Context, userID string) error {
	if _, err := bson.ObjectIDFromHex(userID); err != nil {
		return store.ErrMalformedID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.profiles, userID)
	return nil
}

func (f *fakeProfiles) AddExperience(_ context.Context, userID string, e store.Experience) (*store.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	e.ID = bson.NewObjectID()
	p.Experience = append([]store.Experience{e}, p.Experience...)
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) RemoveExperience(_ context.Context, userID, expID string) (*store.Profile, error) {
	if _, err := bson.ObjectIDFromHex(expID); err != nil {
		return nil, store.ErrMalformedID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	kept := p.Experience[:0]
	for _, e := range p.Experience {
		if e.ID.Hex() != expID {
			kept = append(kept, e)
		}
	}
	p.Experience = kept
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) AddEducation(_ context.Context, userID string, e store.Education) (*store.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	e.ID = bson.NewObjectID()
	p.Education = append([]store.Education{e}, p.Education...)
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) RemoveEducation(_ context.Context, userID, eduID string) (*store.Profile, error) {
	if _, err := bson.ObjectIDFromHex(eduID); err != nil {
		return nil, store.ErrMalformedID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	kept := p.Education[:0]
	for _, e := range p.Education {
		if e.ID.Hex() != eduID {
			kept = append(kept, e)
		}
	}
	p.Education = kept
	cp := *p
	return &cp, nil
}

type fakePosts struct {
	mu    sync.Mutex
	posts map[string]*store.Post
	seq   int
}

func newFakePosts() *fakePosts {
	return &fakePosts{posts: map[string]*store.Post{}}
}

func (f *fakePosts) Create(_ context.Context, p *store.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	f.seq++
	p.CreatedAt = time.Unix(int64(f.seq), 0).UTC()
	if p.Likes == nil {
		p.Likes = []store.Like{}
	}
	cp := *p
	f.posts[p.ID.Hex()] = &cp
	return nil
}

func (f *fakePosts) FindAll(_ context.Context) ([]store.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePosts) FindByID(_ context.Context, id string) (*store.Post, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, store.ErrMalformedID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePosts) Delete(_ context.Context, id string) error {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return store.ErrMalformedID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePosts) DeleteByUser(_ context.Context, userID string) error {
	if _, err := bson.ObjectIDFromHex(userID); err != nil {
		return store.ErrMalformedID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.posts {
		if p.UserID.Hex() == userID {
			delete(f.posts, id)
		}
	}
	return nil
}

func (f *fakePosts) Like(_ context.Context, postID, userID string) ([]store.Like, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, store.ErrMalformedID
	}
	if _, err := bson.ObjectIDFromHex(postID); err != nil {
		return nil, store.ErrMalformedID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[postID]
	if !ok {
		return nil, store.ErrNotFound
	}
	for _, l := range p.Likes {
		if l.User == uid {
			return nil, store.ErrAlreadyLiked
		}
	}
	p.Likes = append([]store.Like{{User: uid}}, p.Likes...)
	return append([]store.Like(nil), p.Likes...), nil
}

func (f *fakePosts) Unlike(_ context.Context, postID, userID string) ([]store.Like, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, store.ErrMalformedID
	}
	if _, err := bson.ObjectIDFromHex(postID); err != nil {
		return nil, store.ErrMalformedID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[postID]
	if !ok {
		return nil, store.ErrNotFound
	}
	found := false
	kept := p.Likes[:0]
	for _, l := range p.Likes {
		if l.User == uid {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return nil, store.ErrNotLiked
	}
	p.Likes = kept
	return append([]store.Like(nil), p.Likes...), nil
}
