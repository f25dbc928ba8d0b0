package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
	"github.com/buatanmy/discovery-backend/internal/domain/repository"
)

// Store is an in-memory stand-in for the relational store. It mirrors the
// constraint semantics of the Postgres repositories (unique email, unique
// vote pair, referential integrity) and the ordering of every listing query,
// so services and ranking logic can be tested without a database.
type Store struct {
	mu       sync.RWMutex
	users    map[string]entity.User
	products map[string]entity.Product
	votes    map[string]entity.Vote
	comments map[string]entity.Comment
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]entity.User),
		products: make(map[string]entity.Product),
		votes:    make(map[string]entity.Vote),
		comments: make(map[string]entity.Comment),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Products returns the product repository view of the store.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }

// Votes returns the vote repository view of the store.
func (s *Store) Votes() repository.VoteRepository { return &voteRepo{s} }

// Comments returns the comment repository view of the store.
func (s *Store) Comments() repository.CommentRepository { return &commentRepo{s} }

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return fmt.Errorf("%w: users_email_key", repository.ErrConflict)
		}
	}
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = u.Name
	stored.AvatarURL = clonePtr(u.AvatarURL)
	stored.Location = clonePtr(u.Location)
	r.s.users[u.ID] = stored
	return nil
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[p.AuthorID]; !ok {
		return fmt.Errorf("%w: products_author_id_fkey", repository.ErrNotFound)
	}
	r.s.products[p.ID] = cloneProduct(*p)
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r *productRepo) List(_ context.Context) ([]entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(p entity.Product) bool { return p.IsMadeInMY }), nil
}

func (r *productRepo) ListByLocation(_ context.Context, location string) ([]entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(p entity.Product) bool {
		return p.IsMadeInMY && p.Location != nil && *p.Location == location
	}), nil
}

func (r *productRepo) ListByTags(_ context.Context, tags []string) ([]entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if len(tags) == 0 {
		return r.collect(func(p entity.Product) bool { return p.IsMadeInMY }), nil
	}
	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		want[t] = struct{}{}
	}
	return r.collect(func(p entity.Product) bool {
		if !p.IsMadeInMY {
			return false
		}
		for _, t := range p.Tags {
			if _, ok := want[t]; ok {
				return true
			}
		}
		return false
	}), nil
}

func (r *productRepo) ListByAuthor(_ context.Context, authorID string) ([]entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.collect(func(p entity.Product) bool { return p.AuthorID == authorID }), nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.products[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Title = p.Title
	stored.Description = p.Description
	stored.URL = p.URL
	stored.Tags = cloneTags(p.Tags)
	stored.Location = clonePtr(p.Location)
	stored.IsMadeInMY = p.IsMadeInMY
	r.s.products[p.ID] = stored
	return nil
}

func (r *productRepo) ListWithVotes(_ context.Context, viewerID *string) ([]entity.ProductWithVotes, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.ProductWithVotes, 0)
	for _, p := range r.s.products {
		if !p.IsMadeInMY {
			continue
		}
		pv := entity.ProductWithVotes{Product: cloneProduct(p)}
		for _, v := range r.s.votes {
			if v.ProductID != p.ID {
				continue
			}
			pv.VoteCount++
			if viewerID != nil && v.UserID == *viewerID {
				voted := true
				pv.UserVoted = &voted
			}
		}
		if viewerID != nil && pv.UserVoted == nil {
			voted := false
			pv.UserVoted = &voted
		}
		out = append(out, pv)
	}
	sortWithVotes(out)
	return out, nil
}

func (r *productRepo) ListTrending(_ context.Context, since time.Time) ([]entity.ProductWithVotes, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.ProductWithVotes, 0)
	for _, p := range r.s.products {
		if !p.IsMadeInMY {
			continue
		}
		pv := entity.ProductWithVotes{Product: cloneProduct(p)}
		for _, v := range r.s.votes {
			if v.ProductID == p.ID && !v.CreatedAt.Before(since) {
				pv.VoteCount++
			}
		}
		out = append(out, pv)
	}
	sortWithVotes(out)
	return out, nil
}

func (r *productRepo) collect(keep func(entity.Product) bool) []entity.Product {
	out := make([]entity.Product, 0)
	for _, p := range r.s.products {
		if keep(p) {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

type voteRepo struct{ s *Store }

func (r *voteRepo) Create(_ context.Context, v *entity.Vote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[v.UserID]; !ok {
		return fmt.Errorf("%w: votes_user_id_fkey", repository.ErrNotFound)
	}
	if _, ok := r.s.products[v.ProductID]; !ok {
		return fmt.Errorf("%w: votes_product_id_fkey", repository.ErrNotFound)
	}
	for _, existing := range r.s.votes {
		if existing.UserID == v.UserID && existing.ProductID == v.ProductID {
			return fmt.Errorf("%w: votes_user_id_product_id_key", repository.ErrConflict)
		}
	}
	r.s.votes[v.ID] = *v
	return nil
}

func (r *voteRepo) Exists(_ context.Context, userID, productID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.votes {
		if v.UserID == userID && v.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *voteRepo) Delete(_ context.Context, userID, productID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, v := range r.s.votes {
		if v.UserID == userID && v.ProductID == productID {
			delete(r.s.votes, id)
			return true, nil
		}
	}
	return false, nil
}

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[c.AuthorID]; !ok {
		return fmt.Errorf("%w: comments_author_id_fkey", repository.ErrNotFound)
	}
	if _, ok := r.s.products[c.ProductID]; !ok {
		return fmt.Errorf("%w: comments_product_id_fkey", repository.ErrNotFound)
	}
	r.s.comments[c.ID] = *c
	return nil
}

func (r *commentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *commentRepo) ListByProduct(_ context.Context, productID string) ([]entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Comment, 0)
	for _, c := range r.s.comments {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *commentRepo) Update(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.comments[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Content = c.Content
	r.s.comments[c.ID] = stored
	return nil
}

func sortWithVotes(out []entity.ProductWithVotes) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].VoteCount != out[j].VoteCount {
			return out[i].VoteCount > out[j].VoteCount
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
}

func cloneUser(u entity.User) entity.User {
	u.AvatarURL = clonePtr(u.AvatarURL)
	u.Location = clonePtr(u.Location)
	return u
}

func cloneProduct(p entity.Product) entity.Product {
	p.Tags = cloneTags(p.Tags)
	p.Location = clonePtr(p.Location)
	return p
}

func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

var (
	_ repository.UserRepository    = (*userRepo)(nil)
	_ repository.ProductRepository = (*productRepo)(nil)
	_ repository.VoteRepository    = (*voteRepo)(nil)
	_ repository.CommentRepository = (*commentRepo)(nil)
)
