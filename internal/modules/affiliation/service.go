// README: Affiliation master service.
package affiliation

import (
	"context"
	"errors"
	"strings"
	"time"

	"yongcha/internal/types"
)

var (
	ErrNotFound = errors.New("affiliation not found")
	ErrBadName  = errors.New("affiliation name is required")
)

type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Affiliation, error) {
	return s.store.List(ctx)
}

func (s *Service) Save(ctx context.Context, a Affiliation) (Affiliation, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return Affiliation{}, ErrBadName
	}
	now := time.Now()
	a.UpdatedAt = now

	if a.ID == 0 {
		a.ID = types.NewID()
		a.CreatedAt = now
		if err := s.store.Insert(ctx, a); err != nil {
			return Affiliation{}, err
		}
		return a, nil
	}

	ok, err := s.store.Update(ctx, a)
	if err != nil {
		return Affiliation{}, err
	}
	if !ok {
		return Affiliation{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}
