// README: Driver master service (save/list/delete with name normalization).
package driver

import (
	"context"
	"errors"
	"strings"
	"time"

	"yongcha/internal/types"
)

var (
	ErrNotFound = errors.New("driver not found")
	ErrBadName  = errors.New("driver name is required")
)

type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Driver, error) {
	return s.store.List(ctx)
}

func (s *Service) Save(ctx context.Context, d Driver) (Driver, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return Driver{}, ErrBadName
	}
	now := time.Now()
	d.UpdatedAt = now

	if d.ID == 0 {
		d.ID = types.NewID()
		d.CreatedAt = now
		if err := s.store.Insert(ctx, d); err != nil {
			return Driver{}, err
		}
		return d, nil
	}

	ok, err := s.store.Update(ctx, d)
	if err != nil {
		return Driver{}, err
	}
	if !ok {
		return Driver{}, ErrNotFound
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}
