package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type Service struct {
	Store   Store
	Log     *zap.Logger
	Metrics *Metrics
}

func NewService(store Store, log *zap.Logger, m *Metrics) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Store: store, Log: log, Metrics: m}
}

// Get returns every known key. An absent record is not an error: all keys
// then map to "".
func (s *Service) Get(ctx context.Context) (Values, error) {
	rec, ok, err := s.Store.Earliest(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	vals := Defaults()
	if ok {
		for k, v := range rec.Values {
			if k.Valid() {
				vals[k] = v
			}
		}
	}
	return vals, nil
}

func (s *Service) List(ctx context.Context) ([]Pair, error) {
	vals, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return vals.Pairs(), nil
}

// Set stores the trimmed value under key. A nil or blank value is rejected,
// so a setting cannot be cleared once written.
func (s *Service) Set(ctx context.Context, key string, value *string) error {
	if key == "" || value == nil || strings.TrimSpace(*value) == "" {
		return fmt.Errorf("%w: missing key or empty value", ErrInvalidArgument)
	}
	k, ok := ParseKey(key)
	if !ok {
		return fmt.Errorf("%w: invalid setting key %q", ErrInvalidArgument, key)
	}
	v := strings.TrimSpace(*value)

	if err := s.write(ctx, k, v); err != nil {
		s.Metrics.observeWrite(k, "error")
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	s.Metrics.observeWrite(k, "ok")
	return nil
}

func (s *Service) write(ctx context.Context, k Key, v string) error {
	rec, ok, err := s.Store.Earliest(ctx)
	if err != nil {
		return err
	}

	if ok {
		err = s.Store.Update(ctx, rec.ID, k, v)
		if !errors.Is(err, ErrRecordGone) {
			return err
		}
		s.Log.Warn("settings record vanished before update, inserting singleton",
			zap.String("id", rec.ID))
	}

	return s.Store.InsertSingleton(ctx, k, v)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.Store.Ping(ctx)
}
