// AngelaMos | 2026
// service.go

package siteconfig

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/andgroupco/andoffer/internal/core"
)

var ErrInvalidValue = errors.New("invalid config value")

var values = core.NewValidator()

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetAll(ctx context.Context) ([]Entry, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, key string) (*Entry, error) {
	return s.repo.Get(ctx, key)
}

// GetMany returns a value for every requested key, nil when unset.
func (s *Service) GetMany(
	ctx context.Context,
	keys []string,
) (map[string]*string, error) {
	entries, err := s.repo.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*string, len(keys))
	for _, k := range keys {
		out[k] = nil
	}
	for i := range entries {
		out[entries[i].Key] = &entries[i].Value
	}

	return out, nil
}

func (s *Service) Set(
	ctx context.Context,
	key, value string,
	label *string,
) (*Entry, error) {
	e, err := newEntry(SetRequest{Key: key, Value: value, Label: label})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, &e); err != nil {
		return nil, err
	}

	return &e, nil
}

// BatchUpsert validates every item before writing any of them.
func (s *Service) BatchUpsert(
	ctx context.Context,
	items []SetRequest,
) ([]Entry, error) {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		e, err := newEntry(item)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := s.repo.BatchUpsert(ctx, entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func newEntry(req SetRequest) (Entry, error) {
	key := strings.TrimSpace(req.Key)
	value := strings.TrimSpace(req.Value)

	if err := ValidateValue(key, value); err != nil {
		return Entry{}, err
	}

	return Entry{Key: key, Value: value, Label: req.Label}, nil
}

// ValidateValue checks values of known keys. Unknown keys accept any value.
func ValidateValue(key, value string) error {
	if key == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidValue)
	}

	switch key {
	case KeyWhatsAppEnabled:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
		}
	case KeyWhatsAppLink:
		if value == "" {
			return nil
		}
		if values.Var(value, "url") != nil || !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%w: %s must be an https url", ErrInvalidValue, key)
		}
	case KeySupportEmail:
		if value == "" {
			return nil
		}
		if values.Var(value, "email") != nil {
			return fmt.Errorf("%w: %s must be an email address", ErrInvalidValue, key)
		}
	}

	return nil
}
