// Package catalog implements the catalog query service: list and lookup over
// the static entry table.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	domain "github.com/roleplay-labs/storefront/internal/app/domain/catalog"
	"github.com/roleplay-labs/storefront/pkg/logger"
)

// ErrNotFound is returned by Get when no entry matches the id.
var ErrNotFound = errors.New("catalog entry not found")

// Service answers catalog queries. The entry table is validated once at
// construction and read-only afterwards, so no locking is needed.
type Service struct {
	entries []domain.Entry
	byID    map[string]domain.Entry
	log     *logger.Logger
}

// New validates the entry table and builds the lookup index. Declaration
// order of entries is preserved by List.
func New(entries []domain.Entry, log *logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.NewDefault("catalog")
	}

	byID := make(map[string]domain.Entry, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("catalog entry %d: id is required", i)
		}
		if _, dup := byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog entry %s: duplicate id", e.ID)
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("catalog entry %s: price must not be negative", e.ID)
		}
		if !e.Currency.Valid() {
			return nil, fmt.Errorf("catalog entry %s: unknown currency %q", e.ID, e.Currency)
		}
		if !e.Category.Valid() {
			return nil, fmt.Errorf("catalog entry %s: unknown category %q", e.ID, e.Category)
		}
		if !e.Kind.Valid() {
			return nil, fmt.Errorf("catalog entry %s: unknown item type %q", e.ID, e.Kind)
		}
		if e.Kind == domain.KindVehicle && strings.TrimSpace(e.Model) == "" {
			return nil, fmt.Errorf("catalog entry %s: vehicle entries require a model", e.ID)
		}
		byID[e.ID] = e
	}

	svc := &Service{
		entries: append([]domain.Entry(nil), entries...),
		byID:    byID,
		log:     log,
	}
	svc.log.WithField("entries", len(entries)).Info("catalog loaded")
	return svc, nil
}

// List returns entries matching the category filter in declaration order.
// An empty filter or "all" returns the full catalog. Unknown categories
// yield an empty list, never an error.
func (s *Service) List(filter domain.Category) []domain.Entry {
	if filter == "" || filter == domain.CategoryAll {
		return append([]domain.Entry(nil), s.entries...)
	}

	result := make([]domain.Entry, 0)
	for _, e := range s.entries {
		if e.Category == filter {
			result = append(result, e)
		}
	}
	return result
}

// Get looks up one entry by id.
func (s *Service) Get(id string) (domain.Entry, error) {
	e, ok := s.byID[id]
	if !ok {
		return domain.Entry{}, ErrNotFound
	}
	return e, nil
}

// Len reports the number of catalog entries.
func (s *Service) Len() int {
	return len(s.entries)
}

// Categories returns the category filter values offered to clients.
func (s *Service) Categories() []domain.Category {
	return domain.Categories()
}
