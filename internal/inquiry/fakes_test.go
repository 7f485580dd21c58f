// AngelaMos | 2026
// fakes_test.go

package inquiry

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/andgroupco/andoffer/internal/core"
)

type memRepo struct {
	items    map[string]*Inquiry
	products map[string]string
	clock    time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{
		items:    map[string]*Inquiry{},
		products: map[string]string{},
		clock:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memRepo) Create(_ context.Context, inq *Inquiry) error {
	if inq.ProductID != nil {
		if _, ok := m.products[*inq.ProductID]; !ok {
			return fmt.Errorf("create inquiry: %w", core.ErrInvalidInput)
		}
	}
	m.clock = m.clock.Add(time.Minute)
	inq.CreatedAt = m.clock
	inq.UpdatedAt = m.clock
	cp := *inq
	m.items[inq.ID] = &cp
	return nil
}

func (m *memRepo) listing(inq *Inquiry) Listing {
	l := Listing{Inquiry: *inq}
	if inq.ProductID != nil {
		name := m.products[*inq.ProductID]
		l.ProductName = &name
	}
	return l
}

func (m *memRepo) Get(_ context.Context, id string) (*Listing, error) {
	inq, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("get inquiry: %w", core.ErrNotFound)
	}
	l := m.listing(inq)
	return &l, nil
}

func (m *memRepo) sorted(status Status) []Listing {
	out := []Listing{}
	for _, inq := range m.items {
		if status != "" && inq.Status != status {
			continue
		}
		out = append(out, m.listing(inq))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memRepo) List(_ context.Context, params ListParams) ([]Listing, int64, error) {
	params.Normalize()
	all := m.sorted(params.Status)
	total := int64(len(all))

	start := min(params.Offset(), len(all))
	end := min(start+params.PageSize, len(all))
	return all[start:end], total, nil
}

func (m *memRepo) Latest(_ context.Context, limit int) ([]Listing, error) {
	all := m.sorted("")
	return all[:min(limit, len(all))], nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	inq, ok := m.items[id]
	if !ok {
		return fmt.Errorf("update inquiry status: %w", core.ErrNotFound)
	}
	inq.Status = status
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("delete inquiry: %w", core.ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

func (m *memRepo) CountByStatus(_ context.Context) (map[Status]int64, error) {
	counts := map[Status]int64{}
	for _, inq := range m.items {
		counts[inq.Status]++
	}
	return counts, nil
}

func ptr[T any](v T) *T { return &v }
