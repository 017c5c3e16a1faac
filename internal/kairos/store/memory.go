package store

import (
	"context"
	"sort"
	"sync"

	"github.com/msto63/kairos/pkg/datetime"
)

type holidayKey struct {
	market string
	day    int64
}

// MemoryStore implements Store in memory
type MemoryStore struct {
	mu       sync.RWMutex
	holidays map[holidayKey]Holiday
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		holidays: make(map[holidayKey]Holiday),
	}
}

// AddHoliday inserts a holiday
func (s *MemoryStore) AddHoliday(ctx context.Context, market string, day datetime.Datetime, name string) error {
	m, err := normalizeMarket("AddHoliday", market)
	if err != nil {
		return err
	}
	key, err := dayKey("AddHoliday", day)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := holidayKey{m, key}
	if _, exists := s.holidays[k]; exists {
		return duplicate("AddHoliday", m, key)
	}
	s.holidays[k] = Holiday{
		Market:    m,
		Day:       day.StartOfDay(),
		Name:      name,
		CreatedAt: datetime.Now(),
	}
	return nil
}

// RemoveHoliday deletes a holiday
func (s *MemoryStore) RemoveHoliday(ctx context.Context, market string, day datetime.Datetime) error {
	m, err := normalizeMarket("RemoveHoliday", market)
	if err != nil {
		return err
	}
	key, err := dayKey("RemoveHoliday", day)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := holidayKey{m, key}
	if _, exists := s.holidays[k]; !exists {
		return notFound("RemoveHoliday", m, key)
	}
	delete(s.holidays, k)
	return nil
}

// Holidays lists holidays in [start, end]
func (s *MemoryStore) Holidays(ctx context.Context, market string, start, end datetime.Datetime) ([]Holiday, error) {
	m, err := normalizeMarket("Holidays", market)
	if err != nil {
		return nil, err
	}
	lo, hi, err := bounds("Holidays", start, end)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Holiday
	for k, h := range s.holidays {
		if k.market == m && k.day >= lo && k.day <= hi {
			result = append(result, h)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Day.Before(result[j].Day)
	})
	return result, nil
}

// IsHoliday checks a single day
func (s *MemoryStore) IsHoliday(ctx context.Context, market string, day datetime.Datetime) (bool, error) {
	m, err := normalizeMarket("IsHoliday", market)
	if err != nil {
		return false, err
	}
	key, err := dayKey("IsHoliday", day)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.holidays[holidayKey{m, key}]
	return ok, nil
}

// Markets lists market codes with holidays
func (s *MemoryStore) Markets(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var markets []string
	for k := range s.holidays {
		if !seen[k.market] {
			seen[k.market] = true
			markets = append(markets, k.market)
		}
	}
	sort.Strings(markets)
	return markets, nil
}

// Ping always succeeds
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close is a no-op
func (s *MemoryStore) Close() error { return nil }
