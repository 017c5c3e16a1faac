// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     service
// Description: Datetime operations exposed to the gRPC, HTTP and CLI surfaces
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package service implements the kairos operations on top of the datetime
// core and the trading calendar store. Transports decode their requests into
// the string inputs accepted here and encode the results.
package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/internal/kairos/store"
	"github.com/msto63/kairos/pkg/core/cache"
	"github.com/msto63/kairos/pkg/core/config"
	"github.com/msto63/kairos/pkg/core/logging"
	"github.com/msto63/kairos/pkg/datetime"
)

// Config holds service settings
type Config struct {
	DefaultMarket string
	// WeekendDays uses 0 = Sunday through 6 = Saturday.
	WeekendDays []int
	// MaxSteps bounds Step counts and the length of generated day sequences
	MaxSteps      int
	CacheMaxItems int
	CacheTTL      time.Duration
}

// DefaultConfig returns the default service configuration
func DefaultConfig() Config {
	return ConfigFrom(config.Default())
}

// ConfigFrom extracts the service settings from the application config
func ConfigFrom(c *config.Config) Config {
	return Config{
		DefaultMarket: c.Calendar.DefaultMarket,
		WeekendDays:   c.Calendar.WeekendDays,
		MaxSteps:      c.Calendar.MaxSteps,
		CacheMaxItems: c.Cache.MaxItems,
		CacheTTL:      c.Cache.TTL.Duration,
	}
}

// Service implements the kairos operations
type Service struct {
	store   store.Store
	cfg     Config
	weekend [7]bool
	parsed  *cache.Cache[string, datetime.Datetime]
	logger  *logging.Logger
}

// New creates a new service over st
func New(st store.Store, cfg Config) *Service {
	s := &Service{
		store: st,
		cfg:   cfg,
		parsed: cache.New[string, datetime.Datetime](cache.Config{
			MaxItems: cfg.CacheMaxItems,
			TTL:      cfg.CacheTTL,
		}),
		logger: logging.New("service"),
	}
	for _, d := range cfg.WeekendDays {
		if d >= 0 && d < 7 {
			s.weekend[d] = true
		}
	}
	return s
}

// Close releases the parse cache. The store is owned by the caller.
func (s *Service) Close() {
	s.parsed.Close()
}

// DefaultMarket returns the market used when a request names none
func (s *Service) DefaultMarket() string {
	return s.cfg.DefaultMarket
}

// Store returns the underlying calendar store
func (s *Service) Store() store.Store {
	return s.store
}

// Parse converts an input into a Datetime. Pure digit input goes through
// the compact integer path, everything else through the text grammar.
// Results are memoised.
func (s *Service) Parse(input string) (datetime.Datetime, error) {
	key := strings.TrimSpace(input)
	if key == "" {
		return datetime.Datetime{}, kerror.New("input is required").
			WithCode(kerror.CodeInvalidInput).
			WithOperation("service.Parse")
	}
	return s.parsed.GetOrSet(key, func() (datetime.Datetime, error) {
		if isDigits(key) {
			n, err := strconv.ParseUint(key, 10, 64)
			if err != nil {
				return datetime.Datetime{}, kerror.Wrap(err, "compact number out of range").
					WithCode(kerror.CodeValueOutOfRange).
					WithOperation("service.Parse")
			}
			return datetime.FromNumber(n)
		}
		return datetime.Parse(key)
	})
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Inspect parses input and describes the result
func (s *Service) Inspect(ctx context.Context, input string) (*Inspection, error) {
	dt, err := s.Parse(input)
	if err != nil {
		return nil, err
	}
	return Inspect(input, dt), nil
}

// Align moves input to the start or end of its period
func (s *Service) Align(ctx context.Context, input string, period datetime.Period, edge Edge) (datetime.Datetime, error) {
	dt, err := s.Parse(input)
	if err != nil {
		return datetime.Datetime{}, err
	}
	switch edge {
	case EdgeStart:
		return dt.Start(period), nil
	case EdgeEnd:
		return dt.End(period), nil
	default:
		return datetime.Datetime{}, invalidInput("Align", "unknown edge %d", int(edge))
	}
}

// Step moves input n periods forward (n > 0) or backward (n < 0). Each step
// lands on a period start and saturates at the representable bounds; n == 0
// returns the input unchanged.
func (s *Service) Step(ctx context.Context, input string, period datetime.Period, n int) (datetime.Datetime, error) {
	if n > s.cfg.MaxSteps || -n > s.cfg.MaxSteps {
		return datetime.Datetime{}, invalidInput("Step", "step count %d exceeds limit %d", n, s.cfg.MaxSteps)
	}
	dt, err := s.Parse(input)
	if err != nil {
		return datetime.Datetime{}, err
	}

	forward := n > 0
	if n < 0 {
		n = -n
	}
	for i := 0; i < n; i++ {
		var next datetime.Datetime
		if forward {
			next = dt.Next(period)
		} else {
			next = dt.Prev(period)
		}
		if next == dt {
			// Saturated at a bound or Null
			break
		}
		dt = next
	}
	return dt, nil
}

// Range returns the midnight of every day in [start, end)
func (s *Service) Range(ctx context.Context, start, end string) ([]datetime.Datetime, error) {
	from, to, err := s.parsePair(start, end)
	if err != nil {
		return nil, err
	}
	return s.collect(ctx, "Range", from, to, func(datetime.Datetime) bool { return true })
}

// TradingDays returns the days in [start, end) that are neither configured
// weekend days nor holidays of market. An empty market uses the default.
func (s *Service) TradingDays(ctx context.Context, market, start, end string) ([]datetime.Datetime, error) {
	timer := s.logger.StartTimer("service.TradingDays")
	defer timer.Stop()

	if market == "" {
		market = s.cfg.DefaultMarket
	}
	from, to, err := s.parsePair(start, end)
	if err != nil {
		return nil, err
	}
	if from.IsNull() || to.IsNull() || !from.Before(to) {
		return nil, nil
	}

	holidays, err := s.store.Holidays(ctx, market, from, to)
	if err != nil {
		return nil, err
	}
	closed := make(map[uint64]bool, len(holidays))
	for _, h := range holidays {
		closed[h.Day.YMD()] = true
	}
	timer.WithField("market", market).WithField("holidays", len(holidays))

	return s.collect(ctx, "TradingDays", from, to, func(day datetime.Datetime) bool {
		return !s.weekend[day.DayOfWeek()] && !closed[day.YMD()]
	})
}

// IsTradingDay reports whether the day of input is a trading day of market
func (s *Service) IsTradingDay(ctx context.Context, market, input string) (bool, error) {
	if market == "" {
		market = s.cfg.DefaultMarket
	}
	dt, err := s.Parse(input)
	if err != nil {
		return false, err
	}
	if dt.IsNull() {
		return false, nil
	}
	if s.weekend[dt.DayOfWeek()] {
		return false, nil
	}
	holiday, err := s.store.IsHoliday(ctx, market, dt)
	if err != nil {
		return false, err
	}
	return !holiday, nil
}

// Bucket groups inputs by the period containing them. Buckets are ordered by
// start, with the Null bucket last.
func (s *Service) Bucket(ctx context.Context, inputs []string, period datetime.Period) ([]Bucket, error) {
	index := make(map[datetime.Datetime]int)
	var buckets []Bucket

	for _, in := range inputs {
		dt, err := s.Parse(in)
		if err != nil {
			return nil, kerror.Wrap(err, "bucket input "+strconv.Quote(in))
		}
		start := dt.Start(period)
		i, ok := index[start]
		if !ok {
			i = len(buckets)
			index[start] = i
			buckets = append(buckets, Bucket{Start: start, End: dt.End(period)})
		}
		buckets[i].Members = append(buckets[i].Members, dt)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	for i := range buckets {
		sort.Slice(buckets[i].Members, func(a, b int) bool {
			return buckets[i].Members[a].Before(buckets[i].Members[b])
		})
	}
	return buckets, nil
}

// Now returns the current local wall clock
func (s *Service) Now(ctx context.Context) datetime.Datetime {
	return datetime.Now()
}

func (s *Service) parsePair(start, end string) (datetime.Datetime, datetime.Datetime, error) {
	from, err := s.Parse(start)
	if err != nil {
		return datetime.Datetime{}, datetime.Datetime{}, err
	}
	to, err := s.Parse(end)
	if err != nil {
		return datetime.Datetime{}, datetime.Datetime{}, err
	}
	return from, to, nil
}

// collect walks [from, to) keeping days accepted by keep. It stops with
// INVALID_INPUT once more than MaxSteps days were visited.
func (s *Service) collect(ctx context.Context, op string, from, to datetime.Datetime, keep func(datetime.Datetime) bool) ([]datetime.Datetime, error) {
	var (
		days    []datetime.Datetime
		visited int
	)
	for day := range datetime.Days(from, to) {
		visited++
		if visited > s.cfg.MaxSteps {
			return nil, invalidInput(op, "range spans more than %d days", s.cfg.MaxSteps)
		}
		if visited%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, kerror.Wrap(err, op+" cancelled").WithCode(kerror.CodeTimeout)
			}
		}
		if keep(day) {
			days = append(days, day)
		}
	}
	return days, nil
}

func invalidInput(op, format string, args ...interface{}) *kerror.Error {
	return kerror.Newf(format, args...).
		WithCode(kerror.CodeInvalidInput).
		WithOperation("service." + op)
}
