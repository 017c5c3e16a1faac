// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     health
// Description: Health check registry shared by the gRPC and HTTP surfaces
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package health

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Status represents the health status of a service
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
	StatusUnknown   Status = "unknown"
)

// worse reports whether s outranks other in a report summary
func (s Status) worse(other Status) bool {
	return s.rank() > other.rank()
}

func (s Status) rank() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	case StatusUnknown:
		return 2
	default:
		return 3
	}
}

// CheckResult represents the result of a health check
type CheckResult struct {
	Name      string                 `json:"name"`
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Duration  time.Duration          `json:"duration_ns"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Checker is a single named health check
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

type checkFunc struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

func (c checkFunc) Name() string                          { return c.name }
func (c checkFunc) Check(ctx context.Context) CheckResult { return c.fn(ctx) }

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return checkFunc{name: name, fn: fn}
}

// Observer is called with every report whose overall status differs from
// the previous one
type Observer func(report *Report)

// Registry runs a set of checkers and summarises them in a Report
type Registry struct {
	mu           sync.RWMutex
	checkers     map[string]Checker
	observers    []Observer
	last         Status
	service      string
	version      string
	checkTimeout time.Duration
	startAt      time.Time
}

// NewRegistry creates an empty registry. Each check is bounded by a five
// second timeout unless SetCheckTimeout changes it.
func NewRegistry(service, version string) *Registry {
	return &Registry{
		checkers:     make(map[string]Checker),
		last:         StatusUnknown,
		service:      service,
		version:      version,
		checkTimeout: 5 * time.Second,
		startAt:      time.Now(),
	}
}

// SetCheckTimeout bounds the runtime of every single check
func (r *Registry) SetCheckTimeout(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkTimeout = d
}

// Register adds a checker, replacing one with the same name
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[checker.Name()] = checker
}

// RegisterFunc adds a check function to the registry
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context) CheckResult) {
	r.Register(NewChecker(name, fn))
}

// Observe registers fn for status transitions. fn runs synchronously at the
// end of Check.
func (r *Registry) Observe(fn Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// Check runs all checks concurrently. The overall status is the worst
// status of any check; a check that outlives its timeout counts as
// unhealthy.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	checkers := make([]Checker, 0, len(r.checkers))
	for _, c := range r.checkers {
		checkers = append(checkers, c)
	}
	timeout := r.checkTimeout
	r.mu.RUnlock()

	report := &Report{
		Service:   r.service,
		Version:   r.version,
		Status:    StatusHealthy,
		Uptime:    time.Since(r.startAt),
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, len(checkers)),
	}

	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()
			report.Checks[i] = runCheck(ctx, c, timeout)
		}(i, c)
	}
	wg.Wait()

	sort.Slice(report.Checks, func(i, j int) bool {
		return report.Checks[i].Name < report.Checks[j].Name
	})
	for _, result := range report.Checks {
		if result.Status.worse(report.Status) {
			report.Status = result.Status
		}
	}

	r.notify(report)
	return report
}

func runCheck(ctx context.Context, c Checker, timeout time.Duration) CheckResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	done := make(chan CheckResult, 1)
	go func() {
		done <- c.Check(ctx)
	}()

	var result CheckResult
	select {
	case result = <-done:
	case <-ctx.Done():
		result = CheckResult{Status: StatusUnhealthy, Message: "check timed out"}
	}
	result.Name = c.Name()
	result.Duration = time.Since(start)
	result.Timestamp = time.Now()
	return result
}

func (r *Registry) notify(report *Report) {
	r.mu.Lock()
	changed := report.Status != r.last
	r.last = report.Status
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range observers {
		fn(report)
	}
}

// Report represents the overall health report
type Report struct {
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Uptime    time.Duration `json:"uptime_ns"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

func (r *Report) String() string {
	return fmt.Sprintf("Service: %s, Status: %s, Uptime: %v, Checks: %d",
		r.Service, r.Status, r.Uptime.Round(time.Second), len(r.Checks))
}

// Healthy reports whether the overall status is healthy
func (r *Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// PingCheck wraps a function returning an error: nil is healthy, an error is
// unhealthy with the error as message
func PingCheck(name string, ping func(ctx context.Context) error) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		if err := ping(ctx); err != nil {
			return CheckResult{Status: StatusUnhealthy, Message: err.Error()}
		}
		return CheckResult{Status: StatusHealthy, Message: "ok"}
	})
}

// StaticCheck always reports healthy with message
func StaticCheck(name, message string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: message}
	})
}
