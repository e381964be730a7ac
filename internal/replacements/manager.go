package replacements

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Snapshot is the pair of sets published by one refresh cycle. A nil
// slot means no bulletin exists for that day.
type Snapshot struct {
	Today          *Set
	NextWorkingDay *Set
}

// Manager owns the today and next-working-day snapshots and the retry
// policy around fetching. Queries read the last published snapshot and
// never touch the network.
type Manager struct {
	schedule    *Schedule
	maxAttempts int
	logger      *logrus.Logger
	snapshot    atomic.Pointer[Snapshot]
	now         func() time.Time
}

// NewManager ...
func NewManager(schedule *Schedule, config *Config, logger *logrus.Logger) *Manager {
	return &Manager{
		schedule:    schedule,
		maxAttempts: config.MaxAttempts,
		logger:      logger,
		now:         time.Now,
	}
}

// GetReplacements fetches and builds the set for one weekday. An empty
// day means today. Transport failures are retried up to the attempt
// ceiling and only then become fatal; a missing or empty bulletin is
// returned as is, it is data, not transport.
func (m *Manager) GetReplacements(day string) (*Set, error) {
	if day == "" {
		day = WeekdayName(m.now().Weekday())
	}

	var lastErr error
	for attempt := 0; attempt < m.maxAttempts; attempt++ {
		page, err := m.schedule.Fetch(day)
		if err == nil {
			return NewSet(page), nil
		}
		if isNoBulletin(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("fetch replacements for %s: %w", day, lastErr)
}

// Refresh recomputes both slots and publishes them in one atomic swap.
// On failure nothing is published, readers keep the previous snapshot.
func (m *Manager) Refresh() error {
	m.logger.Info("Updating replacements")

	today := m.now()
	next := nextWorkingDay(today)

	snapshot := &Snapshot{}
	set, err := m.GetReplacements(WeekdayName(today.Weekday()))
	if err != nil && !isNoBulletin(err) {
		return err
	}
	snapshot.Today = set

	set, err = m.GetReplacements(WeekdayName(next.Weekday()))
	if err != nil && !isNoBulletin(err) {
		return err
	}
	snapshot.NextWorkingDay = set

	m.snapshot.Store(snapshot)
	m.logger.Info("Replacements updated")
	return nil
}

// Today returns the last published set for today. The second value is
// false until a refresh cycle has published a snapshot; a nil set with
// true means today has no bulletin.
func (m *Manager) Today() (*Set, bool) {
	snapshot := m.snapshot.Load()
	if snapshot == nil {
		return nil, false
	}
	return snapshot.Today, true
}

// NextWorkingDay returns the last published set for the next working
// day, with the same convention as Today.
func (m *Manager) NextWorkingDay() (*Set, bool) {
	snapshot := m.snapshot.Load()
	if snapshot == nil {
		return nil, false
	}
	return snapshot.NextWorkingDay, true
}

// nextWorkingDay is +2 days on Saturday and +1 otherwise; the +1 rule
// already lands Sunday on Monday.
func nextWorkingDay(today time.Time) time.Time {
	if today.Weekday() == time.Saturday {
		return today.AddDate(0, 0, 2)
	}
	return today.AddDate(0, 0, 1)
}

func isNoBulletin(err error) bool {
	return errors.Is(err, ErrNoBulletin) || errors.Is(err, ErrEmptyBulletin)
}
