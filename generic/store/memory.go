// Package store provides RuleSetStore implementations.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/warp/labor-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu           sync.RWMutex
	records      map[int]generic.RuleSetRecord
	calculations []generic.CalculationRecord
	holidays     map[string][]generic.Holiday
	now          func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		records:  make(map[int]generic.RuleSetRecord),
		holidays: make(map[string][]generic.Holiday),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var (
	_ generic.RuleSetStore   = (*Memory)(nil)
	_ generic.CalculationLog = (*Memory)(nil)
	_ generic.HolidayStore   = (*Memory)(nil)
)

func (m *Memory) SaveRuleSet(_ context.Context, record generic.RuleSetRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if existing, ok := m.records[record.Year]; ok {
		record.Version = existing.Version + 1
		record.CreatedAt = existing.CreatedAt
	} else {
		record.Version = 1
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	m.records[record.Year] = record
	return nil
}

func (m *Memory) GetRuleSet(_ context.Context, year int) (*generic.RuleSetRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[year]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Memory) ListRuleSets(_ context.Context) ([]generic.RuleSetRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]generic.RuleSetRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (m *Memory) DeleteRuleSet(_ context.Context, year int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, year)
	return nil
}

// =============================================================================
// CALCULATION LOG
// =============================================================================

func (m *Memory) AppendCalculation(_ context.Context, record generic.CalculationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.calculations {
		if c.ID == record.ID {
			return fmt.Errorf("calculation %s: %w", record.ID, generic.ErrDuplicateRecord)
		}
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = m.now()
	}
	m.calculations = append(m.calculations, record)
	return nil
}

func (m *Memory) GetCalculation(_ context.Context, id string) (*generic.CalculationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.calculations {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListCalculations(_ context.Context, kind string, limit int) ([]generic.CalculationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []generic.CalculationRecord
	for i := len(m.calculations) - 1; i >= 0; i-- {
		c := m.calculations[i]
		if kind != "" && c.Kind != kind {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (m *Memory) SaveHoliday(_ context.Context, calendar string, h generic.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.holidays[calendar]
	for i, existing := range list {
		if existing.Date.Equal(h.Date) {
			list[i] = h
			return nil
		}
	}
	m.holidays[calendar] = append(list, h)
	return nil
}

func (m *Memory) DeleteHoliday(_ context.Context, calendar string, date generic.TimePoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.holidays[calendar]
	for i, existing := range list {
		if existing.Date.Equal(date) {
			m.holidays[calendar] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) Holidays(_ context.Context, calendar string) ([]generic.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := append([]generic.Holiday(nil), m.holidays[calendar]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
