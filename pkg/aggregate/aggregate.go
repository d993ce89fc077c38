// Package aggregate provides the grouping and ranking primitives shared by
// every analytics function: an insertion-ordered accumulator and a stable
// top-N selection.
package aggregate

import (
	"sort"
	"strings"
)

// Entry is one (key, value) pair of an aggregation.
type Entry struct {
	Key   string
	Value float64
}

// Counter accumulates float64 totals per string key while remembering the
// order keys were first seen. TopN breaks ties by that order, which keeps
// the entries surfacing on dashboards stable across identical inputs.
type Counter struct {
	order  []string
	totals map[string]float64
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{totals: make(map[string]float64)}
}

// Add accumulates v under key. Empty or blank keys collapse into the
// "Unknown" bucket so no record is ever dropped from a histogram.
func (c *Counter) Add(key string, v float64) {
	key = NormalizeKey(key)
	if _, ok := c.totals[key]; !ok {
		c.order = append(c.order, key)
	}
	c.totals[key] += v
}

// Get returns the accumulated total for key, zero when absent.
func (c *Counter) Get(key string) float64 {
	return c.totals[NormalizeKey(key)]
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.order)
}

// Total sums all accumulated values.
func (c *Counter) Total() float64 {
	var total float64
	for _, v := range c.totals {
		total += v
	}
	return total
}

// Entries returns all pairs in first-seen order.
func (c *Counter) Entries() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, Entry{Key: key, Value: c.totals[key]})
	}
	return entries
}

// TopN returns the n largest entries sorted descending by value; equal
// values keep first-seen order. n <= 0 returns all entries sorted.
func (c *Counter) TopN(n int) []Entry {
	entries := c.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// IntMap returns the accumulated totals as an int-valued map, for counters
// that only ever receive whole increments.
func (c *Counter) IntMap() map[string]int {
	m := make(map[string]int, len(c.totals))
	for k, v := range c.totals {
		m[k] = int(v)
	}
	return m
}

// NormalizeKey maps empty or whitespace-only keys to the "Unknown" bucket.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "Unknown"
	}
	return key
}

// GroupSum folds value(r) into buckets keyed by key(r).
func GroupSum[T any](records []T, key func(T) string, value func(T) float64) *Counter {
	c := NewCounter()
	for _, r := range records {
		c.Add(key(r), value(r))
	}
	return c
}
