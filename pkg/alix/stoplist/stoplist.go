package stoplist

import (
	"sort"
	"strings"
)

// Manager holds the stop words of the dictionary store. Words are kept
// lowercase; lookups fold case.
type Manager struct {
	stops map[string]Reason
}

// Reason records where a stop word came from.
type Reason struct {
	Source string // resource name, "" when added programmatically
	Line   int    // line in the resource, 0 when unknown
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]Reason, len(initialStops))
	for _, s := range initialStops {
		if s = fold(s); s != "" {
			stops[s] = Reason{}
		}
	}
	return &Manager{stops: stops}
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	if m == nil {
		return false
	}
	_, ok := m.stops[fold(token)]
	return ok
}

// Add adds a token to the stoplist with a reason. An existing entry keeps
// its first reason.
func (m *Manager) Add(token string, reason Reason) {
	token = fold(token)
	if token == "" {
		return
	}
	if _, ok := m.stops[token]; ok {
		return
	}
	m.stops[token] = reason
}

// Reason returns why a token is a stop word.
func (m *Manager) Reason(token string) (Reason, bool) {
	r, ok := m.stops[fold(token)]
	return r, ok
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, fold(token))
}

// Len returns the number of stop words.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.stops)
}

// All returns all stopwords, sorted.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}
