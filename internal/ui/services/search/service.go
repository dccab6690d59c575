package search

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"atlasgrip/internal/eventbus"
	"atlasgrip/internal/logging"
)

// Service handles search over node labels
type Service struct {
	state      *State
	bus        eventbus.EventBus
	matcherFn  func(string) []MatchResult
	navigateFn func(int)
}

// NewService creates a new search service
func NewService(bus eventbus.EventBus) *Service {
	return &Service{
		state: &State{},
		bus:   bus,
	}
}

// SetMatcherFunction sets the function to find matches
func (s *Service) SetMatcherFunction(fn func(string) []MatchResult) {
	s.matcherFn = fn
}

// SetNavigateFunction sets the function to navigate to a match
func (s *Service) SetNavigateFunction(fn func(int)) {
	s.navigateFn = fn
}

// StartSearch runs query and jumps to the best match
func (s *Service) StartSearch(query string) {
	if query == "" {
		s.ClearSearch()
		return
	}

	s.state.Query = query
	s.performSearch()
	s.navigateToCurrentMatch()
}

// ClearSearch clears the current search
func (s *Service) ClearSearch() {
	s.state.Query = ""
	s.state.Matches = nil
	s.state.CurrentMatch = 0
	s.publish(eventbus.SearchClearedEvent{})
}

// NavigateNext moves to the next search result
func (s *Service) NavigateNext() {
	if len(s.state.Matches) == 0 {
		return
	}
	s.state.CurrentMatch = (s.state.CurrentMatch + 1) % len(s.state.Matches)
	s.navigateToCurrentMatch()
}

// NavigatePrevious moves to the previous search result
func (s *Service) NavigatePrevious() {
	if len(s.state.Matches) == 0 {
		return
	}
	s.state.CurrentMatch--
	if s.state.CurrentMatch < 0 {
		s.state.CurrentMatch = len(s.state.Matches) - 1
	}
	s.navigateToCurrentMatch()
}

// GetQuery returns the current search query
func (s *Service) GetQuery() string {
	return s.state.Query
}

// GetMatchCount returns the number of matches
func (s *Service) GetMatchCount() int {
	return len(s.state.Matches)
}

// GetCurrentMatchIndex returns the node index of the current match, -1 if none
func (s *Service) GetCurrentMatchIndex() int {
	if len(s.state.Matches) == 0 {
		return -1
	}
	return s.state.Matches[s.state.CurrentMatch]
}

// GetCurrentMatchPosition returns the 1-based position of the current match
func (s *Service) GetCurrentMatchPosition() int {
	if len(s.state.Matches) == 0 {
		return 0
	}
	return s.state.CurrentMatch + 1
}

// IsMatch checks if a node index is a search match
func (s *Service) IsMatch(index int) bool {
	for _, match := range s.state.Matches {
		if match == index {
			return true
		}
	}
	return false
}

// ShouldHighlight reports whether text contains the query
func (s *Service) ShouldHighlight(text string) bool {
	if s.state.Query == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(s.state.Query))
}

func (s *Service) performSearch() {
	s.state.Matches = nil
	s.state.CurrentMatch = 0
	if s.matcherFn == nil {
		return
	}

	for _, result := range s.matcherFn(s.state.Query) {
		s.state.Matches = append(s.state.Matches, result.Index)
	}

	logging.Debugf("Search completed for '%s': found %d matches", s.state.Query, len(s.state.Matches))

	s.publish(eventbus.SearchCompletedEvent{
		Query:      s.state.Query,
		MatchCount: len(s.state.Matches),
		FirstMatch: s.GetCurrentMatchIndex(),
	})
}

func (s *Service) navigateToCurrentMatch() {
	if s.navigateFn == nil || len(s.state.Matches) == 0 {
		return
	}
	s.navigateFn(s.state.Matches[s.state.CurrentMatch])
}

func (s *Service) publish(e eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

// Match ranks labels against query. Substring matches come first in label
// order, followed by near misses ordered by edit distance. Near misses are
// only considered for queries of three or more runes.
func Match(query string, labels []string) []MatchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var exact, fuzzy []MatchResult
	maxDistance := len([]rune(q)) / 3
	if maxDistance < 1 {
		maxDistance = 1
	}

	for i, label := range labels {
		l := strings.ToLower(label)
		if strings.Contains(l, q) {
			exact = append(exact, MatchResult{Index: i, Label: label})
			continue
		}
		if len([]rune(q)) < 3 {
			continue
		}
		if d := distance(q, l); d <= maxDistance {
			fuzzy = append(fuzzy, MatchResult{Index: i, Label: label, Distance: d})
		}
	}

	sort.SliceStable(fuzzy, func(i, j int) bool {
		return fuzzy[i].Distance < fuzzy[j].Distance
	})
	return append(exact, fuzzy...)
}

// distance compares q with the whole label and with the label prefix of the
// same length, so typos early in long names still match.
func distance(q, label string) int {
	d := levenshtein.ComputeDistance(q, label)
	lr := []rune(label)
	if n := len([]rune(q)); len(lr) > n {
		if p := levenshtein.ComputeDistance(q, string(lr[:n])); p < d {
			d = p
		}
	}
	return d
}
