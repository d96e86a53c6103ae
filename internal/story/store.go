package story

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"
)

// Store manages a collection of story points with thread-safe access.
// The globe engine reads snapshots from it once per frame; writers
// (seed loading, placement mode) are outside the render loop.
type Store struct {
	points map[string]*Point // keyed by story ID
	mu     sync.RWMutex
}

// NewStore creates an empty story store
func NewStore() *Store {
	return &Store{
		points: make(map[string]*Point),
	}
}

// Upsert adds a story or merges updates into an existing one,
// keeping non-zero values of the existing record
func (s *Store) Upsert(p *Point) {
	if p == nil || p.ID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.points[p.ID]
	if !exists {
		cp := *p
		s.points[p.ID] = &cp
		return
	}

	existing.Category = p.Category
	existing.Lat = p.Lat
	existing.Lon = p.Lon

	if p.Year != 0 {
		existing.Year = p.Year
	}

	if p.Text != "" {
		existing.Text = p.Text
	}

	if p.City != "" {
		existing.City = p.City
	}

	if p.State != "" {
		existing.State = p.State
	}

	if p.Country != "" {
		existing.Country = p.Country
	}

	if p.Reactions.Total() != 0 {
		existing.Reactions = p.Reactions
	}

	if p.Views != 0 {
		existing.Views = p.Views
	}

	if !p.CreatedAt.IsZero() {
		existing.CreatedAt = p.CreatedAt
	}
}

// Get retrieves a story by ID
func (s *Store) Get(id string) (*Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.points[id]
	return p, exists
}

// Snapshot returns all stories sorted newest-first, ties broken by ID
func (s *Store) Snapshot() []*Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points := make([]*Point, 0, len(s.points))
	for _, p := range s.points {
		points = append(points, p)
	}

	sort.Slice(points, func(i, j int) bool {
		if !points[i].CreatedAt.Equal(points[j].CreatedAt) {
			return points[i].CreatedAt.After(points[j].CreatedAt)
		}
		return points[i].ID < points[j].ID
	})

	return points
}

// ByCategory returns all stories of the given category, snapshot order
func (s *Store) ByCategory(c Category) []*Point {
	all := s.Snapshot()
	out := make([]*Point, 0, len(all))
	for _, p := range all {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// Count returns the number of stored stories
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// seedRecord is the wire shape of a story in a seed file
type seedRecord struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Year      int       `json:"year"`
	Text      string    `json:"text"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lng"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Country   string    `json:"country"`
	Reactions Reactions `json:"reactions"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoadFile reads a JSON array of stories into the store.
// Returns the number of stories loaded.
func (s *Store) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var records []seedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	loaded := 0
	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			continue
		}
		s.Upsert(&Point{
			ID:        rec.ID,
			Category:  ParseCategory(rec.Category),
			Year:      rec.Year,
			Text:      rec.Text,
			Lat:       rec.Lat,
			Lon:       rec.Lon,
			City:      rec.City,
			State:     rec.State,
			Country:   rec.Country,
			Reactions: rec.Reactions,
			Views:     rec.Views,
			CreatedAt: rec.CreatedAt,
		})
		loaded++
	}

	return loaded, nil
}
