package story

import (
	"time"
)

// Category classifies a memory by the kind of "first" it records
type Category int

const (
	CategoryHeartbreak Category = iota
	CategoryJob
	CategoryOcean
	CategoryTravel
	CategoryHome
	CategoryLoss
	CategoryAchievement
	CategoryOther
)

// FreshWindow is how long a newly created story keeps its glow
const FreshWindow = 24 * time.Hour

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case CategoryHeartbreak:
		return "First Heartbreak"
	case CategoryJob:
		return "First Job"
	case CategoryOcean:
		return "First Ocean"
	case CategoryTravel:
		return "First Travel"
	case CategoryHome:
		return "First Home"
	case CategoryLoss:
		return "First Loss"
	case CategoryAchievement:
		return "First Achievement"
	default:
		return "Other"
	}
}

// Hex returns the category's marker color as a hex string
func (c Category) Hex() string {
	switch c {
	case CategoryHeartbreak:
		return "#ef4444"
	case CategoryJob:
		return "#f59e0b"
	case CategoryOcean:
		return "#0ea5e9"
	case CategoryTravel:
		return "#8b5cf6"
	case CategoryHome:
		return "#10b981"
	case CategoryLoss:
		return "#64748b"
	case CategoryAchievement:
		return "#eab308"
	default:
		return "#ec4899"
	}
}

// Glyph returns a single-cell symbol for list display
func (c Category) Glyph() rune {
	switch c {
	case CategoryHeartbreak:
		return '♥'
	case CategoryJob:
		return '¤'
	case CategoryOcean:
		return '~'
	case CategoryTravel:
		return '➤'
	case CategoryHome:
		return '⌂'
	case CategoryLoss:
		return '†'
	case CategoryAchievement:
		return '★'
	default:
		return '✦'
	}
}

// ParseCategory maps a display name back to a Category.
// Unknown names fall through to CategoryOther.
func ParseCategory(name string) Category {
	for c := CategoryHeartbreak; c <= CategoryOther; c++ {
		if c.String() == name {
			return c
		}
	}
	return CategoryOther
}

// Categories returns all categories in declaration order
func Categories() []Category {
	out := make([]Category, 0, 8)
	for c := CategoryHeartbreak; c <= CategoryOther; c++ {
		out = append(out, c)
	}
	return out
}

// Reactions holds per-category reaction counters
type Reactions struct {
	Heart int `json:"heart"`
	MeToo int `json:"metoo"`
	Hug   int `json:"hug"`
}

// Total returns the combined reaction count
func (r Reactions) Total() int {
	return r.Heart + r.MeToo + r.Hug
}

// Point is a single memory pinned to a geographic coordinate.
// The globe engine treats points as immutable: it receives a snapshot
// per render pass and only ever reports picks back to the caller.
type Point struct {
	ID        string    `json:"id"`
	Category  Category  `json:"-"`
	Year      int       `json:"year"`
	Text      string    `json:"text"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lng"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Country   string    `json:"country,omitempty"`
	Reactions Reactions `json:"reactions"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
}

// Fresh reports whether the point was created within the freshness window
func (p *Point) Fresh(now time.Time) bool {
	if p.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(p.CreatedAt) < FreshWindow
}

// Place returns the most specific location string available
func (p *Point) Place() string {
	switch {
	case p.City != "":
		return p.City
	case p.State != "":
		return p.State
	case p.Country != "":
		return p.Country
	default:
		return "Somewhere"
	}
}

// ListDisplay returns the formatted string for the story list panel
func (p *Point) ListDisplay() string {
	place := []rune(p.Place())
	if len(place) > 14 {
		place = place[:14]
	}
	return string(p.Category.Glyph()) + " " + itoa4(p.Year) + " " + string(place)
}

func itoa4(year int) string {
	if year < 1000 || year > 9999 {
		return "----"
	}
	buf := [4]byte{}
	for i := 3; i >= 0; i-- {
		buf[i] = byte('0' + year%10)
		year /= 10
	}
	return string(buf[:])
}
