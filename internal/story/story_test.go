package story

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCategoryRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		assert.Equal(t, c, ParseCategory(c.String()))
		assert.NotEmpty(t, c.Hex())
		assert.NotZero(t, c.Glyph())
	}

	assert.Equal(t, CategoryOther, ParseCategory("First Unicycle"))
	assert.Equal(t, CategoryOther, ParseCategory(""))
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 8)
	assert.Equal(t, CategoryHeartbreak, cats[0])
	assert.Equal(t, CategoryOther, cats[len(cats)-1])
}

func TestFresh(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	p := &Point{CreatedAt: now.Add(-time.Hour)}
	assert.True(t, p.Fresh(now))

	p = &Point{CreatedAt: now.Add(-25 * time.Hour)}
	assert.False(t, p.Fresh(now))

	p = &Point{}
	assert.False(t, p.Fresh(now))
}

func TestPlacePrecedence(t *testing.T) {
	p := &Point{City: "Lisbon", State: "Lisboa", Country: "Portugal"}
	assert.Equal(t, "Lisbon", p.Place())

	p = &Point{State: "Lisboa", Country: "Portugal"}
	assert.Equal(t, "Lisboa", p.Place())

	p = &Point{Country: "Portugal"}
	assert.Equal(t, "Portugal", p.Place())

	p = &Point{}
	assert.Equal(t, "Somewhere", p.Place())
}

func TestListDisplay(t *testing.T) {
	p := &Point{Category: CategoryHeartbreak, Year: 2019, City: "Paris"}
	assert.Equal(t, "♥ 2019 Paris", p.ListDisplay())

	p = &Point{Category: CategoryTravel, Year: 0, City: "A Very Long City Name"}
	assert.Equal(t, "➤ ---- A Very Long Ci", p.ListDisplay())
}

func TestListDisplayTruncatesOnRunes(t *testing.T) {
	// 15 runes, multibyte at the cut point; byte slicing would split
	// the sequence and leave a mangled tail
	p := &Point{Category: CategoryOcean, Year: 2010, City: "São Paulo Zonaé"}
	got := p.ListDisplay()

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "~ 2010 São Paulo Zona", got)
}

func TestReactionsTotal(t *testing.T) {
	r := Reactions{Heart: 3, MeToo: 2, Hug: 1}
	assert.Equal(t, 6, r.Total())
	assert.Zero(t, Reactions{}.Total())
}
