// Package deck reads and writes deck lists: an optional "# Name" line
// followed by one "Nx ref" line per distinct card.
package deck

import "github.com/youruser/cardsheet/internal/cards"

type Entry struct {
	Count int       `json:"count"`
	Ref   cards.Ref `json:"ref"`
}

type Deck struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Refs expands every entry Count times, in entry order.
func (d Deck) Refs() []cards.Ref {
	var out []cards.Ref
	for _, e := range d.Entries {
		for i := 0; i < e.Count; i++ {
			out = append(out, e.Ref)
		}
	}
	return out
}

// Size is the total number of cards.
func (d Deck) Size() int {
	n := 0
	for _, e := range d.Entries {
		n += e.Count
	}
	return n
}
