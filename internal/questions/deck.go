package questions

import "github.com/vovakirdan/qmaze/internal/rng"

// Deck deals questions in a seeded shuffled order and reshuffles when
// every question has been dealt once.
type Deck struct {
	questions []Question
	order     []int
	pos       int
	rng       *rng.Random
}

// NewDeck creates a deck over qs. The slice is copied.
func NewDeck(qs []Question, seed int64) *Deck {
	d := &Deck{
		questions: append([]Question(nil), qs...),
		rng:       rng.New(seed),
	}
	d.order = make([]int, len(d.questions))
	for i := range d.order {
		d.order[i] = i
	}
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})
	d.pos = 0
}

// Next deals the next question, or ErrEmptyBank when the deck has none.
func (d *Deck) Next() (Question, error) {
	if len(d.order) == 0 {
		return Question{}, ErrEmptyBank
	}
	if d.pos >= len(d.order) {
		d.shuffle()
	}
	q := d.questions[d.order[d.pos]]
	d.pos++
	return q, nil
}

// Len returns the number of distinct questions.
func (d *Deck) Len() int {
	return len(d.questions)
}
