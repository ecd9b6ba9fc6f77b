package tetris

import "math/rand"

// Randomizer supplies the sequence of piece types.
// Implementations own their RNG so sequences are reproducible per seed.
type Randomizer interface {
	Next() PieceType
}

// RandomizerKind names a built-in randomizer.
type RandomizerKind string

const (
	RandomizerBag     RandomizerKind = "bag"
	RandomizerUniform RandomizerKind = "uniform"
)

// NewRandomizer returns the built-in randomizer of the given kind.
// Unknown kinds fall back to the 7-bag.
func NewRandomizer(kind RandomizerKind, seed int64) Randomizer {
	if kind == RandomizerUniform {
		return NewUniformRandomizer(seed)
	}
	return NewBagRandomizer(seed)
}

// BagRandomizer deals all seven pieces in shuffled order before
// reshuffling, so no type is ever absent for more than 12 draws.
type BagRandomizer struct {
	rng *rand.Rand
	bag []PieceType
}

// NewBagRandomizer creates a seeded 7-bag randomizer.
func NewBagRandomizer(seed int64) *BagRandomizer {
	return &BagRandomizer{
		rng: rand.New(rand.NewSource(seed)),
		bag: make([]PieceType, 0, PieceTypeCount),
	}
}

// Next returns the next piece from the bag, refilling it when empty.
func (b *BagRandomizer) Next() PieceType {
	if len(b.bag) == 0 {
		b.refill()
	}
	t := b.bag[0]
	b.bag = b.bag[1:]
	return t
}

func (b *BagRandomizer) refill() {
	b.bag = b.bag[:0]
	b.bag = append(b.bag, AllPieceTypes[:]...)
	// Fisher-Yates shuffle
	for i := len(b.bag) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	}
}

// UniformRandomizer draws each piece independently with equal probability.
type UniformRandomizer struct {
	rng *rand.Rand
}

// NewUniformRandomizer creates a seeded uniform randomizer.
func NewUniformRandomizer(seed int64) *UniformRandomizer {
	return &UniformRandomizer{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a uniformly random piece type.
func (u *UniformRandomizer) Next() PieceType {
	return PieceType(u.rng.Intn(PieceTypeCount))
}

// SequenceRandomizer replays a fixed list of pieces, cycling when it runs out.
// Used for scripted games and tests.
type SequenceRandomizer struct {
	seq []PieceType
	pos int
}

// NewSequenceRandomizer creates a randomizer that deals seq in order.
// An empty sequence deals I pieces.
func NewSequenceRandomizer(seq ...PieceType) *SequenceRandomizer {
	if len(seq) == 0 {
		seq = []PieceType{PieceI}
	}
	return &SequenceRandomizer{seq: seq}
}

// Next returns the next piece in the sequence.
func (s *SequenceRandomizer) Next() PieceType {
	t := s.seq[s.pos%len(s.seq)]
	s.pos++
	return t
}
