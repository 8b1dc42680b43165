package rng

// Sequence is a deterministic Source that replays a fixed list of coin
// results and integers, cycling once exhausted. It exists so scenarios
// like "Flipper determinism" and "Merger shape" can be reproduced exactly
// in tests.
type Sequence struct {
	coins   []bool
	coinPos int
	ints    []int
	intPos  int
	floats  []float64
	floatPos int
}

// NewSequence builds a Sequence that replays coins in order (cycling) and
// ints in order (cycling, reduced modulo n on each IntN call).
func NewSequence(coins []bool, ints []int) *Sequence {
	return &Sequence{coins: coins, ints: ints}
}

// NewSequenceWithFloats extends NewSequence with an explicit Float64 replay
// list, used by changers that draw a continuous value instead of a coin.
func NewSequenceWithFloats(coins []bool, ints []int, floats []float64) *Sequence {
	return &Sequence{coins: coins, ints: ints, floats: floats}
}

func (s *Sequence) Coin() bool {
	if len(s.coins) == 0 {
		return true
	}
	v := s.coins[s.coinPos%len(s.coins)]
	s.coinPos++
	return v
}

func (s *Sequence) CoinP(p float64) bool {
	// Deterministic replay ignores the weight; callers that need weighted
	// determinism should drive it through Float64 instead.
	return s.Coin()
}

func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN requires n > 0")
	}
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.intPos%len(s.ints)]
	s.intPos++
	return v % n
}

func (s *Sequence) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[s.floatPos%len(s.floats)]
	s.floatPos++
	return v
}
