package scores

import "fmt"

// Scores holds the points of both sides. Values only ever grow.
type Scores struct {
	Left  int
	Right int
}

// ScoreLeft credits a point to the left side.
func (s *Scores) ScoreLeft() {
	s.Left++
}

// ScoreRight credits a point to the right side.
func (s *Scores) ScoreRight() {
	s.Right++
}

func (s Scores) String() string {
	return fmt.Sprintf("%d-%d", s.Left, s.Right)
}
