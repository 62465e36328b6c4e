package assessment

import (
	"errors"
	"fmt"
)

// User types derived from the assessment score.
const (
	TypeHardWorking = "Hard working"
	TypeNormalPace  = "Normal pace"
	TypeLazy        = "Lazy"
	TypeUnmotivated = "Unmotivated"
)

// ErrInvalidScore indicates classification was attempted with a
// non-positive max score or a negative total.
var ErrInvalidScore = errors.New("invalid score")

// Classify maps a (totalScore, maxScore) pair to a user type. Thresholds
// are evaluated highest first with greater-or-equal tie-breaking:
// >= 80% hard working, >= 60% normal pace, >= 40% lazy, else unmotivated.
func Classify(totalScore, maxScore int) (string, error) {
	if maxScore <= 0 {
		return "", fmt.Errorf("%w: max score must be positive, got %d", ErrInvalidScore, maxScore)
	}
	if totalScore < 0 {
		return "", fmt.Errorf("%w: total score must be non-negative, got %d", ErrInvalidScore, totalScore)
	}

	p := float64(totalScore) / float64(maxScore)
	switch {
	case p >= 0.8:
		return TypeHardWorking, nil
	case p >= 0.6:
		return TypeNormalPace, nil
	case p >= 0.4:
		return TypeLazy, nil
	default:
		return TypeUnmotivated, nil
	}
}
