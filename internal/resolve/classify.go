package resolve

// Classification is the outcome of comparing a score against a threshold
type Classification string

const (
	// ClassHigh means the score is strictly above the threshold
	ClassHigh Classification = "high"
	// ClassBelowThreshold means the score is at or below the threshold
	ClassBelowThreshold Classification = "below_threshold"
)

// String renders the classification for humans
func (c Classification) String() string {
	switch c {
	case ClassHigh:
		return "high score"
	case ClassBelowThreshold:
		return "below threshold"
	default:
		return string(c)
	}
}

// Score is a score that may or may not have been assigned.
// The zero value is unassigned; its value can only be read through ValueOr.
type Score struct {
	value    float64
	assigned bool
}

// Assigned returns a score holding v
func Assigned(v float64) Score {
	return Score{value: v, assigned: true}
}

// Unassigned returns a score with no value
func Unassigned() Score {
	return Score{}
}

// IsAssigned reports whether the score holds a value
func (s Score) IsAssigned() bool {
	return s.assigned
}

// ValueOr returns the score's value, or sentinel when unassigned
func (s Score) ValueOr(sentinel float64) float64 {
	if !s.assigned {
		return sentinel
	}
	return s.value
}

// Classify compares the score (or sentinel, when unassigned) against threshold
func Classify(score Score, threshold, sentinel float64) (Classification, error) {
	if !isFinite(threshold) {
		return "", &InvalidInputError{Field: "threshold", Value: threshold, Reason: "must be finite"}
	}

	v := score.ValueOr(sentinel)
	if !isFinite(v) {
		field := "score"
		if !score.IsAssigned() {
			field = "sentinel"
		}
		return "", &InvalidInputError{Field: field, Value: v, Reason: "must be finite"}
	}

	if v > threshold {
		return ClassHigh, nil
	}
	return ClassBelowThreshold, nil
}

// ScoreFor returns HighScore when assigned and an unassigned score otherwise
func (p Policy) ScoreFor(assigned bool) Score {
	if assigned {
		return Assigned(p.HighScore)
	}
	return Unassigned()
}

// ResolveScore classifies the policy's conditionally assigned score
func (p Policy) ResolveScore(assigned bool) (Classification, error) {
	return Classify(p.ScoreFor(assigned), p.Threshold, p.Sentinel)
}
