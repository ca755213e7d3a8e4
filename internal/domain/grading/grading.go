// Package grading classifies an attained score against its maximum.
package grading

// Grade is the outcome class of a score/total pair.
type Grade int

// Grade values.
const (
	Partial Grade = iota
	Success
	Failure
)

// String returns the lower-case name of the grade.
func (g Grade) String() string {
	switch g {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "partial"
	}
}

// Classify grades score against total. A full score wins over a zero score,
// so 0/0 is a success.
func Classify(score, total float64) Grade {
	switch {
	case score == total:
		return Success
	case score == 0:
		return Failure
	default:
		return Partial
	}
}
