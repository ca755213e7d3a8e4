// Package model defines the score records returned by the scores API.
package model

// Task is one scored assignment as returned by the scores API.
type Task struct {
	Title    string  `json:"title"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
}

// Person pairs a username with its tasks, in the order the API returned them.
type Person struct {
	Username string
	Tasks    []Task
}

// Totals sums the attained and attainable scores over all tasks, in task order.
func (p Person) Totals() (score, maxScore float64) {
	for _, t := range p.Tasks {
		score += t.Score
		maxScore += t.MaxScore
	}
	return score, maxScore
}
