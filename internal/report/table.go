package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/okian/territoriali/internal/domain/model"
)

const totalLabel = "Total"

// taskKey identifies the n-th task with a given name within one user's list,
// so repeated names still pair up one to one.
type taskKey struct {
	name string
	nth  int
}

// index maps every task of p to its key.
func index(p model.Person) map[taskKey]model.Task {
	seen := make(map[string]int, len(p.Tasks))
	out := make(map[taskKey]model.Task, len(p.Tasks))
	for _, t := range p.Tasks {
		out[taskKey{name: t.Name, nth: seen[t.Name]}] = t
		seen[t.Name]++
	}
	return out
}

// align returns, for every user, that user's tasks in the order of the first
// user's tasks. Users must list exactly the same tasks.
func align(people []model.Person) ([][]model.Task, error) {
	ref := people[0]
	rows := make([][]model.Task, len(people))
	rows[0] = ref.Tasks

	for i, p := range people[1:] {
		if len(p.Tasks) != len(ref.Tasks) {
			return nil, fmt.Errorf("%w: user '%s' has %d tasks, user '%s' has %d",
				ErrTaskMismatch, p.Username, len(p.Tasks), ref.Username, len(ref.Tasks))
		}
		byKey := index(p)
		seen := make(map[string]int, len(ref.Tasks))
		tasks := make([]model.Task, len(ref.Tasks))
		for j, t := range ref.Tasks {
			k := taskKey{name: t.Name, nth: seen[t.Name]}
			seen[t.Name]++
			match, ok := byKey[k]
			if !ok {
				return nil, fmt.Errorf("%w: user '%s' has no task '%s'", ErrTaskMismatch, p.Username, t.Name)
			}
			tasks[j] = match
		}
		rows[i+1] = tasks
	}
	return rows, nil
}

// renderTable prints one column per user and one row per task, preceded by
// a totals row. Cells are right-aligned to the cell width.
func (r *Reporter) renderTable(buf *bytes.Buffer, people []model.Person) error {
	aligned, err := align(people)
	if err != nil {
		return err
	}

	w := r.cellWidth
	separator := strings.Repeat(strings.Repeat("-", w+2)+"|", len(people)+1) + "\n"

	// header
	r.cell(buf, "")
	for _, p := range people {
		r.cell(buf, truncate(p.Username, w))
	}
	buf.WriteByte('\n')
	buf.WriteString(separator)

	// totals
	r.cell(buf, totalLabel)
	for _, p := range people {
		score, total := p.Totals()
		r.rawCell(buf, r.score(score, total, w))
	}
	buf.WriteByte('\n')
	buf.WriteString(separator)

	// tasks
	for i, t := range people[0].Tasks {
		r.cell(buf, truncate(t.Name, w))
		for _, tasks := range aligned {
			r.rawCell(buf, r.score(tasks[i].Score, tasks[i].MaxScore, w))
		}
		buf.WriteByte('\n')
	}
	return nil
}

// cell writes a right-aligned plain text cell.
func (r *Reporter) cell(buf *bytes.Buffer, text string) {
	r.rawCell(buf, padLeft(text, text, r.cellWidth))
}

// rawCell writes an already padded cell.
func (r *Reporter) rawCell(buf *bytes.Buffer, padded string) {
	buf.WriteByte(' ')
	buf.WriteString(padded)
	buf.WriteString(" |")
}
