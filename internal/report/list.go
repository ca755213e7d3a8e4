package report

import (
	"bytes"

	"github.com/okian/territoriali/internal/domain/model"
)

// renderList prints every user as a totals header followed by one line per task:
//
//	alice: 10/15
//	              Task A: 10/10
//	              Task B: 0/5
func (r *Reporter) renderList(buf *bytes.Buffer, people []model.Person) {
	for _, p := range people {
		score, total := p.Totals()
		buf.WriteString(p.Username)
		buf.WriteString(": ")
		buf.WriteString(r.score(score, total, 0))
		buf.WriteByte('\n')

		for _, t := range p.Tasks {
			buf.WriteString(padLeft(t.Name, t.Name, r.nameWidth))
			buf.WriteString(": ")
			buf.WriteString(r.score(t.Score, t.MaxScore, 0))
			buf.WriteByte('\n')
		}
	}
}
