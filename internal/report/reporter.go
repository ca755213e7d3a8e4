// Package report renders fetched scores as a multi-user table or a per-user
// listing. Every score/total pair is painted according to its grade.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/okian/territoriali/internal/domain/grading"
	"github.com/okian/territoriali/internal/domain/model"
)

// Mode selects the presentation.
type Mode string

// Presentation modes.
const (
	ModeTable Mode = "table"
	ModeList  Mode = "list"
)

// Layout defaults.
const (
	DefaultCellWidth = 15
	DefaultNameWidth = 20
	MinCellWidth     = len(ellipsis) + 1
)

// ParseMode parses "table" or "list" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeTable:
		return ModeTable, nil
	case ModeList:
		return ModeList, nil
	default:
		return "", fmt.Errorf("%w: %q (want table or list)", ErrInvalidMode, s)
	}
}

// Reporter renders people in one presentation mode.
type Reporter struct {
	mode      Mode
	cellWidth int
	nameWidth int
	decimals  int
	painter   Painter
}

// New creates a Reporter. Without options it renders an uncolored table.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		mode:      ModeTable,
		cellWidth: DefaultCellWidth,
		nameWidth: DefaultNameWidth,
		painter:   PlainPainter{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the configured presentation mode.
func (r *Reporter) Mode() Mode { return r.mode }

// Render writes the report for people to w. The report is assembled in
// memory first, so nothing is written when rendering fails.
func (r *Reporter) Render(w io.Writer, people []model.Person) error {
	if len(people) == 0 {
		return ErrNoPeople
	}

	var buf bytes.Buffer
	var err error
	switch r.mode {
	case ModeList:
		r.renderList(&buf, people)
	case ModeTable:
		err = r.renderTable(&buf, people)
	default:
		err = fmt.Errorf("%w: %q", ErrInvalidMode, r.mode)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// score renders and paints a score/total pair, right-aligned to width.
func (r *Reporter) score(score, total float64, width int) string {
	text := formatScore(score, total, r.decimals)
	return padLeft(text, r.painter.Paint(grading.Classify(score, total), text), width)
}
