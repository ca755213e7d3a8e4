package report

import (
	"fmt"
	"strings"

	"github.com/gookit/color"

	"github.com/okian/territoriali/internal/domain/grading"
)

// Painter decorates a rendered score with the presentation of its grade.
type Painter interface {
	Paint(g grading.Grade, s string) string
}

// PlainPainter leaves text untouched.
type PlainPainter struct{}

// Paint returns s unchanged.
func (PlainPainter) Paint(_ grading.Grade, s string) string { return s }

// ANSIPainter colors text with terminal escape codes: green for success,
// red for failure and yellow for partial scores.
type ANSIPainter struct{}

// Paint wraps s in the color of g.
func (ANSIPainter) Paint(g grading.Grade, s string) string {
	switch g {
	case grading.Success:
		return color.Green.Render(s)
	case grading.Failure:
		return color.Red.Render(s)
	default:
		return color.Yellow.Render(s)
	}
}

// Color selection modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// NewPainter returns the painter for a color mode. "auto" colors only when
// the terminal supports it; "always" forces escape codes.
func NewPainter(mode string) (Painter, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ColorAuto:
		if !color.SupportColor() {
			return PlainPainter{}, nil
		}
		return ANSIPainter{}, nil
	case ColorAlways:
		color.ForceColor()
		return ANSIPainter{}, nil
	case ColorNever:
		return PlainPainter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want auto, always or never)", ErrInvalidColor, mode)
	}
}
