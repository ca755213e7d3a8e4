package report

// Option applies a configuration option to the Reporter.
type Option func(*Reporter)

// WithMode sets the presentation mode.
func WithMode(mode Mode) Option {
	return func(r *Reporter) {
		if mode != "" {
			r.mode = mode
		}
	}
}

// WithCellWidth sets the table column width. Values below MinCellWidth are ignored.
func WithCellWidth(width int) Option {
	return func(r *Reporter) {
		if width >= MinCellWidth {
			r.cellWidth = width
		}
	}
}

// WithNameWidth sets the task name column width of the listing.
func WithNameWidth(width int) Option {
	return func(r *Reporter) {
		if width >= 0 {
			r.nameWidth = width
		}
	}
}

// WithDecimals sets how many decimals scores are printed with. A negative
// value prints the shortest exact representation.
func WithDecimals(decimals int) Option {
	return func(r *Reporter) {
		r.decimals = decimals
	}
}

// WithPainter sets how scores are colored.
func WithPainter(p Painter) Option {
	return func(r *Reporter) {
		if p != nil {
			r.painter = p
		}
	}
}
