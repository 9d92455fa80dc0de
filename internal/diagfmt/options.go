package diagfmt

// PrettyOpts управляет человекочитаемым выводом диагностик.
type PrettyOpts struct {
	// Color включает ANSI-цвета.
	Color bool
	// Context prints the offending source line with a caret underline when
	// the source bytes are available.
	Context bool
}
