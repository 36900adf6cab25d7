package tui

const (
	tableVerticalPadding = 4
	borderPadding        = 6

	idColumnWidth     = 4
	pathColumnWidth   = 40
	offsetColumnWidth = 12
	levelColumnWidth  = 6
)
