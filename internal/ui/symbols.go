package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolPending = "○"
)

// Tree glyphs. Expanded and collapsed mark rows with children.
const (
	SymbolExpanded  = "▾"
	SymbolCollapsed = "▸"
	SymbolLeaf      = "·"

	// SymbolCursor marks the selected row when styling is off.
	SymbolCursor = "◂"

	TreeBranch = "├── "
	TreeLast   = "└── "
	TreeLine   = "│   "
	TreeBlank  = "    "
)
