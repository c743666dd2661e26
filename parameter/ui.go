package parameter

// Layout & Margins
const (
	// TopMargin for HUD line
	TopMargin = 1

	// LeftMargin keeps the leftmost column free for the boundary marker
	LeftMargin = 1

	// CellsPerUnit is the horizontal screen cells per world unit
	CellsPerUnit = 2
)

// Lane Glyphs
const (
	PlayerRune          = '@'
	PlayerAirborneRune  = '^'
	DilationFieldRune   = '·'
	LaneFloorRune       = '─'
	BoundaryRune        = '|'
	CollectibleRuneBase = 'o'
)
