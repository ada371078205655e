package collision

// TileKind is the collision class of a tile code.
type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileSolid
	TilePlatform
)

func (k TileKind) String() string {
	switch k {
	case TileSolid:
		return "solid"
	case TilePlatform:
		return "platform"
	}
	return "empty"
}

// Tile codes stored in level collision layers.
const (
	CodeEmpty       = 0
	CodeSolidMin    = 1
	CodeSolidMax    = 63
	CodePlatformMin = 64
	CodePlatformMax = 95

	// CodeCrumble is solid until the trap system clears it.
	CodeCrumble = 60
	// CodeSpike is a passable hazard.
	CodeSpike = 100
)

// Classify maps a tile code to its collision class.
func Classify(code int) TileKind {
	switch {
	case code >= CodeSolidMin && code <= CodeSolidMax:
		return TileSolid
	case code >= CodePlatformMin && code <= CodePlatformMax:
		return TilePlatform
	}
	return TileEmpty
}
