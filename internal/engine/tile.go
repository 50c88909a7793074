package engine

import (
	"fmt"
	"strconv"
)

// TileID is an opaque tile identifier. IDs are never reused within a
// session and never derived from a tile's position.
type TileID string

// Tile is a single numbered tile on the board.
type Tile struct {
	ID    TileID `json:"id"`
	Value int    `json:"value"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`

	// Transient presentation flags, valid until the next resolution.
	IsNew    bool `json:"isNew,omitempty"`
	IsMerged bool `json:"isMerged,omitempty"`
}

// Position returns the tile's cell.
func (t Tile) Position() Position {
	return Position{Row: t.Row, Col: t.Col}
}

func (t Tile) String() string {
	return fmt.Sprintf("%s:%d@(%d,%d)", t.ID, t.Value, t.Row, t.Col)
}

// IDSource hands out tile identifiers.
type IDSource interface {
	NextID() TileID
}

// Counter is a monotonic IDSource scoped to whoever owns it.
type Counter struct {
	prefix string
	next   uint64
}

// NewCounter creates a counter producing "<prefix>-1", "<prefix>-2", ...
func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix}
}

// NextID returns the next identifier.
func (c *Counter) NextID() TileID {
	c.next++
	if c.prefix == "" {
		return TileID(strconv.FormatUint(c.next, 10))
	}
	return TileID(c.prefix + "-" + strconv.FormatUint(c.next, 10))
}

// isPowerOfTwo reports whether v is a power of two >= 2.
func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
