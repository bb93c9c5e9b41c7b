package board

import "math/rand"

type Resource string

const (
	Wood   Resource = "wood"
	Brick  Resource = "brick"
	Sheep  Resource = "sheep"
	Wheat  Resource = "wheat"
	Ore    Resource = "ore"
	Desert Resource = "desert"
)

var Resources = []Resource{Wood, Brick, Sheep, Wheat, Ore, Desert}

// Tile is a single claimable board cell. Only OwnerID mutates after generation;
// an empty OwnerID means the tile is unowned.
type Tile struct {
	ID       int      `json:"id"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Resource Resource `json:"resource"`
	OwnerID  string   `json:"ownerId,omitempty"`
}

// Template is an immutable board prototype. Rooms copy its tiles so claims
// never leak between rooms or back into the template.
type Template struct {
	MapID  string `json:"mapId"`
	Radius int    `json:"radius"`
	Tiles  []Tile `json:"tiles"`
}

// Generate builds the tile layout for a map: one tile per coordinate pair
// (x, y) with x, y in [-radius, radius] and |x|+|y| <= 2*radius, ids assigned
// sequentially from 0 in scan order (x ascending, then y ascending), so the
// shape and id ordering are reproducible. Resources are drawn uniformly from
// rng, the only source of non-determinism.
func Generate(radius int, mapID string, rng *rand.Rand) Template {
	tiles := make([]Tile, 0, (2*radius+1)*(2*radius+1))
	id := 0
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			if abs(x)+abs(y) <= radius*2 {
				tiles = append(tiles, Tile{
					ID:       id,
					X:        x,
					Y:        y,
					Resource: Resources[rng.Intn(len(Resources))],
				})
				id++
			}
		}
	}
	return Template{MapID: mapID, Radius: radius, Tiles: tiles}
}

// CopyTiles returns a fresh tile slice for a new room.
func (t Template) CopyTiles() []Tile {
	out := make([]Tile, len(t.Tiles))
	copy(out, t.Tiles)
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
