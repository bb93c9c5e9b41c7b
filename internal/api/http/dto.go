package http

// MapInfo summarizes an available map template for /maps.
type MapInfo struct {
	MapID     string `json:"mapId"`
	Radius    int    `json:"radius"`
	TileCount int    `json:"tileCount"`
}
