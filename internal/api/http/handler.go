package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tileclaim/internal/room"
)

// RoomSnapshotHandler returns the current snapshot of a room. Room codes are
// case-insensitive here as on the websocket path.
func RoomSnapshotHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, ok := rm.Snapshot(c.Param("code"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// MapsHandler lists the map templates rooms can be created from.
func MapsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		templates := rm.Templates()
		out := make([]MapInfo, 0, len(templates))
		for _, t := range templates {
			out = append(out, MapInfo{
				MapID:     t.MapID,
				Radius:    t.Radius,
				TileCount: len(t.Tiles),
			})
		}
		c.JSON(http.StatusOK, gin.H{"maps": out})
	}
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
