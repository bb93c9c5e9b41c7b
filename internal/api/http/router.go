package http

import (
	"github.com/gin-gonic/gin"

	"tileclaim/internal/api/ws"
	"tileclaim/internal/config"
	"tileclaim/internal/room"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.Default()

	// realtime protocol
	r.GET("/ws", hub.HandleWS)

	// read-only projections
	r.GET("/rooms/:code", RoomSnapshotHandler(rm))
	r.GET("/maps", MapsHandler(rm))
	r.GET("/healthz", HealthHandler())

	// client assets
	r.Static("/public", cfg.StaticDir)

	return r
}
