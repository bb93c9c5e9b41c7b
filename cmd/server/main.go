package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "tileclaim/internal/api/http"
	"tileclaim/internal/api/ws"
	"tileclaim/internal/config"
	"tileclaim/internal/room"
	"tileclaim/internal/store"
)

func main() {
	cfg := config.Load()
	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg)
	hub := ws.NewHub(rm)
	rm.SetHub(hub)

	r := httpapi.NewRouter(rm, hub, cfg)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/public/index.html")
	})

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
