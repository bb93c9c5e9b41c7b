package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr   string
	DefaultMap string
	StaticDir  string

	SmallRadius  int
	MediumRadius int
	LargeRadius  int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":3000"),
		DefaultMap:   getenv("DEFAULT_MAP", "small"),
		StaticDir:    getenv("STATIC_DIR", "./public"),
		SmallRadius:  getenvInt("MAP_SMALL_RADIUS", 3),
		MediumRadius: getenvInt("MAP_MEDIUM_RADIUS", 4),
		LargeRadius:  getenvInt("MAP_LARGE_RADIUS", 5),
	}
}
