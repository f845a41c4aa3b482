package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/bkaya/pricelist-api/auth"
	"github.com/bkaya/pricelist-api/browse"
	"github.com/bkaya/pricelist-api/drive"
	"github.com/bkaya/pricelist-api/listing"
	"github.com/bkaya/pricelist-api/logger"
	"github.com/bkaya/pricelist-api/server"
)

// Compiled defaults, overridable per deployment. The API key must be
// rotatable without a rebuild.
const (
	defaultAPIKey     = "AIzaSyDPLACEHOLDER-rotate-me-in-prod-0000"
	defaultRootFolder = "1kQzXcR8vWf3yTnM5pLq0dHgB2jS6aUo7"
	defaultSecret     = "fiyat2024"
)

func main() {
	v := flag.Bool("v", false, "verbose output")
	flag.Parse()

	l := logger.New(*v)

	port, err := strconv.Atoi(getEnv("LISTEN_PORT", "8000"))
	if err != nil {
		l.Fatal("LISTEN_PORT is not a number: %s", err.Error())
	}
	redisURL := getEnv("REDIS_URL", "redis://localhost")
	apiKey := getEnv("DRIVE_API_KEY", defaultAPIKey)
	rootFolder := getEnv("DRIVE_ROOT_FOLDER", defaultRootFolder)
	secret := getEnv("GATE_SECRET", defaultSecret)

	l.LogV("Connecting to redis at %s", redisURL)
	store, err := auth.DialRedis(redisURL)
	if err != nil {
		l.Fatal(err.Error())
	}
	defer store.Close()

	gate := auth.NewGate(store, secret)
	client := drive.NewClient(nil, "", apiKey, rootFolder)
	sessions := browse.NewRegistry(listing.NewSource(client))

	if err := server.InitServer(port, server.NewServer(l, gate, sessions)); err != nil {
		l.Fatal(err.Error())
	}
}

func getEnv(envName, defValue string) string {
	env := os.Getenv(envName)
	if env == "" {
		return defValue
	}
	return env
}
