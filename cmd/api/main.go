package main

import (
	"flag"
	"log"

	"github.com/Hende2/Biodevices-Back-End/internal/api"
	"github.com/Hende2/Biodevices-Back-End/internal/config"
	"github.com/Hende2/Biodevices-Back-End/internal/database"
	"github.com/joho/godotenv"
)

const version = "0.1.0"

func initializeAPI(configPath string) (*api.Api, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := database.Init(cfg); err != nil {
		return nil, err
	}

	return api.NewApi(*cfg)
}

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	// .env is optional; deployments set real environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	log.Printf("Starting Biodevices API v%s with config: %s", version, *configPath)

	a, err := initializeAPI(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	a.Serve()
}
