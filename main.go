package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tp-server/config"
	"tp-server/di"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "prod"
	}

	container := di.NewContainer(env)

	fmt.Println("refreshing catalog!")
	if err := container.CatalogRefresherService.RefreshCatalog(context.Background()); err != nil {
		log.Printf("Initial catalog refresh failed: %v", err)
	}

	fmt.Println("starting periodic job!")
	container.CatalogRefresherService.StartPeriodicJob(config.CATALOG_REFRESHER_SCHEDULE_MINUTES * time.Minute)

	fmt.Println("starting server!")
	container.TripPlannerHttpServer.Start()
	fmt.Println("server stopped!")
}
