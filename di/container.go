package di

import (
	"context"
	"fmt"
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"tp-server/api"
	"tp-server/api/places"
	"tp-server/config"
	"tp-server/dao/redis"
	"tp-server/db"
	"tp-server/server"
	"tp-server/server/handlers"
	services "tp-server/service"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient             db.RedisClient
	RedisItineraryDao       *redis.RedisItineraryDAO
	PlacesAPI               places.PlacesAPI
	PlannerService          *services.PlannerService
	CatalogRefresherService *services.CatalogRefresherService
	PlanHandler             *handlers.PlanHandler
	MuxRouter               *mux.Router
	Router                  *server.Router
	TripPlannerHttpServer   *server.TripPlannerHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     config.REDIS_DB_ADDRESS,
		Password: config.REDIS_DB_PASSWORD,
		DB:       config.REDIS_DB,
	})

	// Initialize Redis client
	redisClient := db.NewGeoRedisClient(ctx, redisInternalClient)
	if err := redisClient.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	// Initialize Redis Itinerary DAO
	redisItineraryDao := redis.NewRedisItineraryDAO(redisClient)

	// Initialize PlacesAPI - mock outside prod
	var placesApiClient places.PlacesAPI
	if env != "prod" {
		placesApiClient = places.NewPlacesApiClientMock()
		log.Printf("Using mock places api")
	} else {
		log.Printf("Using prod places api")
		httpClient := api.NewHTTPClient(config.PLACES_ENDPOINT_BASE_V1)

		placesApiClient = places.NewPlacesApiClient(httpClient)
		placesApiClient.SetCredentials(config.PLACES_API_KEY)
	}

	// Initialize service layer
	plannerService := services.NewPlannerService(redisItineraryDao, placesApiClient)
	catalogRefresherService := services.NewCatalogRefresherService(redisItineraryDao, placesApiClient)

	// Initialize plan handler
	planHandler := handlers.NewPlanHandler(plannerService)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(planHandler, muxRouter)

	// Initialize trip planner server
	tripPlannerHttpServer := server.NewTripPlannerHttpServer(router, muxRouter)

	return &Container{
		RedisClient:             redisClient,
		RedisItineraryDao:       redisItineraryDao,
		PlacesAPI:               placesApiClient,
		PlannerService:          plannerService,
		CatalogRefresherService: catalogRefresherService,
		PlanHandler:             planHandler,
		MuxRouter:               muxRouter,
		Router:                  router,
		TripPlannerHttpServer:   tripPlannerHttpServer,
	}
}
