package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"

	"plantshop/controllers"
	"plantshop/localstore"
	"plantshop/stores"
	"plantshop/utils"
	"plantshop/webapi"

	"github.com/go-michi/michi"
	"github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/handlers"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Fatal(utils.ErrorWithTrace(err, err.Error()))
	}

	// Get the env from the environment variable
	remoteAPI := os.Getenv("REMOTE_API_URL")
	if remoteAPI == "" {
		log.Fatal("REMOTE_API_URL not set in .env file")
	}
	domain := os.Getenv("DOMAIN")
	if domain == "" {
		log.Fatal("DOMAIN not set in .env file")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	// Build the local storage backend: Redis when LOCAL_STORE=redis,
	// Postgres otherwise
	var store localstore.Store
	if os.Getenv("LOCAL_STORE") == "redis" {
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			log.Fatal("REDIS_ADDR not set in .env file")
		}
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal(utils.ErrorWithTrace(err, err.Error()))
		}
		store = localstore.NewRedisStore(client)
	} else {
		connStr := os.Getenv("DATABASE_CONNECTION_STR")
		if connStr == "" {
			log.Fatal("DATABASE_CONNECTION_STR not set in .env file")
		}

		// Connect to the database
		db, err := sqlx.Connect("postgres", connStr)
		if err != nil {
			log.Fatal(utils.ErrorWithTrace(err, err.Error()))
		}

		// Handle migrations
		mig, err := migrate.New(
			"file://"+GetRootPath("database/migrations"),
			connStr,
		)
		if err != nil {
			log.Fatal(utils.ErrorWithTrace(err, err.Error()))
		}
		if err := mig.Up(); err != nil {
			if !errors.Is(err, migrate.ErrNoChange) {
				log.Fatal(utils.ErrorWithTrace(err, err.Error()))
			}
			log.Printf("migrations: %s", err.Error())
		}

		store = localstore.NewPostgresStore(db)
	}
	defer store.Close()

	// Wire the session manager to the remote storefront API
	manager := stores.NewManager(store, webapi.New(remoteAPI))
	controllers.Setup(manager, domain)

	// Initialize the router and define routes
	r := michi.NewRouter()
	r.Route("/auth", func(sub *michi.Router) {
		sub.HandleFunc("POST login", controllers.Login)
		sub.HandleFunc("POST logout", controllers.Logout)
		sub.HandleFunc("GET session", controllers.GetSession)
		sub.HandleFunc("DELETE session", controllers.DisposeSession)
	})

	r.Route("/cart", func(sub *michi.Router) {
		sub.HandleFunc("GET items", controllers.GetCart)
		sub.HandleFunc("POST items", controllers.AddCartItem)
		sub.HandleFunc("PUT items/{id}", controllers.UpdateCartItem)
		sub.HandleFunc("DELETE items/{id}", controllers.RemoveCartItem)
		sub.HandleFunc("DELETE clear", controllers.ClearCart)
	})

	r.Route("/wishlist", func(sub *michi.Router) {
		sub.HandleFunc("GET items", controllers.GetWishlist)
		sub.HandleFunc("POST items/{id}", controllers.AddWishlistItem)
		sub.HandleFunc("DELETE items/{id}", controllers.RemoveWishlistItem)
		sub.HandleFunc("POST refresh", controllers.RefreshWishlist)
	})

	r.Route("/ui", func(sub *michi.Router) {
		sub.HandleFunc("GET state", controllers.GetUIState)
		sub.HandleFunc("POST {drawer}/open", controllers.OpenDrawer)
		sub.HandleFunc("POST {drawer}/close", controllers.CloseDrawer)
		sub.HandleFunc("POST {drawer}/toggle", controllers.ToggleDrawer)
	})

	// Enable CORS
	corsOptions := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}), // Allow all origins (adjust as needed)
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)

	fmt.Println("Server running on port " + port + " 🚀")
	if err := http.ListenAndServe(":"+port, corsOptions(r)); err != nil {
		log.Fatal(utils.ErrorWithTrace(err, err.Error()))
	}
}

func GetRootPath(dir string) string {
	ex, err := os.Executable()
	if err != nil {
		log.Fatal(utils.ErrorWithTrace(err, err.Error()))
	}
	absPath := path.Join(path.Dir(ex), dir)
	fmt.Println("Resolved migration path:", absPath) // Debugging line
	return absPath
}
