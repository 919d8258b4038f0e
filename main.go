package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/AgriVista/acreage-backend/internal/admin"
	"github.com/AgriVista/acreage-backend/internal/dashboard"
	"github.com/AgriVista/acreage-backend/internal/db"
	"github.com/AgriVista/acreage-backend/internal/middleware"
	"github.com/AgriVista/acreage-backend/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	session.Init()
	dashboard.Init()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.RateLimit(20, 40))
	r.Get("/", RootHandler)

	r.Mount("/dashboard", dashboard.SetupRoutes())
	r.Mount("/admin", admin.SetupRoutes())

	log.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
