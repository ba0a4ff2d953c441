package main

import (
	"mediamaster/internal/config"
	"mediamaster/internal/logger"
	"mediamaster/internal/mongo"
	"mediamaster/internal/mysql"
	"mediamaster/internal/routing"
	"mediamaster/pkg/middleware"
	"mediamaster/pkg/session"
	"mediamaster/pkg/user"

	"github.com/gorilla/mux"
)

func main() {
	config.Load() // load env var from .env

	db := mysql.LoadDB()
	defer db.Close()

	mongoDB := mongo.LoadDB()

	logger := logger.Load()

	sessions := session.NewManager(session.NewMySQLSessionRepo(db))
	users := user.NewMySQLRepo(db)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Panic(logger))
	api.Use(middleware.CheckSession(sessions, users, logger))
	api.Use(middleware.Track(logger))

	routing.InitRoutes(api, db, mongoDB, sessions, logger)
	routing.ServeStaticFiles(r)
	routing.ServeFallback(r, logger)
	routing.StartServer(r) // start server on localhost:8082
}
