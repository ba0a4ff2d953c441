package routing

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"mediamaster/pkg/handlers"
	"mediamaster/pkg/session"
	"mediamaster/pkg/song"
	"mediamaster/pkg/user"
)

const staticPath = "./static"

func InitRoutes(api *mux.Router, db *sql.DB, mongoDB *mongo.Database, sessions *session.Manager, logger *slog.Logger) {

	userService := user.NewService(user.NewMySQLRepo(db), sessions)
	userHandler := handlers.NewUserHandler(userService, sessions, logger)

	songService := song.NewService(song.NewMongoRepo(mongoDB))
	songHandler := handlers.NewSongHandler(songService, logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	/* auth routes */
	api.HandleFunc("/register", userHandler.Register).Methods("POST").Name("register")
	api.HandleFunc("/login", userHandler.Login).Methods("POST").Name("login")
	api.HandleFunc("/logout", userHandler.Logout).Methods("POST").Name("logout")

	/* home route */
	api.HandleFunc("/home", handlers.Home(logger)).Methods("GET")

	/* song catalog routes */
	api.HandleFunc("/songs", songHandler.AddSong).Methods("POST")
	api.HandleFunc("/songs", songHandler.GetAllSongs).Methods("GET")
	api.HandleFunc("/song", songHandler.GetSong).Methods("GET")
	api.HandleFunc("/song", songHandler.UpdateSong).Methods("PUT")
	api.HandleFunc("/song", songHandler.DeleteSong).Methods("DELETE")
}

func ServeStaticFiles(r *mux.Router) {
	fs := http.FileServer(http.Dir(staticPath))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))
}

func ServeFallback(r *mux.Router, logger *slog.Logger) {
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/static/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte("[]")); err != nil {
				logger.Error("failed to write fallback JSON", slog.String("path", r.URL.Path), slog.Any("error", err))
			}
			return
		}
		http.ServeFile(w, r, "static/html/index.html")
	})
}

func StartServer(r *mux.Router) {
	fmt.Println("\n\033[32m", "The server is running on http://localhost:8082", "\033[0m")
	if err := http.ListenAndServe(":8082", r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
