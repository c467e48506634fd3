package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewHTTPRouter создает и настраивает HTTP маршрутизатор приложения.
func NewHTTPRouter(httpHandler *HTTPHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(httpHandler.RequestIDMiddleware)
	router.Use(httpHandler.LoggingMiddleware)

	filmsRouter := router.PathPrefix("/films").Subrouter()
	filmsRouter.HandleFunc("", httpHandler.CreateFilm).Methods(http.MethodPost)
	filmsRouter.HandleFunc("", httpHandler.UpdateFilm).Methods(http.MethodPut)
	filmsRouter.HandleFunc("", httpHandler.ListFilms).Methods(http.MethodGet)
	// /films/popular регистрируется раньше /films/{id}, иначе "popular"
	// разбирался бы как id.
	filmsRouter.HandleFunc("/popular", httpHandler.PopularFilms).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{id:[0-9]+}", httpHandler.GetFilm).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{id:[0-9]+}/like/{userId:[0-9]+}", httpHandler.AddLike).Methods(http.MethodPut)
	filmsRouter.HandleFunc("/{id:[0-9]+}/like/{userId:[0-9]+}", httpHandler.RemoveLike).Methods(http.MethodDelete)

	usersRouter := router.PathPrefix("/users").Subrouter()
	usersRouter.HandleFunc("", httpHandler.CreateUser).Methods(http.MethodPost)
	usersRouter.HandleFunc("", httpHandler.UpdateUser).Methods(http.MethodPut)
	usersRouter.HandleFunc("", httpHandler.ListUsers).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}", httpHandler.GetUser).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends", httpHandler.ListFriends).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends/common/{otherId:[0-9]+}", httpHandler.CommonFriends).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends/{friendId:[0-9]+}", httpHandler.AddFriend).Methods(http.MethodPut)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends/{friendId:[0-9]+}", httpHandler.RemoveFriend).Methods(http.MethodDelete)

	router.HandleFunc("/genres", httpHandler.ListGenres).Methods(http.MethodGet)
	router.HandleFunc("/genres/{id:[0-9]+}", httpHandler.GetGenre).Methods(http.MethodGet)
	router.HandleFunc("/mpa", httpHandler.ListMpaRatings).Methods(http.MethodGet)
	router.HandleFunc("/mpa/{id:[0-9]+}", httpHandler.GetMpaRating).Methods(http.MethodGet)

	return router
}
