package server

import (
	"github.com/gorilla/mux"

	"github.com/arbwatch/arbwatch/src/handler"
)

func Setup(h *handler.SpreadHandler) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/spreads/watch", h.WatchSpread).Methods("POST")
	router.HandleFunc("/spreads", h.GetSpreads).Methods("GET")
	router.HandleFunc("/spreads/{id:[0-9]+}", h.UpdateSpread).Methods("PATCH")

	return router
}
