package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleGetLocker(w http.ResponseWriter, r *http.Request) {
	locker, err := s.lockers.GetLocker(r.Context(), mux.Vars(r)["lockerID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locker)
}

func (s *Server) handleRegisterLocker(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	locker, err := s.lockers.RegisterLocker(r.Context(), actor, mux.Vars(r)["lockerID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locker)
}

func (s *Server) handleReturnLocker(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	locker, err := s.lockers.ReturnLocker(r.Context(), actor, mux.Vars(r)["lockerID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locker)
}

func (s *Server) handleExtendLocker(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	locker, err := s.lockers.ExtendLocker(r.Context(), actor, mux.Vars(r)["lockerID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locker)
}
