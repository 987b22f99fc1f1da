package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/service"
)

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actor)
}

func (s *Server) handleListAwaitingUsers(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	users, err := s.users.ListAwaitingUsers(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleApproveAdmission(w http.ResponseWriter, r *http.Request) {
	s.reviewAdmission(w, r, true)
}

func (s *Server) handleRejectAdmission(w http.ResponseWriter, r *http.Request) {
	s.reviewAdmission(w, r, false)
}

func (s *Server) reviewAdmission(w http.ResponseWriter, r *http.Request, accept bool) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	userID := mux.Vars(r)["userID"]
	if accept {
		err = s.users.ApproveAdmission(r.Context(), actor, userID)
	} else {
		err = s.users.RejectAdmission(r.Context(), actor, userID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleGrantRole(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Role == "" {
		writeError(w, apperr.New(apperr.CodeInvalidParameter, "role is required"))
		return
	}

	if err := s.users.GrantRole(r.Context(), actor, mux.Vars(r)["userID"], domain.Role(req.Role)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleUpdateAcademicRecord(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req service.UpdateAcademicRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"))
		return
	}

	user, err := s.users.UpdateAcademicRecord(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDropUser(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.users.DropUser(r.Context(), actor, mux.Vars(r)["userID"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
