package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/service"
)

func (s *Server) handleCreateCircle(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req service.CreateCircleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"))
		return
	}

	circle, err := s.circles.CreateCircle(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, circle)
}

func (s *Server) handleListCircles(w http.ResponseWriter, r *http.Request) {
	circles, err := s.circles.ListCircles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, circles)
}

func (s *Server) handleGetCircle(w http.ResponseWriter, r *http.Request) {
	circle, memberCount, err := s.circles.GetCircle(r.Context(), mux.Vars(r)["circleID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Circle      *domain.Circle `json:"circle"`
		MemberCount int            `json:"member_count"`
	}{circle, memberCount})
}

func (s *Server) handleDeleteCircle(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.circles.DeleteCircle(r.Context(), actor, mux.Vars(r)["circleID"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleApplyToCircle(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	member, err := s.circles.Apply(r.Context(), actor, mux.Vars(r)["circleID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (s *Server) handleAcceptMember(w http.ResponseWriter, r *http.Request) {
	s.reviewMember(w, r, true)
}

func (s *Server) handleRejectMember(w http.ResponseWriter, r *http.Request) {
	s.reviewMember(w, r, false)
}

func (s *Server) reviewMember(w http.ResponseWriter, r *http.Request, accept bool) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	vars := mux.Vars(r)
	if accept {
		err = s.circles.AcceptMember(r.Context(), actor, vars["circleID"], vars["userID"])
	} else {
		err = s.circles.RejectMember(r.Context(), actor, vars["circleID"], vars["userID"])
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleListCircleMembers(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	status := domain.CircleMemberStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.CircleMemberStatusMember
	}

	members, err := s.circles.ListMembers(r.Context(), actor, mux.Vars(r)["circleID"], status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) handleLeaveCircle(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.circles.Leave(r.Context(), actor, mux.Vars(r)["circleID"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}
