package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/service"
)

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req service.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"))
		return
	}

	comment, err := s.comments.CreateComment(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"))
		return
	}

	comment, err := s.comments.UpdateComment(r.Context(), actor, mux.Vars(r)["commentID"], req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.comments.DeleteComment(r.Context(), actor, mux.Vars(r)["commentID"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleLikeComment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.comments.LikeComment(r.Context(), actor, mux.Vars(r)["commentID"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, nil)
}

func (s *Server) handleCreateChildComment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req service.CreateChildCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"))
		return
	}

	child, err := s.childComments.CreateChildComment(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, child)
}

func (s *Server) handleUpdateChildComment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"))
		return
	}

	child, err := s.childComments.UpdateChildComment(r.Context(), actor, mux.Vars(r)["childCommentID"], req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, child)
}

func (s *Server) handleDeleteChildComment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.childComments.DeleteChildComment(r.Context(), actor, mux.Vars(r)["childCommentID"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleLikeChildComment(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.childComments.LikeChildComment(r.Context(), actor, mux.Vars(r)["childCommentID"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, nil)
}
