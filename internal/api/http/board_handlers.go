package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/service"
)

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req service.CreateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"))
		return
	}

	board, err := s.boards.CreateBoard(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, board)
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	boards, err := s.boards.ListBoards(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.boards.DeleteBoard(r.Context(), actor, mux.Vars(r)["boardID"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	posts, total, err := s.posts.ListPosts(r.Context(), actor, mux.Vars(r)["boardID"], page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Posts []domain.Post `json:"posts"`
		Total int           `json:"total"`
	}{posts, total})
}
