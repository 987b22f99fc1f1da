package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
)

func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	f, err := s.forms.GetForm(r.Context(), actor, mux.Vars(r)["formID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleReplyToForm(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Answers []domain.Answer `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"))
		return
	}

	reply, err := s.forms.ReplyToForm(r.Context(), actor, mux.Vars(r)["formID"], req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reply)
}

func (s *Server) handleListReplies(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	replies, err := s.forms.ListReplies(r.Context(), actor, mux.Vars(r)["formID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, replies)
}

func (s *Server) handleCloseForm(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.forms.CloseForm(r.Context(), actor, mux.Vars(r)["formID"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleSummarizeReplies(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := s.forms.SummarizeReplies(r.Context(), actor, mux.Vars(r)["formID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleExportReplies(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	data, filename, err := s.forms.ExportReplies(r.Context(), actor, mux.Vars(r)["formID"])
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
