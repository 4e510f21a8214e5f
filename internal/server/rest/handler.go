package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateResponse struct {
	Message           string             `json:"message"`
	UpdatedInvestment *models.Investment `json:"updatedInvestment"`
}

type deleteResponse struct {
	Message           string             `json:"message"`
	DeletedInvestment *models.Investment `json:"deletedInvestment"`
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", user.UserName, "id", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) listInvestments(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	list, err := s.investments.List(r.Context(), caller.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) getInvestment(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	inv, err := s.investments.Get(r.Context(), caller.UserID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, inv)
}

func (s *HTTPServer) createInvestment(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	var p models.InvestmentPayload
	if err := decodeBody(w, r, &p); err != nil {
		s.writeError(w, r, err)
		return
	}

	inv, err := s.investments.Create(r.Context(), caller.UserID, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, inv)
}

func (s *HTTPServer) updateInvestment(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var p models.InvestmentPayload
	if err := decodeBody(w, r, &p); err != nil {
		s.writeError(w, r, err)
		return
	}

	inv, err := s.investments.Update(r.Context(), caller.UserID, id, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updateResponse{Message: "Investment updated", UpdatedInvestment: inv})
}

func (s *HTTPServer) deleteInvestment(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	inv, err := s.investments.Delete(r.Context(), caller.UserID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Message: "Investment deleted", DeletedInvestment: inv})
}

func pathID(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad investment id %q", common.ErrInvalidInput, raw)
	}
	return id, nil
}
