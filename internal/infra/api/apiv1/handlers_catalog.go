package apiv1

import (
	"net/http"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/model"
)

type addCodeRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type codeList struct {
	Items []*model.ServiceCode `json:"items"`
}

func (s *Server) addCode(w http.ResponseWriter, r *http.Request) {
	var req addCodeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sc, err := s.catalog.AddCode(r.Context(), req.Code, req.Description, req.Category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}

func (s *Server) getCode(w http.ResponseWriter, r *http.Request) {
	sc, ok, err := s.catalog.GetCode(r.Context(), pathParam(r, "code"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, domain.ErrCodeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) listCodes(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.ListCodes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []*model.ServiceCode{}
	}
	writeJSON(w, http.StatusOK, codeList{Items: items})
}
