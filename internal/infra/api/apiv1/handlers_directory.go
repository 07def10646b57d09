package apiv1

import (
	"net/http"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/infra/logging"
	"provider-network-pricing/internal/usecase"
)

type createNetworkRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type addNetworkProviderRequest struct {
	ProviderID string  `json:"provider_id"`
	Tier       string  `json:"tier"`
	Now        *uint64 `json:"now"`
}

type updateNetworkProviderRequest struct {
	Status model.MembershipStatus `json:"status"`
}

type networkProviderResponse struct {
	*model.NetworkProvider
	Active bool `json:"is_active"`
}

func (s *Server) createNetwork(w http.ResponseWriter, r *http.Request) {
	var req createNetworkRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := s.networks.CreateNetwork(r.Context(), req.ID, req.Name, req.Description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) getNetwork(w http.ResponseWriter, r *http.Request) {
	n, ok, err := s.networks.GetNetwork(r.Context(), pathParam(r, "networkID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, domain.ErrNetworkNotFound)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) addNetworkProvider(w http.ResponseWriter, r *http.Request) {
	var req addNetworkProviderRequest
	if err := decode(r, &req); err != nil || req.Now == nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	m, err := s.networks.AddProvider(r.Context(), model.LogicalTime(*req.Now), pathParam(r, "networkID"), req.ProviderID, req.Tier)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, networkProviderResponse{NetworkProvider: m, Active: m.IsActive()})
}

func (s *Server) getNetworkProvider(w http.ResponseWriter, r *http.Request) {
	m, ok, err := s.networks.GetProviderStatus(r.Context(), pathParam(r, "networkID"), pathParam(r, "providerID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, domain.ErrProviderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, networkProviderResponse{NetworkProvider: m, Active: m.IsActive()})
}

func (s *Server) updateNetworkProvider(w http.ResponseWriter, r *http.Request) {
	var req updateNetworkProviderRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	networkID, providerID := pathParam(r, "networkID"), pathParam(r, "providerID")
	if err := s.networks.UpdateProviderStatus(r.Context(), networkID, providerID, req.Status); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) registerProvider(w http.ResponseWriter, r *http.Request) {
	var req usecase.RegisterProviderInput
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.providers.Register(r.Context(), logging.Principal(r.Context()), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) getProvider(w http.ResponseWriter, r *http.Request) {
	p, ok, err := s.providers.Get(r.Context(), pathParam(r, "providerID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, domain.ErrProviderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) verifyProvider(w http.ResponseWriter, r *http.Request) {
	if err := s.providers.Verify(r.Context(), pathParam(r, "providerID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
