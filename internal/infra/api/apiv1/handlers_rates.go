package apiv1

import (
	"net/http"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/infra/logging"
)

type setRateRequest struct {
	Rate          *uint64 `json:"rate"`
	EffectiveDate *uint64 `json:"effective_date"`
	ExpiryDate    *uint64 `json:"expiry_date"`
	// Now is the logical time of the write. Only provider rates record it.
	Now *uint64 `json:"now,omitempty"`
}

// complete reports whether rate and both window bounds were sent. An omitted
// bound would otherwise store an empty window that never resolves.
func (q setRateRequest) complete() bool {
	return q.Rate != nil && q.EffectiveDate != nil && q.ExpiryDate != nil
}

func (q setRateRequest) window() model.Window {
	return model.Window{Effective: model.LogicalTime(*q.EffectiveDate), Expiry: model.LogicalTime(*q.ExpiryDate)}
}

func (s *Server) setDefaultRate(w http.ResponseWriter, r *http.Request) {
	var req setRateRequest
	if err := decode(r, &req); err != nil || !req.complete() {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	rec, err := s.rates.SetDefaultNetworkRate(r.Context(), pathParam(r, "networkID"), pathParam(r, "code"), *req.Rate, req.window())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) getDefaultRate(w http.ResponseWriter, r *http.Request) {
	rec, ok, err := s.rates.GetDefaultNetworkRate(r.Context(), pathParam(r, "networkID"), pathParam(r, "code"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, domain.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) setProviderRate(w http.ResponseWriter, r *http.Request) {
	var req setRateRequest
	if err := decode(r, &req); err != nil || !req.complete() || req.Now == nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	rec, err := s.rates.SetProviderRate(r.Context(), model.LogicalTime(*req.Now),
		pathParam(r, "networkID"), pathParam(r, "providerID"), pathParam(r, "code"),
		*req.Rate, req.window())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) getProviderRate(w http.ResponseWriter, r *http.Request) {
	rec, ok, err := s.rates.GetProviderRate(r.Context(), pathParam(r, "networkID"), pathParam(r, "providerID"), pathParam(r, "code"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, domain.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// getEffectiveRate requires ?at=<logical time>.
func (s *Server) getEffectiveRate(w http.ResponseWriter, r *http.Request) {
	defer logging.TraceDuration(logging.With(r.Context(), s.log), "apiv1.getEffectiveRate")()

	at, err := queryLogicalTime(r, "at")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	eff, ok, err := s.resolver.GetEffectiveRate(r.Context(),
		pathParam(r, "networkID"), pathParam(r, "providerID"), pathParam(r, "code"),
		model.LogicalTime(at))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, errNoApplicableRate)
		return
	}
	writeJSON(w, http.StatusOK, eff)
}
