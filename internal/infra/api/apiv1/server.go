// Package apiv1 exposes the pricing core over JSON. The transport supplies the
// logical time for every call; the core never reads a clock.
package apiv1

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/infra/logging"
	"provider-network-pricing/internal/usecase"
)

type Server struct {
	catalog   usecase.CatalogUseCase
	rates     usecase.RateUseCase
	resolver  usecase.ResolverUseCase
	networks  usecase.NetworkUseCase
	providers usecase.ProviderUseCase
	log       *zerolog.Logger
}

type Deps struct {
	Catalog   usecase.CatalogUseCase
	Rates     usecase.RateUseCase
	Resolver  usecase.ResolverUseCase
	Networks  usecase.NetworkUseCase
	Providers usecase.ProviderUseCase
}

// NewServer builds the handler set. logger may be nil.
func NewServer(d Deps, logger *zerolog.Logger) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Server{
		catalog:   d.Catalog,
		rates:     d.Rates,
		resolver:  d.Resolver,
		networks:  d.Networks,
		providers: d.Providers,
		log:       logger,
	}
}

// Register mounts every route under /api/v1.
func (s *Server) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/codes", func(r chi.Router) {
			r.Get("/", s.listCodes)
			r.Post("/", s.addCode)
			r.Get("/{code}", s.getCode)
		})

		r.Route("/networks", func(r chi.Router) {
			r.Post("/", s.createNetwork)
			r.Route("/{networkID}", func(r chi.Router) {
				r.Get("/", s.getNetwork)

				r.Put("/rates/{code}", s.setDefaultRate)
				r.Get("/rates/{code}", s.getDefaultRate)

				r.Post("/providers", s.addNetworkProvider)
				r.Route("/providers/{providerID}", func(r chi.Router) {
					r.Get("/", s.getNetworkProvider)
					r.Patch("/", s.updateNetworkProvider)
					r.Put("/rates/{code}", s.setProviderRate)
					r.Get("/rates/{code}", s.getProviderRate)
					r.Get("/rates/{code}/effective", s.getEffectiveRate)
				})
			})
		})

		r.Route("/providers", func(r chi.Router) {
			r.Post("/", s.registerProvider)
			r.Get("/{providerID}", s.getProvider)
			r.Post("/{providerID}/verify", s.verifyProvider)
		})
	})
}

// ---- helpers ----

type errorBody struct {
	Error string `json:"error"`
}

var errNoApplicableRate = errors.New("no applicable rate")

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logging.With(r.Context(), s.log).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, code, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, code, errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCodeExists),
		errors.Is(err, domain.ErrNetworkExists),
		errors.Is(err, domain.ErrProviderExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCodeNotFound),
		errors.Is(err, domain.ErrNetworkNotFound),
		errors.Is(err, domain.ErrProviderNotFound),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, errNoApplicableRate):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return domain.ErrInvalidArgument
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidArgument
	}
	return nil
}

// pathParam returns a route parameter with percent-escapes decoded. chi matches
// on RawPath when the request has one, so "A%2FB" would otherwise reach the
// use cases still escaped. url.URL already rejected malformed escapes.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// queryLogicalTime reads a required non-negative integer query parameter.
func queryLogicalTime(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, domain.ErrInvalidArgument
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidArgument
	}
	return v, nil
}
