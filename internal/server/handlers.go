// internal/server/handlers.go
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"

	"housing-workers/internal/common/errors"
	"housing-workers/internal/common/metrics"
	"housing-workers/internal/estimator"
)

// estimateForm is the form surface: features as query parameters, the rendered
// report as plain text.
func (s *Server) estimateForm(w http.ResponseWriter, r *http.Request) {
	doc, err := featuresFromQuery(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.PlainText(w, r, err.Error())
		return
	}

	p, err := s.service.Estimate(r.Context(), metrics.SurfaceHTTP, r.URL.Query().Get("strategy"), doc)
	if err != nil {
		reply := errorReply(requestIDFrom(r.Context()), err)
		lines := []string{reply.Message}
		for _, fe := range reply.Errors {
			lines = append(lines, fmt.Sprintf("  - %s: %s", fe.Field, fe.Message))
		}
		if len(reply.Errors) == 0 && reply.Details != "" {
			lines = append(lines, reply.Details)
		}
		render.Status(r, reply.HTTPStatusCode)
		render.PlainText(w, r, strings.Join(lines, "\n")+"\n")
		return
	}

	render.PlainText(w, r, estimator.Render(p))
}

func (s *Server) estimateJSON(w http.ResponseWriter, r *http.Request) {
	id := requestIDFrom(r.Context())

	var req EstimateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		_ = render.Render(w, r, errorReply(id, errors.NewParseError(err)))
		return
	}

	p, err := s.service.Estimate(r.Context(), metrics.SurfaceHTTP, req.Strategy, req.Features)
	if err != nil {
		_ = render.Render(w, r, errorReply(id, err))
		return
	}

	_ = render.Render(w, r, EstimateReply{
		RequestID:  id,
		Prediction: p,
		Report:     estimator.Render(p),
	})
}

func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	id := requestIDFrom(r.Context())
	q := r.URL.Query()

	lat, err := optionalFloat(q.Get("latitude"), "latitude")
	if err != nil {
		_ = render.Render(w, r, errorReply(id, errors.NewParseError(err)))
		return
	}
	lon, err := optionalFloat(q.Get("longitude"), "longitude")
	if err != nil {
		_ = render.Render(w, r, errorReply(id, errors.NewParseError(err)))
		return
	}

	name, loc, err := s.service.Classify(r.Context(), q.Get("strategy"), lat, lon)
	if err != nil {
		_ = render.Render(w, r, errorReply(id, err))
		return
	}
	_ = render.Render(w, r, ClassifyReply{Strategy: name, Location: loc})
}

func (s *Server) strategies(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, StrategiesReply{
		Default:    s.service.DefaultStrategy(),
		Strategies: s.service.Strategies(),
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, StatusReply{Status: "healthy", Service: s.serviceName})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	reply := StatusReply{Status: "ready", Service: s.serviceName, Checks: make(map[string]string, len(s.checks))}
	for name, check := range s.checks {
		if err := check(r.Context()); err != nil {
			reply.Status = "not ready"
			reply.Checks[name] = err.Error()
			continue
		}
		reply.Checks[name] = "ok"
	}
	if reply.Status != "ready" {
		render.Status(r, http.StatusServiceUnavailable)
	}
	_ = render.Render(w, r, reply)
}

// featuresFromQuery builds a features JSON document from the query parameters that
// name a feature. Other parameters are ignored.
func featuresFromQuery(r *http.Request) ([]byte, error) {
	q := r.URL.Query()
	doc := make(map[string]float64)
	for _, fr := range estimator.FeatureRanges {
		raw := q.Get(fr.JSONName)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q is not a number", fr.JSONName, raw)
		}
		doc[fr.JSONName] = v
	}
	return json.Marshal(doc)
}

func optionalFloat(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %q is not a number", name, raw)
	}
	return &v, nil
}
