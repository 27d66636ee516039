// Package http exposes a read-mostly introspection surface over a
// running substance tree: registered signal kinds, substance snapshots,
// prometheus metrics, and an injection endpoint that feeds externally
// constructed signals into a substance's queue.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/rhizome/pkg/signal"
	"github.com/aretw0/rhizome/pkg/substance"
)

// Directory is the view of a substance tree the server needs. The root
// facade implements it.
type Directory interface {
	Lookup(id string) (*substance.Substance, bool)
	List() []*substance.Substance
}

// Server serves the introspection API.
type Server struct {
	dir      Directory
	registry *signal.Registry
	logger   *slog.Logger
}

// NewHandler creates the HTTP handler. A nil registry uses the default
// signal registry; a nil logger discards.
func NewHandler(dir Directory, registry *signal.Registry, logger *slog.Logger) http.Handler {
	if registry == nil {
		registry = signal.Default()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{dir: dir, registry: registry, logger: logger}

	r := chi.NewRouter()
	r.Get("/kinds", s.listKinds)
	r.Get("/kinds/{name}", s.getKind)
	r.Get("/substances", s.listSubstances)
	r.Get("/substances/{id}", s.getSubstance)
	r.Post("/substances/{id}/signals", s.injectSignal)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type fieldInfo struct {
	Type        string `json:"type"`
	Required    bool   `json:"required,omitempty"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

type kindInfo struct {
	Name        string               `json:"name"`
	Parent      string               `json:"parent,omitempty"`
	Description string               `json:"description,omitempty"`
	Fields      map[string]fieldInfo `json:"fields"`
}

type substanceInfo struct {
	ID                 string         `json:"id"`
	Domain             string         `json:"domain,omitempty"`
	Termination        string         `json:"termination"`
	QueueDepth         int            `json:"queue_depth"`
	Mirroring          bool           `json:"mirroring"`
	BasePriority       int            `json:"base_priority"`
	AdditionalPriority int            `json:"additional_priority"`
	State              map[string]any `json:"state"`
}

func (s *Server) kindInfo(name string) (kindInfo, error) {
	def, ok := s.registry.Lookup(name)
	if !ok {
		return kindInfo{}, signal.ErrUnknownKind
	}
	merged, err := s.registry.Merged(name)
	if err != nil {
		return kindInfo{}, err
	}
	fields := make(map[string]fieldInfo, len(merged))
	for fname, f := range merged {
		fields[fname] = fieldInfo{
			Type:        f.Type.Name(),
			Required:    f.Required,
			Default:     f.Default,
			Description: f.Description,
		}
	}
	return kindInfo{
		Name:        def.Name,
		Parent:      def.Parent,
		Description: def.Description,
		Fields:      fields,
	}, nil
}

func (s *Server) listKinds(w http.ResponseWriter, r *http.Request) {
	names := s.registry.Kinds()
	out := make([]kindInfo, 0, len(names))
	for _, name := range names {
		info, err := s.kindInfo(name)
		if err != nil {
			s.logger.Error("kind info failed", "kind", name, "err", err)
			http.Error(w, "registry inconsistency", http.StatusInternalServerError)
			return
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getKind(w http.ResponseWriter, r *http.Request) {
	info, err := s.kindInfo(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) substanceInfo(sub *substance.Substance) substanceInfo {
	info := substanceInfo{
		ID:                 sub.ID(),
		Termination:        sub.Termination().String(),
		QueueDepth:         sub.QueueLen(),
		Mirroring:          sub.Mirroring(),
		BasePriority:       sub.BasePriority(),
		AdditionalPriority: sub.AdditionalPriority(),
		State:              sub.StateSnapshot(),
	}
	if d := sub.Domain(); d != nil {
		info.Domain = d.ID()
	}
	return info
}

func (s *Server) listSubstances(w http.ResponseWriter, r *http.Request) {
	subs := s.dir.List()
	out := make([]substanceInfo, 0, len(subs))
	for _, sub := range subs {
		out = append(out, s.substanceInfo(sub))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getSubstance(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.dir.Lookup(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "substance not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.substanceInfo(sub))
}

type injectRequest struct {
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
}

// injectSignal constructs a signal from the request body and enqueues
// it. Schema mismatches map to 400, a full queue to 429.
func (s *Server) injectSignal(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.dir.Lookup(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "substance not found", http.StatusNotFound)
		return
	}

	var body injectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sig, err := signal.Construct(s.registry, body.Kind, body.Fields)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, signal.ErrUnknownKind) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	if err := sub.Push(sig); err != nil {
		if errors.Is(err, substance.ErrQueueFull) {
			http.Error(w, err.Error(), http.StatusTooManyRequests)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Debug("signal injected", "substance", sub.ID(), "kind", sig.Kind(), "signal", sig.ID())
	writeJSON(w, http.StatusAccepted, map[string]string{"signal": sig.ID()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
