package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/spacelayout/pkg/buildinfo"
	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/errors"
	"github.com/matzehuels/spacelayout/pkg/layout"
	"github.com/matzehuels/spacelayout/pkg/observability"
	"github.com/matzehuels/spacelayout/pkg/pipeline"
	"github.com/matzehuels/spacelayout/pkg/render"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type healthResponse struct {
	Status  string               `json:"status"`
	Version string               `json:"version"`
	Backend bool                 `json:"backend"`
	Stats   *observability.Stats `json:"stats,omitempty"`
}

type catalogResponse struct {
	Params catalog.Params  `json:"params"`
	Spaces []catalog.Space `json:"spaces"`
}

type renderRequest struct {
	Request layout.Request   `json:"request"`
	Format  string           `json:"format,omitempty"`
	Options pipeline.Options `json:"options"`
}

type analyzeRequest struct {
	Request      layout.Request `json:"request"`
	PreferRemote bool           `json:"preferRemote,omitempty"`
	Refresh      bool           `json:"refresh,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Version: buildinfo.Short(),
		Backend: s.runner.Backend != nil,
	}
	if s.counters != nil {
		stats := s.counters.Snapshot()
		resp.Stats = &stats
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.runner.Catalog
	resp := catalogResponse{Params: cat.Params()}
	for _, st := range cat.Spaces() {
		if sp, ok := cat.Space(st); ok {
			resp.Spaces = append(resp.Spaces, sp)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCatalogSpace(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "spaceType")
	st, ok := catalog.ParseSpaceType(label)
	if !ok {
		writeError(w, r, notFound("unknown space type %q", label))
		return
	}
	sp, ok := s.runner.Catalog.Space(st)
	if !ok {
		writeError(w, r, notFound("space type %q is not in the catalog", st))
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := pipeline.ReadRequest(http.MaxBytesReader(w, r.Body, MaxBodyBytes), pipeline.RequestJSON)
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := pipeline.Options{Refresh: queryBool(r, "refresh")}
	res, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), req, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var body renderRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	opts := body.Options
	if body.Format != "" {
		opts.Formats = []string{body.Format}
	}
	if len(opts.Formats) > 1 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "render returns one artifact; got %d formats", len(opts.Formats)))
		return
	}
	if err := opts.ValidateForRender(); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "%v", err))
		return
	}
	format := opts.Formats[0]
	if format == pipeline.FormatPDF && !render.HasRSVG() {
		writeError(w, r, errors.New(errors.ErrCodeUnsupported, "pdf output is not available on this server"))
		return
	}

	res, layoutHit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), body.Request, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	artifacts, renderHit, err := s.runner.RenderWithCacheInfo(r.Context(), res, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	setCacheHeader(w, layoutHit && renderHit)
	w.Header().Set("X-Layout-Viable", strconv.FormatBool(res.IsViable))
	w.Header().Set("X-Layout-Placed", strconv.Itoa(len(res.Placed)))
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := s.runner.Analyze(r.Context(), body.Request, pipeline.Options{
		PreferRemote: body.PreferRemote,
		Refresh:      body.Refresh,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body: %v", err)
	}
	return nil
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}
