// Package server exposes the chart reader over HTTP.
package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/arckit/chart"
	"github.com/jsphweid/arckit/constants"
	"github.com/jsphweid/arckit/model"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

type Options struct {
	// Sort is used when a request has no sort query parameter.
	Sort           model.SortType
	AllowedOrigins []string
	Logger         *log.Logger
}

type Server struct {
	store *Store
	opts  Options
}

func New(store *Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Server{store: store, opts: opts}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/parse", s.handleParse).Methods("POST")
	router.HandleFunc("/charts", s.handleCreate).Methods("POST")
	router.HandleFunc("/charts/{id}", s.handleGet).Methods("GET")
	router.HandleFunc("/charts/{id}/summary", s.handleSummary).Methods("GET")
	router.HandleFunc("/charts/{id}", s.handleDelete).Methods("DELETE")
	return router
}

// Handler is Router wrapped with CORS handling for the configured origins.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})
	return c.Handler(s.Router())
}

func (s *Server) ListenAndServe(addr string) error {
	s.opts.Logger.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// writeJSON encodes v before sending any header, so a value that cannot be
// encoded becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(model.ErrorResponse{Error: "could not encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// parseBody reads the request body as a chart. It writes the error response
// itself and returns ok false on failure.
func (s *Server) parseBody(w http.ResponseWriter, r *http.Request) (*model.Chart, []string, bool) {
	st := s.opts.Sort
	if q := r.URL.Query().Get("sort"); q != "" {
		parsed, err := model.ParseSortType(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return nil, nil, false
		}
		st = parsed
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxUploadSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return nil, nil, false
	}

	reader := chart.NewReaderBytes(body)
	defer reader.Close()
	if err := reader.Parse(st); err != nil {
		var pe *chart.ParseError
		if errors.As(err, &pe) {
			writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{Error: pe.Message, Line: pe.Line})
			return nil, nil, false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	c, _ := reader.Chart()

	diags := []string{}
	for _, d := range reader.Diagnostics() {
		s.opts.Logger.Printf("arckit: %s", d)
		diags = append(diags, d.String())
	}
	return c, diags, true
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	c, diags, ok := s.parseBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.ParseResponse{Chart: c, Diagnostics: diags})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	c, diags, ok := s.parseBody(w, r)
	if !ok {
		return
	}
	// charts holding NaN or infinite values parse but cannot be served as JSON
	if _, err := json.Marshal(c); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "chart cannot be encoded as JSON: "+err.Error())
		return
	}
	id := s.store.Put(c)
	w.Header().Set("Location", "/charts/"+id)
	writeJSON(w, http.StatusCreated, model.CreatedResponse{ID: id, Diagnostics: diags})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*model.Chart, bool) {
	id := mux.Vars(r)["id"]
	c, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no chart with id "+id)
	}
	return c, ok
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if c, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, c)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if c, ok := s.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, model.NewSummary(c))
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.store.Delete(id) {
		writeError(w, http.StatusNotFound, "no chart with id "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
