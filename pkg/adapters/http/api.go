package http

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var rawSpec []byte

var loadSwagger = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
})

// GetSwagger returns the parsed and validated OpenAPI document served at /openapi.yaml.
func GetSwagger() (*openapi3.T, error) {
	return loadSwagger()
}

// ChordsParams carries the query of the ranking endpoints.
type ChordsParams struct {
	// Chords is the ordered list of chord roots (form style, comma separated).
	Chords []string `form:"chords" json:"chords"`
}

// ServerInterface lists one handler per operation of openapi.yaml.
type ServerInterface interface {
	// (GET /health)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (GET /info)
	GetInfo(w http.ResponseWriter, r *http.Request)
	// (GET /chords)
	ListChords(w http.ResponseWriter, r *http.Request)
	// (GET /chords/{root})
	GetChord(w http.ResponseWriter, r *http.Request, root string)
	// (GET /transitions)
	RankTransitions(w http.ResponseWriter, r *http.Request, params ChordsParams)
	// (GET /recommend)
	Recommend(w http.ResponseWriter, r *http.Request, params ChordsParams)
	// (POST /score)
	ScoreTransition(w http.ResponseWriter, r *http.Request)
}

// HandlerFromMux mounts every operation of si on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	r.Get("/health", si.GetHealth)
	r.Get("/info", si.GetInfo)
	r.Get("/chords", si.ListChords)
	r.Get("/chords/{root}", func(w http.ResponseWriter, r *http.Request) {
		si.GetChord(w, r, chi.URLParam(r, "root"))
	})
	r.Get("/transitions", withChords(si.RankTransitions))
	r.Get("/recommend", withChords(si.Recommend))
	r.Post("/score", si.ScoreTransition)
	return r
}

func withChords(next func(http.ResponseWriter, *http.Request, ChordsParams)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params ChordsParams
		if err := runtime.BindQueryParameter("form", false, true, "chords", r.URL.Query(), &params.Chords); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter chords: %w", err))
			return
		}
		next(w, r, params)
	}
}
