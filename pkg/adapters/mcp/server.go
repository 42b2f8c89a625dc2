// Package mcp exposes the fretwise engine as Model Context Protocol tools so
// assistants can look up chord shapes and ask for efficient fingerings.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/fretwise"
	"github.com/aretw0/fretwise/internal/logging"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// Engine defines the interface required by the MCP server.
type Engine interface {
	Recommend(ctx context.Context, names []string) (*fretwise.Recommendation, error)
	Rank(ctx context.Context, names []string) (*domain.RankedTransitionSet, error)
	Roots(ctx context.Context) ([]string, error)
	Variations(ctx context.Context, root string) ([]domain.ChordVariation, error)
}

// RankResponse is the structured result of rank_transitions.
type RankResponse struct {
	Pairs []domain.RankedPair `json:"pairs" jsonschema_description:"Ranked transitions per chord pair, cheapest first"`
}

// RecommendResponse is the structured result of pick_chords.
type RecommendResponse struct {
	Chords []string                `json:"chords" jsonschema_description:"Distinct chord roots in request order"`
	Picked []domain.ChordVariation `json:"picked" jsonschema_description:"One variation per chord, sorted by root"`
	Best   []domain.Transition     `json:"best" jsonschema_description:"Cheapest transition of each chord pair"`
}

// ChordResponse is the structured result of get_chord.
type ChordResponse struct {
	Root       string                  `json:"root"`
	Variations []domain.ChordVariation `json:"variations"`
}

// chordsArgs accepts either "A,D,G" or ["A","D","G"].
type chordsArgs struct {
	Chords any `mapstructure:"chords"`
}

type chordArgs struct {
	Root string `mapstructure:"root"`
}

// Server wraps the fretwise Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("fretwise-mcp", strings.TrimSpace(fretwise.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_chords
	s.mcpServer.AddTool(mcp.NewTool("list_chords",
		mcp.WithDescription("List the chord roots available in the library."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		roots, err := s.engine.Roots(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(roots)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_chord
	chordTool := mcp.NewTool("get_chord",
		mcp.WithDescription("Get every stored variation (fret positions and fingerings) of a chord."),
		mcp.WithString("root", mcp.Required(), mcp.Description("Chord root, e.g. A or Am")),
		mcp.WithOutputSchema[ChordResponse](),
	)
	s.mcpServer.AddTool(chordTool, mcp.NewStructuredToolHandler(s.handleGetChord))

	// TOOL: rank_transitions
	rankTool := mcp.NewTool("rank_transitions",
		mcp.WithDescription("Score every transition between the variations of each pair of chords, cheapest first."),
		mcp.WithString("chords", mcp.Required(), mcp.Description("Comma separated chord roots, e.g. A,D,G")),
		mcp.WithOutputSchema[RankResponse](),
	)
	s.mcpServer.AddTool(rankTool, mcp.NewStructuredToolHandler(s.handleRank))

	// TOOL: pick_chords
	pickTool := mcp.NewTool("pick_chords",
		mcp.WithDescription("Pick one variation per chord that moves cheaply to the other chords."),
		mcp.WithString("chords", mcp.Required(), mcp.Description("Comma separated chord roots, e.g. A,D,G")),
		mcp.WithOutputSchema[RecommendResponse](),
	)
	s.mcpServer.AddTool(pickTool, mcp.NewStructuredToolHandler(s.handlePick))
}

func (s *Server) handleGetChord(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ChordResponse, error) {
	var in chordArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return ChordResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}
	root := strings.TrimSpace(in.Root)
	if root == "" {
		return ChordResponse{}, errors.New("root is required")
	}

	vs, err := s.engine.Variations(ctx, root)
	if err != nil {
		return ChordResponse{}, err
	}
	return ChordResponse{Root: root, Variations: vs}, nil
}

func (s *Server) handleRank(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RankResponse, error) {
	names, err := decodeChords(args)
	if err != nil {
		return RankResponse{}, err
	}

	set, err := s.engine.Rank(ctx, names)
	if err != nil {
		return RankResponse{}, fmt.Errorf("rank failed: %w", err)
	}
	return RankResponse{Pairs: set.Pairs()}, nil
}

func (s *Server) handlePick(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RecommendResponse, error) {
	names, err := decodeChords(args)
	if err != nil {
		return RecommendResponse{}, err
	}

	rec, err := s.engine.Recommend(ctx, names)
	if err != nil {
		return RecommendResponse{}, fmt.Errorf("pick failed: %w", err)
	}

	resp := RecommendResponse{Chords: rec.Chords, Picked: rec.Picked, Best: []domain.Transition{}}
	for _, key := range rec.Ranked.Keys() {
		if best, ok := rec.Ranked.Best(key); ok {
			resp.Best = append(resp.Best, best)
		}
	}
	s.logger.Debug("MCP pick_chords", "chords", rec.Chords, "picked", len(rec.Picked))
	return resp, nil
}

func decodeChords(args map[string]interface{}) ([]string, error) {
	var in chordsArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	var raw []string
	switch v := in.Chords.(type) {
	case string:
		raw = strings.Split(v, ",")
	case []string:
		raw = v
	case []any:
		if err := mapstructure.Decode(v, &raw); err != nil {
			return nil, fmt.Errorf("chords must be strings: %w", err)
		}
	case nil:
		return nil, errors.New("chords is required")
	default:
		return nil, fmt.Errorf("chords must be a string or a list, got %T", v)
	}

	names := make([]string, 0, len(raw))
	for _, n := range raw {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, errors.New("chords is required")
	}
	return names, nil
}

func (s *Server) registerResources() {
	// EXPOSE: fretwise://chords
	s.mcpServer.AddResource(mcp.NewResource("fretwise://chords", "Chord Library",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		roots, err := s.engine.Roots(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list chords: %w", err)
		}
		library := make(map[string][]domain.ChordVariation, len(roots))
		for _, root := range roots {
			vs, err := s.engine.Variations(ctx, root)
			if err != nil {
				return nil, err
			}
			library[root] = vs
		}
		jsonBytes, _ := json.Marshal(library)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "fretwise://chords",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
