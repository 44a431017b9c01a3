package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ling0322/ccg"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

type nodeJSON struct {
	Category string      `json:"category,omitempty"`
	Rule     string      `json:"rule,omitempty"`
	Word     string      `json:"word,omitempty"`
	Children []*nodeJSON `json:"children,omitempty"`
}

type parseResponse struct {
	Tokens []string    `json:"tokens"`
	Trees  []*nodeJSON `json:"trees"`
}

type acceptsResponse struct {
	Tokens   []string `json:"tokens"`
	Start    string   `json:"start"`
	Accepted bool     `json:"accepted"`
}

type lexiconResponse struct {
	Primitives []string            `json:"primitives"`
	Entries    map[string][]string `json:"entries"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Token    string `json:"token,omitempty"`
	Position *int   `json:"position,omitempty"`
}

func toNodeJSON(n *ccg.Node) *nodeJSON {
	if n.Children == nil {
		return &nodeJSON{Word: n.Symbol}
	}
	node := &nodeJSON{Category: n.Symbol, Rule: n.Rule}
	for _, child := range n.Children {
		node.Children = append(node.Children, toNodeJSON(child))
	}
	return node
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encode error: %s", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeParseError answers unknown words with 422 and the offending token
func writeParseError(w http.ResponseWriter, err error) {
	var vocabularyErr *ccg.VocabularyError
	if errors.As(err, &vocabularyErr) {
		position := vocabularyErr.Position
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:    vocabularyErr.Error(),
			Token:    vocabularyErr.Token,
			Position: &position,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// queryRequest reads the tokens and the start category of a GET request
func queryRequest(w http.ResponseWriter, r *http.Request) ([]string, ccg.Category, bool) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return nil, nil, false
	}
	tokens := strings.Fields(r.URL.Query().Get("sentence"))
	if len(tokens) == 0 {
		writeError(w, http.StatusBadRequest, "missing 'sentence' query parameter")
		return nil, nil, false
	}
	start := ccg.DefaultStart
	if text := r.URL.Query().Get("start"); text != "" {
		category, err := ccg.ParseCategory(text)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return nil, nil, false
		}
		start = category
	}
	return tokens, start, true
}

func handleParse(parser *ccg.Parser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokens, start, ok := queryRequest(w, r)
		if !ok {
			return
		}
		var trees []*ccg.Tree
		var err error
		if r.URL.Query().Get("all") == "true" {
			trees, err = parser.Parse(tokens)
		} else {
			trees, err = parser.ParseAs(tokens, start)
		}
		if err != nil {
			writeParseError(w, err)
			return
		}

		out := make([]*nodeJSON, 0, len(trees))
		for _, tree := range trees {
			out = append(out, toNodeJSON(tree.Node))
		}
		writeJSON(w, http.StatusOK, parseResponse{Tokens: tokens, Trees: out})
	}
}

func handleAccepts(parser *ccg.Parser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokens, start, ok := queryRequest(w, r)
		if !ok {
			return
		}
		accepted, err := parser.Accepts(tokens, start)
		if err != nil {
			writeParseError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, acceptsResponse{
			Tokens:   tokens,
			Start:    start.String(),
			Accepted: accepted,
		})
	}
}

func handleLexicon(lexicon *ccg.MapLexicon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		entries := map[string][]string{}
		for _, word := range lexicon.Words() {
			for _, category := range lexicon.Categories(word) {
				entries[word] = append(entries[word], category.String())
			}
		}
		writeJSON(w, http.StatusOK, lexiconResponse{
			Primitives: lexicon.Primitives(),
			Entries:    entries,
		})
	}
}

func newHandler(parser *ccg.Parser, lexicon *ccg.MapLexicon) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/parse", handleParse(parser))
	mux.HandleFunc("/api/accepts", handleAccepts(parser))
	mux.HandleFunc("/api/lexicon", handleLexicon(lexicon))
	return cors.Default().Handler(mux)
}

func newServeCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser as a JSON API",
		Long: `Serve the parser as a JSON API.

Endpoints:

	GET /api/parse?sentence=<words>[&start=<category>][&all=true]
	GET /api/accepts?sentence=<words>[&start=<category>]
	GET /api/lexicon`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, lexicon, err := opts.newParser()
			if err != nil {
				return err
			}
			log.Noticef("listening on %s", addr)
			return http.ListenAndServe(addr, newHandler(parser, lexicon))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
