// Command gqlserver exposes the GQL compiler over HTTP: POST a source
// document to /compile and get back either emitted handler source or a
// JSON list of diagnostics.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	gqlc "github.com/ritamzico/gqlc"
	"github.com/ritamzico/gqlc/internal/source"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	mux := http.NewServeMux()

	mux.HandleFunc("/compile", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var body struct {
			Name string `json:"name"`
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if body.Text == "" {
			writeError(w, http.StatusBadRequest, "missing field: text")
			return
		}
		if body.Name == "" {
			body.Name = "query.gql"
		}

		res := gqlc.CompileFilesWithLogger(log, []source.File{{Path: body.Name, Text: body.Text}})
		if res.Diagnostics.HasErrors() {
			b, err := gqlc.MarshalDiagnosticsJSON(res.Diagnostics)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeJSON(w, http.StatusUnprocessableEntity, struct {
				Kind string          `json:"kind"`
				Data json.RawMessage `json:"data"`
			}{Kind: "diagnostics", Data: b})
			return
		}

		writeJSON(w, http.StatusOK, struct {
			Kind string `json:"kind"`
			Data string `json:"data"`
		}{Kind: "source", Data: res.Output})
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Info().Str("addr", addr).Msg("gqlserver listening")
	if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
