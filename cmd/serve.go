package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/esc0rtd3w/performous-tools/config"
	"github.com/esc0rtd3w/performous-tools/constants"
	"github.com/esc0rtd3w/performous-tools/db"
	"github.com/esc0rtd3w/performous-tools/model"
	"github.com/esc0rtd3w/performous-tools/txt"
)

var serveAddr string

// metadata is the shared lookup client, nil when lookups are disabled.
var metadata *db.Client

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default :8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the merger as an HTTP API",
	Long:  `Serves the merger as an HTTP API: POST /merge takes chart texts and returns the merged duet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	cfg, err := config.Load(constants.GetConfigDir())
	if err != nil {
		return err
	}
	addr := serveAddr
	if addr == "" {
		addr = cfg.ServeAddr
	}
	if addr == "" {
		addr = constants.DefaultAddr
	}

	client, err := db.New(cfg.MetadataEndpoint, cfg.MetadataTable)
	if err != nil {
		log.Printf("metadata lookups disabled: %v", err)
	} else {
		metadata = client
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/merge", HandleMerge).Methods("POST")
	router.HandleFunc("/healthz", handleHealthz).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	log.Printf("listening on %v", addr)
	return http.ListenAndServe(addr, c.Handler(router))
}

// HandleMerge merges the charts in the request body and answers with the
// merged text. Bad request shapes get a 400, parse and merge failures a 422.
func HandleMerge(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	var input model.MergeRequest
	if err := json.Unmarshal(body, &input); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	charts := make([]*model.Chart, 0, len(input.Charts))
	for i, text := range input.Charts {
		chart, err := txt.Parse(strings.NewReader(text))
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("chart %d: %v", i+1, err))
			return
		}
		charts = append(charts, chart)
	}

	merged, err := mergeCharts(charts, input.Title)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res := model.MergeResponse{
		Title:   merged.Title(),
		Players: merged.Voices.NumPerformers(),
		Chart:   txt.Render(merged),
	}
	if input.Enrich {
		res.Metadata = lookupMetadata(merged.Title())
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// lookupMetadata is best effort: a failed or impossible lookup enriches
// nothing instead of failing the merge.
func lookupMetadata(name string) *model.SongMetadata {
	if metadata == nil {
		return nil
	}
	found, err := metadata.Lookup([]string{name})
	if err != nil {
		log.Printf("metadata lookup failed: %v", err)
		return nil
	}
	if m, ok := found[name]; ok {
		return &m
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: detail})
}
