package cli

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/arvogrid/floorsa/pkg/ledger"
)

// statusResponse is the JSON body served at /status.
type statusResponse struct {
	BestCost   float64 `json:"best_cost"`
	Area       float64 `json:"area"`
	ChipWidth  float64 `json:"chip_width"`
	ChipHeight float64 `json:"chip_height"`
	HaveResult bool    `json:"have_result"`
	ElapsedSec float64 `json:"elapsed_seconds"`
}

// startStatusServer starts a read-only chi-routed HTTP server exposing the
// ledger's current best cost and elapsed time at /status. It returns
// immediately; the server runs until the process exits, since the search
// itself has no cancellation hook to stop it earlier.
func startStatusServer(addr string, led *ledger.Ledger, start time.Time, logger *log.Logger) {
	r := chi.NewRouter()
	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		resp := statusResponse{ElapsedSec: time.Since(start).Seconds()}
		if _, res, ok := led.Snapshot(); ok {
			resp.HaveResult = true
			resp.BestCost = res.Cost
			resp.Area = res.Area
			resp.ChipWidth = res.ChipW
			resp.ChipHeight = res.ChipH
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	go func() {
		if err := http.ListenAndServe(addr, r); err != nil {
			logger.Warnf("status server on %s: %v", addr, err)
		}
	}()
}
