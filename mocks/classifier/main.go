// Command classifier-mock is a stand-in for a remote scoring endpoint, for
// running the server with CLASSIFIER_URL locally and in e2e runs.
//
// It scores with a fixed logistic function over the submitted values and
// rejects requests whose feature count differs from EXPECTED_FEATURES.
package main

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"
)

type predictRequest struct {
	ModelVersion string    `json:"model_version"`
	FeatureNames []string  `json:"feature_names"`
	Values       []float64 `json:"values"`
}

type predictResponse struct {
	Probability float64 `json:"probability"`
}

const (
	intercept = -1.274
	weight    = 0.15
)

func main() {
	addr := envOr("MOCK_ADDR", ":8500")
	expected, _ := strconv.Atoi(os.Getenv("EXPECTED_FEATURES"))
	delay, _ := time.ParseDuration(os.Getenv("MOCK_DELAY"))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /predict", func(w http.ResponseWriter, r *http.Request) {
		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if len(req.Values) != len(req.FeatureNames) || (expected > 0 && len(req.Values) != expected) {
			http.Error(w, "feature count mismatch", http.StatusUnprocessableEntity)
			return
		}
		if delay > 0 {
			time.Sleep(delay)
		}

		z := intercept
		for _, v := range req.Values {
			z += weight * v
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(predictResponse{Probability: 1 / (1 + math.Exp(-z))})
	})

	log.Printf("classifier mock listening on %s", addr)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Fatal(srv.ListenAndServe())
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
