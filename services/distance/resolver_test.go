package distance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notarius/models"
	"notarius/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStage struct {
	source models.DistanceSource
	miles  float64
	ok     bool
	calls  int
}

func (s *stubStage) Source() models.DistanceSource { return s.source }

func (s *stubStage) Resolve(ctx context.Context, origin, destination string) (models.DistanceResult, bool) {
	s.calls++
	return models.DistanceResult{DistanceMiles: s.miles, DurationMinutes: s.miles * 2}, s.ok
}

func defaultHeuristic() *HeuristicStage {
	return &HeuristicStage{
		BasePostalCode: "77591",
		NominalMiles:   20,
		SameZipMinimum: 3,
		MinutesPerMile: 2,
	}
}

func TestResolveUsesFirstSuccessfulStage(t *testing.T) {
	primary := &stubStage{source: models.SourceRouting, miles: 12.5, ok: true}
	secondary := &stubStage{source: models.SourceGeocode, miles: 99, ok: true}

	r := NewResolver([]Stage{primary, secondary, defaultHeuristic()}, time.Second, nil)
	res := r.Resolve(context.Background(), "77591", "somewhere")

	assert.Equal(t, models.SourceRouting, res.Source)
	assert.InDelta(t, 12.5, res.DistanceMiles, 0.001)
	assert.Equal(t, 0, secondary.calls, "chain is sequential, later stages untouched")
}

func TestResolveSkipsFailedAndNonPositiveStages(t *testing.T) {
	failed := &stubStage{source: models.SourceRouting, ok: false}
	zero := &stubStage{source: models.SourceGeocode, miles: 0, ok: true}
	good := &stubStage{source: models.SourceHeuristic, miles: 8, ok: true}

	r := NewResolver([]Stage{failed, zero, good}, time.Second, nil)
	res := r.Resolve(context.Background(), "a", "b")

	assert.Equal(t, models.SourceHeuristic, res.Source)
	assert.InDelta(t, 8, res.DistanceMiles, 0.001)
	assert.Equal(t, 1, failed.calls)
	assert.Equal(t, 1, zero.calls)
}

func TestResolveAllProvidersDownFallsToHeuristic(t *testing.T) {
	badClient := &http.Client{Timeout: 200 * time.Millisecond}
	stages := []Stage{
		&RoutingStage{Client: badClient, BaseURL: "http://127.0.0.1:1", APIKey: "k"},
		&GeocodeStage{Client: badClient, BaseURL: "http://127.0.0.1:1", APIKey: "k", MinutesPerMile: 2},
		defaultHeuristic(),
	}
	r := NewResolver(stages, time.Second, nil)

	res := r.Resolve(context.Background(), "100 Main St, Texas City, TX 77591", "900 Bagby St, Houston, TX 77002")

	assert.Equal(t, models.SourceHeuristic, res.Source)
	assert.InDelta(t, 38, res.DistanceMiles, 0.001, "77591->77002 comes from the offset table")
	assert.Positive(t, res.DurationMinutes)

	// Deterministic: a second run yields the identical estimate.
	again := r.Resolve(context.Background(), "100 Main St, Texas City, TX 77591", "900 Bagby St, Houston, TX 77002")
	assert.Equal(t, res.DistanceMiles, again.DistanceMiles)
}

func TestHeuristicEdgeCases(t *testing.T) {
	h := defaultHeuristic()

	res, ok := h.Resolve(context.Background(), "77591", "unknown address, Nowhere, AK 99999")
	require.True(t, ok)
	assert.InDelta(t, 20, res.DistanceMiles, 0.001, "unknown ZIP gets nominal distance")

	res, ok = h.Resolve(context.Background(), "77591", "203 5th Ave N, Texas City, TX 77591")
	require.True(t, ok)
	assert.InDelta(t, 3, res.DistanceMiles, 0.001, "same ZIP gets the non-zero minimum")

	res, ok = h.Resolve(context.Background(), "77591", "no postal code here")
	require.True(t, ok)
	assert.InDelta(t, 20, res.DistanceMiles, 0.001)
}

func TestHeuristicZipIsLastFiveDigitGroup(t *testing.T) {
	h := defaultHeuristic()

	// A 5-digit house number must not shadow the trailing postal code.
	res, ok := h.Resolve(context.Background(), "77591", "12345 Main St, Houston, TX 77002")
	require.True(t, ok)
	assert.InDelta(t, 38, res.DistanceMiles, 0.001)
}

func TestRoutingStageParsesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"rows": []map[string]any{{
				"elements": []map[string]any{{
					"status":   "OK",
					"distance": map[string]float64{"value": 35 * 1609.344},
					"duration": map[string]float64{"value": 2400},
				}},
			}},
		}
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	stage := &RoutingStage{Client: server.Client(), BaseURL: server.URL, APIKey: "k"}
	res, ok := stage.Resolve(context.Background(), "a", "b")
	require.True(t, ok)
	assert.InDelta(t, 35, res.DistanceMiles, 0.01)
	assert.InDelta(t, 40, res.DurationMinutes, 0.01)
}

func TestRoutingStageRejectsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	stage := &RoutingStage{Client: server.Client(), BaseURL: server.URL, APIKey: "k"}
	_, ok := stage.Resolve(context.Background(), "a", "b")
	assert.False(t, ok)
}

func TestGeocodeStageGreatCircle(t *testing.T) {
	// Texas City and downtown Houston.
	coords := map[string][2]float64{
		"origin": {29.3838, -94.9027},
		"dest":   {29.7604, -95.3698},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		which := "origin"
		if r.URL.Query().Get("address") == "dest" {
			which = "dest"
		}
		payload := map[string]any{
			"results": []map[string]any{{
				"geometry": map[string]any{
					"location": map[string]float64{"lat": coords[which][0], "lng": coords[which][1]},
				},
			}},
		}
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	stage := &GeocodeStage{Client: server.Client(), BaseURL: server.URL, APIKey: "k", MinutesPerMile: 2}
	res, ok := stage.Resolve(context.Background(), "origin", "dest")
	require.True(t, ok)

	// Great-circle is roughly 38 miles; x1.3 urban factor lands near 50.
	assert.InDelta(t, 50, res.DistanceMiles, 5)
	assert.InDelta(t, res.DistanceMiles*2, res.DurationMinutes, 0.001)
}

func TestResolveCachesResult(t *testing.T) {
	primary := &stubStage{source: models.SourceRouting, miles: 10, ok: true}
	r := NewResolver([]Stage{primary, defaultHeuristic()}, time.Second, utils.NewMemoryKV())

	first := r.Resolve(context.Background(), "a", "b")
	second := r.Resolve(context.Background(), "a", "b")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, primary.calls)
}
