// File: services/distance/providers.go
package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"notarius/models"
	"notarius/utils"

	"go.uber.org/zap"
)

const (
	metersPerMile = 1609.344
	// urbanFactor inflates great-circle distance to approximate driving
	// distance on a road network.
	urbanFactor = 1.3
)

// RoutingStage queries the primary routing API for driving distance and
// duration. Any non-2xx status or malformed payload is treated as failure.
type RoutingStage struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

func (s *RoutingStage) Source() models.DistanceSource {
	return models.SourceRouting
}

// routingResponse mirrors the distance-matrix style payload of the
// routing provider; only the first element is consumed.
type routingResponse struct {
	Rows []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"` // seconds
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

func (s *RoutingStage) Resolve(ctx context.Context, origin, destination string) (models.DistanceResult, bool) {
	logger := utils.GetLogger()

	reqURL := fmt.Sprintf("%s/distancematrix/json?origins=%s&destinations=%s&key=%s",
		s.BaseURL, url.QueryEscape(origin), url.QueryEscape(destination), s.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.DistanceResult{}, false
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		logger.Warn("routing provider request failed", zap.Error(err))
		return models.DistanceResult{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("routing provider returned non-2xx", zap.Int("status", resp.StatusCode))
		return models.DistanceResult{}, false
	}

	var payload routingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Warn("routing provider payload malformed", zap.Error(err))
		return models.DistanceResult{}, false
	}
	if len(payload.Rows) == 0 || len(payload.Rows[0].Elements) == 0 {
		return models.DistanceResult{}, false
	}
	elem := payload.Rows[0].Elements[0]
	if elem.Status != "" && elem.Status != "OK" {
		return models.DistanceResult{}, false
	}

	return models.DistanceResult{
		DistanceMiles:   elem.Distance.Value / metersPerMile,
		DurationMinutes: elem.Duration.Value / 60,
	}, true
}

// GeocodeStage geocodes both addresses, computes great-circle distance,
// inflates it by the urban factor, and estimates duration at a fixed
// minutes-per-mile rate.
type GeocodeStage struct {
	Client         *http.Client
	BaseURL        string
	APIKey         string
	MinutesPerMile float64
}

func (s *GeocodeStage) Source() models.DistanceSource {
	return models.SourceGeocode
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (s *GeocodeStage) Resolve(ctx context.Context, origin, destination string) (models.DistanceResult, bool) {
	originLat, originLng, ok := s.geocode(ctx, origin)
	if !ok {
		return models.DistanceResult{}, false
	}
	destLat, destLng, ok := s.geocode(ctx, destination)
	if !ok {
		return models.DistanceResult{}, false
	}

	miles := haversineMiles(originLat, originLng, destLat, destLng) * urbanFactor
	return models.DistanceResult{
		DistanceMiles:   miles,
		DurationMinutes: miles * s.MinutesPerMile,
	}, true
}

func (s *GeocodeStage) geocode(ctx context.Context, address string) (lat, lng float64, ok bool) {
	logger := utils.GetLogger()

	reqURL := fmt.Sprintf("%s/geocode/json?address=%s&key=%s",
		s.BaseURL, url.QueryEscape(address), s.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, 0, false
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		logger.Warn("geocode request failed", zap.String("address", address), zap.Error(err))
		return 0, 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, false
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, false
	}
	if len(payload.Results) == 0 {
		return 0, 0, false
	}
	loc := payload.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, true
}

// haversineMiles computes the great-circle distance between two points.
func haversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusMiles = 3958.8

	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}
