package models

// DistanceSource tags which stage of the resolver chain produced a
// distance. Confidence ordering matches the declaration order.
type DistanceSource string

const (
	SourceRouting   DistanceSource = "primary-provider"
	SourceGeocode   DistanceSource = "secondary-provider"
	SourceHeuristic DistanceSource = "heuristic-estimate"
)

// DistanceResult is the normalized travel estimate between the business
// base and a customer address. Computed fresh per pricing request; callers
// may cache it briefly but the engine treats it as request-scoped.
type DistanceResult struct {
	Origin          string         `json:"origin"`
	Destination     string         `json:"destination"`
	DistanceMiles   float64        `json:"distanceMiles"`
	DurationMinutes float64        `json:"durationMinutes"`
	Source          DistanceSource `json:"source"`
}
