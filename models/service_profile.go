package models

import (
	"fmt"
	"time"
)

// TravelTier maps a distance bracket to a flat travel fee. Tiers are kept
// sorted by UpperBoundMiles; the first tier whose bound covers the trip
// distance applies.
type TravelTier struct {
	UpperBoundMiles float64 `json:"upperBoundMiles"`
	Fee             float64 `json:"fee"`
}

// BusinessHours describes the bookable window for a service on its active
// weekdays. Hours are local to the business timezone.
type BusinessHours struct {
	OpenHour  int            `json:"openHour"`  // e.g., 9 for 9:00 AM
	CloseHour int            `json:"closeHour"` // e.g., 17 for 5:00 PM
	Weekdays  []time.Weekday `json:"weekdays"`
}

// ActiveOn reports whether the weekday is in the profile's active set.
func (h BusinessHours) ActiveOn(day time.Weekday) bool {
	for _, d := range h.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// ServiceProfile is the static per-service-type configuration, loaded once
// at process start and immutable afterwards.
type ServiceProfile struct {
	Type                string        `json:"type"`
	DurationMinutes     int           `json:"durationMinutes"`
	Hours               BusinessHours `json:"hours"`
	BasePrice           float64       `json:"basePrice"`
	IncludedRadiusMiles float64       `json:"includedRadiusMiles"`
	TravelTiers         []TravelTier  `json:"travelTiers"`
	OverageRatePerMile  float64       `json:"overageRatePerMile"` // applies beyond the last tier
	MaxDocuments        int           `json:"maxDocuments"`
	MaxSigners          int           `json:"maxSigners"`
}

// Duration returns the appointment length.
func (p *ServiceProfile) Duration() time.Duration {
	return time.Duration(p.DurationMinutes) * time.Minute
}

// ProfileCatalog holds the fixed set of service profiles.
type ProfileCatalog struct {
	profiles map[string]*ServiceProfile
}

func NewProfileCatalog(profiles []*ServiceProfile) *ProfileCatalog {
	m := make(map[string]*ServiceProfile, len(profiles))
	for _, p := range profiles {
		m[p.Type] = p
	}
	return &ProfileCatalog{profiles: m}
}

// Get returns the profile for a service type. A missing profile is a
// deployment defect, reported as a ConfigurationError by callers.
func (c *ProfileCatalog) Get(serviceType string) (*ServiceProfile, error) {
	p, ok := c.profiles[serviceType]
	if !ok {
		return nil, fmt.Errorf("no service profile configured for type %q", serviceType)
	}
	return p, nil
}

// Types lists the configured service types.
func (c *ProfileCatalog) Types() []string {
	out := make([]string, 0, len(c.profiles))
	for t := range c.profiles {
		out = append(out, t)
	}
	return out
}

// DefaultProfiles returns the built-in service catalogue for the mobile
// notary business.
func DefaultProfiles() []*ServiceProfile {
	weekdaysOnly := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}
	allWeek := append([]time.Weekday{time.Saturday, time.Sunday}, weekdaysOnly...)

	return []*ServiceProfile{
		{
			Type:                "STANDARD_NOTARY",
			DurationMinutes:     60,
			Hours:               BusinessHours{OpenHour: 9, CloseHour: 17, Weekdays: weekdaysOnly},
			BasePrice:           75,
			IncludedRadiusMiles: 20,
			TravelTiers: []TravelTier{
				{UpperBoundMiles: 30, Fee: 25},
				{UpperBoundMiles: 40, Fee: 45},
				{UpperBoundMiles: 50, Fee: 65},
			},
			OverageRatePerMile: 2.0,
			MaxDocuments:       10,
			MaxSigners:         2,
		},
		{
			Type:                "LOAN_SIGNING",
			DurationMinutes:     90,
			Hours:               BusinessHours{OpenHour: 9, CloseHour: 19, Weekdays: allWeek},
			BasePrice:           150,
			IncludedRadiusMiles: 25,
			TravelTiers: []TravelTier{
				{UpperBoundMiles: 35, Fee: 30},
				{UpperBoundMiles: 50, Fee: 55},
			},
			OverageRatePerMile: 2.5,
			MaxDocuments:       150,
			MaxSigners:         4,
		},
		{
			Type:                "APOSTILLE",
			DurationMinutes:     30,
			Hours:               BusinessHours{OpenHour: 10, CloseHour: 16, Weekdays: weekdaysOnly},
			BasePrice:           95,
			IncludedRadiusMiles: 15,
			TravelTiers: []TravelTier{
				{UpperBoundMiles: 25, Fee: 20},
				{UpperBoundMiles: 40, Fee: 40},
			},
			OverageRatePerMile: 2.0,
			MaxDocuments:       5,
			MaxSigners:         1,
		},
	}
}
