// File: services/scheduling/source.go
package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"notarius/models"
	"notarius/utils"

	"go.uber.org/zap"
)

// slotIncrement is the step between candidate slot starts.
const slotIncrement = 30 * time.Minute

// fallbackAnchorHours are the starts emitted when the remote calendar is
// unreachable, so customers still see a usable (if conservative) page.
var fallbackAnchorHours = []int{10, 13, 15}

// CalendarSource produces the raw candidate slots for a date and service
// type, before conflict filtering and hold checks.
type CalendarSource interface {
	GetRawSlots(ctx context.Context, date time.Time, serviceType string) ([]models.Slot, error)
}

// RuleBasedSource generates slots from the service profile's business
// hours table.
type RuleBasedSource struct {
	Profiles *models.ProfileCatalog
}

func NewRuleBasedSource(profiles *models.ProfileCatalog) *RuleBasedSource {
	return &RuleBasedSource{Profiles: profiles}
}

func (s *RuleBasedSource) GetRawSlots(ctx context.Context, date time.Time, serviceType string) ([]models.Slot, error) {
	profile, err := s.Profiles.Get(serviceType)
	if err != nil {
		return nil, NewConfigError(err.Error())
	}
	if !profile.Hours.ActiveOn(date.Weekday()) {
		return nil, nil
	}
	return generateSlots(profile, date, profile.Hours.OpenHour, profile.Hours.CloseHour), nil
}

// generateSlots emits one slot per increment between open and close,
// skipping any whose end would run past closing time.
func generateSlots(profile *models.ServiceProfile, date time.Time, openHour, closeHour int) []models.Slot {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	open := dayStart.Add(time.Duration(openHour) * time.Hour)
	close := dayStart.Add(time.Duration(closeHour) * time.Hour)

	var slots []models.Slot
	for start := open; start.Before(close); start = start.Add(slotIncrement) {
		end := start.Add(profile.Duration())
		if end.After(close) {
			break
		}
		slots = append(slots, models.Slot{
			Start:       start,
			End:         end,
			ServiceType: profile.Type,
			Available:   true,
		})
	}
	return slots
}

// remoteSlotEntry is the upstream calendar's slot representation. Anything
// beyond these three fields is dropped at this boundary.
type remoteSlotEntry struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
}

// RemoteSource fetches slots from the upstream calendar service. Network
// and server errors never propagate: the source logs them and falls back
// to a small generated slot set.
type RemoteSource struct {
	Client          *http.Client
	BaseURL         string
	CalendarID      string
	Profiles        *models.ProfileCatalog
	Cache           utils.KV
	CacheTTL        time.Duration
	FallbackOnEmpty bool
}

func NewRemoteSource(client *http.Client, baseURL, calendarID string, profiles *models.ProfileCatalog, cache utils.KV, fallbackOnEmpty bool) *RemoteSource {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &RemoteSource{
		Client:          client,
		BaseURL:         baseURL,
		CalendarID:      calendarID,
		Profiles:        profiles,
		Cache:           cache,
		CacheTTL:        2 * time.Minute,
		FallbackOnEmpty: fallbackOnEmpty,
	}
}

func (s *RemoteSource) GetRawSlots(ctx context.Context, date time.Time, serviceType string) ([]models.Slot, error) {
	logger := utils.GetLogger()

	profile, err := s.Profiles.Get(serviceType)
	if err != nil {
		return nil, NewConfigError(err.Error())
	}

	cacheKey := fmt.Sprintf("calslots:%s:%s:%s", s.CalendarID, serviceType, date.Format("2006-01-02"))
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, cacheKey); err == nil {
			var cached []models.Slot
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	slots, err := s.fetch(ctx, date, profile)
	if err != nil {
		// Upstream flakiness is recovered here, never surfaced. The caller
		// re-requests on the next page load.
		logger.Warn("remote calendar unavailable, using fallback slots",
			zap.String("serviceType", serviceType),
			zap.String("date", date.Format("2006-01-02")),
			zap.Error(err))
		return s.fallbackSlots(profile, date), nil
	}

	if len(slots) == 0 && s.FallbackOnEmpty {
		logger.Warn("remote calendar returned zero slots, using fallback slots",
			zap.String("serviceType", serviceType),
			zap.String("date", date.Format("2006-01-02")))
		return s.fallbackSlots(profile, date), nil
	}

	if s.Cache != nil {
		if data, err := json.Marshal(slots); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, data, s.CacheTTL); err != nil {
				logger.Debug("failed to cache calendar slots", zap.Error(err))
			}
		}
	}
	return slots, nil
}

func (s *RemoteSource) fetch(ctx context.Context, date time.Time, profile *models.ServiceProfile) ([]models.Slot, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	url := fmt.Sprintf("%s/calendars/%s/slots?start=%s&end=%s",
		s.BaseURL, s.CalendarID,
		dayStart.Format(time.RFC3339),
		dayStart.AddDate(0, 0, 1).Format(time.RFC3339),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar service returned status %d", resp.StatusCode)
	}

	var entries []remoteSlotEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode calendar response: %w", err)
	}

	// Normalize the upstream shape here; schema drift stops at this layer.
	slots := make([]models.Slot, 0, len(entries))
	for _, e := range entries {
		if !e.Available {
			continue
		}
		slots = append(slots, models.Slot{
			Start:       e.StartTime.UTC(),
			End:         e.StartTime.UTC().Add(profile.Duration()),
			ServiceType: profile.Type,
			Available:   true,
		})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots, nil
}

// fallbackSlots returns a small fixed set of generated slots inside the
// profile's business window.
func (s *RemoteSource) fallbackSlots(profile *models.ServiceProfile, date time.Time) []models.Slot {
	if !profile.Hours.ActiveOn(date.Weekday()) {
		return nil
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	close := dayStart.Add(time.Duration(profile.Hours.CloseHour) * time.Hour)

	var slots []models.Slot
	for _, h := range fallbackAnchorHours {
		if h < profile.Hours.OpenHour {
			continue
		}
		start := dayStart.Add(time.Duration(h) * time.Hour)
		end := start.Add(profile.Duration())
		if end.After(close) {
			continue
		}
		slots = append(slots, models.Slot{
			Start:       start,
			End:         end,
			ServiceType: profile.Type,
			Available:   true,
		})
	}
	return slots
}
