// File: services/distance/heuristic.go
package distance

import (
	"context"
	"regexp"

	"notarius/models"
	"notarius/utils"

	"go.uber.org/zap"
)

var zipPattern = regexp.MustCompile(`\b(\d{5})\b`)

// baseZipOffsets maps destination ZIP codes to driving miles from the
// business base in Texas City. Maintained by hand for the service area;
// anything not listed gets the configured nominal distance.
var baseZipOffsets = map[string]float64{
	"77590": 4,
	"77591": 0,
	"77510": 8,
	"77517": 10,
	"77511": 22,
	"77539": 12,
	"77546": 18,
	"77550": 14,
	"77551": 13,
	"77554": 22,
	"77563": 9,
	"77565": 15,
	"77568": 5,
	"77573": 17,
	"77002": 38,
	"77058": 21,
	"77062": 23,
	"77089": 27,
	"77505": 29,
	"77571": 31,
	"77581": 26,
	"77584": 32,
	"77598": 22,
}

// HeuristicStage estimates distance from a static ZIP offset table. It is
// the unconditional last stage: it always succeeds, so the resolver never
// fails outright.
type HeuristicStage struct {
	BasePostalCode string
	NominalMiles   float64
	SameZipMinimum float64
	MinutesPerMile float64
}

func (s *HeuristicStage) Source() models.DistanceSource {
	return models.SourceHeuristic
}

func (s *HeuristicStage) Resolve(ctx context.Context, origin, destination string) (models.DistanceResult, bool) {
	originZip := extractZip(origin)
	if originZip == "" {
		originZip = s.BasePostalCode
	}
	destZip := extractZip(destination)

	miles := s.estimate(originZip, destZip)
	utils.GetLogger().Info("distance estimated from ZIP offset table",
		zap.String("originZip", originZip),
		zap.String("destZip", destZip),
		zap.Float64("miles", miles))

	return models.DistanceResult{
		DistanceMiles:   miles,
		DurationMinutes: miles * s.MinutesPerMile,
	}, true
}

func (s *HeuristicStage) estimate(originZip, destZip string) float64 {
	if destZip == "" {
		return s.NominalMiles
	}
	// Same ZIP still means a drive; never quote zero travel.
	if destZip == originZip {
		return s.SameZipMinimum
	}

	destOffset, destKnown := baseZipOffsets[destZip]
	if !destKnown {
		return s.NominalMiles
	}

	if originZip == s.BasePostalCode {
		if destOffset < s.SameZipMinimum {
			return s.SameZipMinimum
		}
		return destOffset
	}

	// Origin away from base: difference of table offsets is the best
	// available approximation.
	originOffset, originKnown := baseZipOffsets[originZip]
	if !originKnown {
		return s.NominalMiles
	}
	diff := destOffset - originOffset
	if diff < 0 {
		diff = -diff
	}
	if diff < s.SameZipMinimum {
		return s.SameZipMinimum
	}
	return diff
}

// extractZip takes the LAST 5-digit group: US addresses end with the
// postal code, and a leading match could be a 5-digit house number.
func extractZip(address string) string {
	matches := zipPattern.FindAllStringSubmatch(address, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}
