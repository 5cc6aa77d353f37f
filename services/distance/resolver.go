// File: services/distance/resolver.go
package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"notarius/models"
	"notarius/utils"

	"go.uber.org/zap"
)

// Stage is one provider in the resolver chain. A stage either produces a
// usable result or reports ok=false; it never returns an error to the
// chain.
type Stage interface {
	Source() models.DistanceSource
	Resolve(ctx context.Context, origin, destination string) (models.DistanceResult, bool)
}

// Resolver walks an ordered stage list until one produces a positive
// distance. The chain is sequential, not parallel, so paid provider calls
// are never fired speculatively. The final heuristic stage always
// succeeds, so Resolve never fails.
type Resolver struct {
	Stages       []Stage
	StageTimeout time.Duration
	Cache        utils.KV
	CacheTTL     time.Duration
}

func NewResolver(stages []Stage, stageTimeout time.Duration, cache utils.KV) *Resolver {
	if stageTimeout <= 0 {
		stageTimeout = 3 * time.Second
	}
	return &Resolver{
		Stages:       stages,
		StageTimeout: stageTimeout,
		Cache:        cache,
		CacheTTL:     10 * time.Minute,
	}
}

// Resolve returns the travel distance and duration from origin to
// destination, tagged with the stage that produced it.
func (r *Resolver) Resolve(ctx context.Context, origin, destination string) models.DistanceResult {
	logger := utils.GetLogger()
	cacheKey := fmt.Sprintf("dist:%s|%s", origin, destination)

	if r.Cache != nil {
		if data, err := r.Cache.Get(ctx, cacheKey); err == nil {
			var cached models.DistanceResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	var result models.DistanceResult
	for _, stage := range r.Stages {
		stageCtx, cancel := context.WithTimeout(ctx, r.StageTimeout)
		res, ok := stage.Resolve(stageCtx, origin, destination)
		cancel()

		if !ok || res.DistanceMiles <= 0 {
			logger.Warn("distance stage produced no result, trying next",
				zap.String("stage", string(stage.Source())),
				zap.String("destination", destination))
			continue
		}

		res.Origin = origin
		res.Destination = destination
		res.Source = stage.Source()
		result = res
		break
	}

	if r.Cache != nil && result.DistanceMiles > 0 {
		if data, err := json.Marshal(result); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, r.CacheTTL); err != nil {
				logger.Debug("failed to cache distance result", zap.Error(err))
			}
		}
	}
	return result
}
