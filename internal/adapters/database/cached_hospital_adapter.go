package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/timetocare/backend/internal/domain/entities"
	"github.com/timetocare/backend/internal/domain/providers"
	"github.com/timetocare/backend/internal/domain/repositories"
)

// CachedHospitalAdapter wraps a HospitalRepository with caching. The hospital
// directory is immutable reference data, so the cache can be generous with
// TTLs and never needs invalidation between deploys.
type CachedHospitalAdapter struct {
	adapter repositories.HospitalRepository
	cache   providers.CacheProvider
}

// NewCachedHospitalAdapter creates a new cached hospital adapter
func NewCachedHospitalAdapter(adapter repositories.HospitalRepository, cache providers.CacheProvider) repositories.HospitalRepository {
	return &CachedHospitalAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	hospitalByNameTTL  = 3600
	hospitalListTTL    = 3600
	hospitalListKey    = "hospitals:all"
	hospitalKeyPattern = "hospital:%s"
)

func hospitalCacheKey(name string) string {
	return fmt.Sprintf(hospitalKeyPattern, name)
}

// ListAll retrieves all hospitals with caching
func (a *CachedHospitalAdapter) ListAll(ctx context.Context) ([]*entities.Hospital, error) {
	if cached, err := a.cache.Get(ctx, hospitalListKey); err == nil {
		var hospitals []*entities.Hospital
		if err := json.Unmarshal(cached, &hospitals); err == nil {
			return hospitals, nil
		}
		log.Warn().Err(err).Msg("failed to unmarshal cached hospital list")
	}

	hospitals, err := a.adapter.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(hospitals); err == nil {
		if err := a.cache.Set(ctx, hospitalListKey, data, hospitalListTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache hospital list")
		}
	}

	return hospitals, nil
}

// GetByName retrieves a hospital by name with caching
func (a *CachedHospitalAdapter) GetByName(ctx context.Context, name string) (*entities.Hospital, error) {
	cacheKey := hospitalCacheKey(name)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var hospital entities.Hospital
		if err := json.Unmarshal(cached, &hospital); err == nil {
			return &hospital, nil
		}
		log.Warn().Err(err).Str("hospital", name).Msg("failed to unmarshal cached hospital")
	}

	hospital, err := a.adapter.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(hospital); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, hospitalByNameTTL); err != nil {
			log.Warn().Err(err).Str("hospital", name).Msg("failed to cache hospital")
		}
	}

	return hospital, nil
}
