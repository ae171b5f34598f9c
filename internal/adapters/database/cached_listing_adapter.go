package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rentnest/rentnest/backend/internal/domain/entities"
	"github.com/rentnest/rentnest/backend/internal/domain/providers"
	"github.com/rentnest/rentnest/backend/internal/domain/repositories"
)

// listingByIDTTL is the cache lifetime for single-listing reads, in seconds.
const listingByIDTTL = 300

// CachedListingAdapter wraps a ListingRepository with read-through caching
// of by-id lookups. Feed queries always hit the store so pagination totals
// stay exact.
type CachedListingAdapter struct {
	adapter repositories.ListingRepository
	cache   providers.CacheProvider
}

// NewCachedListingAdapter creates a new cached listing adapter
func NewCachedListingAdapter(adapter repositories.ListingRepository, cache providers.CacheProvider) repositories.ListingRepository {
	return &CachedListingAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

func listingCacheKey(id string) string {
	return fmt.Sprintf("listing:%s", id)
}

// Create passes through; a fresh listing has no cache entry to invalidate.
func (a *CachedListingAdapter) Create(ctx context.Context, listing *entities.Listing) error {
	return a.adapter.Create(ctx, listing)
}

// GetByID retrieves a listing by ID with caching
func (a *CachedListingAdapter) GetByID(ctx context.Context, id string) (*entities.Listing, error) {
	cacheKey := listingCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var listing entities.Listing
		if err := json.Unmarshal(cached, &listing); err == nil {
			return &listing, nil
		}
		log.Debug().Str("listing_id", id).Msg("discarding unreadable cached listing")
	}

	listing, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(listing); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, listingByIDTTL); err != nil {
			log.Debug().Err(err).Str("listing_id", id).Msg("failed to cache listing")
		}
	}

	return listing, nil
}

// List passes through to the store.
func (a *CachedListingAdapter) List(ctx context.Context, filter repositories.ListingFilter) ([]*entities.Listing, error) {
	return a.adapter.List(ctx, filter)
}

// Count passes through to the store.
func (a *CachedListingAdapter) Count(ctx context.Context, filter repositories.ListingFilter) (int64, error) {
	return a.adapter.Count(ctx, filter)
}

// Update writes through and drops the stale cache entry.
func (a *CachedListingAdapter) Update(ctx context.Context, listing *entities.Listing) error {
	if err := a.adapter.Update(ctx, listing); err != nil {
		return err
	}
	a.invalidate(ctx, listing.ID)
	return nil
}

// Delete writes through and drops the stale cache entry.
func (a *CachedListingAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx, id)
	return nil
}

func (a *CachedListingAdapter) invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, listingCacheKey(id)); err != nil {
		log.Debug().Err(err).Str("listing_id", id).Msg("failed to invalidate cached listing")
	}
}
