package service

import (
	"context"
	"encoding/json"
	"fmt"

	"caseodds/events"
	log "github.com/sirupsen/logrus"
)

type cachedFetchService struct {
	fetcher   Fetcher
	cache     CacheStore
	publisher EventPublisher
}

// NewCachedFetchService creates a fetch service that only goes to the network
// when the cached copy is missing, stale or unreadable as JSON
func NewCachedFetchService(fetcher Fetcher, cache CacheStore, publisher EventPublisher) CachedFetchService {
	return &cachedFetchService{
		fetcher:   fetcher,
		cache:     cache,
		publisher: publisher,
	}
}

func (s *cachedFetchService) Fetch(ctx context.Context, url, cacheName string) ([]byte, error) {
	fresh, err := s.cache.IsFresh(cacheName)
	if err != nil {
		return nil, fmt.Errorf("failed to check cache for %s: %w", cacheName, err)
	}

	if fresh {
		raw, err := s.cache.Load(cacheName)
		if err != nil {
			return nil, fmt.Errorf("failed to load cached %s: %w", cacheName, err)
		}
		if json.Valid(raw) {
			log.WithFields(log.Fields{
				"file": s.cache.Path(cacheName),
			}).Info("Cache is fresh, skipping upstream request")

			s.publisher.Emit(ctx, events.CacheHitEvent{
				CacheName: cacheName,
				Path:      s.cache.Path(cacheName),
			})
			return raw, nil
		}

		log.WithFields(log.Fields{
			"file": s.cache.Path(cacheName),
		}).Warn("Cached file is not valid JSON, refetching")
	}

	raw, err := s.fetcher.FetchJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", cacheName, err)
	}

	if err := s.cache.Store(cacheName, raw); err != nil {
		return nil, fmt.Errorf("failed to cache %s: %w", cacheName, err)
	}

	log.WithFields(log.Fields{
		"url":   url,
		"file":  s.cache.Path(cacheName),
		"bytes": len(raw),
	}).Info("Downloaded and cached upstream document")

	s.publisher.Emit(ctx, events.CacheRefreshedEvent{
		CacheName: cacheName,
		Path:      s.cache.Path(cacheName),
		URL:       url,
		Bytes:     len(raw),
	})

	return raw, nil
}
