package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/community-aid/schema"
)

const cacheLogPrefix = "cache"

// ListingCache keeps single listings by collection and id. Add only stores
// when no entry exists, Set always overwrites.
type ListingCache interface {
	Get(ctx context.Context, collection, id string, v interface{}) (bool, error)
	Add(ctx context.Context, collection, id string, v interface{}) error
	Set(ctx context.Context, collection, id string, v interface{}) error
	Delete(ctx context.Context, collection, id string) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to redis and verifies the connection
func NewRedisCache(addr string, ttl time.Duration) (ListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisCacheWithClient(client, ttl), nil
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) ListingCache {
	return &redisCache{client: client, ttl: ttl}
}

func cacheKey(collection, id string) string {
	return fmt.Sprintf("listing:%s:%s", collection, id)
}

func (c *redisCache) Get(ctx context.Context, collection, id string, v interface{}) (bool, error) {
	data, err := c.client.Get(ctx, cacheKey(collection, id)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisCache) Add(ctx context.Context, collection, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.SetNX(ctx, cacheKey(collection, id), data, c.ttl).Err()
}

func (c *redisCache) Set(ctx context.Context, collection, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(collection, id), data, c.ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, collection, id string) error {
	return c.client.Del(ctx, cacheKey(collection, id)).Err()
}

// cachedStore serves single listing reads from the cache. Reads only fill
// missing entries and updates overwrite them, so a read that raced an update
// cannot put the older record back. Deletes evict before and after the
// database call. Cache failures are logged and never fail the call.
type cachedStore struct {
	MongoStore
	cache ListingCache
}

// NewCachedStore decorates a MongoStore with a read-through listing cache
func NewCachedStore(s MongoStore, cache ListingCache) MongoStore {
	if cache == nil {
		return s
	}
	return &cachedStore{MongoStore: s, cache: cache}
}

func (s *cachedStore) lookup(ctx context.Context, collection, id string, v interface{}) bool {
	hit, err := s.cache.Get(ctx, collection, id, v)
	if err != nil {
		log.WithField("prefix", cacheLogPrefix).Warnf("read %s from cache with error: %s", cacheKey(collection, id), err)
		return false
	}
	return hit
}

func (s *cachedStore) remember(ctx context.Context, collection, id string, v interface{}) {
	if err := s.cache.Add(ctx, collection, id, v); err != nil {
		log.WithField("prefix", cacheLogPrefix).Warnf("write %s to cache with error: %s", cacheKey(collection, id), err)
	}
}

func (s *cachedStore) refresh(ctx context.Context, collection, id string, v interface{}) {
	if err := s.cache.Set(ctx, collection, id, v); err != nil {
		log.WithField("prefix", cacheLogPrefix).Warnf("write %s to cache with error: %s", cacheKey(collection, id), err)
		s.evict(ctx, collection, id)
	}
}

func (s *cachedStore) evict(ctx context.Context, collection, id string) {
	if err := s.cache.Delete(ctx, collection, id); err != nil {
		log.WithField("prefix", cacheLogPrefix).Warnf("evict %s from cache with error: %s", cacheKey(collection, id), err)
	}
}

func (s *cachedStore) GetDonation(ctx context.Context, id string) (*schema.Donation, error) {
	var d schema.Donation
	if s.lookup(ctx, schema.DonationCollection, id, &d) {
		return &d, nil
	}

	donation, err := s.MongoStore.GetDonation(ctx, id)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, schema.DonationCollection, id, donation)
	return donation, nil
}

func (s *cachedStore) UpdateDonation(ctx context.Context, id string, d schema.Donation) (*schema.Donation, error) {
	updated, err := s.MongoStore.UpdateDonation(ctx, id, d)
	if err != nil {
		s.evict(ctx, schema.DonationCollection, id)
		return nil, err
	}
	s.refresh(ctx, schema.DonationCollection, id, updated)
	return updated, nil
}

func (s *cachedStore) DeleteDonation(ctx context.Context, id string) error {
	s.evict(ctx, schema.DonationCollection, id)
	defer s.evict(ctx, schema.DonationCollection, id)
	return s.MongoStore.DeleteDonation(ctx, id)
}

func (s *cachedStore) GetRequest(ctx context.Context, id string) (*schema.Request, error) {
	var r schema.Request
	if s.lookup(ctx, schema.RequestCollection, id, &r) {
		return &r, nil
	}

	request, err := s.MongoStore.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, schema.RequestCollection, id, request)
	return request, nil
}

func (s *cachedStore) UpdateRequest(ctx context.Context, id string, r schema.Request) (*schema.Request, error) {
	updated, err := s.MongoStore.UpdateRequest(ctx, id, r)
	if err != nil {
		s.evict(ctx, schema.RequestCollection, id)
		return nil, err
	}
	s.refresh(ctx, schema.RequestCollection, id, updated)
	return updated, nil
}

func (s *cachedStore) DeleteRequest(ctx context.Context, id string) error {
	s.evict(ctx, schema.RequestCollection, id)
	defer s.evict(ctx, schema.RequestCollection, id)
	return s.MongoStore.DeleteRequest(ctx, id)
}
