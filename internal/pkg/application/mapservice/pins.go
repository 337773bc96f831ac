package mapservice

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/klauspost/compress/zstd"
	"github.com/samber/lo"

	"github.com/hackforla/map-service/internal/pkg/infrastructure/cache"
	"github.com/hackforla/map-service/internal/pkg/infrastructure/storage"
	"github.com/hackforla/map-service/pkg/types"
)

// canonicalFilter has its fields in alphabetical order so that the encoded key
// order never depends on how a filter was built.
type canonicalFilter struct {
	EndDate      string   `json:"endDate"`
	NCList       []string `json:"ncList"`
	RequestTypes []string `json:"requestTypes"`
	StartDate    string   `json:"startDate"`
}

// PinsKey returns the cache key for the pins matching a filter. Filters that are
// equal as values, treating their lists as sets, share a key.
func PinsKey(f types.Filter) string {
	b, _ := json.Marshal(canonicalFilter{
		EndDate:      f.EndDate,
		NCList:       canonicalSet(f.NCList),
		RequestTypes: canonicalSet(f.RequestTypes),
		StartDate:    f.StartDate,
	})

	sum := md5.Sum(b)
	return fmt.Sprintf("filters:%s:pins", hex.EncodeToString(sum[:]))
}

func canonicalSet(s []string) []string {
	set := lo.Uniq(s)
	if set == nil {
		set = []string{}
	}
	sort.Strings(set)
	return set
}

// GetPins returns the pins matching the filter, from the cache when possible.
// Pins queried from the store are written back to the cache. Failing to read
// or write the cache is logged and otherwise ignored.
func GetPins(ctx context.Context, s storage.Store, c cache.Cache, f types.Filter) ([]types.Pin, error) {
	key := PinsKey(f)

	if pins, ok := cachedPins(ctx, c, key); ok {
		return pins, nil
	}

	pins, err := s.QueryPins(ctx, storage.WithFilter(f)...)
	if err != nil {
		return nil, err
	}

	log := logging.GetFromContext(ctx)

	b, err := encodePins(pins)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode pins")
		return pins, nil
	}

	if err = c.Set(ctx, key, b); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to cache pins")
	}

	return pins, nil
}

func cachedPins(ctx context.Context, c cache.Cache, key string) ([]types.Pin, bool) {
	log := logging.GetFromContext(ctx)

	b, ok, err := c.Get(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read pins from cache")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	pins, err := decodePins(b)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cache entry")
		return nil, false
	}

	return pins, true
}

var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

func encodePins(pins []types.Pin) ([]byte, error) {
	if pins == nil {
		pins = []types.Pin{}
	}

	b, err := json.Marshal(pins)
	if err != nil {
		return nil, err
	}

	return encoder.EncodeAll(b, make([]byte, 0, len(b)/4)), nil
}

func decodePins(b []byte) ([]types.Pin, error) {
	raw, err := decoder.DecodeAll(b, nil)
	if err != nil {
		return nil, err
	}

	pins := []types.Pin{}
	if err = json.Unmarshal(raw, &pins); err != nil {
		return nil, err
	}

	return pins, nil
}
