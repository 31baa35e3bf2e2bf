package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ErrCacheMiss is returned when no balance is cached for a user.
var ErrCacheMiss = errors.New("balance not cached")

// storeIfNewer writes ARGV[1] unless the cached entry carries a higher
// wallet version than ARGV[2]. ARGV[3] is the TTL in milliseconds, 0 for none.
var storeIfNewer = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current then
	local ok, doc = pcall(cjson.decode, current)
	if ok and type(doc) == 'table' and tonumber(doc.version) and tonumber(doc.version) > tonumber(ARGV[2]) then
		return 0
	end
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// cachedBalance is the stored form of a balance. A stale entry only records
// the version a write committed; reads treat it as a miss.
type cachedBalance struct {
	UserID   uuid.UUID       `json:"user_id"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Version  int64           `json:"version"`
	Stale    bool            `json:"stale,omitempty"`
}

// BalanceCacheRepository caches wallet balances in Redis for read endpoints
type BalanceCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached balances
}

// NewBalanceCacheRepository creates a new cache repository with the given TTL
func NewBalanceCacheRepository(client *redis.Client, expiration time.Duration) *BalanceCacheRepository {
	return &BalanceCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func balanceKey(userID uuid.UUID) string {
	return fmt.Sprintf("wallet_balance:%s", userID)
}

// GetBalance returns the cached balance of userID or ErrCacheMiss
func (r *BalanceCacheRepository) GetBalance(ctx context.Context, userID uuid.UUID) (*models.Balance, error) {
	key := balanceKey(userID)

	val, err := r.client.Get(ctx, key).Result()
	logger.Log.Infow("cache get",
		"key", key,
		"result", val,
		"error", err,
	)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var cached cachedBalance
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, err
	}
	if cached.Stale {
		return nil, ErrCacheMiss
	}
	return &models.Balance{
		UserID:   cached.UserID,
		Amount:   cached.Balance,
		Currency: cached.Currency,
		Version:  cached.Version,
	}, nil
}

// SetBalance caches balance with the repository TTL. An entry written for a
// newer wallet version is kept, so a read that raced a write cannot put the
// older balance back.
func (r *BalanceCacheRepository) SetBalance(ctx context.Context, balance models.Balance) error {
	_, err := r.store(ctx, cachedBalance{
		UserID:   balance.UserID,
		Balance:  balance.Amount,
		Currency: balance.Currency,
		Version:  balance.Version,
	})
	return err
}

// Invalidate marks the cached balance of userID stale up to version, the
// wallet version a committed write produced.
func (r *BalanceCacheRepository) Invalidate(ctx context.Context, userID uuid.UUID, version int64) error {
	_, err := r.store(ctx, cachedBalance{UserID: userID, Version: version, Stale: true})
	return err
}

func (r *BalanceCacheRepository) store(ctx context.Context, entry cachedBalance) (bool, error) {
	key := balanceKey(entry.UserID)

	data, err := json.Marshal(entry)
	if err != nil {
		return false, err
	}

	stored, err := storeIfNewer.Run(ctx, r.client, []string{key}, data, entry.Version, r.exp.Milliseconds()).Int()
	logger.Log.Infow("cache store",
		"key", key,
		"value", string(data),
		"stored", stored == 1,
		"error", err,
	)
	return stored == 1, err
}
