package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

const (
	idempotencyKeyPrefix = "idem:"
	idempotencyKeyTTL    = 24 * time.Hour
	pendingValue         = "pending"
)

// Ensure IdempotencyStore implements inventory.IdempotencyStore.
var _ inventory.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore reserva claves de idempotencia en Redis con SETNX + TTL.
// Mientras la petición original está en curso el valor es "pending"; al confirmar, el id del movimiento.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore construye el store. ttl <= 0 usa 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = idempotencyKeyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Claim reserva key. Si ya existía devuelve el movimiento asociado (vacío si sigue en curso).
func (s *IdempotencyStore) Claim(ctx context.Context, key string) (bool, string, error) {
	k := idempotencyKeyPrefix + key
	ok, err := s.client.SetNX(ctx, k, pendingValue, s.ttl).Result()
	if err != nil {
		return false, "", fmt.Errorf("redis setnx: %w", err)
	}
	if ok {
		return true, "", nil
	}
	val, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// expiró entre SETNX y GET: tratar como en curso, el reintento la reclamará
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("redis get: %w", err)
	}
	if val == pendingValue {
		return false, "", nil
	}
	return false, val, nil
}

// Complete asocia la clave al movimiento confirmado, renovando el TTL.
func (s *IdempotencyStore) Complete(ctx context.Context, key, transactionID string) error {
	if err := s.client.Set(ctx, idempotencyKeyPrefix+key, transactionID, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Release libera la clave para permitir el reintento.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
