package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func requestKey(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get("Idempotency-Key"))
}

// Keys are UUIDs or opaque tokens 16-64 chars long.
var reKey = regexp.MustCompile(`^[A-Za-z0-9-]{16,64}$`)

func validKey(k string) bool { return reKey.MatchString(k) }

// userScope ties the key to the authenticated user so two users cannot
// collide on (or replay) each other's keys. Unauthenticated requests share
// the anonymous scope.
func userScope(c echo.Context) string {
	if claims, ok := ClaimsFrom(c); ok {
		return strconv.FormatUint(claims.UserID, 10)
	}
	return "anon"
}

func buildKey(method, path, scope, requestKey string) string {
	return "idemp:" + strings.ToLower(method) + ":" + path + ":" + scope + ":" + requestKey
}

// ---- Redis helpers ----

func provisionalSet(ctx context.Context, rdb *redis.Client, key string, entry idempEntry) (bool, error) {
	payload, _ := json.Marshal(entry)
	return rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func loadEntry(ctx context.Context, rdb *redis.Client, key string) (idempEntry, error) {
	var e idempEntry
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	_ = json.Unmarshal(v, &e)
	return e, nil
}

func saveFinal(ctx context.Context, rdb *redis.Client, key string, entry idempEntry, ttl time.Duration) error {
	payload, _ := json.Marshal(entry)
	return rdb.Set(ctx, key, payload, ttl).Err()
}
