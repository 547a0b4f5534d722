package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storeops/internal/core/apperror"
	appctx "storeops/internal/core/context"
	"storeops/internal/infrastructure/cache"
	"storeops/pkg/logger"
)

const (
	HeaderIdempotencyKey    = "X-Idempotency-Key"
	maxIdempotencyBodyBytes = 16 << 20
	idempotencyPrefix       = "storeops:idem:v1:"
	pendingTTL              = time.Minute
)

// replayRecord is what is kept in the cache per idempotency key.
// Status 0 marks a request that is still being processed.
type replayRecord struct {
	Hash        string `json:"hash"`
	Status      int    `json:"status"`
	ContentType string `json:"contentType,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

// captureWriter keeps a copy of the response body for replay.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency middleware protects console submissions against double posting.
// When the browser sends X-Idempotency-Key, a successful response is kept for
// ttl and replayed for a repeat of the same request. Failed responses are not
// kept so the user can correct the draft and submit again with the same key.
func Idempotency(store cache.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}

		limited := io.LimitReader(c.Request.Body, maxIdempotencyBodyBytes+1)
		body, _ := io.ReadAll(limited)
		if len(body) > maxIdempotencyBodyBytes {
			appErr := apperror.NewValidation("request body too large for idempotency")
			appErr.HTTPStatus = http.StatusRequestEntityTooLarge
			_ = c.Error(appErr.WithDetail("max_bytes", maxIdempotencyBodyBytes))
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		requestHash := hex.EncodeToString(sum[:])

		ctx := c.Request.Context()
		cacheKey := idempotencyCacheKey(c, key)

		outcome, rec, err := acquire(ctx, store, cacheKey, requestHash)
		if err != nil {
			logger.Warn(ctx, "idempotency acquire failed", "error", err)
			c.Next()
			return
		}
		switch outcome {
		case keyMismatch:
			_ = c.Error(apperror.NewIdempotencyMismatch(key))
			c.Abort()
			return
		case keyInFlight:
			_ = c.Error(apperror.NewIdempotencyConflict(key))
			c.Abort()
			return
		case keyCompleted:
			c.Header("Idempotent-Replay", "true")
			c.Data(rec.Status, rec.ContentType, rec.Body)
			c.Abort()
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		status := w.Status()
		if len(c.Errors) > 0 || status < 200 || status >= 300 {
			if err := store.Delete(ctx, cacheKey); err != nil {
				logger.Warn(ctx, "idempotency release failed", "error", err)
			}
			return
		}
		saveRecord(c, store, cacheKey, replayRecord{
			Hash:        requestHash,
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.buf.Bytes(),
		}, ttl)
	}
}

type acquireOutcome int

const (
	keyAcquired acquireOutcome = iota
	keyInFlight
	keyCompleted
	keyMismatch
)

// acquire atomically stores a pending record for cacheKey. When the key is
// taken it reports what the earlier request left behind.
func acquire(ctx context.Context, store cache.Client, cacheKey, requestHash string) (acquireOutcome, *replayRecord, error) {
	raw, err := json.Marshal(replayRecord{Hash: requestHash})
	if err != nil {
		return 0, nil, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		ok, err := store.SetNX(ctx, cacheKey, string(raw), pendingTTL)
		if err != nil {
			return 0, nil, err
		}
		if ok {
			return keyAcquired, nil, nil
		}

		existing, err := store.Get(ctx, cacheKey)
		if errors.Is(err, cache.ErrCacheMiss) {
			// released or expired between the two calls
			continue
		}
		if err != nil {
			return 0, nil, err
		}
		var rec replayRecord
		if err := json.Unmarshal([]byte(existing), &rec); err != nil {
			return 0, nil, fmt.Errorf("decode idempotency record: %w", err)
		}
		switch {
		case rec.Hash != requestHash:
			return keyMismatch, &rec, nil
		case rec.Status == 0:
			return keyInFlight, &rec, nil
		default:
			return keyCompleted, &rec, nil
		}
	}
	return keyInFlight, nil, nil
}

func idempotencyCacheKey(c *gin.Context, key string) string {
	user, storeID := "", ""
	if sess := appctx.GetSession(c.Request.Context()); sess != nil {
		user, storeID = sess.UserID, sess.StoreID
	}
	return idempotencyPrefix + user + "|" + storeID + "|" + c.Request.Method + " " + c.FullPath() + "|" + key
}

func saveRecord(c *gin.Context, store cache.Client, cacheKey string, rec replayRecord, ttl time.Duration) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := store.Set(c.Request.Context(), cacheKey, string(raw), ttl); err != nil {
		logger.Warn(c.Request.Context(), "idempotency store failed", "error", err)
	}
}
