package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/C00lPIXER/aperture/api/responses"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/logger"
	pkgredis "github.com/C00lPIXER/aperture/pkg/redis"
)

const (
	idempotencyHeader      = "Idempotency-Key"
	defaultIdempotencyTTL  = 24 * time.Hour
	criticalIdempotencyTTL = 7 * 24 * time.Hour
	inFlightTTL            = 30 * time.Second
	maxIdempotencyKeyLen   = 200
)

type idempotencyRule struct {
	method string
	path   string
	prefix bool
	ttl    time.Duration
}

func (r idempotencyRule) matches(method, path string) bool {
	if r.method != method {
		return false
	}
	if r.prefix {
		return strings.HasPrefix(path, r.path)
	}
	return path == r.path
}

var idempotencyRules = []idempotencyRule{
	{method: http.MethodPost, path: "/auth/register", ttl: defaultIdempotencyTTL},
	{method: http.MethodPost, path: "/cart/coupon", ttl: defaultIdempotencyTTL},
	{method: http.MethodPost, path: "/addresses", ttl: defaultIdempotencyTTL},
	// money movement
	{method: http.MethodPost, path: "/checkout/order", ttl: criticalIdempotencyTTL},
	{method: http.MethodPost, path: "/order/", prefix: true, ttl: criticalIdempotencyTTL},
}

func routeTTL(method, path string) (time.Duration, bool) {
	for _, rule := range idempotencyRules {
		if rule.matches(method, path) {
			return rule.ttl, true
		}
	}
	return 0, false
}

// idempotencyStore is the subset of the redis client the middleware needs.
type idempotencyStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	IdempotencyKey(scope, id string) string
}

// idempotencyRecord is either an in-flight claim or a finished response.
type idempotencyRecord struct {
	RequestHash string            `json:"request_hash"`
	Pending     bool              `json:"pending,omitempty"`
	Status      int               `json:"status,omitempty"`
	Body        string            `json:"body,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

type idempotencyGuard struct {
	store idempotencyStore
	logg  *logger.Logger
}

// Idempotency replays the stored response when a mutating request repeats an
// Idempotency-Key. The first request claims the key before running so a
// concurrent duplicate is rejected instead of placing a second order.
// Requests without the header run normally.
func Idempotency(store idempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	guard := &idempotencyGuard{store: store, logg: logg}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ttl, ok := routeTTL(r.Method, r.URL.Path)
			key := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			if !ok || store == nil || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLen {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key too long"))
				return
			}
			guard.serve(w, r, next, key, ttl)
		})
	}
}

func (g *idempotencyGuard) serve(w http.ResponseWriter, r *http.Request, next http.Handler, idemKey string, ttl time.Duration) {
	ctx := r.Context()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		responses.WriteError(ctx, g.logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	hash := hashBody(body)
	key := g.store.IdempotencyKey(scopeFor(r), idemKey)

	claim, _ := json.Marshal(idempotencyRecord{RequestHash: hash, Pending: true})
	claimed, err := g.store.SetNX(ctx, key, string(claim), inFlightTTL)
	if err != nil {
		responses.WriteError(ctx, g.logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim idempotency key"))
		return
	}
	if !claimed {
		g.replay(w, r, key, hash)
		return
	}

	rec := &responseCapture{ResponseWriter: w}
	next.ServeHTTP(rec, r)

	// Server failures release the key so the client can retry with it.
	status := rec.statusOrOK()
	if status >= http.StatusInternalServerError {
		if err := g.store.Del(ctx, key); err != nil {
			g.logError(ctx, "release idempotency key", err)
		}
		return
	}

	record := idempotencyRecord{
		RequestHash: hash,
		Status:      status,
		Body:        base64.StdEncoding.EncodeToString(rec.body.Bytes()),
	}
	if ct := rec.Header().Get("Content-Type"); ct != "" {
		record.Headers = map[string]string{"Content-Type": ct}
	}
	payload, err := json.Marshal(record)
	if err != nil {
		g.logError(ctx, "marshal idempotency record", err)
		return
	}
	if err := g.store.Set(ctx, key, string(payload), ttl); err != nil {
		g.logError(ctx, "persist idempotency record", err)
	}
}

func (g *idempotencyGuard) replay(w http.ResponseWriter, r *http.Request, key, hash string) {
	ctx := r.Context()
	stored, err := g.store.Get(ctx, key)
	if pkgredis.IsNil(err) {
		// The claim expired between SetNX and Get.
		responses.WriteError(ctx, g.logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotent request still processing, retry shortly"))
		return
	}
	if err != nil {
		responses.WriteError(ctx, g.logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
		return
	}

	var record idempotencyRecord
	if err := json.Unmarshal([]byte(stored), &record); err != nil {
		responses.WriteError(ctx, g.logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode idempotency record"))
		return
	}
	switch {
	case record.RequestHash != hash:
		responses.WriteError(ctx, g.logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body"))
	case record.Pending:
		responses.WriteError(ctx, g.logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotent request still processing, retry shortly"))
	default:
		if ct := record.Headers["Content-Type"]; ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Idempotent-Replay", "true")
		w.WriteHeader(record.Status)
		if decoded, err := base64.StdEncoding.DecodeString(record.Body); err == nil {
			_, _ = w.Write(decoded)
		}
	}
}

func (g *idempotencyGuard) logError(ctx context.Context, msg string, err error) {
	if g.logg != nil {
		g.logg.Error(ctx, msg, err)
	}
}

// scopeFor keys by user (or guest), method and path.
func scopeFor(r *http.Request) string {
	user := UserIDFromContext(r.Context())
	if user == "" {
		user = "guest"
	}
	return strings.Join([]string{user, r.Method, r.URL.Path}, "|")
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}

type responseCapture struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (r *responseCapture) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseCapture) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) statusOrOK() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
