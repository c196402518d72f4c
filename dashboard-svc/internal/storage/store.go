package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"jollof-hub/dashboard-svc/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	ordersKeyPrefix  = "dashboard:orders:"
	revenueKeyPrefix = "dashboard:revenue:"
	seenKeyPrefix    = "dashboard:seen:"
	dayLayout        = "2006-01-02"

	// seedBatch caps the ids passed to a single SADD inside the seed script.
	seedBatch = 500
)

// errUnseeded is returned by the record script when the day has no counters
// yet.
var errUnseeded = errors.New("day not seeded")

// recordScript counts an order once per day. It returns -1 when the day has
// not been seeded, 0 for an order already counted and 1 otherwise.
var recordScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
if redis.call('SADD', KEYS[3], ARGV[1]) == 0 then
	return 0
end
redis.call('INCR', KEYS[1])
redis.call('INCRBYFLOAT', KEYS[2], ARGV[2])
redis.call('EXPIRE', KEYS[1], ARGV[3])
redis.call('EXPIRE', KEYS[2], ARGV[3])
redis.call('EXPIRE', KEYS[3], ARGV[3])
return 1
`)

// seedScript installs a snapshot of the day unless another caller already
// did. ARGV: count, revenue, ttl seconds, then the order ids.
var seedScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'EX', ARGV[3])
redis.call('SET', KEYS[2], ARGV[2], 'EX', ARGV[3])
redis.call('DEL', KEYS[3])
for i = 4, #ARGV, ` + strconv.Itoa(seedBatch) + ` do
	redis.call('SADD', KEYS[3], unpack(ARGV, i, math.min(i + ` + strconv.Itoa(seedBatch-1) + `, #ARGV)))
end
redis.call('EXPIRE', KEYS[3], ARGV[3])
return 1
`)

// Store keeps per-day order counters in Redis. A day without counters is
// seeded from the orders table before it is read or incremented, so a Redis
// restart or expiry never loses the orders already placed that day.
type Store struct {
	db  *sql.DB
	rdb *redis.Client
	ttl time.Duration
	loc *time.Location
}

func NewStore(db *sql.DB, rdb *redis.Client, ttl time.Duration, loc *time.Location) *Store {
	if ttl <= 0 {
		ttl = 8 * 24 * time.Hour
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Store{db: db, rdb: rdb, ttl: ttl, loc: loc}
}

func (s *Store) Day(t time.Time) string {
	return t.In(s.loc).Format(dayLayout)
}

func dayKeys(day string) []string {
	return []string{ordersKeyPrefix + day, revenueKeyPrefix + day, seenKeyPrefix + day}
}

// RecordOrder counts the order on the day it was placed. Repeated deliveries
// of the same order id are counted once.
func (s *Store) RecordOrder(ctx context.Context, orderID int, placedAt time.Time, total decimal.Decimal) error {
	day := s.Day(placedAt)

	err := s.record(ctx, day, orderID, total)
	if errors.Is(err, errUnseeded) {
		// The order row is committed before its event is published, so the
		// snapshot either includes it or the retry below counts it.
		if err = s.seed(ctx, placedAt); err == nil {
			err = s.record(ctx, day, orderID, total)
		}
	}
	if err != nil {
		return fmt.Errorf("record order %d for %s: %w", orderID, day, err)
	}
	return nil
}

func (s *Store) record(ctx context.Context, day string, orderID int, total decimal.Decimal) error {
	res, err := recordScript.Run(ctx, s.rdb, dayKeys(day),
		orderID, total.StringFixed(2), int64(s.ttl/time.Second)).Int()
	if err != nil {
		return err
	}
	if res < 0 {
		return errUnseeded
	}
	return nil
}

// Summary returns the counters for the day containing t.
func (s *Store) Summary(ctx context.Context, t time.Time) (*domain.Summary, error) {
	day := s.Day(t)
	summary, ok, err := s.read(ctx, day)
	if err != nil {
		return nil, err
	}
	if ok {
		return summary, nil
	}

	if err := s.seed(ctx, t); err != nil {
		return nil, err
	}
	summary, _, err = s.read(ctx, day)
	return summary, err
}

func (s *Store) read(ctx context.Context, day string) (*domain.Summary, bool, error) {
	vals, err := s.rdb.MGet(ctx, ordersKeyPrefix+day, revenueKeyPrefix+day).Result()
	if err != nil {
		return nil, false, fmt.Errorf("read counters for %s: %w", day, err)
	}

	summary := &domain.Summary{Date: day, Revenue: decimal.Zero}
	if vals[0] == nil {
		return summary, false, nil
	}
	if str, ok := vals[0].(string); ok {
		if n, err := strconv.ParseInt(str, 10, 64); err == nil {
			summary.Orders = n
		}
	}
	if str, ok := vals[1].(string); ok {
		if rev, err := decimal.NewFromString(str); err == nil {
			summary.Revenue = rev.Round(2)
		}
	}
	return summary, true, nil
}

// seed loads the day containing t from the orders table. It is a no-op when
// the day was seeded concurrently.
func (s *Store) seed(ctx context.Context, t time.Time) error {
	local := t.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 0, 1)
	day := start.Format(dayLayout)

	revenue := decimal.Zero
	var ids []any
	if s.db != nil {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, total_price
			FROM orders
			WHERE created_at >= $1 AND created_at < $2`, start, end)
		if err != nil {
			return fmt.Errorf("rebuild counters for %s: %w", day, err)
		}
		defer rows.Close()

		for rows.Next() {
			var id int
			var total decimal.Decimal
			if err := rows.Scan(&id, &total); err != nil {
				return fmt.Errorf("rebuild counters for %s: %w", day, err)
			}
			ids = append(ids, id)
			revenue = revenue.Add(total)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rebuild counters for %s: %w", day, err)
		}
	}

	args := append([]any{len(ids), revenue.StringFixed(2), int64(s.ttl / time.Second)}, ids...)
	if err := seedScript.Run(ctx, s.rdb, dayKeys(day), args...).Err(); err != nil {
		return fmt.Errorf("seed counters for %s: %w", day, err)
	}
	return nil
}
