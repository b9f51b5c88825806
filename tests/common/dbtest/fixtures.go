//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is what fixtures need from a database handle; both *pgxpool.Pool
// and pgx.Tx satisfy it.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestListing(t *testing.T, db DBLike, ownerID uuid.UUID, title string, ratePerHourCents int64) uuid.UUID {
	t.Helper()

	listingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO listings (id, owner_id, title, description, location, price_per_hour_cents, is_active) VALUES ($1, $2, $3, '', '', $4, true)",
		listingID, ownerID, title, ratePerHourCents)
	require.NoError(t, err)

	return listingID
}

func CreateTestWindow(t *testing.T, db DBLike, listingID uuid.UUID, date time.Time, startMin, endMin int, isAvailable bool) uuid.UUID {
	t.Helper()

	windowID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO availability_windows (id, listing_id, date, start_min, end_min, is_available) VALUES ($1, $2, $3, $4, $5, $6)",
		windowID, listingID, date.Format("2006-01-02"), startMin, endMin, isAvailable)
	require.NoError(t, err)

	return windowID
}

func CreateTestBooking(t *testing.T, db DBLike, listingID, renterID uuid.UUID, start, end time.Time, status string, priceCents int64) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO bookings (id, listing_id, renter_id, start_time, end_time, status, price_cents, payment_ref) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		bookingID, listingID, renterID, start, end, status, priceCents, "pay_"+bookingID.String()[:8])
	require.NoError(t, err)

	return bookingID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each test starts from a clean schema
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
