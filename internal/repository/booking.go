package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/viaggiapp/travel-booking/internal/domain"
)

// BookingRepo owns the bookings table and every capacity mutation on
// packages. The reservation insert and the cancellation compensation
// each run as a single InnoDB transaction, so capacity can never be
// observed partially updated and two racing reservations cannot
// jointly oversell a package: the conditional decrement is executed by
// the database, not decided from a client-side read.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, package_id, actor_id, party_size, total_cents, status,
       customer_note, operator_note, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.PackageID, &b.ActorID, &b.PartySize, &b.TotalCents, &b.Status,
		&b.CustomerNote, &b.OperatorNote, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByID returns a single booking by id.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, storageErr("get booking", err)
	}
	return b, nil
}

// CreateReserving inserts the booking and claims its capacity in one
// transaction. The decrement is a conditional UPDATE guarded by
// `capacity >= party size`, so under contention the database
// serializes racing reservations and at most the remaining capacity is
// ever handed out. TotalCents is computed from the unit price read
// inside the same transaction; price edits that land later never touch
// this booking. On any error nothing is written.
func (r *BookingRepo) CreateReserving(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr("begin reserve", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const claim = `UPDATE packages SET capacity = capacity - ?
                   WHERE id = ? AND is_active = 1 AND capacity >= ?`
	res, err := tx.ExecContext(ctx, claim, b.PartySize, b.PackageID, b.PartySize)
	if err != nil {
		return nil, storageErr("claim capacity", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, storageErr("claim capacity", err)
	}
	if n == 0 {
		// Decide deterministically why the guard failed: a missing or
		// retired package reads as no row, anything else is a capacity
		// shortfall.
		var capacity uint32
		err := tx.QueryRowContext(ctx,
			`SELECT capacity FROM packages WHERE id = ? AND is_active = 1`,
			b.PackageID).Scan(&capacity)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPackageNotFound
		}
		if err != nil {
			return nil, storageErr("probe package", err)
		}
		return nil, domain.ErrInsufficientCapacity
	}

	// The package row is locked by the UPDATE above, so this price read
	// is part of the same serializable picture as the decrement.
	var unit uint32
	if err := tx.QueryRowContext(ctx,
		`SELECT price_cents FROM packages WHERE id = ?`, b.PackageID).Scan(&unit); err != nil {
		return nil, storageErr("read unit price", err)
	}

	const ins = `INSERT INTO bookings
        (package_id, actor_id, party_size, total_cents, status, customer_note, operator_note)
        VALUES (?, ?, ?, ?, ?, ?, '')`
	out, err := tx.ExecContext(ctx, ins,
		b.PackageID, b.ActorID, b.PartySize, unit*b.PartySize, domain.StatusPending, b.CustomerNote)
	if err != nil {
		return nil, storageErr("insert booking", err)
	}
	id, err := out.LastInsertId()
	if err != nil {
		return nil, storageErr("insert booking", err)
	}

	// Query back the full row so the caller sees DB-assigned
	// timestamps and defaults.
	created, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		return nil, storageErr("reload booking", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr("commit reserve", err)
	}
	committed = true
	return created, nil
}

// UpdateStatus moves a booking onto a new status. The booking row is
// locked for the duration of the transaction and the from-set is
// re-verified under that lock, which makes the transition conditional:
// a concurrent transition that got there first causes
// ErrInvalidTransition rather than a double write. When
// releaseCapacity is true the booking's party size is returned to the
// package in the same transaction, so compensation happens exactly
// once per booking.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from []domain.BookingStatus, to domain.BookingStatus, releaseCapacity bool) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr("begin transition", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, storageErr("lock booking", err)
	}

	allowed := false
	for _, s := range from {
		if b.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domain.ErrInvalidTransition
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, to, id); err != nil {
		return nil, storageErr("write status", err)
	}
	if releaseCapacity {
		if _, err := tx.ExecContext(ctx,
			`UPDATE packages SET capacity = capacity + ? WHERE id = ?`,
			b.PartySize, b.PackageID); err != nil {
			return nil, storageErr("release capacity", err)
		}
	}

	updated, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		return nil, storageErr("reload booking", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr("commit transition", err)
	}
	committed = true
	return updated, nil
}

// SetOperatorNote overwrites the admin-authored note on a booking.
func (r *BookingRepo) SetOperatorNote(ctx context.Context, id uint64, note string) (*domain.Booking, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET operator_note = ? WHERE id = ?`, note, id); err != nil {
		return nil, storageErr("set operator note", err)
	}
	return r.GetByID(ctx, id)
}

// BookingDetail joins a booking with the catalog fields the listing
// screens display, saving the UI a second round trip per row.
type BookingDetail struct {
	domain.Booking
	PackageTitle string    `json:"package_title"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	StartsOn     time.Time `json:"starts_on"`
	EndsOn       time.Time `json:"ends_on"`
}

const detailQuery = `SELECT b.id, b.package_id, b.actor_id, b.party_size, b.total_cents, b.status,
       b.customer_note, b.operator_note, b.created_at, b.updated_at,
       p.title, p.city, p.country, p.starts_on, p.ends_on
       FROM bookings b
       JOIN packages p ON p.id = b.package_id`

func (r *BookingRepo) listDetails(ctx context.Context, q string, args ...any) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, storageErr("list bookings", err)
	}
	defer rows.Close()
	out := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(
			&d.ID, &d.PackageID, &d.ActorID, &d.PartySize, &d.TotalCents, &d.Status,
			&d.CustomerNote, &d.OperatorNote, &d.CreatedAt, &d.UpdatedAt,
			&d.PackageTitle, &d.City, &d.Country, &d.StartsOn, &d.EndsOn,
		); err != nil {
			return nil, storageErr("scan booking", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list bookings", err)
	}
	return out, nil
}

// ListByActor returns all bookings made by one user, newest first.
func (r *BookingRepo) ListByActor(ctx context.Context, actorID uint64) ([]BookingDetail, error) {
	return r.listDetails(ctx, detailQuery+` WHERE b.actor_id = ? ORDER BY b.created_at DESC, b.id DESC`, actorID)
}

// ListByPackage returns all bookings against one package, newest
// first. Admin screens only.
func (r *BookingRepo) ListByPackage(ctx context.Context, packageID uint64) ([]BookingDetail, error) {
	return r.listDetails(ctx, detailQuery+` WHERE b.package_id = ? ORDER BY b.created_at DESC, b.id DESC`, packageID)
}

// ListAll returns every booking, newest first. Admin screens only.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingDetail, error) {
	return r.listDetails(ctx, detailQuery+` ORDER BY b.created_at DESC, b.id DESC`)
}
