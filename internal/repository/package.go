package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/viaggiapp/travel-booking/internal/domain"
)

// PackageRepo provides catalog reads and the admin catalog writes for
// travel packages. The capacity column is additionally mutated by
// BookingRepo inside reservation and cancellation transactions; those
// are the only write paths allowed to adjust it incrementally.
type PackageRepo struct {
	db *sql.DB
}

// NewPackageRepo returns a PackageRepo bound to the given database.
func NewPackageRepo(db *sql.DB) *PackageRepo { return &PackageRepo{db: db} }

const packageCols = `id, title, description, city, country, price_cents, capacity,
       starts_on, ends_on, days, hotel, is_active, created_at, updated_at`

func scanPackage(row interface{ Scan(...any) error }) (*domain.TravelPackage, error) {
	var p domain.TravelPackage
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.City, &p.Country, &p.PriceCents,
		&p.Capacity, &p.StartsOn, &p.EndsOn, &p.Days, &p.Hotel, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns a package by id regardless of its active flag. Used
// by admin screens; the public catalog goes through GetActiveByID.
func (r *PackageRepo) GetByID(ctx context.Context, id uint64) (*domain.TravelPackage, error) {
	const q = `SELECT ` + packageCols + ` FROM packages WHERE id = ?`
	p, err := scanPackage(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPackageNotFound
	}
	if err != nil {
		return nil, storageErr("get package", err)
	}
	return p, nil
}

// GetActiveByID returns a package only when it has not been retired.
func (r *PackageRepo) GetActiveByID(ctx context.Context, id uint64) (*domain.TravelPackage, error) {
	const q = `SELECT ` + packageCols + ` FROM packages WHERE id = ? AND is_active = 1`
	p, err := scanPackage(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPackageNotFound
	}
	if err != nil {
		return nil, storageErr("get active package", err)
	}
	return p, nil
}

// ListActive returns all bookable packages ordered by start date.
// Retired packages are hidden from the storefront but keep their rows
// so existing bookings never dangle.
func (r *PackageRepo) ListActive(ctx context.Context) ([]domain.TravelPackage, error) {
	const q = `SELECT ` + packageCols + ` FROM packages WHERE is_active = 1 ORDER BY starts_on, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, storageErr("list packages", err)
	}
	defer rows.Close()
	out := make([]domain.TravelPackage, 0)
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, storageErr("scan package", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list packages", err)
	}
	return out, nil
}

// Create inserts a new package and returns it with id and timestamps
// populated. Admin catalog workflow only.
func (r *PackageRepo) Create(ctx context.Context, p *domain.TravelPackage) (*domain.TravelPackage, error) {
	const q = `INSERT INTO packages
        (title, description, city, country, price_cents, capacity, starts_on, ends_on, days, hotel, is_active)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.Title, p.Description, p.City, p.Country, p.PriceCents, p.Capacity,
		p.StartsOn, p.EndsOn, p.Days, p.Hotel, p.IsActive)
	if err != nil {
		return nil, storageErr("create package", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, storageErr("create package", err)
	}
	return r.GetByID(ctx, uint64(id))
}

// Update rewrites the editable catalog fields of a package. This is
// the admin workflow's full-row edit; it intentionally bypasses the
// incremental capacity contract of the booking path.
func (r *PackageRepo) Update(ctx context.Context, p *domain.TravelPackage) (*domain.TravelPackage, error) {
	const q = `UPDATE packages SET
        title = ?, description = ?, city = ?, country = ?, price_cents = ?,
        capacity = ?, starts_on = ?, ends_on = ?, days = ?, hotel = ?, is_active = ?
        WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		p.Title, p.Description, p.City, p.Country, p.PriceCents, p.Capacity,
		p.StartsOn, p.EndsOn, p.Days, p.Hotel, p.IsActive, p.ID); err != nil {
		return nil, storageErr("update package", err)
	}
	return r.GetByID(ctx, p.ID)
}
