package mysql

import (
	"context"
	"database/sql"
	"errors"

	"concierge/internal/domain"
)

// Repo is the MySQL-backed booking store.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Migrate creates the bookings table when missing.
func (r *Repo) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createBookingsSQL)
	return err
}

func (r *Repo) Save(ctx context.Context, b domain.Booking) error {
	_, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.BookingID,
		b.HotelID,
		b.HotelName,
		b.HotelLocation,
		b.CheckIn,
		b.CheckOut,
		b.Nights,
		b.Guests,
		b.GuestName,
		b.GuestEmail,
		b.TotalPrice,
		b.PricePerNight,
		b.Status,
		b.CreatedAt.UTC(),
	)
	return err
}

func (r *Repo) Get(ctx context.Context, id string) (domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, getBookingSQL, id)

	var b domain.Booking
	var createdAt sql.NullTime
	if err := row.Scan(
		&b.BookingID,
		&b.HotelID,
		&b.HotelName,
		&b.HotelLocation,
		&b.CheckIn,
		&b.CheckOut,
		&b.Nights,
		&b.Guests,
		&b.GuestName,
		&b.GuestEmail,
		&b.TotalPrice,
		&b.PricePerNight,
		&b.Status,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, domain.NotFound("Booking not found")
		}
		return domain.Booking{}, err
	}
	if createdAt.Valid {
		b.CreatedAt = createdAt.Time
		b.BookingDate = createdAt.Time.Format(domain.TimestampLayout)
	}
	return b, nil
}
