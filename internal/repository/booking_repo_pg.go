package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skywings/skybooking/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByTrackingCode(ctx context.Context, code string) (*domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, code string, from, to domain.LifecycleState) (*domain.Booking, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, tracking_code, flight_id, first_name, last_name, email, phone, passport,
	seat, gate, boarding_time, price_cents, status, created_at, updated_at`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings
		(tracking_code, flight_id, first_name, last_name, email, phone, passport,
		 seat, gate, boarding_time, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		booking.TrackingCode, booking.FlightID,
		booking.Passenger.FirstName, booking.Passenger.LastName,
		booking.Passenger.Email, booking.Passenger.Phone, booking.Passenger.Passport,
		booking.Seat, booking.Gate, booking.BoardingTime, booking.PriceCents, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByTrackingCode(ctx context.Context, code string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE tracking_code=$1`, code)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE email=$1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// UpdateStatus is a compare-and-swap: the write lands only while the row
// still carries the status the caller validated against. A booking that
// moved concurrently keeps its state and the loser gets ErrInvalidTransition,
// so a stale advance can never overwrite a cancellation.
func (r *PGBookingRepository) UpdateStatus(ctx context.Context, code string, from, to domain.LifecycleState) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE tracking_code=$2 AND status=$3 RETURNING `+bookingColumns, to, code, from)
	b, err := scanBooking(row)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if _, getErr := r.GetByTrackingCode(ctx, code); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("%w: booking %s is no longer %s", domain.ErrInvalidTransition, code, from)
}

func (r *PGBookingRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE tracking_code=$1)`, code).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.TrackingCode, &b.FlightID,
		&b.Passenger.FirstName, &b.Passenger.LastName, &b.Passenger.Email,
		&b.Passenger.Phone, &b.Passenger.Passport,
		&b.Seat, &b.Gate, &b.BoardingTime, &b.PriceCents, &b.Status,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
