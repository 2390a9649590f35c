package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skywings/skybooking/internal/domain"
)

type SeatHoldRepository interface {
	Hold(ctx context.Context, hold *domain.SeatHold) error
	GetByToken(ctx context.Context, token string) (*domain.SeatHold, error)
	Commit(ctx context.Context, token string, now time.Time) (*domain.SeatHold, error)
	LinkBooking(ctx context.Context, token string, bookingID int64) error
	ReleaseByToken(ctx context.Context, token string) error
	ReleaseSeat(ctx context.Context, flightID int64, seat string) error
	SweepExpired(ctx context.Context, now time.Time) ([]domain.SeatHold, error)
}

type PGSeatHoldRepository struct {
	db *pgxpool.Pool
}

func NewSeatHoldRepository(db *pgxpool.Pool) SeatHoldRepository {
	return &PGSeatHoldRepository{db: db}
}

const seatHoldColumns = `id, flight_id, seat, state, holder_id, token, booking_id, expires_at, created_at, updated_at`

// Hold claims (flight, seat) in a single statement. The unique constraint on
// (flight_id, seat) is the arbiter between concurrent callers: the insert
// wins on a free seat, the DO UPDATE takes over an expired hold, and any
// live row makes the statement touch zero rows.
func (r *PGSeatHoldRepository) Hold(ctx context.Context, hold *domain.SeatHold) error {
	row := r.db.QueryRow(ctx, `INSERT INTO seat_holds (flight_id, seat, state, holder_id, token, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (flight_id, seat) DO UPDATE
		SET state = EXCLUDED.state, holder_id = EXCLUDED.holder_id, token = EXCLUDED.token,
			booking_id = NULL, expires_at = EXCLUDED.expires_at, updated_at = now()
		WHERE seat_holds.state = $3 AND seat_holds.expires_at <= now()
		RETURNING id, created_at, updated_at`,
		hold.FlightID, hold.Seat, domain.SeatHoldStateHeld, hold.HolderID, hold.Token, hold.ExpiresAt)

	if err := row.Scan(&hold.ID, &hold.CreatedAt, &hold.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrSeatUnavailable
		}
		return err
	}
	hold.State = domain.SeatHoldStateHeld
	return nil
}

func (r *PGSeatHoldRepository) GetByToken(ctx context.Context, token string) (*domain.SeatHold, error) {
	row := r.db.QueryRow(ctx, `SELECT `+seatHoldColumns+` FROM seat_holds WHERE token=$1`, token)
	h, err := scanSeatHold(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHoldNotFound
		}
		return nil, err
	}
	return h, nil
}

// Commit makes a hold permanent. Expiry is re-checked here, server-side:
// a client that lost the race to the sweeper gets ErrHoldExpired regardless
// of what its own clock said. Committing an already-booked token is a no-op
// success.
func (r *PGSeatHoldRepository) Commit(ctx context.Context, token string, now time.Time) (*domain.SeatHold, error) {
	row := r.db.QueryRow(ctx, `UPDATE seat_holds
		SET state=$1, updated_at=now()
		WHERE token=$2 AND state=$3 AND expires_at > $4
		RETURNING `+seatHoldColumns, domain.SeatHoldStateBooked, token, domain.SeatHoldStateHeld, now)

	h, err := scanSeatHold(row)
	if err == nil {
		return h, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	existing, getErr := r.GetByToken(ctx, token)
	if getErr != nil {
		return nil, getErr
	}
	if existing.State == domain.SeatHoldStateBooked {
		return existing, nil
	}
	return nil, domain.ErrHoldExpired
}

// LinkBooking records which booking ended up owning a committed seat.
func (r *PGSeatHoldRepository) LinkBooking(ctx context.Context, token string, bookingID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE seat_holds SET booking_id=$1, updated_at=now() WHERE token=$2 AND state=$3`,
		bookingID, token, domain.SeatHoldStateBooked)
	return err
}

func (r *PGSeatHoldRepository) ReleaseByToken(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM seat_holds WHERE token=$1`, token)
	return err
}

// ReleaseSeat frees a booked seat for resale after a cancellation.
func (r *PGSeatHoldRepository) ReleaseSeat(ctx context.Context, flightID int64, seat string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM seat_holds WHERE flight_id=$1 AND seat=$2`, flightID, seat)
	return err
}

func (r *PGSeatHoldRepository) SweepExpired(ctx context.Context, now time.Time) ([]domain.SeatHold, error) {
	rows, err := r.db.Query(ctx, `DELETE FROM seat_holds
		WHERE state=$1 AND expires_at <= $2
		RETURNING `+seatHoldColumns, domain.SeatHoldStateHeld, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var swept []domain.SeatHold
	for rows.Next() {
		h, err := scanSeatHold(rows)
		if err != nil {
			return nil, err
		}
		swept = append(swept, *h)
	}
	return swept, rows.Err()
}

func scanSeatHold(row pgx.Row) (*domain.SeatHold, error) {
	var h domain.SeatHold
	if err := row.Scan(&h.ID, &h.FlightID, &h.Seat, &h.State, &h.HolderID, &h.Token,
		&h.BookingID, &h.ExpiresAt, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

var _ SeatHoldRepository = (*PGSeatHoldRepository)(nil)
