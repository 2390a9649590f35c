package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skywings/skybooking/internal/domain"
)

type FlightRepository interface {
	Search(ctx context.Context, originCode, destinationCode string) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	ApplyStatus(ctx context.Context, flightID int64, status domain.FlightStatus, delayMinutes int, gate *string) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, airline, flight_number, origin, origin_code, destination, destination_code,
	departure_time, arrival_time, price_cents, aircraft, seat_rows, seat_letters,
	status, delay_minutes, gate, created_at, updated_at`

func (r *PGFlightRepository) Search(ctx context.Context, originCode, destinationCode string) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE ($1 = '' OR origin_code = $1) AND ($2 = '' OR destination_code = $2)
		ORDER BY departure_time`, originCode, destinationCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return f, nil
}

// ApplyStatus is the flight-status feed's single write path. A nil gate
// leaves the stored gate untouched.
func (r *PGFlightRepository) ApplyStatus(ctx context.Context, flightID int64, status domain.FlightStatus, delayMinutes int, gate *string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights
		SET status=$1, delay_minutes=$2, gate=COALESCE($3, gate), updated_at=now()
		WHERE id=$4`, status, delayMinutes, gate, flightID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.Origin, &f.OriginCode,
		&f.Destination, &f.DestinationCode, &f.DepartureTime, &f.ArrivalTime,
		&f.PriceCents, &f.Aircraft, &f.SeatRows, &f.SeatLetters,
		&f.Status, &f.DelayMinutes, &f.Gate, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
