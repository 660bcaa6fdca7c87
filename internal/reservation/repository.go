package reservation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
)

// Repository is the storage behind the reservation store. The service owns the
// conflict check; implementations must still reject an overlapping live insert with
// ErrConflict so that several processes sharing one database stay consistent.
type Repository interface {
	Create(ctx context.Context, res *Reservation) error
	GetByID(ctx context.Context, id int64) (*Reservation, error)
	// Cancel marks a live reservation cancelled. Unknown or already cancelled ids give ErrNotFound.
	Cancel(ctx context.Context, id int64, at time.Time) error
	// List returns matching reservations ordered by start time, then id.
	List(ctx context.Context, filter Filter) ([]*Reservation, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{
	"id", "room_id", "title", "start_time", "end_time", "booked_by",
	"attendee_count", "allow_overflow", "status", "created_at", "cancelled_at",
}

func storageErr(op string, err error) error {
	return apperror.Wrap(fmt.Errorf("%s: %w", op, err), http.StatusServiceUnavailable, apperror.KindStorage, "reservation storage unavailable")
}

func scanReservation(row pgx.Row) (*Reservation, error) {
	var res Reservation
	if err := row.Scan(
		&res.ID, &res.RoomID, &res.Title, &res.Window.Start, &res.Window.End, &res.BookedBy,
		&res.AttendeeCount, &res.AllowOverflow, &res.Status, &res.CreatedAt, &res.CancelledAt,
	); err != nil {
		return nil, err
	}
	res.Window = res.Window.Normalize()
	return &res, nil
}

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) error {
	query, args, err := psql.Insert("public.reservations").
		Columns("room_id", "title", "day", "start_time", "end_time", "booked_by", "attendee_count", "allow_overflow", "status").
		Values(res.RoomID, res.Title, res.Window.Day(), res.Window.Start, res.Window.End,
			res.BookedBy, res.AttendeeCount, res.AllowOverflow, StatusActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&res.ID, &res.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.ExclusionViolation:
				return ErrConflict
			case pgerrcode.ForeignKeyViolation:
				return ErrRoomNotFound
			}
		}
		return storageErr("create reservation failed", err)
	}
	res.Status = StatusActive
	res.CancelledAt = nil
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Reservation, error) {
	query, args, err := psql.Select(columns...).
		From("public.reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get reservation failed", err)
	}
	return res, nil
}

func (r *pgxRepository) Cancel(ctx context.Context, id int64, at time.Time) error {
	query, args, err := psql.Update("public.reservations").
		Set("status", StatusCancelled).
		Set("cancelled_at", at).
		Where(squirrel.Eq{"id": id, "status": StatusActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build cancel reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return storageErr("cancel reservation failed", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, error) {
	query := psql.Select(columns...).From("public.reservations")

	if filter.RoomID != 0 {
		query = query.Where(squirrel.Eq{"room_id": filter.RoomID})
	}
	if !filter.Day.IsZero() {
		query = query.Where(squirrel.Eq{"day": DayOf(filter.Day)})
	}
	if !filter.IncludeCancelled {
		query = query.Where(squirrel.Eq{"status": StatusActive})
	}
	query = query.OrderBy("start_time ASC", "id ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageErr("list reservations failed", err)
	}
	defer rows.Close()

	var result []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, storageErr("scan reservation failed", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list reservations failed", err)
	}
	return result, nil
}
