package room

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
)

// Repository is the durable source of the room catalog. It is only read at startup.
type Repository interface {
	List(ctx context.Context) ([]*Room, error)
	Create(ctx context.Context, room *Room) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func storageErr(op string, err error) error {
	return apperror.Wrap(fmt.Errorf("%s: %w", op, err), http.StatusServiceUnavailable, apperror.KindStorage, "room storage unavailable")
}

func (r *pgxRepository) List(ctx context.Context) ([]*Room, error) {
	const query = `
		SELECT id, name, capacity, equipment
		FROM public.rooms
		ORDER BY id ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storageErr("list rooms failed", err)
	}
	defer rows.Close()

	var result []*Room
	for rows.Next() {
		var rm Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.Equipment); err != nil {
			return nil, storageErr("scan room failed", err)
		}
		result = append(result, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list rooms failed", err)
	}
	return result, nil
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	const query = `
		INSERT INTO public.rooms (id, name, capacity, equipment)
		VALUES ($1, $2, $3, $4)
	`
	equipment := rm.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	if _, err := r.pool.Exec(ctx, query, rm.ID, rm.Name, rm.Capacity, equipment); err != nil {
		return storageErr("create room failed", err)
	}
	return nil
}
