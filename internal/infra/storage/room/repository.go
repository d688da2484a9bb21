package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

// Repository чтение комнат вместе с владельцем отеля.
// Комнаты и отели управляются вне сервиса, здесь только чтение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает комнату по ID.
// В транзакции строка комнаты блокируется (FOR UPDATE OF r): подтверждения
// оплаты одной комнаты выполняются строго по очереди.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"r.id",
		"r.hotel_id",
		"h.hotel_owner_id",
		"r.title",
		"r.room_price",
		"r.breakfast_price",
	).
		From("rooms r").
		Join("hotels h ON h.id = r.hotel_id").
		Where(squirrel.Eq{"r.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		room           domain.Room
		breakfastPrice sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&room.ID,
		&room.HotelID,
		&room.HotelOwnerID,
		&room.Title,
		&room.RoomPrice,
		&breakfastPrice,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %w", ErrScanRow, err)
	}

	if breakfastPrice.Valid {
		price := breakfastPrice.Int64
		room.BreakfastPrice = &price
	}

	return &room, nil
}
