package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const keyPrefix = "booking_session"

// Store хранит in-flight попытку бронирования для пары (пользователь, сессия клиента)
type Store struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewStore создает хранилище сессий с заданным временем жизни
func NewStore(client redis.Cmdable, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Key ключ сессии в redis
func Key(userID, sessionID string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, sessionID)
}

// Get возвращает сессию или ErrSessionNotFound
func (s *Store) Get(ctx context.Context, userID, sessionID string) (*domain.BookingSession, error) {
	raw, err := s.client.Get(ctx, Key(userID, sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrStore, err)
	}

	var model sessionModel
	if err := json.Unmarshal([]byte(raw), &model); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return model.toDomain()
}

// Save сохраняет сессию, продлевая TTL
func (s *Store) Save(ctx context.Context, session *domain.BookingSession) error {
	payload, err := encode(session)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, Key(session.UserID, session.SessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save: %v", ErrStore, err)
	}

	return nil
}

func encode(session *domain.BookingSession) (string, error) {
	data, err := json.Marshal(toModel(session))
	if err != nil {
		return "", fmt.Errorf("%w: encode: %v", ErrDecode, err)
	}
	return string(data), nil
}
