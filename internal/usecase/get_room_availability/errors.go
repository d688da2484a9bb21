package get_room_availability

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("get_room_availability: room not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_room_availability: invalid input data")

	// ErrDateInPast возвращается, когда заезд раньше текущего дня
	ErrDateInPast = errors.New("get_room_availability: start date is in the past")
)
