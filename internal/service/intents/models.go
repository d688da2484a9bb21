package intents

import (
	"strconv"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// IntentDraft все, что нужно для суммы и метаданных intent
type IntentDraft struct {
	SessionID string
	UserID    string
	Room      *domain.Room
	Draft     domain.BookingDraft
	Currency  string
}

func (d IntentDraft) metadata(amount int64) map[string]string {
	return map[string]string{
		domain.MetadataHotelID:           d.Room.HotelID,
		domain.MetadataRoomID:            d.Room.ID,
		domain.MetadataUserID:            d.UserID,
		domain.MetadataStartDate:         d.Draft.Interval.Start.Format(domain.DateFormat),
		domain.MetadataEndDate:           d.Draft.Interval.End.Format(domain.DateFormat),
		domain.MetadataBreakfastIncluded: strconv.FormatBool(d.Draft.BreakfastIncluded),
		domain.MetadataTotalPrice:        strconv.FormatInt(amount, 10),
	}
}
