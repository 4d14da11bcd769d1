package create_booking

import (
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	MemberID string    // Идентификатор участника (email аккаунта)
	LakeID   string    // Канонический ID озера
	Date     time.Time // Календарная дата сессии, время и зона игнорируются
	Notes    *string   // Заметки (опционально)
}

// Settings правила бронирования из секции [booking]
type Settings struct {
	Cooldown           time.Duration
	AdvanceBookingDays int // 0 = без ограничения
	MaxNotesLength     int
}

// DefaultSettings значения по умолчанию
func DefaultSettings() Settings {
	return Settings{
		Cooldown:       domain.DefaultCooldown,
		MaxNotesLength: domain.MaxNotesLength,
	}
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        string
	MemberID  string
	LakeID    string
	StartAt   time.Time
	EndAt     time.Time
	CreatedAt time.Time
	Notes     *string
	Status    domain.BookingStatus
}
