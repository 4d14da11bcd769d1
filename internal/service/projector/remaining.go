package projector

import (
	"fmt"
	"time"

	"github.com/m04kA/fishery-booking/internal/domain"
)

// ExpiredLabel подпись для закончившейся сессии
const ExpiredLabel = "Expired"

// TimeRemaining время до конца сессии; false, если сессия закончилась
func TimeRemaining(b *domain.Booking, now time.Time) (time.Duration, bool) {
	remaining := b.EndAt.Sub(now)
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}

// FormatRemaining короткая подпись для карточки бронирования:
// больше суток "N day(s)", иначе "Xh Ym", меньше часа "Ym"
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return ExpiredLabel
	}

	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)

	switch {
	case hours > 24:
		days := hours / 24
		if days > 1 {
			return fmt.Sprintf("%d days", days)
		}
		return "1 day"
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
