package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/fishery-booking/internal/api/handlers"
)

// MemberIDHeader заголовок с ID участника, выставляется внешним auth-шлюзом
const MemberIDHeader = "X-Member-ID"

const msgMissingMemberID = "отсутствует заголовок X-Member-ID"

type contextKey string

const memberIDKey contextKey = "member_id"

// Auth требует X-Member-ID и кладёт его в контекст запроса
// Проверка подлинности остаётся за шлюзом, сюда приходит уже доверенный ID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		memberID := strings.TrimSpace(r.Header.Get(MemberIDHeader))
		if memberID == "" {
			handlers.RespondUnauthorized(w, msgMissingMemberID)
			return
		}

		ctx := WithMemberID(r.Context(), memberID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithMemberID кладёт ID участника в контекст (для тестов handlers)
func WithMemberID(ctx context.Context, memberID string) context.Context {
	return context.WithValue(ctx, memberIDKey, memberID)
}

// GetMemberID достаёт ID участника, положенный Auth
func GetMemberID(ctx context.Context) (string, bool) {
	memberID, ok := ctx.Value(memberIDKey).(string)
	return memberID, ok && memberID != ""
}
