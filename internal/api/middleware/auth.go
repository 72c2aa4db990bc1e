package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "user_role"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidRole   = "некорректная роль пользователя"
)

// Auth извлекает пользователя из заголовков X-User-ID и X-User-Role.
// Роль по умолчанию USER
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil || userID == uuid.Nil {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role := strings.ToUpper(strings.TrimSpace(r.Header.Get(HeaderUserRole)))
		switch role {
		case "":
			role = domain.RoleUser
		case domain.RoleUser, domain.RoleAdmin:
		default:
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя, установленный Auth
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// GetRole возвращает роль пользователя, установленную Auth
func GetRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

// GetActor собирает domain.Actor из контекста запроса
func GetActor(ctx context.Context) (domain.Actor, bool) {
	id, ok := GetUserID(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	role, ok := GetRole(ctx)
	if !ok {
		role = domain.RoleUser
	}
	return domain.Actor{ID: id, Role: role}, true
}

// WithActor кладет пользователя в контекст (используется в тестах обработчиков)
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	ctx = context.WithValue(ctx, userIDKey, actor.ID)
	return context.WithValue(ctx, roleKey, actor.Role)
}
