package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/domain"
)

type contextKey string

const actorContextKey contextKey = "actor"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// StaffClaims полезная нагрузка JWT сотрудника.
// store_id отсутствует у elevated-токенов: их область - все магазины.
type StaffClaims struct {
	StaffID  int64  `json:"staff_id"`
	StoreID  *int64 `json:"store_id,omitempty"`
	Manager  bool   `json:"manager"`
	Elevated bool   `json:"elevated"`
	jwt.RegisteredClaims
}

// Auth проверяет JWT сотрудников и кладёт domain.Actor в контекст запроса
type Auth struct {
	secret []byte
	logger Logger
}

// NewAuth создает auth middleware с HS256 секретом из конфигурации
func NewAuth(secret string, logger Logger) *Auth {
	return &Auth{secret: []byte(secret), logger: logger}
}

// RequireStaff пропускает только запросы с валидным токеном сотрудника
func (a *Auth) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := a.parseStaffToken(r)
		if err != nil {
			a.logger.Warn("auth: rejected request to %s: %v", r.URL.Path, err)
			handlers.RespondError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	})
}

func (a *Auth) parseStaffToken(r *http.Request) (domain.Actor, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return domain.Actor{}, fmt.Errorf("missing Authorization header")
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return domain.Actor{}, fmt.Errorf("Authorization header is not a bearer token")
	}

	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return domain.Actor{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return domain.Actor{}, fmt.Errorf("token is not valid")
	}

	if claims.StaffID <= 0 {
		return domain.Actor{}, fmt.Errorf("token has no staff id")
	}
	if !claims.Elevated && claims.StoreID == nil {
		return domain.Actor{}, fmt.Errorf("scoped token has no store id")
	}

	return domain.Actor{
		Type:     domain.ActorStaff,
		StaffID:  &claims.StaffID,
		StoreID:  claims.StoreID,
		Manager:  claims.Manager,
		Elevated: claims.Elevated,
	}, nil
}

func withActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext достаёт актора, положенного RequireStaff
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(domain.Actor)
	return actor, ok
}
