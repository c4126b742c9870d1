package security

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultSeatTTL = 72 * time.Hour

var ErrJWTSecretMissing = errors.New("JWT_SECRET is not set")

// SeatClaims 绑定一个座位：哪一局(gid)的哪位玩家(pid)。jti 每次签发唯一。
type SeatClaims struct {
	GameID   int64  `json:"gid"`
	PlayerID string `json:"pid"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}
	return []byte(secret), nil
}

// AwardSeat 签发座位令牌，ttl<=0 时用默认 72 小时。
func AwardSeat(gameID int64, playerID string, ttl time.Duration) (string, error) {
	key, err := jwtSecret()
	if err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = defaultSeatTTL
	}

	now := time.Now()
	claims := &SeatClaims{
		GameID:   gameID,
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   playerID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// ParseSeat 解析并验证座位令牌。
func ParseSeat(tokenStr string) (*SeatClaims, error) {
	key, err := jwtSecret()
	if err != nil {
		return nil, err
	}

	claims := &SeatClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if token == nil || !token.Valid || claims.PlayerID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
