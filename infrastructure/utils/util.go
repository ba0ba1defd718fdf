package utils

import (
	"errors"
	"time"

	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/infrastructure/logger"

	"github.com/golang-jwt/jwt"
)

// OperatorTokenTTL is the lifetime of tokens minted by the token command.
const OperatorTokenTTL = 30 * 24 * time.Hour

func GetCurrentTime() time.Time {
	return time.Now().UTC()
}

// IssueOperatorToken signs claims for operator valid from issued for ttl.
func IssueOperatorToken(operator, secretKey string, issued time.Time, ttl time.Duration) (string, error) {
	if operator == "" {
		return "", errors.New("operator is required")
	}
	return SignClaims(model.OperatorClaims{
		UserName: operator,
		StandardClaims: jwt.StandardClaims{
			Subject:   operator,
			IssuedAt:  issued.Unix(),
			ExpiresAt: issued.Add(ttl).Unix(),
		},
	}, secretKey)
}

// SignClaims signs claims with HS256, the only method the auth middleware accepts.
func SignClaims(claims jwt.Claims, secretKey string) (string, error) {
	if secretKey == "" {
		return "", errors.New("secret key is not set")
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while signing operator token")
		return "", err
	}
	return signed, nil
}
