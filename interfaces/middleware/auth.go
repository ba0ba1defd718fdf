package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"linkedin-autoposter/domain/dto"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/infrastructure/logger"
)

// Auth accepts HS256 bearer tokens signed with secretKey and sets user_id.
func Auth(secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res := dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"}
		authorization := ctx.Request.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(authorization, "Bearer ")
		if !ok || raw == "" || secretKey == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		claims, token, err := getClaims(raw, secretKey)
		if err != nil || token == nil || !token.Valid {
			res.ResponseMessage = rejectReason(err)
			logger.GetLogger().WithField("reason", res.ResponseMessage).Warn("Rejected operator token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}
		id := claims.OperatorID()
		if id == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}
		ctx.Set("user_id", id)
		ctx.Next()
	}
}

func rejectReason(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		switch {
		case ve.Errors&jwt.ValidationErrorMalformed != 0:
			return "That's not even a token"
		case ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0:
			return "Timing is everything"
		}
		return fmt.Sprintf("Couldn't handle this token:%v", err)
	}
	return "Unauthorized"
}

func getClaims(raw, secretKey string) (model.OperatorClaims, *jwt.Token, error) {
	var claims model.OperatorClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	return claims, token, err
}
