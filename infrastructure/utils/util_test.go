package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"linkedin-autoposter/domain/model"
)

func TestIssueOperatorToken(t *testing.T) {
	issued := time.Now().UTC().Truncate(time.Second)
	raw, err := IssueOperatorToken("ops", "k", issued, time.Hour)
	require.NoError(t, err)

	var claims model.OperatorClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) { return []byte("k"), nil })
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "HS256", token.Method.Alg())
	assert.Equal(t, "ops", claims.OperatorID())
	assert.Equal(t, "ops", claims.UserName)
	assert.Equal(t, issued.Unix(), claims.IssuedAt)
	assert.Equal(t, issued.Add(time.Hour).Unix(), claims.ExpiresAt)
}

func TestIssueOperatorToken_Rejects(t *testing.T) {
	_, err := IssueOperatorToken("", "k", time.Now(), time.Hour)
	assert.Error(t, err)
	_, err = IssueOperatorToken("ops", "", time.Now(), time.Hour)
	assert.Error(t, err)
}
