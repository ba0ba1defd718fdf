package model

import "github.com/golang-jwt/jwt"

// OperatorClaims identify the admin calling the /api routes.
type OperatorClaims struct {
	UserName string `json:"username,omitempty"`
	jwt.StandardClaims
}

// OperatorID prefers the subject, then the issuer, then the user name.
func (c OperatorClaims) OperatorID() string {
	switch {
	case c.Subject != "":
		return c.Subject
	case c.Issuer != "":
		return c.Issuer
	}
	return c.UserName
}
