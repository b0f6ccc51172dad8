// Package identity derives the caller identity for one request from the
// verified JWT placed in context by the auth middleware. A missing or
// unverified token means the caller is anonymous, which is not an error at
// this layer; each mutating operation decides whether anonymous is allowed.
package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrAnonymous is returned when no verified caller identity is present.
var ErrAnonymous = errors.New("not authenticated")

// UserID extracts the caller's user UUID from verified JWT claims.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := tokenClaims(c)
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrAnonymous
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrAnonymous
	}
	return id, nil
}

// Email extracts the caller's email claim, if present.
func Email(c *fiber.Ctx) string {
	claims, err := tokenClaims(c)
	if err != nil {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

func tokenClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrAnonymous
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrAnonymous
	}
	return claims, nil
}
