package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errUnauthenticated        = errors.New("user not authenticated")
	errIdempotencyKeyRequired = errors.New("Idempotency-Key header is required and must be a UUID")
)

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader("Idempotency-Key")
	if raw == "" {
		return uuid.Nil, errIdempotencyKeyRequired
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errIdempotencyKeyRequired
	}
	return key, nil
}
