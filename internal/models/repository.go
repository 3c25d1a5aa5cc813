package models

import (
	"errors"
	"time"
)

// ErrDuplicateActiveToken is returned by CreateToken when another active
// token already exists for the same (user, plano) pair.
var ErrDuplicateActiveToken = errors.New("active token already exists for user and plan")

type Repository interface {
	// FindActiveToken returns the unconsumed token for the (user, plano)
	// pair, or (nil, nil) when there is none.
	FindActiveToken(user, plano string) (*Token, error)

	// CreateToken inserts a new unconsumed token.
	CreateToken(token *Token) error

	// GetToken returns the token by its primary key, or (nil, nil) when
	// there is no such token.
	GetToken(token string) (*Token, error)

	// ConsumeToken marks the token as used at the given time, only if it is
	// still unconsumed. Returns the number of rows affected: zero means the
	// token was missing or already consumed.
	ConsumeToken(token string, at time.Time) (int64, error)

	Close() error
}
