package auth

import (
	"context"
	"errors"
)

var (
	ErrUsernameTaken   = errors.New("username already taken")
	ErrUnknownUser     = errors.New("username does not exist")
	ErrInvalidPassword = errors.New("password is incorrect")
)

// DefaultBalance is the wallet credit a new account starts with.
const DefaultBalance = 5000

type User struct {
	ID       string
	Username string
	Hash     []byte
	Balance  int64
}

type UserStore interface {
	Create(ctx context.Context, id, username, password string) error
	Verify(ctx context.Context, username, password string) (User, error)
	Ping(ctx context.Context) error
}

func NewStore() UserStore {
	return NewMemStore()
}
