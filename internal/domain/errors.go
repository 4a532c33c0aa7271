package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrNoHistory    = errors.New("no history in response")
	ErrRateLimited  = errors.New("rate limited")
	ErrUnauthorized = errors.New("unauthorized")
)
