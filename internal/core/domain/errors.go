package domain

import "errors"

var ErrDuplicateCredential = errors.New("credential already exists")

var ErrSessionNotFound = errors.New("session not found")
var ErrSessionRevoked = errors.New("session revoked")
var ErrInvalidSession = errors.New("invalid session")
