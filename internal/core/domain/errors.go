package domain

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrExpiredToken  = errors.New("token has expired or never existed")
	ErrSendingEmail  = errors.New("failed to send email")
)
