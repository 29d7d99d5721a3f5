package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidID          = errors.New("invalid identifier")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")

	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("category has products, cannot delete")

	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")

	// ErrMediaStorage wraps failures of the external object-storage
	// collaborator. Image deletion failures abort product deletion so the
	// record and its blobs never end up inconsistent.
	ErrMediaStorage = errors.New("media storage failure")
)
