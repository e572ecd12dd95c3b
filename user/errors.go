package user

import "errors"

// Sentinel errors for the auth session flows. Handlers map these onto HTTP
// statuses; anything wrapped in ErrInternal keeps the underlying storage or
// token fault out of the response.
var (
	ErrFieldsRequired     = errors.New("all fields are required")
	ErrIdentifierRequired = errors.New("username or email is required")
	ErrUserExists         = errors.New("user with email or username already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid user credentials")
	ErrInternal           = errors.New("something went wrong")
)
