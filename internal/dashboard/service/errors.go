package service

import "errors"

// Service-level error taxonomy. The HTTP layer owns the mapping to status
// codes (400, 409, 401, 403); unknown ids surface store.ErrNotFound (404).
var (
	// ErrInvalidInput reports missing or malformed caller input.
	ErrInvalidInput = errors.New("invalid_input")

	// ErrNameTaken reports a duplicate unique account name.
	ErrNameTaken = errors.New("name_taken")

	// ErrInvalidCredentials covers bad name/secret pairs and missing,
	// malformed, mis-signed, or expired tokens. Absent accounts and wrong
	// secrets are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrForbidden reports a valid credential with an insufficient role.
	ErrForbidden = errors.New("insufficient_role")
)
