package handler

// The unknown-email and wrong-password messages are deliberately distinct;
// the client shows them as-is and always receives a 400 for either.
const (
	errInternalServer = "Internal server error"
	errEmailExists    = "an account with this email already exists"
	errUnknownEmail   = "no account exists with this email"
	errWrongPassword  = "wrong email or password, please retry"
	errTitleNotFound  = "Title not found"
	errUnknownMedia   = "Unknown media type"
)
