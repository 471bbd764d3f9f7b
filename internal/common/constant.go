package common

// SessionTokenHeaderName is the gRPC metadata key used to carry the
// session token on outbound requests.
const SessionTokenHeaderName = "session_token"

// Roles stored on the user record.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Username length bounds, in runes.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 20
)
