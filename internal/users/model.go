package users

import "time"

// TimestampLayout is how created_at is stored as text. It is fixed width and
// always UTC, so lexical order matches chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// User is a stored credential record.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Salt         string
	Role         string
	CreatedAt    time.Time
}

// Identity is what a successful authentication yields and what a session
// carries.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Summary is the listing view of a user.
type Summary struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats counts registrations.
type Stats struct {
	Total    int64 `json:"total"`
	Today    int64 `json:"today"`
	ThisWeek int64 `json:"this_week"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}
