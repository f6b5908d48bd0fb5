package models

type IdentityState int

const (
	Anonymous IdentityState = iota
	Authenticated
	// Invalid means a session cookie was present but could not be verified.
	Invalid
)

// Identity is who is asking, as derived from the session cookie of one request.
type Identity struct {
	State    IdentityState
	UserID   string
	Username string
	Role     string
}

func AnonymousIdentity() Identity {
	return Identity{State: Anonymous}
}

func InvalidIdentity() Identity {
	return Identity{State: Invalid}
}

func IdentityOf(user *User) Identity {
	return Identity{
		State:    Authenticated,
		UserID:   user.UserID,
		Username: user.Username,
		Role:     user.Role,
	}
}

func (i Identity) IsAuthenticated() bool {
	return i.State == Authenticated && i.UserID != ""
}

func (i Identity) IsAdmin() bool {
	return i.IsAuthenticated() && i.Role == RoleAdmin
}
