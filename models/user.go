package models

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleDiner UserRole = "DINER"
	RoleChef  UserRole = "CHEF"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            UserRole `json:"role"`
	Avatar          string   `json:"avatar,omitempty"`
	FavoriteChefIDs []string `json:"favoriteChefIds"`
	Phone           string   `json:"phone,omitempty"`
	LastActive      string   `json:"lastActive,omitempty"`
	TotalSpent      float64  `json:"totalSpent,omitempty"`
	// PasswordHash is stored with the record but never rendered to clients.
	PasswordHash string `json:"passwordHash,omitempty"`
}

// GetID satisfies store.Record
func (u User) GetID() string { return u.ID }

// Public returns a copy safe to hand to API clients.
func (u User) Public() User {
	u.PasswordHash = ""
	if u.FavoriteChefIDs == nil {
		u.FavoriteChefIDs = []string{}
	}
	return u
}

// Session is the persisted "current user" snapshot behind a login token.
type Session struct {
	ID        string `json:"id"`
	User      User   `json:"user"`
	CreatedAt string `json:"createdAt"`
}

func (s Session) GetID() string { return s.ID }
