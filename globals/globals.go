package globals

type contextKey string

const (
	UserIDKey   contextKey = "userId"
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
)
