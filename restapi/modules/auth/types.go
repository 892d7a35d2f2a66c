package auth

type contextKey string

// Context keys carrying the caller identity into GraphQL resolvers
const (
	UserKey contextKey = "username"
	RoleKey contextKey = "role"
)

// cookieName holds the operator token for browser clients
const cookieName = "auth_token"
