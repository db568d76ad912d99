package common

// AuthorizationHeaderName is the HTTP header carrying the session token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme, including the
// separating space.
const BearerScheme = "Bearer "

// APIPrefix is the path prefix of every versioned API route.
const APIPrefix = "/api/v1"
