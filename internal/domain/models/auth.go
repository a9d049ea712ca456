package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claim set issued to HR console users.
// The company may be a top-level claim or live in app_metadata.
type Claims struct {
	jwt.RegisteredClaims                        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string                 `json:"email"`
	Role                 string                 `json:"role"` // "authenticated" or "anon"
	CompanyID            string                 `json:"company_id"`
	SessionID            string                 `json:"session_id"`
	AppMetadata          map[string]interface{} `json:"app_metadata"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *Claims) GetUserID() string {
	return c.Subject
}

// GetCompanyID returns the company the user acts for.
func (c *Claims) GetCompanyID() string {
	if c.CompanyID != "" {
		return c.CompanyID
	}
	if id, ok := c.AppMetadata["company_id"].(string); ok {
		return id
	}
	return ""
}

// SessionKey identifies the login session. Tokens without a session_id
// claim share one session per user.
func (c *Claims) SessionKey() string {
	if c.SessionID != "" {
		return c.SessionID
	}
	return "user:" + c.Subject
}
