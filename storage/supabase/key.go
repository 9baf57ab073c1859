package supabase

import (
	jwt "github.com/golang-jwt/jwt/v5"
)

// KeyRole extracts the "role" claim from a Supabase API key. Supabase keys
// are JWTs; the claim distinguishes the service-role key (which bypasses row
// level security) from the public anon key. The signature is NOT verified --
// this is a configuration sanity check, not an authentication step.
func KeyRole(key string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return "", err
	}
	role, _ := claims["role"].(string)
	return role, nil
}

// IsServiceKey reports whether key carries the service_role claim. Keys that
// fail to parse as JWTs return false.
func IsServiceKey(key string) bool {
	role, err := KeyRole(key)
	return err == nil && role == "service_role"
}
