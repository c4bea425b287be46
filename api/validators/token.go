package validators

import "strings"

// BearerToken extracts the token from an Authorization header value. The
// scheme is optional and matched case-insensitively.
func BearerToken(header string) string {
	token := strings.TrimSpace(header)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
