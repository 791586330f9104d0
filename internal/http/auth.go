package http

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// mwBearerAuth guards the reporting routes. Tokens are HS256-signed JWTs
// issued by the menu backoffice; the ingestion routes stay open because the
// client collector runs unauthenticated in the diner's browser.
func mwBearerAuth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeErrorResponse(w, r, errUnauthorized(nil))
				return
			}

			parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return key, nil
			})
			if err != nil || !parsed.Valid {
				writeErrorResponse(w, r, errUnauthorized(err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
