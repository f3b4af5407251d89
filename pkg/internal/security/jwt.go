package security

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inkwellhq/inkwell/pkg/internal/models"
	"github.com/spf13/viper"
)

const tokenIssuer = "inkwell"

// IssueToken signs a stateless access token carrying the account identity.
// Verification needs nothing but the shared secret, there is no revocation
// list.
func IssueToken(user models.Account) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.Itoa(int(user.ID)),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(viper.GetDuration("security.access_token_duration"))),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(viper.GetString("security.jwt_secret")))
}

// VerifyToken checks the signature and expiry of a token and resolves the
// account id it was issued for.
func VerifyToken(str string) (uint, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(str, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(viper.GetString("security.jwt_secret")), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, fmt.Errorf("malformed subject claim: %v", err)
	}

	return uint(id), nil
}
