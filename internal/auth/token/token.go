package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/dripstore/catalog/internal/config"
	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwt"
	"go.uber.org/fx"
)

// Module provides the bearer-token issuer.
var Module = fx.Provide(New)

var ErrInvalidToken = errors.New("invalid_token")

// Issuer mints and verifies stateless HS256 bearer tokens. Tokens are never
// persisted; the signature plus expiry is the whole credential.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func New(cfg config.Config) *Issuer {
	return &Issuer{
		secret: []byte(cfg.AuthJWTSecret),
		ttl:    cfg.AuthTokenTTL,
		issuer: cfg.AppName,
	}
}

// Issue signs a token for the given user id.
func (i *Issuer) Issue(userID int64) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(i.ttl)

	t := jwt.New()
	_ = t.Set(jwt.SubjectKey, strconv.FormatInt(userID, 10))
	_ = t.Set(jwt.IssuerKey, i.issuer)
	_ = t.Set(jwt.IssuedAtKey, now)
	_ = t.Set(jwt.ExpirationKey, expiresAt)

	signed, err := jwt.Sign(t, jwa.HS256, i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return string(signed), expiresAt, nil
}

// Verify checks signature and expiry and returns the user id the token
// was issued for.
func (i *Issuer) Verify(raw string) (int64, error) {
	t, err := jwt.Parse([]byte(raw),
		jwt.WithVerify(jwa.HS256, i.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(t.Subject(), 10, 64)
	if err != nil || userID == 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
