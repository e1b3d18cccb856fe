package ports

import "github.com/vetclinic/user-service/internal/pkg/token"

// PasswordHasher hashes and verifies passwords. Verify never returns an
// error; a malformed hash simply does not verify.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer mints bearer tokens.
type TokenIssuer interface {
	Issue(claims token.Claims) (string, error)
}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}
