package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// techCredential is the bcrypt digest of the tech team password.
type techCredential struct {
	digest []byte
}

// newTechCredential uses hash when present and otherwise digests the plain password.
func newTechCredential(hash, password string, cost int) (techCredential, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return techCredential{}, fmt.Errorf("tech team password hash is not a bcrypt digest: %w", err)
		}
		return techCredential{digest: []byte(hash)}, nil
	}
	if password == "" {
		return techCredential{}, fmt.Errorf("tech team account has no password configured")
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return techCredential{}, fmt.Errorf("failed to digest tech team password: %w", err)
	}
	return techCredential{digest: digest}, nil
}

// matches is false for a wrong password and for a corrupt digest alike.
func (c techCredential) matches(password string) bool {
	return bcrypt.CompareHashAndPassword(c.digest, []byte(password)) == nil
}
