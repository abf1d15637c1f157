package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/techflow/techflow/internal/shared/authorization"
	"github.com/techflow/techflow/internal/shared/config"
	"github.com/techflow/techflow/internal/shared/logger"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticator checks login credentials. The configured tech team account must match
// its bcrypt hash; any other non-empty username and password signs in as a client.
type Authenticator struct {
	techUsername string
	credential   techCredential
	logger       logger.Interface
}

func NewAuthenticator(cfg config.AuthConfig, logger logger.Interface) (*Authenticator, error) {
	if cfg.TechTeam.PasswordHash == "" && cfg.TechTeam.Password != "" {
		logger.Warnw("tech team password configured in plain text, set auth.tech_team.password_hash instead")
	}

	credential, err := newTechCredential(cfg.TechTeam.PasswordHash, cfg.TechTeam.Password, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	return &Authenticator{
		techUsername: strings.TrimSpace(cfg.TechTeam.Username),
		credential:   credential,
		logger:       logger,
	}, nil
}

func (a *Authenticator) Authenticate(username, password string) (authorization.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return authorization.Identity{}, ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(strings.ToLower(username)), []byte(strings.ToLower(a.techUsername))) == 1 {
		if !a.credential.matches(password) {
			a.logger.Warnw("tech team login failed", "username", username)
			return authorization.Identity{}, ErrInvalidCredentials
		}
		return authorization.Identity{Username: a.techUsername, Role: authorization.RoleTechTeam}, nil
	}

	return authorization.Identity{Username: username, Role: authorization.RoleClient}, nil
}
