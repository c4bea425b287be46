// Package session holds the login gate in front of every cart, todo and
// checkout mutation.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/shoptodo/shoptodo-backend/pkg/config"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/shoptodo/shoptodo-backend/pkg/security"
)

var (
	ErrLoginRequired      = pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	ErrInvalidCredentials = pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
)

// Profile is the contact card a user can keep between checkouts.
type Profile struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	PostalCode  string `json:"postalCode"`
	Address     string `json:"address"`
}

// Trimmed returns a copy with surrounding whitespace removed.
func (p Profile) Trimmed() Profile {
	return Profile{
		DisplayName: strings.TrimSpace(p.DisplayName),
		Email:       strings.TrimSpace(p.Email),
		Phone:       strings.TrimSpace(p.Phone),
		PostalCode:  strings.TrimSpace(p.PostalCode),
		Address:     strings.TrimSpace(p.Address),
	}
}

type User struct {
	Username string  `json:"username"`
	Profile  Profile `json:"profile"`
}

// Authenticator checks a username/password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (User, error)
}

// DemoAuthenticator accepts exactly one configured credential pair.
type DemoAuthenticator struct {
	username string
	hash     string
}

// NewDemoAuthenticator hashes the configured demo password with Argon2id so
// the plain value is not kept in memory past construction.
func NewDemoAuthenticator(demo config.DemoConfig, params config.PasswordConfig) (*DemoAuthenticator, error) {
	username := strings.TrimSpace(demo.Username)
	if username == "" {
		return nil, errors.New("demo username is required")
	}
	hash, err := security.HashPassword(demo.Password, params)
	if err != nil {
		return nil, err
	}
	return &DemoAuthenticator{username: username, hash: hash}, nil
}

func (d *DemoAuthenticator) Authenticate(_ context.Context, username, password string) (User, error) {
	sameUser := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(d.username)) == 1
	ok, err := security.VerifyPassword(password, d.hash)
	if err != nil {
		return User{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify demo password")
	}
	if !sameUser || !ok {
		return User{}, ErrInvalidCredentials
	}
	return User{Username: d.username}, nil
}

// Gate tracks the current user. It is not safe for concurrent use; callers
// serialize access.
type Gate struct {
	auth    Authenticator
	current *User
}

func NewGate(auth Authenticator) *Gate {
	return &Gate{auth: auth}
}

// Login authenticates and installs the user. A failed attempt leaves any
// existing session untouched.
func (g *Gate) Login(ctx context.Context, username, password string) (User, error) {
	if g.auth == nil {
		return User{}, pkgerrors.New(pkgerrors.CodeInternal, "authenticator not configured")
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	user, err := g.auth.Authenticate(ctx, username, password)
	if err != nil {
		return User{}, err
	}
	g.current = &user
	return user, nil
}

// Resume installs a user that a trusted caller already authenticated.
func (g *Gate) Resume(user User) error {
	if strings.TrimSpace(user.Username) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	g.current = &user
	return nil
}

// Logout clears the current user and reports who was logged in.
func (g *Gate) Logout() (User, bool) {
	if g.current == nil {
		return User{}, false
	}
	prev := *g.current
	g.current = nil
	return prev, true
}

// Require returns the current user or ErrLoginRequired.
func (g *Gate) Require() (User, error) {
	if g.current == nil {
		return User{}, ErrLoginRequired
	}
	return *g.current, nil
}

func (g *Gate) Current() (User, bool) {
	if g.current == nil {
		return User{}, false
	}
	return *g.current, true
}

// SetProfile replaces the profile of the current user, if any.
func (g *Gate) SetProfile(p Profile) {
	if g.current != nil {
		g.current.Profile = p
	}
}
