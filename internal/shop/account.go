package shop

import (
	"context"

	"github.com/shoptodo/shoptodo-backend/internal/persist"
	"github.com/shoptodo/shoptodo-backend/internal/session"
	pkgcheckout "github.com/shoptodo/shoptodo-backend/pkg/checkout"
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
)

// Login authenticates through the configured authenticator and persists the
// session.
func (s *Shop) Login(ctx context.Context, username, password string) (session.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.gate.Login(ctx, username, password)
	if err != nil {
		s.logg.WarnErr(s.logg.WithUsername(ctx, username), "login rejected", err)
		return session.User{}, err
	}
	user = s.withProfile(user)
	s.gate.SetProfile(user.Profile)
	s.persist(ctx, persist.KeyCurrentUser)
	s.logg.Info(s.logg.WithUsername(ctx, user.Username), "logged in")
	return user, nil
}

// Resume installs a user authenticated elsewhere, such as by a bearer token.
func (s *Shop) Resume(ctx context.Context, user session.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.gate.Current(); ok && current.Username == user.Username {
		return nil
	}
	if err := s.gate.Resume(s.withProfile(user)); err != nil {
		return err
	}
	s.persist(ctx, persist.KeyCurrentUser)
	return nil
}

// Logout ends the session. The cart, todos and checkout are cleared; orders
// and profiles are kept.
func (s *Shop) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.gate.Logout()
	if !ok {
		return nil
	}
	s.cart.Clear()
	s.todos.Clear()
	s.checkout.Close()
	s.persist(ctx, persist.KeyCurrentUser, persist.KeyCart, persist.KeyTodos)
	s.logg.Info(s.logg.WithUsername(ctx, prev.Username), "logged out")
	return nil
}

func (s *Shop) CurrentUser() (session.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.Current()
}

// Profile returns the profile of the logged in user.
func (s *Shop) Profile() (session.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.gate.Require()
	if err != nil {
		return session.Profile{}, err
	}
	return s.profiles[user.Username], nil
}

// UpdateProfile replaces the profile of the logged in user. A non-empty
// email must look like local@domain.tld.
func (s *Shop) UpdateProfile(ctx context.Context, p session.Profile) (session.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, user, err := s.require(ctx)
	if err != nil {
		return session.Profile{}, err
	}
	p = p.Trimmed()
	if p.Email != "" && !pkgcheckout.BasicEmailPattern.MatchString(p.Email) {
		return session.Profile{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid profile").
			WithDetails(map[string]string{"email": "must be a valid email"})
	}
	s.profiles[user.Username] = p
	s.gate.SetProfile(p)
	s.persist(ctx, persist.KeyProfiles, persist.KeyCurrentUser)
	return p, nil
}

// SetLanguage stores the display language. It does not require a login.
func (s *Shop) SetLanguage(ctx context.Context, code string) (enums.Language, error) {
	lang, err := enums.ParseLanguage(code)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported language").
			WithDetails(map[string]string{"language": "must be one of ja, en"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
	s.persist(ctx, persist.KeyLanguage)
	return lang, nil
}

func (s *Shop) Language() enums.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

func (s *Shop) withProfile(user session.User) session.User {
	if p, ok := s.profiles[user.Username]; ok {
		user.Profile = p
	}
	return user
}
