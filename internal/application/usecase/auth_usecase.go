// internal/application/usecase/auth_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Madman-dev/ZZin/internal/domain/document"
	userdom "github.com/Madman-dev/ZZin/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidEmail       = errors.New("auth: invalid email")
	ErrWeakPassword       = errors.New("auth: password too short")
)

// MinPasswordLength matches the auth backend's own lower bound.
const MinPasswordLength = 6

// SignUpInput is the registration form.
type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	PhoneNum string `json:"phoneNum"`
}

// AuthUsecase registers accounts and signs users in. The users/<uid>
// document never stores the password; credentials stay with the auth backend.
type AuthUsecase struct {
	accounts AccountService
	signIn   PasswordSignIn
	docs     DocumentWriter
	timeout  time.Duration
	log      zerolog.Logger
}

func NewAuthUsecase(accounts AccountService, signIn PasswordSignIn, docs DocumentWriter, logger zerolog.Logger) *AuthUsecase {
	return &AuthUsecase{
		accounts: accounts,
		signIn:   signIn,
		docs:     docs,
		timeout:  DefaultCallTimeout,
		log:      logger.With().Str("component", "auth").Logger(),
	}
}

// WithCallTimeout bounds each call to the auth backend.
func (u *AuthUsecase) WithCallTimeout(d time.Duration) *AuthUsecase {
	if d > 0 {
		u.timeout = d
	}
	return u
}

// SignUp creates the auth account and then the user document.
// If the document write fails the account stays; the error carries the uid.
func (u *AuthUsecase) SignUp(ctx context.Context, in SignUpInput) (userdom.User, error) {
	if u.accounts == nil || u.docs == nil {
		return userdom.User{}, errors.New("auth: account service not configured")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return userdom.User{}, err
	}
	if len(in.Password) < MinPasswordLength {
		return userdom.User{}, ErrWeakPassword
	}
	// validate the profile before the account exists
	if _, err := userdom.New("pending", in.Nickname, in.PhoneNum); err != nil {
		return userdom.User{}, err
	}

	cctx, cancel := withCallTimeout(ctx, u.timeout)
	uid, err := u.accounts.CreateAccount(cctx, email, in.Password)
	cancel()
	if err != nil {
		return userdom.User{}, accountError("create-account", err)
	}

	usr, err := userdom.New(uid, in.Nickname, in.PhoneNum)
	if err != nil {
		return userdom.User{}, err
	}
	fields, err := document.FieldsOf(usr, userdom.Schema)
	if err != nil {
		return userdom.User{}, fmt.Errorf("auth: encode user %s: %w", uid, err)
	}
	if err := u.docs.Write(ctx, userdom.Collection, uid, fields); err != nil {
		u.log.Error().Err(err).Str("uid", uid).Msg("[auth] account created but user document write failed")
		return userdom.User{}, fmt.Errorf("auth: write user %s: %w", uid, err)
	}

	u.log.Info().Str("uid", uid).Msg("[auth] user registered")
	return usr, nil
}

// SignIn verifies credentials and returns the issued tokens.
func (u *AuthUsecase) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	if u.signIn == nil {
		return SignInResult{}, errors.New("auth: sign-in not configured")
	}
	e, err := normalizeEmail(email)
	if err != nil {
		return SignInResult{}, ErrInvalidCredentials
	}
	if password == "" {
		return SignInResult{}, ErrInvalidCredentials
	}

	cctx, cancel := withCallTimeout(ctx, u.timeout)
	defer cancel()

	res, err := u.signIn.SignIn(cctx, e, password)
	if err != nil {
		return SignInResult{}, accountError("sign-in", err)
	}
	return res, nil
}

// accountError keeps the auth sentinels and reports anything else from the
// auth backend, deadlines included, as a transport failure.
func accountError(op string, err error) error {
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrWeakPassword):
		return err
	default:
		return &document.TransportError{Op: op, Collection: "accounts", Err: err}
	}
}

func normalizeEmail(s string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(s))
	if e == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "", ErrInvalidEmail
	}
	return e, nil
}
