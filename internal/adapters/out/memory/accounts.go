// internal/adapters/out/memory/accounts.go
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Madman-dev/ZZin/internal/application/usecase"
)

// TokenTTL is the lifetime of issued tokens, in seconds.
const TokenTTL = 3600

type account struct {
	uid   string
	email string
	hash  []byte
}

type session struct {
	acc      *account
	issuedAt time.Time
}

func (s session) expired(now time.Time) bool {
	return !now.Before(s.issuedAt.Add(TokenTTL * time.Second))
}

// Accounts is an in-process auth backend for the memory store mode. It
// creates accounts, signs them in with opaque tokens and verifies those
// tokens.
type Accounts struct {
	mu      sync.RWMutex
	byEmail map[string]*account
	tokens  map[string]session
	cost    int
	now     func() time.Time
}

var (
	_ usecase.AccountService = (*Accounts)(nil)
	_ usecase.PasswordSignIn = (*Accounts)(nil)
)

var ErrInvalidToken = errors.New("memory auth: invalid token")

func NewAccounts() *Accounts {
	return &Accounts{
		byEmail: make(map[string]*account),
		tokens:  make(map[string]session),
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
	}
}

// WithNow replaces the clock, for tests.
func (a *Accounts) WithNow(now func() time.Time) *Accounts {
	if now != nil {
		a.now = now
	}
	return a
}

// WithCost lowers the bcrypt cost, for tests.
func (a *Accounts) WithCost(cost int) *Accounts {
	a.cost = cost
	return a
}

func (a *Accounts) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.byEmail[key]; ok {
		return "", usecase.ErrEmailTaken
	}
	acc := &account{uid: uuid.NewString(), email: key, hash: hash}
	a.byEmail[key] = acc
	return acc.uid, nil
}

func (a *Accounts) SignIn(ctx context.Context, email, password string) (usecase.SignInResult, error) {
	if err := ctx.Err(); err != nil {
		return usecase.SignInResult{}, err
	}
	key := strings.ToLower(strings.TrimSpace(email))

	a.mu.RLock()
	acc, ok := a.byEmail[key]
	a.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return usecase.SignInResult{}, usecase.ErrInvalidCredentials
	}

	token := uuid.NewString()
	now := a.now()
	a.mu.Lock()
	for t, s := range a.tokens {
		if s.expired(now) {
			delete(a.tokens, t)
		}
	}
	a.tokens[token] = session{acc: acc, issuedAt: now}
	a.mu.Unlock()

	return usecase.SignInResult{
		UID:          acc.uid,
		Email:        acc.email,
		IDToken:      token,
		RefreshToken: uuid.NewString(),
		ExpiresIn:    TokenTTL,
	}, nil
}

// VerifyIDToken accepts unexpired tokens issued by SignIn. Expired tokens
// are dropped.
func (a *Accounts) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := strings.TrimSpace(idToken)
	now := a.now()

	a.mu.Lock()
	s, ok := a.tokens[key]
	if ok && s.expired(now) {
		delete(a.tokens, key)
		ok = false
	}
	a.mu.Unlock()
	if !ok {
		return nil, ErrInvalidToken
	}
	return &fbauth.Token{
		UID:      s.acc.uid,
		IssuedAt: s.issuedAt.Unix(),
		Expires:  s.issuedAt.Add(TokenTTL * time.Second).Unix(),
		Claims:   map[string]interface{}{"email": s.acc.email},
	}, nil
}
