// internal/adapters/out/auth/firebase_account.go
package auth

import (
	"context"
	"fmt"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/Madman-dev/ZZin/internal/application/usecase"
)

// FirebaseAccountService creates email/password accounts with the Admin SDK.
type FirebaseAccountService struct {
	Client *fbauth.Client
}

var _ usecase.AccountService = (*FirebaseAccountService)(nil)

func NewFirebaseAccountService(client *fbauth.Client) *FirebaseAccountService {
	return &FirebaseAccountService{Client: client}
}

func (s *FirebaseAccountService) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if s.Client == nil {
		return "", fmt.Errorf("firebase auth client is nil")
	}
	params := (&fbauth.UserToCreate{}).
		Email(strings.TrimSpace(email)).
		Password(password)

	rec, err := s.Client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return "", usecase.ErrEmailTaken
		}
		return "", fmt.Errorf("create firebase user: %w", err)
	}
	return rec.UID, nil
}
