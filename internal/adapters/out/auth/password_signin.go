// internal/adapters/out/auth/password_signin.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/Madman-dev/ZZin/internal/application/usecase"
)

// PasswordSignIn verifies email/password through the Identity Toolkit
// verifyPassword endpoint, authenticated by the project's Web API key.
type PasswordSignIn struct {
	svc *identitytoolkit.Service
}

var _ usecase.PasswordSignIn = (*PasswordSignIn)(nil)

func NewPasswordSignIn(ctx context.Context, apiKey string, opts ...option.ClientOption) (*PasswordSignIn, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("identitytoolkit: api key is empty")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("identitytoolkit.NewService: %w", err)
	}
	return &PasswordSignIn{svc: svc}, nil
}

func (p *PasswordSignIn) SignIn(ctx context.Context, email, password string) (usecase.SignInResult, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}
	resp, err := p.svc.Relyingparty.VerifyPassword(req).Context(ctx).Do()
	if err != nil {
		return usecase.SignInResult{}, mapSignInError(err)
	}
	return usecase.SignInResult{
		UID:          resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

// credential failures come back as 400 with a reason code in the message
var credentialCodes = []string{
	"EMAIL_NOT_FOUND",
	"INVALID_PASSWORD",
	"INVALID_LOGIN_CREDENTIALS",
	"USER_DISABLED",
	"INVALID_EMAIL",
}

func mapSignInError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusBadRequest {
		for _, c := range credentialCodes {
			if strings.Contains(gerr.Message, c) {
				return usecase.ErrInvalidCredentials
			}
		}
	}
	return fmt.Errorf("verifyPassword: %w", err)
}
