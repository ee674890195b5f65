package graph

import (
	"context"

	"doc-assistant-be/internal/dto"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/service"

	"github.com/graph-gophers/graphql-go"
)

type AuthResolver struct {
	authService service.IAuthService
	logger      logger.ILogger
}

func (r *AuthResolver) Me(ctx context.Context) (*userNode, error) {
	user, err := r.authService.CurrentUser(ctx, UserID(ctx))
	if err != nil {
		return nil, failure(r.logger, "me", err)
	}
	return newUserNode(user), nil
}

func (r *AuthResolver) Register(ctx context.Context, args struct {
	Email    string
	Password string
	FullName *string
}) (*authPayload, error) {
	req := &dto.RegisterRequest{Email: args.Email, Password: args.Password}
	if args.FullName != nil {
		req.FullName = *args.FullName
	}
	resp, err := r.authService.Register(ctx, req)
	if err != nil {
		return nil, failure(r.logger, "register", err)
	}
	return &authPayload{resp: resp}, nil
}

func (r *AuthResolver) TokenAuth(ctx context.Context, args struct {
	Email    string
	Password string
}) (*authPayload, error) {
	resp, err := r.authService.Login(ctx, &dto.LoginRequest{Email: args.Email, Password: args.Password})
	if err != nil {
		return nil, failure(r.logger, "tokenAuth", err)
	}
	return &authPayload{resp: resp}, nil
}

func (r *AuthResolver) VerifyToken(ctx context.Context, args struct{ Token string }) (*verifyTokenPayload, error) {
	resp, err := r.authService.VerifyToken(ctx, &dto.TokenRequest{Token: args.Token})
	if err != nil {
		return nil, failure(r.logger, "verifyToken", err)
	}
	return &verifyTokenPayload{payload: &tokenPayloadNode{
		email:     resp.Email,
		expiresAt: graphql.Time{Time: resp.ExpiresAt},
	}}, nil
}

func (r *AuthResolver) RefreshToken(ctx context.Context, args struct{ Token string }) (*authPayload, error) {
	resp, err := r.authService.RefreshToken(ctx, &dto.TokenRequest{Token: args.Token})
	if err != nil {
		return nil, failure(r.logger, "refreshToken", err)
	}
	return &authPayload{resp: resp}, nil
}
