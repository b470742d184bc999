package auth

import (
	"context"
	"time"

	firebase "github.com/isqad/firebase-auth-service/pkg/service"
	"google.golang.org/grpc"
)

// VerifyingProvider checks the delegate's token against the auth service
// before attaching it to a request
type VerifyingProvider struct {
	Addr     string
	Delegate CredentialProvider
}

func (p *VerifyingProvider) Token(ctx context.Context) (string, error) {
	token, err := p.Delegate.Token(ctx)
	if err != nil {
		return "", err
	}

	conn, err := grpc.Dial(p.Addr, []grpc.DialOption{
		grpc.WithInsecure(),
		grpc.WithBlock(),
	}...)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	authClient := firebase.NewAuthClient(conn)
	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := authClient.Verify(verifyCtx, &firebase.Token{Token: token}); err != nil {
		return "", err
	}

	return token, nil
}
