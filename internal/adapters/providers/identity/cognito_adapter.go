package identity

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/ecogai/pollution-backend/internal/domain/providers"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// CognitoAPI is the slice of the Cognito IDP client the adapter uses.
type CognitoAPI interface {
	AdminCreateUser(ctx context.Context, params *cognitoidentityprovider.AdminCreateUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminCreateUserOutput, error)
	AdminSetUserPassword(ctx context.Context, params *cognitoidentityprovider.AdminSetUserPasswordInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminSetUserPasswordOutput, error)
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
	GlobalSignOut(ctx context.Context, params *cognitoidentityprovider.GlobalSignOutInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GlobalSignOutOutput, error)
}

// CognitoAdapter implements IdentityProvider against a Cognito user
// pool.
type CognitoAdapter struct {
	client     CognitoAPI
	userPoolID string
	clientID   string
}

// NewCognitoAdapter creates a new Cognito identity adapter.
func NewCognitoAdapter(client CognitoAPI, userPoolID, clientID string) providers.IdentityProvider {
	return &CognitoAdapter{client: client, userPoolID: userPoolID, clientID: clientID}
}

// CreateUser registers the user with a permanent password so the first
// sign-in does not hit the NEW_PASSWORD_REQUIRED challenge. The welcome
// email is suppressed; OTP verification is our own flow.
func (a *CognitoAdapter) CreateUser(ctx context.Context, email, password, name string) error {
	_, err := a.client.AdminCreateUser(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId:    aws.String(a.userPoolID),
		Username:      aws.String(email),
		MessageAction: types.MessageActionTypeSuppress,
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
			{Name: aws.String("name"), Value: aws.String(name)},
		},
	})
	if err != nil {
		var exists *types.UsernameExistsException
		if errors.As(err, &exists) {
			return apperrors.NewConflictError("An account with this email already exists")
		}
		var invalidPassword *types.InvalidPasswordException
		if errors.As(err, &invalidPassword) {
			return apperrors.NewValidationError("Password does not meet requirements")
		}
		return apperrors.NewExternalError("failed to create user", err)
	}

	_, err = a.client.AdminSetUserPassword(ctx, &cognitoidentityprovider.AdminSetUserPasswordInput{
		UserPoolId: aws.String(a.userPoolID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  true,
	})
	if err != nil {
		var invalidPassword *types.InvalidPasswordException
		if errors.As(err, &invalidPassword) {
			return apperrors.NewValidationError("Password does not meet requirements")
		}
		return apperrors.NewExternalError("failed to set password", err)
	}
	return nil
}

// SignIn exchanges credentials for a token set.
func (a *CognitoAdapter) SignIn(ctx context.Context, email, password string) (*providers.Credentials, error) {
	out, err := a.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(a.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		var notFound *types.UserNotFoundException
		if errors.As(err, &notAuthorized) || errors.As(err, &notFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, apperrors.NewExternalError("sign in failed", err)
	}
	if out.AuthenticationResult == nil {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	result := out.AuthenticationResult
	return &providers.Credentials{
		AccessToken:  aws.ToString(result.AccessToken),
		IDToken:      aws.ToString(result.IdToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

// SignOut revokes every session tied to the access token.
func (a *CognitoAdapter) SignOut(ctx context.Context, accessToken string) error {
	_, err := a.client.GlobalSignOut(ctx, &cognitoidentityprovider.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		var notAuthorized *types.NotAuthorizedException
		if errors.As(err, &notAuthorized) {
			// Token already expired or revoked; treat as signed out.
			return nil
		}
		return apperrors.NewExternalError("sign out failed", err)
	}
	return nil
}
