package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecogai/pollution-backend/internal/adapters/providers/identity"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

type stubCognito struct {
	createFn      func(*cognitoidentityprovider.AdminCreateUserInput) (*cognitoidentityprovider.AdminCreateUserOutput, error)
	setPasswordFn func(*cognitoidentityprovider.AdminSetUserPasswordInput) (*cognitoidentityprovider.AdminSetUserPasswordOutput, error)
	initiateFn    func(*cognitoidentityprovider.InitiateAuthInput) (*cognitoidentityprovider.InitiateAuthOutput, error)
	signOutFn     func(*cognitoidentityprovider.GlobalSignOutInput) (*cognitoidentityprovider.GlobalSignOutOutput, error)
}

func (s *stubCognito) AdminCreateUser(ctx context.Context, params *cognitoidentityprovider.AdminCreateUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminCreateUserOutput, error) {
	if s.createFn != nil {
		return s.createFn(params)
	}
	return &cognitoidentityprovider.AdminCreateUserOutput{}, nil
}

func (s *stubCognito) AdminSetUserPassword(ctx context.Context, params *cognitoidentityprovider.AdminSetUserPasswordInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminSetUserPasswordOutput, error) {
	if s.setPasswordFn != nil {
		return s.setPasswordFn(params)
	}
	return &cognitoidentityprovider.AdminSetUserPasswordOutput{}, nil
}

func (s *stubCognito) InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error) {
	if s.initiateFn != nil {
		return s.initiateFn(params)
	}
	return &cognitoidentityprovider.InitiateAuthOutput{}, nil
}

func (s *stubCognito) GlobalSignOut(ctx context.Context, params *cognitoidentityprovider.GlobalSignOutInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GlobalSignOutOutput, error) {
	if s.signOutFn != nil {
		return s.signOutFn(params)
	}
	return &cognitoidentityprovider.GlobalSignOutOutput{}, nil
}

func TestCreateUser_SuppressesWelcomeAndSetsPermanentPassword(t *testing.T) {
	var createInput *cognitoidentityprovider.AdminCreateUserInput
	var passwordInput *cognitoidentityprovider.AdminSetUserPasswordInput
	stub := &stubCognito{
		createFn: func(in *cognitoidentityprovider.AdminCreateUserInput) (*cognitoidentityprovider.AdminCreateUserOutput, error) {
			createInput = in
			return &cognitoidentityprovider.AdminCreateUserOutput{}, nil
		},
		setPasswordFn: func(in *cognitoidentityprovider.AdminSetUserPasswordInput) (*cognitoidentityprovider.AdminSetUserPasswordOutput, error) {
			passwordInput = in
			return &cognitoidentityprovider.AdminSetUserPasswordOutput{}, nil
		},
	}
	adapter := identity.NewCognitoAdapter(stub, "pool-id", "client-id")

	err := adapter.CreateUser(context.Background(), "maria@example.com", "password123", "Maria Santos")
	require.NoError(t, err)

	require.NotNil(t, createInput)
	assert.Equal(t, "pool-id", *createInput.UserPoolId)
	assert.Equal(t, "maria@example.com", *createInput.Username)
	assert.Equal(t, types.MessageActionTypeSuppress, createInput.MessageAction)

	attrs := map[string]string{}
	for _, attr := range createInput.UserAttributes {
		attrs[*attr.Name] = *attr.Value
	}
	assert.Equal(t, "true", attrs["email_verified"])
	assert.Equal(t, "Maria Santos", attrs["name"])

	require.NotNil(t, passwordInput)
	assert.Equal(t, "password123", *passwordInput.Password)
	assert.True(t, passwordInput.Permanent)
}

func TestCreateUser_ExistingEmailConflicts(t *testing.T) {
	stub := &stubCognito{
		createFn: func(in *cognitoidentityprovider.AdminCreateUserInput) (*cognitoidentityprovider.AdminCreateUserOutput, error) {
			return nil, &types.UsernameExistsException{}
		},
	}
	adapter := identity.NewCognitoAdapter(stub, "pool-id", "client-id")

	err := adapter.CreateUser(context.Background(), "maria@example.com", "password123", "Maria")
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.StatusCode(err))
}

func TestCreateUser_WeakPasswordIsValidationError(t *testing.T) {
	stub := &stubCognito{
		setPasswordFn: func(in *cognitoidentityprovider.AdminSetUserPasswordInput) (*cognitoidentityprovider.AdminSetUserPasswordOutput, error) {
			return nil, &types.InvalidPasswordException{}
		},
	}
	adapter := identity.NewCognitoAdapter(stub, "pool-id", "client-id")

	err := adapter.CreateUser(context.Background(), "maria@example.com", "weak", "Maria")
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.StatusCode(err))
}

func TestSignIn_ReturnsTokens(t *testing.T) {
	stub := &stubCognito{
		initiateFn: func(in *cognitoidentityprovider.InitiateAuthInput) (*cognitoidentityprovider.InitiateAuthOutput, error) {
			assert.Equal(t, types.AuthFlowTypeUserPasswordAuth, in.AuthFlow)
			assert.Equal(t, "maria@example.com", in.AuthParameters["USERNAME"])
			return &cognitoidentityprovider.InitiateAuthOutput{
				AuthenticationResult: &types.AuthenticationResultType{
					AccessToken:  aws.String("access-abc"),
					IdToken:      aws.String("id-abc"),
					RefreshToken: aws.String("refresh-abc"),
					ExpiresIn:    3600,
				},
			}, nil
		},
	}
	adapter := identity.NewCognitoAdapter(stub, "pool-id", "client-id")

	creds, err := adapter.SignIn(context.Background(), "maria@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "access-abc", creds.AccessToken)
	assert.Equal(t, int32(3600), creds.ExpiresIn)
}

func TestSignIn_BadCredentialsAreUnauthorized(t *testing.T) {
	for name, upstream := range map[string]error{
		"not authorized": &types.NotAuthorizedException{},
		"user not found": &types.UserNotFoundException{},
	} {
		t.Run(name, func(t *testing.T) {
			stub := &stubCognito{
				initiateFn: func(in *cognitoidentityprovider.InitiateAuthInput) (*cognitoidentityprovider.InitiateAuthOutput, error) {
					return nil, upstream
				},
			}
			adapter := identity.NewCognitoAdapter(stub, "pool-id", "client-id")

			_, err := adapter.SignIn(context.Background(), "maria@example.com", "wrong")
			require.Error(t, err)
			assert.Equal(t, 401, apperrors.StatusCode(err))
		})
	}
}

func TestSignIn_MissingAuthResultIsUnauthorized(t *testing.T) {
	adapter := identity.NewCognitoAdapter(&stubCognito{}, "pool-id", "client-id")

	_, err := adapter.SignIn(context.Background(), "maria@example.com", "password123")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.StatusCode(err))
}

func TestSignOut_ExpiredTokenIsAlreadySignedOut(t *testing.T) {
	stub := &stubCognito{
		signOutFn: func(in *cognitoidentityprovider.GlobalSignOutInput) (*cognitoidentityprovider.GlobalSignOutOutput, error) {
			return nil, &types.NotAuthorizedException{}
		},
	}
	adapter := identity.NewCognitoAdapter(stub, "pool-id", "client-id")

	assert.NoError(t, adapter.SignOut(context.Background(), "stale-token"))
}

func TestSignOut_OtherFailuresSurface(t *testing.T) {
	stub := &stubCognito{
		signOutFn: func(in *cognitoidentityprovider.GlobalSignOutInput) (*cognitoidentityprovider.GlobalSignOutOutput, error) {
			return nil, errors.New("service unavailable")
		},
	}
	adapter := identity.NewCognitoAdapter(stub, "pool-id", "client-id")

	err := adapter.SignOut(context.Background(), "token")
	require.Error(t, err)
	assert.Equal(t, 502, apperrors.StatusCode(err))
}
