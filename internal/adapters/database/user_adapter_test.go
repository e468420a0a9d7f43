package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecogai/pollution-backend/internal/adapters/database"
	"github.com/ecogai/pollution-backend/internal/domain/entities"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// stubDynamo scripts responses per call so adapter behavior can be
// tested without a live table.
type stubDynamo struct {
	putFn    func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	getFn    func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	updateFn func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	deleteFn func(*dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)
	scanFn   func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
}

func (s *stubDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if s.putFn != nil {
		return s.putFn(params)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (s *stubDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if s.getFn != nil {
		return s.getFn(params)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (s *stubDynamo) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if s.updateFn != nil {
		return s.updateFn(params)
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (s *stubDynamo) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if s.deleteFn != nil {
		return s.deleteFn(params)
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (s *stubDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if s.scanFn != nil {
		return s.scanFn(params)
	}
	return &dynamodb.ScanOutput{}, nil
}

func testUser() *entities.User {
	return &entities.User{
		ID:               "user-1",
		Email:            "maria@example.com",
		Name:             "Maria Santos",
		HealthConditions: []string{"asthma"},
		IsActive:         true,
		CreatedAt:        time.Now().UTC().Truncate(time.Second),
	}
}

func TestUserAdapter_Create_GuardsAgainstOverwrite(t *testing.T) {
	var captured *dynamodb.PutItemInput
	stub := &stubDynamo{
		putFn: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			captured = in
			return &dynamodb.PutItemOutput{}, nil
		},
	}
	adapter := database.NewUserAdapter(stub, "users")

	require.NoError(t, adapter.Create(context.Background(), testUser()))
	require.NotNil(t, captured)
	assert.Equal(t, "users", *captured.TableName)
	assert.Equal(t, "attribute_not_exists(userId)", *captured.ConditionExpression)
}

func TestUserAdapter_Create_ConflictOnExistingRow(t *testing.T) {
	stub := &stubDynamo{
		putFn: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		},
	}
	adapter := database.NewUserAdapter(stub, "users")

	err := adapter.Create(context.Background(), testUser())
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.StatusCode(err))
}

func TestUserAdapter_GetByID(t *testing.T) {
	user := testUser()
	item, err := attributevalue.MarshalMap(user)
	require.NoError(t, err)

	stub := &stubDynamo{
		getFn: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			key := in.Key["userId"].(*types.AttributeValueMemberS)
			assert.Equal(t, "user-1", key.Value)
			return &dynamodb.GetItemOutput{Item: item}, nil
		},
	}
	adapter := database.NewUserAdapter(stub, "users")

	fetched, err := adapter.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, user.Email, fetched.Email)
	assert.Equal(t, user.HealthConditions, fetched.HealthConditions)
}

func TestUserAdapter_GetByID_NotFound(t *testing.T) {
	adapter := database.NewUserAdapter(&stubDynamo{}, "users")

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.StatusCode(err))
}

func TestUserAdapter_GetByEmail_UsesFilteredScan(t *testing.T) {
	user := testUser()
	item, err := attributevalue.MarshalMap(user)
	require.NoError(t, err)

	stub := &stubDynamo{
		scanFn: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			assert.Equal(t, "email = :email", *in.FilterExpression)
			return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{item}}, nil
		},
	}
	adapter := database.NewUserAdapter(stub, "users")

	fetched, err := adapter.GetByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", fetched.ID)
}

func TestUserAdapter_Update_BuildsPartialExpression(t *testing.T) {
	var captured *dynamodb.UpdateItemInput
	updated := testUser()
	updated.Phone = "+639171234567"
	attrs, err := attributevalue.MarshalMap(updated)
	require.NoError(t, err)

	stub := &stubDynamo{
		updateFn: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			captured = in
			return &dynamodb.UpdateItemOutput{Attributes: attrs}, nil
		},
	}
	adapter := database.NewUserAdapter(stub, "users")

	phone := "+639171234567"
	result, err := adapter.Update(context.Background(), "user-1", entities.ProfileUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, result.Phone)

	require.NotNil(t, captured)
	expr := *captured.UpdateExpression
	assert.Contains(t, expr, "updatedAt = :updatedAt")
	assert.Contains(t, expr, "#phone = :phone")
	assert.NotContains(t, expr, "#name")
	assert.Equal(t, "attribute_exists(userId)", *captured.ConditionExpression)
}

func TestUserAdapter_Update_NotFound(t *testing.T) {
	stub := &stubDynamo{
		updateFn: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		},
	}
	adapter := database.NewUserAdapter(stub, "users")

	name := "Maria"
	_, err := adapter.Update(context.Background(), "missing", entities.ProfileUpdate{Name: &name})
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.StatusCode(err))
}
