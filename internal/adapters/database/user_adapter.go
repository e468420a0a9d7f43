package database

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/repositories"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// UserAdapter implements user profile persistence in DynamoDB.
type UserAdapter struct {
	db    DynamoAPI
	table string
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(db DynamoAPI, table string) repositories.UserRepository {
	return &UserAdapter{db: db, table: table}
}

// Create inserts a profile row, refusing to overwrite an existing user.
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal user", err)
	}

	_, err = a.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           awsStr(a.table),
		Item:                item,
		ConditionExpression: awsStr("attribute_not_exists(userId)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return apperrors.NewConflictError("user already exists")
		}
		return apperrors.NewInternalError("failed to create user", err)
	}
	return nil
}

// GetByID fetches a profile by its userId key.
func (a *UserAdapter) GetByID(ctx context.Context, userID string) (*entities.User, error) {
	out, err := a.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: awsStr(a.table),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch user", err)
	}
	if out.Item == nil {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	var user entities.User
	if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal user", err)
	}
	return &user, nil
}

// GetByEmail scans for a profile by email. The users table is small and
// email lookups only happen on auth paths, so a filtered scan is enough.
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	out, err := a.db.Scan(ctx, &dynamodb.ScanInput{
		TableName:        awsStr(a.table),
		FilterExpression: awsStr("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch user by email", err)
	}
	if len(out.Items) == 0 {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	var user entities.User
	if err := attributevalue.UnmarshalMap(out.Items[0], &user); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal user", err)
	}
	return &user, nil
}

// Update applies a partial profile update and returns the new row. The
// update expression is built field by field so absent fields stay put.
func (a *UserAdapter) Update(ctx context.Context, userID string, update entities.ProfileUpdate) (*entities.User, error) {
	expr := "SET updatedAt = :updatedAt"
	names := map[string]string{}
	values := map[string]types.AttributeValue{
		":updatedAt": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
	}

	set := func(field string, av types.AttributeValue) {
		expr += ", #" + field + " = :" + field
		names["#"+field] = field
		values[":"+field] = av
	}

	if update.Name != nil {
		set("name", &types.AttributeValueMemberS{Value: *update.Name})
	}
	if update.Phone != nil {
		set("phone", &types.AttributeValueMemberS{Value: *update.Phone})
	}
	if update.HealthConditions != nil {
		av, err := attributevalue.Marshal(*update.HealthConditions)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to marshal health conditions", err)
		}
		set("healthConditions", av)
	}
	if update.ProfileImage != nil {
		set("profileImage", &types.AttributeValueMemberS{Value: *update.ProfileImage})
	}
	if update.Barangay != nil {
		set("barangay", &types.AttributeValueMemberS{Value: *update.Barangay})
	}
	if update.City != nil {
		set("city", &types.AttributeValueMemberS{Value: *update.City})
	}

	input := &dynamodb.UpdateItemInput{
		TableName: awsStr(a.table),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression:          awsStr(expr),
		ExpressionAttributeValues: values,
		ConditionExpression:       awsStr("attribute_exists(userId)"),
		ReturnValues:              types.ReturnValueAllNew,
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}

	out, err := a.db.UpdateItem(ctx, input)
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.NewInternalError("failed to update user", err)
	}

	var user entities.User
	if err := attributevalue.UnmarshalMap(out.Attributes, &user); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal updated user", err)
	}
	return &user, nil
}
