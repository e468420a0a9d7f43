package database

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/repositories"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// VerificationAdapter stores one-time passcodes in DynamoDB with a TTL
// on expiresAt.
type VerificationAdapter struct {
	db    DynamoAPI
	table string
}

// NewVerificationAdapter creates a new verification adapter.
func NewVerificationAdapter(db DynamoAPI, table string) repositories.VerificationRepository {
	return &VerificationAdapter{db: db, table: table}
}

// Put upserts the code for an email; a fresh code replaces any pending one.
func (a *VerificationAdapter) Put(ctx context.Context, verification *entities.Verification) error {
	item, err := attributevalue.MarshalMap(verification)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal verification", err)
	}

	_, err = a.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: awsStr(a.table),
		Item:      item,
	})
	if err != nil {
		return apperrors.NewInternalError("failed to store verification", err)
	}
	return nil
}

// Get fetches the pending code for an email.
func (a *VerificationAdapter) Get(ctx context.Context, email string) (*entities.Verification, error) {
	out, err := a.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: awsStr(a.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch verification", err)
	}
	if out.Item == nil {
		return nil, apperrors.NewNotFoundError("no pending verification")
	}

	var verification entities.Verification
	if err := attributevalue.UnmarshalMap(out.Item, &verification); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal verification", err)
	}
	return &verification, nil
}

// Delete removes a consumed or invalidated code.
func (a *VerificationAdapter) Delete(ctx context.Context, email string) error {
	_, err := a.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: awsStr(a.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return apperrors.NewInternalError("failed to delete verification", err)
	}
	return nil
}
