// Package awsx centralises AWS SDK configuration and service client
// construction, with an endpoint override for localstack development.
package awsx

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/location"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/ecogai/pollution-backend/pkg/config"
)

// Clients bundles every AWS service client the backend uses so wiring
// in cmd/api stays flat.
type Clients struct {
	Dynamo   *dynamodb.Client
	S3       *s3.Client
	Cognito  *cognitoidentityprovider.Client
	Location *location.Client
	Bedrock  *bedrockruntime.Client
	Polly    *polly.Client
	SNS      *sns.Client
}

// Load resolves the shared aws.Config for the given region, honouring
// the AWS_ENDPOINT_URL override (e.g. http://localstack:4566).
func Load(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awscfg.WithBaseEndpoint(cfg.Endpoint))
	}
	return awscfg.LoadDefaultConfig(ctx, opts...)
}

// NewClients builds all service clients from one resolved config.
func NewClients(awsCfg aws.Config, cfg config.AWSConfig) *Clients {
	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		// Localstack serves buckets on the path, not a subdomain.
		s3Opts = append(s3Opts, func(o *s3.Options) { o.UsePathStyle = true })
	}
	return &Clients{
		Dynamo:   dynamodb.NewFromConfig(awsCfg),
		S3:       s3.NewFromConfig(awsCfg, s3Opts...),
		Cognito:  cognitoidentityprovider.NewFromConfig(awsCfg),
		Location: location.NewFromConfig(awsCfg),
		Bedrock:  bedrockruntime.NewFromConfig(awsCfg),
		Polly:    polly.NewFromConfig(awsCfg),
		SNS:      sns.NewFromConfig(awsCfg),
	}
}
