// internal/common/aws/sns.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSClient sends eligibility report SMSes through Amazon SNS.
type SNSClient struct {
	client *sns.Client
}

// NewSNSClient builds an SNS client for the region using the default AWS
// credential chain.
func NewSNSClient(ctx context.Context, region string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config for sns in %s: %w", region, err)
	}
	return &SNSClient{client: sns.NewFromConfig(cfg)}, nil
}

// Publish delivers one report SMS. It satisfies the notification worker's
// SMSSender interface.
func (s *SNSClient) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	return s.client.Publish(ctx, input)
}
