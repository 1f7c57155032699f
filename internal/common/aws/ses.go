// internal/common/aws/ses.go

// Package aws holds the thin SES and SNS clients used to deliver eligibility
// reports. Each wrapper exposes exactly the one call the notification worker
// needs, so the worker can depend on a narrow interface and tests can
// substitute fakes.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
)

// SESClient sends eligibility report emails through Amazon SES.
type SESClient struct {
	client *ses.Client
}

// NewSESClient builds an SES client for the region using the default AWS
// credential chain.
func NewSESClient(ctx context.Context, region string) (*SESClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config for ses in %s: %w", region, err)
	}
	return &SESClient{client: ses.NewFromConfig(cfg)}, nil
}

// SendEmail delivers one rendered report. It satisfies the notification
// worker's EmailSender interface.
func (s *SESClient) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	return s.client.SendEmail(ctx, input)
}
