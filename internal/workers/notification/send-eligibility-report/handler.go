// internal/workers/notification/send-eligibility-report/handler.go
package sendeligibilityreport

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"scheme-workers/internal/common/errors"
	"scheme-workers/internal/common/logger"
	"scheme-workers/internal/common/metrics"
)

const TaskType = "send-eligibility-report"

// EmailSender and SMSSender are satisfied by the SES and SNS client
// wrappers; tests substitute fakes.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Handler struct {
	config *Config
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
}

func NewHandler(config *Config, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		email:  email,
		sms:    sms,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job",
		map[string]interface{}{
			"jobKey":      job.Key,
			"workflowKey": job.ProcessInstanceKey,
		})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) {
			h.failJob(client, job, errors.BPMNErrorMapping[stdErr.Code], stdErr.Message)
			return
		}
		h.failJob(client, job, "NOTIFICATION_ERROR", err.Error())
		return
	}

	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if strings.TrimSpace(input.ReportText) == "" {
		return nil, fmt.Errorf("reportText is required")
	}

	switch input.Channel {
	case ChannelEmail:
		return h.sendEmail(ctx, input)
	case ChannelSMS:
		return h.sendSMS(ctx, input)
	default:
		return nil, fmt.Errorf("unknown channel %q", input.Channel)
	}
}

func (h *Handler) sendEmail(ctx context.Context, input *Input) (*Output, error) {
	if h.email == nil {
		return nil, errors.NewNotificationFailedError(ChannelEmail,
			fmt.Errorf("email channel not configured"))
	}
	if !isValidEmail(input.ToEmail) {
		return nil, fmt.Errorf("invalid 'to' email address: %s", input.ToEmail)
	}

	subject := input.Subject
	if subject == "" {
		subject = "Your scheme eligibility report"
	}

	res, err := h.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(h.config.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{input.ToEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(input.ReportText)},
			},
		},
	})
	if err != nil {
		return nil, errors.NewNotificationFailedError(ChannelEmail, err)
	}

	h.logger.Info("eligibility report emailed", map[string]interface{}{
		"to":        input.ToEmail,
		"messageId": aws.ToString(res.MessageId),
	})

	return &Output{
		Success:   true,
		Channel:   ChannelEmail,
		MessageID: aws.ToString(res.MessageId),
		SentAt:    time.Now().UTC(),
	}, nil
}

func (h *Handler) sendSMS(ctx context.Context, input *Input) (*Output, error) {
	if h.sms == nil {
		return nil, errors.NewNotificationFailedError(ChannelSMS,
			fmt.Errorf("sms channel not configured"))
	}
	if !isValidPhone(input.ToPhone) {
		return nil, fmt.Errorf("invalid 'to' phone number: %s", input.ToPhone)
	}

	res, err := h.sms.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(input.ToPhone),
		Message:     aws.String(truncateSMS(input.ReportText)),
	})
	if err != nil {
		return nil, errors.NewNotificationFailedError(ChannelSMS, err)
	}

	h.logger.Info("eligibility report sent by sms", map[string]interface{}{
		"to":        input.ToPhone,
		"messageId": aws.ToString(res.MessageId),
	})

	return &Output{
		Success:   true,
		Channel:   ChannelSMS,
		MessageID: aws.ToString(res.MessageId),
		SentAt:    time.Now().UTC(),
	}, nil
}

// smsLimit keeps reports inside a concatenated-SMS budget; longer reports
// belong on the email channel.
const smsLimit = 480

func truncateSMS(text string) string {
	runes := []rune(text)
	if len(runes) <= smsLimit {
		return text
	}
	return string(runes[:smsLimit-3]) + "..."
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	return strings.Contains(parts[1], ".")
}

func isValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") || len(phone) < 11 {
		return false
	}
	for _, r := range phone[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed",
		map[string]interface{}{
			"jobKey":       job.Key,
			"errorCode":    errorCode,
			"errorMessage": errorMessage,
		})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{"error": err})
	}
}
