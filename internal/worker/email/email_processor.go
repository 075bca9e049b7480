package email

import (
	"context"
	"encoding/json"

	"fieldops.service/internal/core"
	"fieldops.service/internal/ports/messaging"
	"fieldops.service/internal/worker"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
)

const maxAttempts = 5

// EmailProcessor handles jobs from the email queue, turning shift summary
// events into supervisor mails.
type EmailProcessor struct {
	emailService core.EmailService
	recipient    string
}

// NewProcessor sets up a new processor for handling email-related jobs.
func NewProcessor(emailService core.EmailService, recipient string) *EmailProcessor {
	return &EmailProcessor{
		emailService: emailService,
		recipient:    recipient,
	}
}

// Process sends one summary mail. Transient send failures are retried with a
// flat delay until the attempt budget runs out.
func (p *EmailProcessor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.ShiftSummaryEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal shift summary event")
		return false, 0, err // Do not retry on malformed message
	}

	if err := p.emailService.SendShiftSummary(ctx, p.recipient, event); err != nil {
		if worker.ReceiveCount(msg) >= maxAttempts {
			log.Ctx(ctx).Error().Err(err).
				Str("employee_id", event.EmployeeID).
				Msg("Giving up on shift summary email after max attempts")
			return false, 0, err
		}
		return true, 60, err
	}

	log.Ctx(ctx).Info().
		Str("employee_id", event.EmployeeID).
		Str("work_order_id", event.WorkOrderID).
		Msg("Shift summary email sent")
	return false, 0, nil
}
