package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"fieldops.service/internal/ports/messaging"
	"fieldops.service/internal/worker"
	"fieldops.service/internal/worker/payrollapi"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// PayrollProcessor handles jobs from the labor queue, which involves calling
// the legacy payroll API. It uses a circuit breaker to avoid hammering the
// legacy system if it's having issues.
type PayrollProcessor struct {
	payrollAPI payrollapi.PayrollClient
	cb         *gobreaker.CircuitBreaker
}

// NewProcessor creates a new processor for the labor queue. It sets up a
// circuit breaker to protect the payroll API from being overwhelmed.
func NewProcessor(payrollAPI payrollapi.PayrollClient) *PayrollProcessor {
	settings := gobreaker.Settings{
		Name:        "Payroll-API",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is bigger than 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &PayrollProcessor{
		payrollAPI: payrollAPI,
		cb:         gobreaker.NewCircuitBreaker(settings),
	}
}

// Process forwards one labor cost record through the circuit breaker. Failed
// calls are redelivered by SQS with an exponential backoff derived from the
// message's receive count.
func (p *PayrollProcessor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.LaborCostEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal labor cost event")
		return false, 0, err // Do not retry on malformed message
	}

	log.Ctx(ctx).Info().
		Str("employee_id", event.EmployeeID).
		Str("work_order_id", event.WorkOrderID).
		Str("worked_time", event.WorkedTime).
		Float64("labor_cost", event.LaborCost).
		Msg("Forwarding labor cost to payroll")

	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.payrollAPI.RecordLaborCost(ctx, event)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			log.Ctx(ctx).Warn().Msg("Circuit breaker is OPEN; skipping payroll API call")
		}
		delay := calculateBackoff(worker.ReceiveCount(msg))
		return true, delay, err
	}

	return false, 0, nil
}

// calculateBackoff determines how long to wait before retrying a failed job.
// It increases the delay exponentially with each delivery attempt.
func calculateBackoff(attempt int) int32 {
	backoff := int32(math.Pow(2, float64(attempt)) * 10)
	if backoff > 3600 {
		return 3600 // max at 1 hour
	}
	return backoff
}
