// Entry point for the labor queue worker: forwards labor cost records to the
// legacy payroll API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fieldops.service/internal/config"
	"fieldops.service/internal/worker"
	"fieldops.service/internal/worker/payroll"
	"fieldops.service/internal/worker/payrollapi"
	"fieldops.service/pkg/aws"
	"fieldops.service/pkg/logger"
	"fieldops.service/pkg/telemetry"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	logger.Setup(cfg.IsLocalDev)

	shutdownTracer, err := telemetry.InitTracer("fieldops-payroll-worker", cfg.IsLocalDev)
	if err != nil {
		log.Fatalf("Failed to init tracer: %v", err)
	}
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	// AWS SDK Config
	awsCfg, err := aws.NewAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("unable to load SDK config: %v", err)
	}

	// Initialize Dependencies
	sqsClient := sqs.NewFromConfig(awsCfg)

	payrollClient := payrollapi.NewHTTPClient(cfg.PayrollAPIURL)
	processor := payroll.NewProcessor(payrollClient)

	// Start Worker
	ctx, cancel := context.WithCancel(context.Background())
	app := worker.NewWorker(sqsClient, cfg.LaborSQSQueueURL, processor)

	go func() {
		app.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down worker...")

	// Cancel the context to signal the worker to stop polling.
	cancel()

	log.Println("Worker exited gracefully")
}
