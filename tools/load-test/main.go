package main

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

func main() {
	// Configuration
	url := "http://localhost:8080/api/v1/status"
	contentType := "application/json"

	numEmployees := 5000
	concurrency := 50 // Number of concurrent requests to avoid local port exhaustion

	fmt.Printf("Starting load test: %d employees punching start+finish to %s with concurrency %d\n",
		numEmployees, url, concurrency)

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency) // Semaphore to limit concurrency

	var successCount int64
	var failCount int64

	startTime := time.Now()

	for i := 0; i < numEmployees; i++ {
		wg.Add(1)
		sem <- struct{}{} // Acquire token

		employeeID := fmt.Sprintf("%d", 100000+i)
		workOrderID := fmt.Sprintf("%d", i%500)

		go func(empID, woID string) {
			defer wg.Done()
			defer func() { <-sem }() // Release token

			punches := []string{
				fmt.Sprintf(`{"employeeId": %q, "workOrderId": %q, "statusCode": 1}`, empID, woID),
				fmt.Sprintf(`{"employeeId": %q, "workOrderId": %q, "statusCode": 5, "confirmed": true}`, empID, woID),
			}

			for _, payload := range punches {
				resp, err := http.Post(url, contentType, bytes.NewBufferString(payload))
				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
				resp.Body.Close()
			}
		}(employeeID, workOrderID)
	}

	wg.Wait()
	elapsed := time.Since(startTime)

	total := successCount + failCount
	fmt.Printf("Done in %s: %d requests, %d ok, %d failed (%.1f req/s)\n",
		elapsed, total, successCount, failCount, float64(total)/elapsed.Seconds())
}
