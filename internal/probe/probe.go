package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// fetchResult is one observed document fetch.
type fetchResult struct {
	doc    any
	status int
	err    error
}

// Run executes the full probe: health check, concurrent fetches, verification.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		Requested: config.Requests,
		StartTime: time.Now(),
	}

	log.Printf("probing %s with %d requests over %d workers", config.BaseURL, config.Requests, config.Workers)

	client := &http.Client{Timeout: config.Timeout}

	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	results, err := fetchDocuments(ctx, client, config, stats)
	if err != nil {
		return fmt.Errorf("document fetch failed: %w", err)
	}

	if err := verifyResults(config, results, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Printf("probe completed: %d/%d successful, %d mismatched, took %s",
		stats.Successful, stats.Requested, stats.Mismatched, stats.Duration)
	return nil
}

// checkServiceHealth verifies the service answers its health endpoint.
func checkServiceHealth(ctx context.Context, client *http.Client, config *Config) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.BaseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %d", resp.StatusCode)
	}
	return nil
}

// fetchDocuments performs the configured number of concurrent GETs against
// the document route.
func fetchDocuments(ctx context.Context, client *http.Client, config *Config, stats *Stats) ([]fetchResult, error) {
	results := make([]fetchResult, config.Requests)
	jobs := make(chan int)

	var successful, failed int64

	var wg sync.WaitGroup
	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fetchOne(ctx, client, config)
				if results[i].err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("request %d failed: %v", i, results[i].err)
					}
					continue
				}
				atomic.AddInt64(&successful, 1)
			}
		}()
	}

	for i := 0; i < config.Requests; i++ {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, fmt.Errorf("probe canceled: %w", ctx.Err())
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	stats.Successful = int(successful)
	stats.Failed = int(failed)
	return results, nil
}

// fetchOne performs a single document fetch and decodes the body.
func fetchOne(ctx context.Context, client *http.Client, config *Config) fetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.BaseURL+"/", nil)
	if err != nil {
		return fetchResult{err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := client.Do(req)
	if err != nil {
		return fetchResult{err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchResult{status: resp.StatusCode, err: fmt.Errorf("failed to read body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return fetchResult{status: resp.StatusCode, err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)}
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fetchResult{status: resp.StatusCode, err: fmt.Errorf("response is not valid JSON: %w", err)}
	}

	return fetchResult{doc: doc, status: resp.StatusCode}
}

// verifyResults checks that every successful fetch observed the same parsed
// document. Key order is irrelevant: comparison happens on decoded values.
func verifyResults(config *Config, results []fetchResult, stats *Stats) error {
	var reference any
	haveReference := false

	for i, res := range results {
		if res.err != nil {
			continue
		}
		if !haveReference {
			reference = res.doc
			haveReference = true
			continue
		}
		if !reflect.DeepEqual(res.doc, reference) {
			stats.Mismatched++
			if config.Verbose {
				log.Printf("request %d observed a different document", i)
			}
		}
	}

	if !haveReference {
		return fmt.Errorf("no successful fetch to compare against")
	}
	if stats.Mismatched > 0 {
		return fmt.Errorf("%d of %d responses disagreed with the first", stats.Mismatched, stats.Successful)
	}

	log.Printf("all %d successful responses carry an identical document", stats.Successful)
	return nil
}
