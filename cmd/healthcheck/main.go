// Command healthcheck probes the API's /health endpoint and exits non-zero unless
// the service reports itself healthy. It is the container HEALTHCHECK binary.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// HealthResponse matches the API envelope around the health payload.
type HealthResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Status   string `json:"status"`
		Services map[string]struct {
			Status string `json:"status"`
		} `json:"services"`
	} `json:"data"`
}

func main() {
	if err := check(healthURL()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println("Health check passed")
}

func healthURL() string {
	if url := os.Getenv("HEALTHCHECK_URL"); url != "" {
		return url
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return "http://localhost:" + port + "/health"
}

func check(url string) error {
	client := &http.Client{Timeout: 3 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "healthcheck/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("failed to parse health response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || health.Data.Status != "healthy" {
		for name, dep := range health.Data.Services {
			if dep.Status != "connected" {
				return fmt.Errorf("service is %s: %s is %s", health.Data.Status, name, dep.Status)
			}
		}
		return fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}
	return nil
}
