package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/spf13/pflag"
)

// CreateRequest is the POST /countdowns payload
type CreateRequest struct {
	Duration      string `json:"duration"`
	GranularityMs int64  `json:"granularityMs,omitempty"`
	AutoStart     bool   `json:"autoStart"`
	Label         string `json:"label,omitempty"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Scenario     string
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	StatusCounts       map[int]int
	ScenarioStats      map[string]int
	Lock               sync.Mutex
}

// Scenario is one kind of countdown the load test creates
type Scenario struct {
	Name          string
	Duration      string
	GranularityMs int64
}

func main() {
	concurrency := pflag.IntP("concurrency", "c", 5, "Number of concurrent goroutines")
	totalRequests := pflag.IntP("requests", "n", 100, "Total number of countdowns to create")
	baseURL := pflag.String("url", "http://localhost:8080", "Base URL for the API")
	autoStart := pflag.Bool("start", true, "Start countdowns on creation")
	delay := pflag.Duration("delay", 100*time.Millisecond, "Delay between requests of one worker")
	pflag.Parse()

	scenarios := []Scenario{
		{"Short mm:ss", "00:05", 100},
		{"Medium mm:ss", "01:30", 250},
		{"Long hh:mm:ss", "00:10:00", 1000},
		{"Default tick", "00:30", 0},
	}

	fmt.Printf("Load testing %s\n", *baseURL)
	fmt.Printf("Countdown scenarios: %d\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %v\n", *delay)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		StatusCounts:    make(map[int]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		ScenarioStats:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *autoStart, *delay, scenarios, jobs, results)
		}()
	}

	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			record(stats, result)
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)
	printResults(stats)
}

func worker(baseURL string, autoStart bool, delay time.Duration, scenarios []Scenario,
	jobs <-chan int, results chan<- TestResult) {

	client := &http.Client{Timeout: 10 * time.Second}
	apiURL := baseURL + "/countdowns"

	for jobID := range jobs {
		if delay > 0 {
			time.Sleep(delay)
		}

		scenario := scenarios[rand.Intn(len(scenarios))]
		body, err := json.Marshal(CreateRequest{
			Duration:      scenario.Duration,
			GranularityMs: scenario.GranularityMs,
			AutoStart:     autoStart,
			Label:         fmt.Sprintf("load-%d", jobID),
		})
		if err != nil {
			results <- TestResult{Scenario: scenario.Name, Error: err}
			continue
		}

		startTime := time.Now()
		resp, err := client.Post(apiURL, "application/json", bytes.NewReader(body))
		result := TestResult{
			Scenario:     scenario.Name,
			ResponseTime: time.Since(startTime),
		}

		if err != nil {
			result.Error = err
		} else {
			result.StatusCode = resp.StatusCode
			result.Success = resp.StatusCode == http.StatusCreated
			if !result.Success {
				result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
			}
			_ = resp.Body.Close()
		}

		results <- result
	}
}

func record(stats *TestStats, result TestResult) {
	stats.Lock.Lock()
	defer stats.Lock.Unlock()

	stats.ScenarioStats[result.Scenario]++
	if result.StatusCode != 0 {
		stats.StatusCounts[result.StatusCode]++
	}

	if result.Success {
		stats.SuccessfulRequests++
	} else {
		stats.FailedRequests++
		errMsg := "unknown"
		if result.Error != nil {
			errMsg = result.Error.Error()
		}
		stats.ErrorCounts[errMsg]++
	}

	if result.ResponseTime == 0 {
		return
	}
	stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
	stats.TotalResponseTime += result.ResponseTime
	if result.ResponseTime < stats.MinResponseTime {
		stats.MinResponseTime = result.ResponseTime
	}
	if result.ResponseTime > stats.MaxResponseTime {
		stats.MaxResponseTime = result.ResponseTime
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *TestStats) {
	rps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	} else {
		stats.MinResponseTime = 0
	}

	sorted := append([]time.Duration(nil), stats.ResponseTimes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Created Countdowns:  %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Created per second:  %.2f\n", rps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", percentile(sorted, 50))
	fmt.Printf("P90 Response:        %v\n", percentile(sorted, 90))
	fmt.Printf("P95 Response:        %v\n", percentile(sorted, 95))
	fmt.Printf("P99 Response:        %v\n", percentile(sorted, 99))

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		fmt.Printf("%-15s: %d requests (%.1f%%)\n", scenario, count,
			float64(count)/float64(stats.TotalRequests)*100)
	}

	if len(stats.StatusCounts) > 0 {
		fmt.Println("\n----------------- STATUS CODES -----------------")
		for code, count := range stats.StatusCounts {
			fmt.Printf("HTTP %d: %d\n", code, count)
		}
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}
	fmt.Println("================================================")
}
