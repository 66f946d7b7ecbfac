package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8080"
	progressEvery  = 50 // Print a progress line every N completed requests
)

type Config struct {
	BaseURL     string
	EventID     string
	TierID      string
	Price       string // Tier price in minor units, must match the tier exactly
	Quantity    int64
	Requests    int
	Concurrency int
	Timeout     time.Duration // Timeout for each HTTP request
	PayerOffset int           // First payer index, lets repeated runs use fresh payers
	OutputFile  string        // Output markdown file path (optional)
	Debug       bool
}

// RequestResult captures the outcome of a single ticket purchase
type RequestResult struct {
	Index      int
	StatusCode int
	ErrorCode  string // Error code from the response body, empty on success
	Latency    time.Duration
	Err        error // Transport-level failure
}

// RunStats aggregates all request outcomes for reporting
type RunStats struct {
	Target      string
	EventID     string
	TierID      string
	Requests    int
	Concurrency int
	Issued      int
	Rejected    int
	Errored     int
	ByStatus    map[int]int
	ByErrorCode map[string]int
	Latencies   []time.Duration
	WallTime    time.Duration
	Interrupted bool
}

func main() {
	cfg := parseFlags()

	if cfg.EventID == "" || cfg.TierID == "" || cfg.Price == "" {
		fmt.Println("Error: event-id, tier-id and price are required")
		flag.Usage()
		os.Exit(1)
	}

	price, ok := new(big.Int).SetString(cfg.Price, 10)
	if !ok || price.Sign() < 0 {
		fmt.Printf("Error: price must be a non-negative base-10 integer, got %q\n", cfg.Price)
		os.Exit(1)
	}
	paid := new(big.Int).Mul(price, big.NewInt(cfg.Quantity))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	fmt.Printf("Target:  %s\n", cfg.BaseURL)
	fmt.Printf("Event:   %s (tier: %s, quantity: %d, paid: %s)\n", cfg.EventID, cfg.TierID, cfg.Quantity, paid.String())
	fmt.Printf("Load:    %d requests, %d concurrent\n", cfg.Requests, cfg.Concurrency)
	fmt.Printf("\nRunning benchmark...\n")

	stats := runBenchmark(ctx, cfg, paid)

	banner := "BENCHMARK RESULTS"
	if stats.Interrupted {
		banner = "INTERRUPTED - PARTIAL RESULTS"
	}
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println(banner)
	fmt.Println(strings.Repeat("=", 80))
	printRunStats(stats)

	if cfg.OutputFile != "" {
		if err := writeMarkdownReport(cfg.OutputFile, stats); err != nil {
			fmt.Printf("\n⚠️  Warning: Failed to write markdown file: %v\n", err)
		} else {
			fmt.Printf("\n✓ Report written to: %s\n", cfg.OutputFile)
		}
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.BaseURL, "url", defaultBaseURL, "Box office API base URL")
	flag.StringVar(&cfg.EventID, "event-id", "", "Event to purchase from (required)")
	flag.StringVar(&cfg.TierID, "tier-id", "", "Tier to purchase from (required)")
	flag.StringVar(&cfg.Price, "price", "", "Tier price in minor units (required)")
	flag.Int64Var(&cfg.Quantity, "quantity", 1, "Tickets per purchase")
	flag.IntVar(&cfg.Requests, "requests", 100, "Total number of purchase requests")
	flag.IntVar(&cfg.Concurrency, "concurrency", 5, "Number of concurrent workers")
	flag.IntVar(&cfg.PayerOffset, "payer-offset", 0, "First payer index, repeated runs should offset past prior payers")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")

	var timeoutSeconds int
	flag.IntVar(&timeoutSeconds, "timeout", 30, "Timeout for each request in seconds")

	configFile := flag.String("config", "", "Path to config file (optional, defaults to "+GetDefaultConfigPath()+")")
	saveConfig := flag.Bool("save", false, "Save the base URL to the config file for future runs")

	flag.Parse()

	cfg.Timeout = time.Duration(timeoutSeconds) * time.Second

	if cfg.Requests <= 0 {
		cfg.Requests = 100
	}
	if cfg.Quantity <= 0 {
		cfg.Quantity = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.Concurrency > 50 {
		cfg.Concurrency = 50 // Cap to avoid overwhelming the target
	}

	// Load from config file if present
	path := *configFile
	if path == "" {
		path = GetDefaultConfigPath()
	}
	fileCfg, err := LoadConfig(path)
	if err != nil {
		if *configFile != "" {
			fmt.Printf("Warning: failed to load config file: %v\n", err)
		}
	} else if cfg.BaseURL == defaultBaseURL && fileCfg.BaseURL != "" {
		cfg.BaseURL = fileCfg.BaseURL
	}

	if *saveConfig {
		if err := SaveConfig(path, &BenchmarkConfig{BaseURL: cfg.BaseURL}); err != nil {
			fmt.Printf("Warning: failed to save config file: %v\n", err)
		}
	}

	return cfg
}

// runBenchmark drives the worker pool and aggregates results.
// Workers issue ticket purchases until the request budget is spent or
// the context is canceled; each purchase uses a distinct payer address
// so per-payer rate limits and holdings do not collide between requests.
func runBenchmark(ctx context.Context, cfg *Config, paid *big.Int) *RunStats {
	stats := &RunStats{
		Target:      cfg.BaseURL,
		EventID:     cfg.EventID,
		TierID:      cfg.TierID,
		Requests:    cfg.Requests,
		Concurrency: cfg.Concurrency,
		ByStatus:    make(map[int]int),
		ByErrorCode: make(map[string]int),
	}

	client := &http.Client{Timeout: cfg.Timeout}

	workChan := make(chan int, cfg.Concurrency*2)
	resultChan := make(chan RequestResult, cfg.Concurrency*2)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for index := range workChan {
				result := issueTicket(ctx, client, cfg, index, paid)
				if cfg.Debug {
					fmt.Printf("[DEBUG] Worker %d request %d: status=%d code=%q latency=%s err=%v\n",
						workerID, index, result.StatusCode, result.ErrorCode, formatDuration(result.Latency), result.Err)
				}
				resultChan <- result
			}
		}(i)
	}

	// Feed work to workers
	go func() {
		defer close(workChan)
		for i := 0; i < cfg.Requests; i++ {
			select {
			case workChan <- cfg.PayerOffset + i:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Close the result channel once all workers are done
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	start := time.Now()
	completed := 0
	for result := range resultChan {
		completed++
		switch {
		case result.Err != nil:
			stats.Errored++
		case result.StatusCode == http.StatusCreated:
			stats.Issued++
		default:
			stats.Rejected++
		}
		if result.Err == nil {
			stats.ByStatus[result.StatusCode]++
			if result.ErrorCode != "" {
				stats.ByErrorCode[result.ErrorCode]++
			}
			stats.Latencies = append(stats.Latencies, result.Latency)
		}

		if !cfg.Debug && completed%progressEvery == 0 {
			fmt.Printf("  %d/%d requests completed (issued: %d, rejected: %d, errors: %d)\n",
				completed, cfg.Requests, stats.Issued, stats.Rejected, stats.Errored)
		}
	}
	stats.WallTime = time.Since(start)
	stats.Interrupted = ctx.Err() != nil

	return stats
}

// issueTicket performs one purchase against POST /api/v1/tickets
func issueTicket(ctx context.Context, client *http.Client, cfg *Config, index int, paid *big.Int) RequestResult {
	result := RequestResult{Index: index}

	body, err := json.Marshal(map[string]interface{}{
		"event_id": cfg.EventID,
		"tier_id":  cfg.TierID,
		"payer":    payerAddress(index),
		"quantity": cfg.Quantity,
		"paid":     paid.String(),
	})
	if err != nil {
		result.Err = err
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/api/v1/tickets", bytes.NewReader(body))
	if err != nil {
		result.Err = err
		return result
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	result.Latency = time.Since(start)
	if err != nil {
		result.Err = err
		return result
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusCreated {
		var errBody struct {
			Code string `json:"code"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			result.ErrorCode = errBody.Code
		}
	}

	return result
}

// payerAddress derives a deterministic, well-formed payer address from an index.
// Index 0 maps to 0x...01 so the zero address is never produced.
func payerAddress(index int) string {
	return fmt.Sprintf("0x%040x", index+1)
}

// percentile returns the nearest-rank percentile of a sorted latency slice
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(p/100*float64(len(sorted))+0.5) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}

func printRunStats(stats *RunStats) {
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Target:       %s\n", stats.Target)
	fmt.Printf("Event:        %s (tier: %s)\n", stats.EventID, stats.TierID)
	fmt.Printf("Requests:     %d (concurrency: %d)\n", stats.Requests, stats.Concurrency)
	fmt.Printf("Wall Time:    %s\n", formatDuration(stats.WallTime))
	completed := stats.Issued + stats.Rejected + stats.Errored
	if completed > 0 && stats.WallTime > 0 {
		fmt.Printf("Throughput:   %s\n", formatRate(completed, stats.WallTime))
	}
	fmt.Println()

	emoji := statusEmoji(stats.Issued, stats.Rejected+stats.Errored, 0)
	fmt.Printf("Outcomes: %s\n", emoji)
	fmt.Printf("  Issued:     %d (%s)\n", stats.Issued, percentageString(stats.Issued, completed))
	if stats.Rejected > 0 {
		fmt.Printf("  Rejected:   %d (%s)\n", stats.Rejected, percentageString(stats.Rejected, completed))
	}
	if stats.Errored > 0 {
		fmt.Printf("  Transport:  %d (%s)\n", stats.Errored, percentageString(stats.Errored, completed))
	}
	fmt.Println()

	if len(stats.ByStatus) > 0 {
		fmt.Println("By HTTP status:")
		for _, status := range sortedStatusKeys(stats.ByStatus) {
			fmt.Printf("  %d: %d\n", status, stats.ByStatus[status])
		}
		fmt.Println()
	}

	if len(stats.ByErrorCode) > 0 {
		fmt.Println("By error code:")
		for _, code := range sortedCodeKeys(stats.ByErrorCode) {
			fmt.Printf("  %s: %d\n", code, stats.ByErrorCode[code])
		}
		fmt.Println()
	}

	if len(stats.Latencies) > 0 {
		sorted := make([]time.Duration, len(stats.Latencies))
		copy(sorted, stats.Latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		fmt.Println("Latency:")
		fmt.Printf("  p50: %s\n", formatDuration(percentile(sorted, 50)))
		fmt.Printf("  p90: %s\n", formatDuration(percentile(sorted, 90)))
		fmt.Printf("  p99: %s\n", formatDuration(percentile(sorted, 99)))
		fmt.Printf("  max: %s\n", formatDuration(sorted[len(sorted)-1]))
	}

	fmt.Println(strings.Repeat("-", 80))
}

func sortedStatusKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortedCodeKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// writeMarkdownReport writes a markdown report of the benchmark run
func writeMarkdownReport(filepath string, stats *RunStats) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	_, _ = fmt.Fprintf(file, "# Ticket Purchase Benchmark Report\n\n")
	_, _ = fmt.Fprintf(file, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	_, _ = fmt.Fprintf(file, "## Run\n\n")
	_, _ = fmt.Fprintf(file, "| Property | Value |\n")
	_, _ = fmt.Fprintf(file, "|----------|-------|\n")
	_, _ = fmt.Fprintf(file, "| **Target** | `%s` |\n", stats.Target)
	_, _ = fmt.Fprintf(file, "| **Event** | `%s` |\n", stats.EventID)
	_, _ = fmt.Fprintf(file, "| **Tier** | `%s` |\n", stats.TierID)
	_, _ = fmt.Fprintf(file, "| **Requests** | %d |\n", stats.Requests)
	_, _ = fmt.Fprintf(file, "| **Concurrency** | %d |\n", stats.Concurrency)
	_, _ = fmt.Fprintf(file, "| **Wall Time** | %s |\n", formatDuration(stats.WallTime))
	completed := stats.Issued + stats.Rejected + stats.Errored
	if completed > 0 && stats.WallTime > 0 {
		_, _ = fmt.Fprintf(file, "| **Throughput** | %s |\n", formatRate(completed, stats.WallTime))
	}
	if stats.Interrupted {
		_, _ = fmt.Fprintf(file, "| **Interrupted** | yes |\n")
	}
	_, _ = fmt.Fprintf(file, "\n")

	_, _ = fmt.Fprintf(file, "## Outcomes\n\n")
	_, _ = fmt.Fprintf(file, "| Outcome | Count | Share |\n")
	_, _ = fmt.Fprintf(file, "|---------|-------|-------|\n")
	_, _ = fmt.Fprintf(file, "| **Issued** | %d | %s |\n", stats.Issued, percentageString(stats.Issued, completed))
	_, _ = fmt.Fprintf(file, "| **Rejected** | %d | %s |\n", stats.Rejected, percentageString(stats.Rejected, completed))
	_, _ = fmt.Fprintf(file, "| **Transport errors** | %d | %s |\n", stats.Errored, percentageString(stats.Errored, completed))
	_, _ = fmt.Fprintf(file, "\n")

	if len(stats.ByStatus) > 0 {
		_, _ = fmt.Fprintf(file, "## By HTTP Status\n\n")
		_, _ = fmt.Fprintf(file, "| Status | Count |\n")
		_, _ = fmt.Fprintf(file, "|--------|-------|\n")
		for _, status := range sortedStatusKeys(stats.ByStatus) {
			_, _ = fmt.Fprintf(file, "| %d | %d |\n", status, stats.ByStatus[status])
		}
		_, _ = fmt.Fprintf(file, "\n")
	}

	if len(stats.ByErrorCode) > 0 {
		_, _ = fmt.Fprintf(file, "## By Error Code\n\n")
		_, _ = fmt.Fprintf(file, "| Code | Count |\n")
		_, _ = fmt.Fprintf(file, "|------|-------|\n")
		for _, code := range sortedCodeKeys(stats.ByErrorCode) {
			_, _ = fmt.Fprintf(file, "| `%s` | %d |\n", code, stats.ByErrorCode[code])
		}
		_, _ = fmt.Fprintf(file, "\n")
	}

	if len(stats.Latencies) > 0 {
		sorted := make([]time.Duration, len(stats.Latencies))
		copy(sorted, stats.Latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		_, _ = fmt.Fprintf(file, "## Latency\n\n")
		_, _ = fmt.Fprintf(file, "| Percentile | Latency |\n")
		_, _ = fmt.Fprintf(file, "|------------|--------|\n")
		_, _ = fmt.Fprintf(file, "| p50 | %s |\n", formatDuration(percentile(sorted, 50)))
		_, _ = fmt.Fprintf(file, "| p90 | %s |\n", formatDuration(percentile(sorted, 90)))
		_, _ = fmt.Fprintf(file, "| p99 | %s |\n", formatDuration(percentile(sorted, 99)))
		_, _ = fmt.Fprintf(file, "| max | %s |\n", formatDuration(sorted[len(sorted)-1]))
	}

	return nil
}
