// Command sessionkit-probe logs into a backend and hammers the session
// manager from concurrent workers to demonstrate refresh coalescing.
// Point it at a staging auth service, never production.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerfront/sessionkit"
)

func main() {
	var (
		baseURL     = flag.String("base-url", "", "backend base URL (required)")
		email       = flag.String("email", "", "login email (required)")
		password    = flag.String("password", "", "login password (required)")
		concurrency = flag.Int("concurrency", 32, "number of concurrent workers")
		ops         = flag.Int("ops", 1000, "EnsureValidToken calls per worker")
		verbose     = flag.Bool("v", false, "log session internals to stderr")
	)
	flag.Parse()

	if *baseURL == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "base-url, email, and password are required")
		os.Exit(2)
	}
	if *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "concurrency and ops must be > 0")
		os.Exit(2)
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	session, err := sessionkit.New().
		WithBaseURL(*baseURL).
		WithLogger(logger).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build session: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	ctx := context.Background()
	result := session.Login(ctx, *email, *password)
	if !result.Success {
		fmt.Fprintf(os.Stderr, "login failed: %s\n", result.Error)
		os.Exit(1)
	}
	fmt.Printf("logged in as %s (%s)\n", result.User.Email, result.User.Role)

	var failures atomic.Uint64
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(*concurrency)
	for i := 0; i < *concurrency; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < *ops; j++ {
				if !session.EnsureValidToken(ctx) {
					failures.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	total := uint64(*concurrency) * uint64(*ops)
	fmt.Printf("%d EnsureValidToken calls in %s (%d failures)\n", total, elapsed, failures.Load())

	snap := session.MetricsSnapshot()
	fmt.Printf("refresh: %d issued, %d coalesced, %d failed\n",
		snap.Counters[sessionkit.MetricRefreshSuccess]+snap.Counters[sessionkit.MetricRefreshFailure],
		snap.Counters[sessionkit.MetricRefreshCoalesced],
		snap.Counters[sessionkit.MetricRefreshFailure],
	)

	session.Logout(ctx)
}
