package health_test

import (
	"context"
	"fmt"
	"time"

	"github.com/031wnstjd/appkit/pkg/health"
)

// mockStore simulates a local store registry with health check support
type mockStore struct {
	available bool
}

func (s *mockStore) HealthCheck(ctx context.Context) error {
	if !s.available {
		return fmt.Errorf("local storage unavailable")
	}
	return nil
}

// Example_basicUsage demonstrates basic health check registry usage
func Example_basicUsage() {
	registry := health.NewRegistry()

	// Register a simple ping check (always healthy)
	registry.Register(health.NewPingChecker("liveness"))

	ctx := context.Background()
	result := registry.Check(ctx)

	fmt.Printf("Overall Status: %s\n", result.Status)
	fmt.Printf("Number of Checks: %d\n", len(result.Checks))
	fmt.Printf("Is Healthy: %v\n", result.IsHealthy())

	// Output:
	// Overall Status: healthy
	// Number of Checks: 1
	// Is Healthy: true
}

// Example_storeCheck demonstrates registering a local store health check
func Example_storeCheck() {
	registry := health.NewRegistry()

	store := &mockStore{available: true}
	registry.Register(health.NewLocalStoreChecker("localstore", store))

	ctx := context.Background()
	result, err := registry.CheckOne(ctx, "localstore")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Check Name: %s\n", result.Name)
	fmt.Printf("Status: %s\n", result.Status)

	// Output:
	// Check Name: localstore
	// Status: healthy
}

// Example_customCheck demonstrates registering a custom health check
func Example_customCheck() {
	registry := health.NewRegistry()

	registry.RegisterFunc("disk-space", func(ctx context.Context) health.CheckResult {
		freeSpacePercent := 75

		if freeSpacePercent < 10 {
			return health.CheckResult{
				Name:      "disk-space",
				Status:    health.StatusUnhealthy,
				Error:     "disk space critically low",
				Timestamp: time.Now(),
			}
		} else if freeSpacePercent < 20 {
			return health.CheckResult{
				Name:      "disk-space",
				Status:    health.StatusDegraded,
				Message:   "disk space running low",
				Timestamp: time.Now(),
			}
		}

		return health.CheckResult{
			Name:      "disk-space",
			Status:    health.StatusHealthy,
			Message:   fmt.Sprintf("%d%% free", freeSpacePercent),
			Timestamp: time.Now(),
		}
	})

	ctx := context.Background()
	result := registry.Check(ctx)

	fmt.Printf("Overall Status: %s\n", result.Status)

	// Output:
	// Overall Status: healthy
}

// Example_unhealthyCheck demonstrates handling unhealthy checks
func Example_unhealthyCheck() {
	registry := health.NewRegistry()

	registry.Register(health.NewPingChecker("liveness"))

	unavailableStore := &mockStore{available: false}
	registry.Register(health.NewAdapterChecker("localstore", unavailableStore, 5*time.Second))

	ctx := context.Background()
	result := registry.Check(ctx)

	fmt.Printf("Overall Status: %s\n", result.Status)
	fmt.Printf("Is Healthy: %v\n", result.IsHealthy())

	for _, check := range result.Checks {
		if check.Status == health.StatusUnhealthy {
			fmt.Printf("Unhealthy Check: %s - %s\n", check.Name, check.Error)
		}
	}

	// Output:
	// Overall Status: unhealthy
	// Is Healthy: false
	// Unhealthy Check: localstore - local storage unavailable
}
