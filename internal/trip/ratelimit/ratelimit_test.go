package ratelimit_test

import (
	"testing"
	"time"

	"github.com/minjae-dev/trips/internal/trip/ratelimit"
)

func TestLimiter_Allow(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		period     time.Duration
		key        string
		calls      int
		wantPassed int
	}{
		{
			name:       "all requests within limit",
			limit:      5,
			period:     time.Minute,
			key:        "10.0.0.1",
			calls:      5,
			wantPassed: 5,
		},
		{
			name:       "exceed limit",
			limit:      3,
			period:     time.Minute,
			key:        "10.0.0.2",
			calls:      5,
			wantPassed: 3,
		},
		{
			name:       "single request",
			limit:      10,
			period:     time.Minute,
			key:        "10.0.0.3",
			calls:      1,
			wantPassed: 1,
		},
		{
			name:       "zero limit blocks all",
			limit:      0,
			period:     time.Minute,
			key:        "10.0.0.4",
			calls:      3,
			wantPassed: 0,
		},
		{
			name:       "empty key",
			limit:      2,
			period:     time.Minute,
			key:        "",
			calls:      3,
			wantPassed: 2,
		},
		{
			name:       "negative limit blocks all",
			limit:      -5,
			period:     time.Minute,
			key:        "10.0.0.5",
			calls:      3,
			wantPassed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ratelimit.New(tt.limit, tt.period)
			defer l.Close()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if l.Allow(tt.key) {
					passed++
				}
			}

			if passed != tt.wantPassed {
				t.Errorf("Allow() passed %d requests, want %d", passed, tt.wantPassed)
			}
		})
	}
}

func TestLimiter_Allow_WindowReset(t *testing.T) {
	l := ratelimit.New(2, 50*time.Millisecond)
	defer l.Close()

	key := "10.0.0.1"

	if !l.Allow(key) {
		t.Error("first request should be allowed")
	}
	if !l.Allow(key) {
		t.Error("second request should be allowed")
	}
	if l.Allow(key) {
		t.Error("third request should be blocked")
	}

	time.Sleep(60 * time.Millisecond)

	if !l.Allow(key) {
		t.Error("request after window reset should be allowed")
	}
	if !l.Allow(key) {
		t.Error("second request after window reset should be allowed")
	}
}

func TestLimiter_Allow_SlotsFreeGradually(t *testing.T) {
	l := ratelimit.New(2, 100*time.Millisecond)
	defer l.Close()

	key := "10.0.0.1"

	if !l.Allow(key) {
		t.Error("first request should be allowed")
	}
	time.Sleep(60 * time.Millisecond)
	if !l.Allow(key) {
		t.Error("second request should be allowed")
	}
	if l.Allow(key) {
		t.Error("third request should be blocked")
	}

	// Only the first entry has aged out of the window by now, so exactly
	// one slot opens up rather than the whole allowance resetting.
	time.Sleep(60 * time.Millisecond)
	if !l.Allow(key) {
		t.Error("request after the oldest entry expired should be allowed")
	}
	if l.Allow(key) {
		t.Error("window still holds two recent entries, request should be blocked")
	}
}

func TestLimiter_Allow_MultipleKeys(t *testing.T) {
	l := ratelimit.New(2, time.Minute)
	defer l.Close()

	tests := []struct {
		key        string
		wantPassed int
	}{
		{key: "10.0.0.1", wantPassed: 2},
		{key: "10.0.0.2", wantPassed: 2},
		{key: "10.0.0.3", wantPassed: 2},
	}

	for _, tt := range tests {
		passed := 0
		for i := 0; i < 3; i++ {
			if l.Allow(tt.key) {
				passed++
			}
		}
		if passed != tt.wantPassed {
			t.Errorf("key %s: passed %d requests, want %d", tt.key, passed, tt.wantPassed)
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l := ratelimit.New(100, time.Minute)
	defer l.Close()

	key := "10.0.0.1"
	start := make(chan struct{})
	results := make(chan bool, 200)

	for i := 0; i < 200; i++ {
		go func() {
			<-start
			results <- l.Allow(key)
		}()
	}

	close(start)

	count := 0
	for i := 0; i < 200; i++ {
		if <-results {
			count++
		}
	}

	if count != 100 {
		t.Errorf("concurrent test: %d requests passed, want 100", count)
	}
}
