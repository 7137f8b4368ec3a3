package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
)

func TestSequenceRefGeneratorUniqueUnderConcurrency(t *testing.T) {
	const workers = 100
	const perWorker = 100

	gen := &SequenceRefGenerator{}
	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			refs := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				refs = append(refs, gen.NewReference())
			}
			mu.Lock()
			for _, ref := range refs {
				if seen[ref] {
					mu.Unlock()
					t.Errorf("duplicate reference %s", ref)
					return
				}
				seen[ref] = true
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("generated %d unique references, want %d", len(seen), workers*perWorker)
	}
	for ref := range seen {
		if !strings.HasPrefix(ref, "ABC") {
			t.Fatalf("reference %q missing prefix", ref)
		}
		break
	}
}

func TestSimulatedGatewayReferenceFormat(t *testing.T) {
	g := SimulatedGateway{Delay: time.Millisecond}
	ref, err := g.Charge(context.Background(), models.Booking{ID: 1}, "gcash")
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if !strings.HasPrefix(ref, "PAY") || len(ref) != len("PAY")+16 {
		t.Fatalf("unexpected reference %q", ref)
	}
	if ref != strings.ToUpper(ref) {
		t.Fatalf("reference not upper-cased: %q", ref)
	}
}

func TestSimulatedGatewayHonorsContext(t *testing.T) {
	g := SimulatedGateway{Delay: time.Minute}
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	_, err := g.Charge(ctx, models.Booking{ID: 1}, "gcash")
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error on cancelled context, got %v", err)
	}
}
