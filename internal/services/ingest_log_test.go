package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"countyapi/internal/models"
)

func TestIngestLog(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	log := NewIngestLog(rdb, 3)

	ctx := context.Background()
	empty, err := log.Recent(ctx)
	if err != nil {
		t.Fatalf("recent on empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty log, got %d", len(empty))
	}

	for i := 1; i <= 4; i++ {
		b := models.IngestBatch{ID: fmt.Sprintf("b%d", i), Count: i, ArchiveKey: fmt.Sprintf("items/b%d.xml", i), ReceivedAt: time.Now().UTC()}
		if err := log.Add(ctx, b); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	recent, err := log.Recent(ctx)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(recent))
	}
	for idx, want := range []string{"b4", "b3", "b2"} {
		if recent[idx].ID != want {
			t.Fatalf("want id %s at %d, got %s", want, idx, recent[idx].ID)
		}
	}
	if recent[0].Count != 4 || recent[0].ArchiveKey != "items/b4.xml" {
		t.Fatalf("batch data %+v", recent[0])
	}
}
