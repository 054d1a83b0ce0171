package service

import (
	"context"
	"testing"
	"time"

	"doctor-admin-dashboard/internal/dashboard"

	"github.com/redis/go-redis/v9"
)

func TestMemoryNoticeBoard_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	board := NewMemoryNoticeBoard(func() time.Time { return now })
	ctx := context.Background()

	if n, err := board.Current(ctx, "s1"); err != nil || n != nil {
		t.Fatalf("expected no notice, got %+v, %v", n, err)
	}

	if err := board.Post(ctx, "s1", dashboard.StatusNotice(true, time.Time{}), 2*time.Second); err != nil {
		t.Fatalf("Post returned err: %v", err)
	}

	n, err := board.Current(ctx, "s1")
	if err != nil || n == nil {
		t.Fatalf("expected notice, got %+v, %v", n, err)
	}
	if n.Title != "Doctor Account Activated" || !n.ExpiresAt.Equal(now.Add(2*time.Second)) {
		t.Fatalf("unexpected notice: %+v", n)
	}
	if other, _ := board.Current(ctx, "s2"); other != nil {
		t.Fatalf("notices must be per key")
	}

	now = now.Add(2 * time.Second)
	if n, _ := board.Current(ctx, "s1"); n != nil {
		t.Fatalf("notice should have expired: %+v", n)
	}
}

func TestMemoryNoticeBoard_LatestWins(t *testing.T) {
	board := NewMemoryNoticeBoard(nil)
	ctx := context.Background()

	_ = board.Post(ctx, "s1", dashboard.StatusNotice(true, time.Time{}), time.Minute)
	_ = board.Post(ctx, "s1", dashboard.StatusNotice(false, time.Time{}), time.Minute)

	n, _ := board.Current(ctx, "s1")
	if n == nil || n.Kind != dashboard.NoticeError {
		t.Fatalf("expected the deactivation notice, got %+v", n)
	}
}

func TestRedisNoticeBoard_ReportsStoreErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	board := NewRedisNoticeBoard(client)
	ctx := context.Background()

	if err := board.Post(ctx, "s1", dashboard.StatusNotice(true, time.Now()), time.Second); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
	if _, err := board.Current(ctx, "s1"); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
}
