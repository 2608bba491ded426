package limiter

import (
	"context"
	"testing"

	"golang.org/x/time/rate"
)

func TestLocalLimiter(t *testing.T) {
	l := NewLocalLimiter(rate.Limit(1), 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "client")
		if err != nil {
			t.Fatalf("Allow failed: %v", err)
		}
		if !ok {
			t.Fatalf("Expected burst request %d to pass", i)
		}
	}

	// 令牌桶耗尽后请求被拒绝。
	ok, err := l.Allow(ctx, "client")
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if ok {
		t.Error("Expected request to be rejected after burst")
	}
}
