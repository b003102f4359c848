package fanout

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFanoutPreservesOrder(t *testing.T) {
	envs := []string{"development", "test", "staging", "production"}
	out, err := Fanout(context.Background(), envs, func(ctx context.Context, env string) (string, error) {
		return strings.ToUpper(env), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, env := range envs {
		if out[i] != strings.ToUpper(env) {
			t.Fatalf("result %d out of order: %q", i, out[i])
		}
	}
}

func TestFanoutPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Fanout(context.Background(), []int{1, 2, 3}, func(ctx context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
