package httpclient

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return errors.New("bad request")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("permanent error must not be retried, got %d calls", calls)
	}
}

func TestRetryRetriesRetriableError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return Retriable(errors.New("connection reset"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestIsRetriable(t *testing.T) {
	if IsRetriable(errors.New("plain error")) {
		t.Fatal("plain errors are not retriable")
	}
	inner := errors.New("upstream 503")
	wrapped := Retriable(inner)
	if !IsRetriable(wrapped) {
		t.Fatal("marked errors are retriable")
	}
	if !errors.Is(wrapped, inner) || wrapped.Error() != "upstream 503" {
		t.Fatalf("marker must preserve the underlying error, got %q", wrapped.Error())
	}
}
