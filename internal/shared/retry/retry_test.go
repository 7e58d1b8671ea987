package retry

import (
	"errors"
	"testing"
	"time"
)

func TestWithRetryEventualSuccess(t *testing.T) {
	calls := 0
	err := WithRetry(3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("временная ошибка")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if calls != 3 {
		t.Fatalf("calls=%d want=3", calls)
	}
}

func TestWithRetryExhausted(t *testing.T) {
	want := errors.New("постоянная ошибка")
	calls := 0
	err := WithRetry(2, time.Millisecond, func() error {
		calls++
		return want
	})
	if err != want {
		t.Fatalf("err=%v want=%v", err, want)
	}
	if calls != 2 {
		t.Fatalf("calls=%d want=2", calls)
	}
}
