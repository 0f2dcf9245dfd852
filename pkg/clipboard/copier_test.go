package clipboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-postformat/pkg/clipboard"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	f.stopped = true
	return true
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) clipboard.Stopper {
	t := &fakeTimer{delay: d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func TestCopier_SetsFlagAndResetsAfterDelay(t *testing.T) {
	clock := &fakeClock{}
	writer := &clipboard.MemoryWriter{}
	copier := clipboard.NewCopier(writer, clipboard.WithAfterFunc(clock.AfterFunc))

	if copier.Label() != clipboard.LabelCopy {
		t.Fatalf("unexpected initial label %q", copier.Label())
	}
	if err := copier.Copy(context.Background(), "hello"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if writer.Text() != "hello" {
		t.Fatalf("clipboard holds %q", writer.Text())
	}
	if !copier.Copied() || copier.Label() != clipboard.LabelCopied {
		t.Fatalf("expected copied acknowledgement")
	}
	if len(clock.timers) != 1 || clock.timers[0].delay != clipboard.DefaultAckDelay {
		t.Fatalf("expected one timer with default delay, got %+v", clock.timers)
	}

	clock.timers[0].fn()
	if copier.Copied() {
		t.Fatalf("expected flag reset after delay")
	}
}

func TestCopier_SecondCopyRestartsTimer(t *testing.T) {
	clock := &fakeClock{}
	copier := clipboard.NewCopier(&clipboard.MemoryWriter{},
		clipboard.WithAfterFunc(clock.AfterFunc),
		clipboard.WithAckDelay(time.Second),
	)

	_ = copier.Copy(context.Background(), "one")
	_ = copier.Copy(context.Background(), "two")

	if len(clock.timers) != 2 {
		t.Fatalf("expected two timers, got %d", len(clock.timers))
	}
	if !clock.timers[0].stopped {
		t.Fatalf("expected first timer stopped")
	}

	// A stale timer firing late must not clear the newer acknowledgement.
	clock.timers[0].fn()
	if !copier.Copied() {
		t.Fatalf("stale timer cleared the flag")
	}
	clock.timers[1].fn()
	if copier.Copied() {
		t.Fatalf("expected flag reset by latest timer")
	}
}

func TestCopier_FailureLeavesFlagAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	clock := &fakeClock{}
	boom := errors.New("no clipboard")
	copier := clipboard.NewCopier(
		clipboard.WriterFunc(func(ctx context.Context, text string) error { return boom }),
		clipboard.WithAfterFunc(clock.AfterFunc),
		clipboard.WithLogger(zap.New(core)),
	)

	err := copier.Copy(context.Background(), "x")
	if !errors.Is(err, clipboard.ErrWriteFailed) || !errors.Is(err, boom) {
		t.Fatalf("unexpected error %v", err)
	}
	if copier.Copied() {
		t.Fatalf("flag set on failure")
	}
	if len(clock.timers) != 0 {
		t.Fatalf("timer scheduled on failure")
	}
	if logs.FilterMessage("clipboard write failed").Len() != 1 {
		t.Fatalf("expected failure logged")
	}
}

func TestCopier_OnChangeAndClose(t *testing.T) {
	clock := &fakeClock{}
	var flips []bool
	copier := clipboard.NewCopier(&clipboard.MemoryWriter{},
		clipboard.WithAfterFunc(clock.AfterFunc),
		clipboard.WithOnChange(func(copied bool) { flips = append(flips, copied) }),
	)

	_ = copier.Copy(context.Background(), "a")
	_ = copier.Copy(context.Background(), "b")
	copier.Close()
	clock.timers[1].fn()

	if copier.Copied() {
		t.Fatalf("expected flag cleared by Close")
	}
	if len(flips) != 1 || flips[0] != true {
		t.Fatalf("unexpected flips %v", flips)
	}
}

func TestCopier_RealTimerExpires(t *testing.T) {
	copier := clipboard.NewCopier(&clipboard.MemoryWriter{}, clipboard.WithAckDelay(10*time.Millisecond))
	_ = copier.Copy(context.Background(), "a")

	deadline := time.Now().Add(time.Second)
	for copier.Copied() {
		if time.Now().After(deadline) {
			t.Fatalf("flag never reset")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
