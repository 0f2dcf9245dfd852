package clipboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultAckDelay is how long the copied acknowledgement stays visible.
const DefaultAckDelay = 2 * time.Second

// Labels shown by preview surfaces for the copy control.
const (
	LabelCopy   = "Copy Content"
	LabelCopied = "Copied!"
)

// Stopper cancels a scheduled reset.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules fn after d.
type AfterFunc func(d time.Duration, fn func()) Stopper

func systemAfterFunc(d time.Duration, fn func()) Stopper {
	return time.AfterFunc(d, fn)
}

// Option configures a Copier.
type Option func(*Copier)

// WithAckDelay overrides DefaultAckDelay.
func WithAckDelay(d time.Duration) Option {
	return func(c *Copier) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithAfterFunc overrides the timer source.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *Copier) {
		if fn != nil {
			c.after = fn
		}
	}
}

// WithLogger sets the logger used for write failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Copier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOnChange registers a hook called whenever the copied flag flips.
func WithOnChange(fn func(copied bool)) Option {
	return func(c *Copier) {
		c.onChange = fn
	}
}

// Copier performs the copy action and tracks the acknowledgement flag.
type Copier struct {
	writer   Writer
	delay    time.Duration
	after    AfterFunc
	logger   *zap.Logger
	onChange func(bool)

	mu     sync.Mutex
	copied bool
	gen    uint64
	timer  Stopper
}

// NewCopier returns a Copier writing through writer. A nil writer falls back
// to SystemWriter.
func NewCopier(writer Writer, options ...Option) *Copier {
	if writer == nil {
		writer = SystemWriter{}
	}
	c := &Copier{
		writer: writer,
		delay:  DefaultAckDelay,
		after:  systemAfterFunc,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Copy writes text. On success the copied flag is set and its reset is
// (re)scheduled after the ack delay. On failure the flag is left as is.
func (c *Copier) Copy(ctx context.Context, text string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := c.writer.WriteText(ctx, text); err != nil {
		c.logger.Warn("clipboard write failed", zap.Int("bytes", len(text)), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	changed := !c.copied
	c.copied = true
	c.timer = c.after(c.delay, func() { c.expire(gen) })
	c.mu.Unlock()

	c.logger.Debug("copied content", zap.Int("bytes", len(text)))
	if changed {
		c.notify(true)
	}
	return nil
}

func (c *Copier) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.copied {
		c.mu.Unlock()
		return
	}
	c.copied = false
	c.timer = nil
	c.mu.Unlock()

	c.notify(false)
}

// Copied reports whether the acknowledgement is currently shown.
func (c *Copier) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// Label returns the text for the copy control in its current state.
func (c *Copier) Label() string {
	if c.Copied() {
		return LabelCopied
	}
	return LabelCopy
}

// Close cancels a pending reset and clears the flag.
func (c *Copier) Close() {
	c.mu.Lock()
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.copied = false
	c.mu.Unlock()
}

func (c *Copier) notify(copied bool) {
	if c.onChange != nil {
		c.onChange(copied)
	}
}
