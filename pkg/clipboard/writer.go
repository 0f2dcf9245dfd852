package clipboard

import (
	"context"
	"sync"

	sysclip "github.com/atotto/clipboard"
)

// Writer places text on a clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, text string) error

// WriteText calls fn.
func (fn WriterFunc) WriteText(ctx context.Context, text string) error {
	return fn(ctx, text)
}

// SystemWriter writes to the operating system clipboard.
type SystemWriter struct{}

// WriteText implements Writer.
func (SystemWriter) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return sysclip.WriteAll(text)
}

// Available reports whether a system clipboard utility was found.
func (SystemWriter) Available() bool {
	return !sysclip.Unsupported
}

// MemoryWriter keeps the last written text in memory. Useful for headless
// environments and tests.
type MemoryWriter struct {
	mu     sync.Mutex
	text   string
	writes int
}

// WriteText implements Writer.
func (m *MemoryWriter) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.text = text
	m.writes++
	m.mu.Unlock()
	return nil
}

// Text returns the last written text.
func (m *MemoryWriter) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes returns the number of successful writes.
func (m *MemoryWriter) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
