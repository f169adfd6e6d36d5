package html2md

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewBrowser_Defaults(t *testing.T) {
	t.Parallel()

	b := NewBrowser()
	if !b.headless {
		t.Error("headless = false, want true by default")
	}
	if b.timeout != defaultPageTimeout {
		t.Errorf("timeout = %v, want %v", b.timeout, defaultPageTimeout)
	}

	b = NewBrowser(WithHeadless(false), WithBrowserBin("/opt/chrome"), WithPageTimeout(time.Second))
	if b.headless || b.bin != "/opt/chrome" || b.timeout != time.Second {
		t.Errorf("options not applied: headless=%v bin=%q timeout=%v", b.headless, b.bin, b.timeout)
	}
}

func TestWithPageTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithPageTimeout(0) did not panic")
		}
	}()
	WithPageTimeout(0)
}

func TestBrowser_CloseWithoutLaunch(t *testing.T) {
	t.Parallel()

	b := NewBrowser()
	if err := b.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}

func TestBrowser_SnapshotCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBrowser().Snapshot(ctx, "https://example.com", "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Snapshot() error = %v, want context.Canceled", err)
	}
}

func TestSnapshotMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		wantHref string
	}{
		{"absolute base resolves", "https://example.com/a/", "https://example.com/a/b"},
		{"about:blank ignored", "about:blank", "b"},
		{"empty base ignored", "", "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, err := snapshotMarkup(`<a href="b">x</a>`, tt.base)
			if err != nil {
				t.Fatalf("snapshotMarkup() unexpected error: %v", err)
			}
			if got := root.Find("a").AttrOr("href", ""); got != tt.wantHref {
				t.Errorf("href = %q, want %q", got, tt.wantHref)
			}
		})
	}
}
