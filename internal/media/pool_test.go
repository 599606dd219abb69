package media

import (
	"errors"
	"image"
	"testing"

	"github.com/reelcraft/api/internal/model"
)

type countingElement struct {
	closed bool
}

func (c *countingElement) Frame() (image.Image, bool) { return nil, false }
func (c *countingElement) Size() (int, int)           { return 0, 0 }
func (c *countingElement) CurrentTime() float64       { return 0 }
func (c *countingElement) Seek(float64)               {}
func (c *countingElement) Play()                      {}
func (c *countingElement) Pause()                     {}
func (c *countingElement) Paused() bool               { return true }
func (c *countingElement) SetVolume(float64)          {}
func (c *countingElement) Volume() float64            { return 1 }
func (c *countingElement) Close() error {
	c.closed = true
	return nil
}

func TestPoolAcquireSharesElement(t *testing.T) {
	created := 0
	pool := NewPool(func(model.Asset) (Element, error) {
		created++
		return &countingElement{}, nil
	})

	asset := model.Asset{ID: "a1"}
	first, err := pool.Acquire(asset)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	second, err := pool.Acquire(asset)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if first != second {
		t.Fatal("second acquire built a new element")
	}
	if created != 1 {
		t.Fatalf("factory called %d times, want 1", created)
	}
	if pool.Len() != 1 {
		t.Fatalf("len = %d, want 1", pool.Len())
	}
}

func TestPoolReleaseClosesAtZero(t *testing.T) {
	pool := NewPool(func(model.Asset) (Element, error) {
		return &countingElement{}, nil
	})

	asset := model.Asset{ID: "a1"}
	el, _ := pool.Acquire(asset)
	pool.Acquire(asset)

	pool.Release("a1")
	if el.(*countingElement).closed {
		t.Fatal("element closed with a live reference")
	}
	if _, ok := pool.Get("a1"); !ok {
		t.Fatal("entry dropped with a live reference")
	}

	pool.Release("a1")
	if !el.(*countingElement).closed {
		t.Fatal("element not closed at zero references")
	}
	if _, ok := pool.Get("a1"); ok {
		t.Fatal("entry survived its last release")
	}
}

func TestPoolReleaseUnknownIsNoop(t *testing.T) {
	pool := NewPool(func(model.Asset) (Element, error) {
		return &countingElement{}, nil
	})
	pool.Release("missing")
	if pool.Len() != 0 {
		t.Fatalf("len = %d, want 0", pool.Len())
	}
}

func TestPoolFactoryError(t *testing.T) {
	wantErr := errors.New("decode failed")
	pool := NewPool(func(model.Asset) (Element, error) {
		return nil, wantErr
	})
	if _, err := pool.Acquire(model.Asset{ID: "a1"}); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
	if pool.Len() != 0 {
		t.Fatalf("failed acquire left an entry")
	}
}

func TestPoolCloseClosesEverything(t *testing.T) {
	pool := NewPool(func(model.Asset) (Element, error) {
		return &countingElement{}, nil
	})
	a, _ := pool.Acquire(model.Asset{ID: "a1"})
	b, _ := pool.Acquire(model.Asset{ID: "a2"})

	pool.Close()
	if !a.(*countingElement).closed || !b.(*countingElement).closed {
		t.Fatal("close left elements open")
	}
	if pool.Len() != 0 {
		t.Fatalf("len = %d after close", pool.Len())
	}
}
