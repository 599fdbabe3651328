package backend

import (
	"errors"
	"image"
	"slices"
	"testing"

	"github.com/gogpu/textmesh"
)

type stubBackend struct {
	name string
	textmesh.Context
}

func (b *stubBackend) Name() string { return b.name }
func (b *stubBackend) Close()       {}
func (b *stubBackend) MakeTexture(*image.RGBA) (textmesh.Texture, error) {
	return nil, nil
}

func register(t *testing.T, name string, err error) {
	t.Helper()
	Register(name, func() (Backend, error) {
		if err != nil {
			return nil, err
		}
		return &stubBackend{name: name}, nil
	})
	t.Cleanup(func() { Unregister(name) })
}

func TestRegisterGet(t *testing.T) {
	register(t, "test-a", nil)

	if !IsRegistered("test-a") {
		t.Fatal("IsRegistered(test-a) = false")
	}
	if !slices.Contains(Available(), "test-a") {
		t.Errorf("Available() = %v, missing test-a", Available())
	}
	b, err := Get("test-a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if b.Name() != "test-a" {
		t.Errorf("Name() = %q, want test-a", b.Name())
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("no-such-backend"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Get() error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestGetFactoryError(t *testing.T) {
	boom := errors.New("no adapter")
	register(t, "test-broken", boom)
	if _, err := Get("test-broken"); !errors.Is(err, boom) {
		t.Errorf("Get() error = %v, want %v", err, boom)
	}
}

func TestDefaultPriority(t *testing.T) {
	if names := Available(); len(names) != 0 {
		t.Fatalf("registry not empty in package tests: %v", names)
	}

	if _, err := Default(); !errors.Is(err, ErrBackendNotAvailable) {
		t.Fatalf("Default() on empty registry error = %v", err)
	}

	register(t, "zzz", nil)
	register(t, "headless", nil)
	b, err := Default()
	if err != nil || b.Name() != "headless" {
		t.Fatalf("Default() = %v, %v, want headless", b, err)
	}

	// A failing preferred backend falls through to the next one.
	register(t, "wgpu", errors.New("no gpu"))
	b, err = Default()
	if err != nil || b.Name() != "headless" {
		t.Errorf("Default() with failing wgpu = %v, %v, want headless", b, err)
	}

	Unregister("headless")
	b, err = Default()
	if err != nil || b.Name() != "zzz" {
		t.Errorf("Default() fallback = %v, %v, want zzz", b, err)
	}
}
