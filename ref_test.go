package ownership

import (
	"errors"
	"strings"
	"testing"

	ownerrors "github.com/wippyai/ownership/errors"
)

type stubResource struct {
	closeErr error
	calls    int
	released bool
}

func (s *stubResource) Close() error {
	s.calls++
	s.released = true
	return s.closeErr
}

func TestRef_OwnedReleasesOnce(t *testing.T) {
	s := &stubResource{}
	ref := Owned(s)

	if !ref.HasOwnership() {
		t.Fatal("Owned should hold ownership")
	}
	if err := ref.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.calls != 1 {
		t.Fatalf("expected 1 release, got %d", s.calls)
	}
}

func TestRef_BorrowedNeverReleases(t *testing.T) {
	s := &stubResource{}
	ref := Borrowed(s)

	if ref.HasOwnership() {
		t.Fatal("Borrowed should not hold ownership")
	}
	if err := ref.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := ref.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if s.calls != 0 {
		t.Fatalf("expected no release, got %d", s.calls)
	}
}

func TestRef_TakeMovesOwnership(t *testing.T) {
	s := &stubResource{}
	ref := Owned(s)

	got, err := ref.Take()
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if got != s {
		t.Fatal("Take returned a different resource")
	}
	if ref.HasOwnership() {
		t.Fatal("ownership should be gone after Take")
	}
	if err := ref.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.calls != 0 {
		t.Fatalf("Close after Take released the resource %d time(s)", s.calls)
	}
	if ref.Value() != s {
		t.Fatal("Value should still return the resource after Take")
	}
}

func TestRef_TakeTwiceFails(t *testing.T) {
	s := &stubResource{}
	ref := Owned(s)

	if _, err := ref.Take(); err != nil {
		t.Fatalf("first Take: %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := ref.Take()
		if !errors.Is(err, ownerrors.ErrInvalidTransferState) {
			t.Fatalf("Take #%d: expected ErrInvalidTransferState, got %v", i+2, err)
		}
		if got != nil {
			t.Fatal("failed Take should return the zero value")
		}
	}
	if s.calls != 0 {
		t.Fatalf("Take must not release, got %d calls", s.calls)
	}
}

func TestRef_TakeBorrowedFails(t *testing.T) {
	s := &stubResource{}
	ref := Borrowed(s)

	_, err := ref.Take()
	if !errors.Is(err, ownerrors.ErrInvalidTransferState) {
		t.Fatalf("expected ErrInvalidTransferState, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "value can only be taken while owned") {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "*ownership.stubResource") {
		t.Errorf("message %q should name the resource type", msg)
	}
	if s.released {
		t.Fatal("failed Take released the resource")
	}
}

func TestRef_CloseErrorPassesThrough(t *testing.T) {
	want := errors.New("disk on fire")
	ref := Owned(&stubResource{closeErr: want})

	if err := ref.Close(); err != want {
		t.Fatalf("expected the resource error unmodified, got %v", err)
	}
}

func TestRef_CloseTwiceWhileOwning(t *testing.T) {
	s := &stubResource{}
	ref := Owned(s)

	_ = ref.Close()
	_ = ref.Close()
	if s.calls != 2 {
		t.Fatalf("Close does not guard repeated calls; expected 2 releases, got %d", s.calls)
	}
	if !ref.HasOwnership() {
		t.Fatal("Close must not clear ownership")
	}
}

func TestRef_NilResource(t *testing.T) {
	t.Run("typed nil pointer", func(t *testing.T) {
		var s *stubResource
		if err := Owned(s).Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	})

	t.Run("nil interface", func(t *testing.T) {
		if err := Owned[Closer](nil).Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	})

	t.Run("nil func", func(t *testing.T) {
		var f CloserFunc
		if err := Owned(f).Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	})

	t.Run("nil ref", func(t *testing.T) {
		var ref *Ref[*stubResource]
		if err := ref.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		if ref.HasOwnership() {
			t.Fatal("nil Ref has no ownership")
		}
		if _, err := ref.Take(); !errors.Is(err, ownerrors.ErrInvalidTransferState) {
			t.Fatalf("Take on nil Ref: expected ErrInvalidTransferState, got %v", err)
		}
	})

	t.Run("take nil resource", func(t *testing.T) {
		var s *stubResource
		got, err := Owned(s).Take()
		if err != nil {
			t.Fatalf("Take: %v", err)
		}
		if got != nil {
			t.Fatal("expected nil resource")
		}
	})
}

func TestRef_OwnedFrom(t *testing.T) {
	s := &stubResource{}
	produced := 0
	ref := OwnedFrom(func() *stubResource {
		produced++
		return s
	})

	if produced != 1 {
		t.Fatalf("producer called %d times", produced)
	}
	if !ref.HasOwnership() || ref.Value() != s {
		t.Fatal("OwnedFrom should behave like Owned")
	}
	_ = ref.Close()
	if s.calls != 1 {
		t.Fatalf("expected 1 release, got %d", s.calls)
	}
}

func TestRef_Nested(t *testing.T) {
	t.Run("owned in owned", func(t *testing.T) {
		s := &stubResource{}
		outer := Owned(Owned(s))
		_ = outer.Close()
		if s.calls != 1 {
			t.Fatalf("expected 1 release, got %d", s.calls)
		}
	})

	t.Run("borrowed in owned", func(t *testing.T) {
		s := &stubResource{}
		outer := Owned(Borrowed(s))
		_ = outer.Close()
		if s.released {
			t.Fatal("inner borrowed Ref must not release")
		}
	})

	t.Run("owned in borrowed", func(t *testing.T) {
		s := &stubResource{}
		outer := Borrowed(Owned(s))
		_ = outer.Close()
		if s.released {
			t.Fatal("outer borrowed Ref must not close the inner Ref")
		}
	})
}

func TestRef_CloserFunc(t *testing.T) {
	calls := 0
	ref := Owned(CloserFunc(func() error {
		calls++
		return nil
	}))
	_ = ref.Close()
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestRef_String(t *testing.T) {
	ref := Owned(&stubResource{})
	if got := ref.String(); got != "owned(*ownership.stubResource)" {
		t.Errorf("String() = %q", got)
	}
	_, _ = ref.Take()
	if got := ref.String(); got != "borrowed(*ownership.stubResource)" {
		t.Errorf("String() after Take = %q", got)
	}
}

// Walks the three scopes: owned, borrowed, owned-then-taken.
func TestRef_ScopeScenario(t *testing.T) {
	s := &stubResource{}
	func() {
		w := Owned(s)
		defer w.Close()
	}()
	if !s.released {
		t.Fatal("owned scope should release S")
	}

	s2 := &stubResource{}
	func() {
		w2 := Borrowed(s2)
		defer w2.Close()
	}()
	if s2.released {
		t.Fatal("borrowed scope must not release S2")
	}

	s3 := &stubResource{}
	var r *stubResource
	func() {
		w3 := Owned(s3)
		defer w3.Close()
		var err error
		r, err = w3.Take()
		if err != nil {
			t.Fatalf("Take: %v", err)
		}
	}()
	if s3.released {
		t.Fatal("taken resource must not be released by its old wrapper")
	}
	_ = r.Close()
	if !s3.released {
		t.Fatal("caller should be able to release the taken resource")
	}
}
