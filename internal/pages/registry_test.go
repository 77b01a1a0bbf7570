package pages

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRegistry_EagerPageIsBuiltOnRegister(t *testing.T) {
	reg := NewRegistry()
	var calls int32
	factory := func() (Page, error) {
		atomic.AddInt32(&calls, 1)
		return Page{ID: LoginID, Title: "Login"}, nil
	}

	if err := reg.Register(LoginID, factory); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected factory to run once on register, ran %d times", calls)
	}
	if !reg.Resolved(LoginID) {
		t.Error("expected eager page to be resolved")
	}

	page, err := reg.Resolve(LoginID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Title != "Login" {
		t.Errorf("expected title Login, got %s", page.Title)
	}
	if calls != 1 {
		t.Errorf("expected no rebuild on resolve, factory ran %d times", calls)
	}
}

func TestRegistry_LazyPageIsBuiltOnceOnFirstResolve(t *testing.T) {
	reg := NewRegistry()
	var calls int32
	factory := func() (Page, error) {
		atomic.AddInt32(&calls, 1)
		return Page{ID: PaymentID, Title: Title(PaymentID)}, nil
	}

	if err := reg.RegisterLazy(PaymentID, factory); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Fatal("lazy factory ran before first resolve")
	}
	if reg.Resolved(PaymentID) {
		t.Error("lazy page reported resolved before first resolve")
	}
	if !reg.Lazy(PaymentID) {
		t.Error("expected page to be registered as lazy")
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Resolve(PaymentID); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("expected lazy factory to run exactly once, ran %d times", calls)
	}
	if !reg.Resolved(PaymentID) {
		t.Error("expected lazy page to be resolved")
	}
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Resolve(LoginID); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("expected ErrUnknownPage, got %v", err)
	}

	if err := reg.Register(LoginID, Static(LoginID, "public")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.RegisterLazy(LoginID, Static(LoginID, "public")); !errors.Is(err, ErrDuplicatePage) {
		t.Errorf("expected ErrDuplicatePage, got %v", err)
	}

	boom := errors.New("boom")
	err := reg.Register(RegisterID, func() (Page, error) { return Page{}, boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected factory error to be wrapped, got %v", err)
	}
}

func TestTitle(t *testing.T) {
	if got := Title(UserParkingID); got != "Book Parking" {
		t.Errorf("expected Book Parking, got %s", got)
	}
	if got := Title(ID("custom")); got != "custom" {
		t.Errorf("expected fallback to id, got %s", got)
	}
}

func TestRegistry_FailedEagerPageIsNotKept(t *testing.T) {
	reg := NewRegistry()

	boom := errors.New("boom")
	if err := reg.Register(RegisterID, func() (Page, error) { return Page{}, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected factory error, got %v", err)
	}

	if _, err := reg.Resolve(RegisterID); !errors.Is(err, ErrUnknownPage) {
		t.Errorf("expected ErrUnknownPage after failed register, got %v", err)
	}
	if reg.Resolved(RegisterID) {
		t.Error("failed page reported as resolved")
	}

	if err := reg.Register(RegisterID, Static(RegisterID, "public")); err != nil {
		t.Fatalf("expected re-register to succeed, got %v", err)
	}
	page, err := reg.Resolve(RegisterID)
	if err != nil || page.Title != "Register" {
		t.Errorf("unexpected page %+v, err %v", page, err)
	}
}
