package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/ownership"
	ownerrors "github.com/wippyai/ownership/errors"
	"github.com/wippyai/ownership/resource"
)

// emptyModule is the smallest valid core wasm binary.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// stub is a resource that records its release.
type stub struct {
	label    string
	log      *[]string
	released int
}

func (s *stub) Close() error {
	s.released++
	if s.log != nil {
		*s.log = append(*s.log, s.label)
	}
	return nil
}

type scenario struct {
	run         func(ctx context.Context, label string) (string, error)
	name        string
	description string
}

var scenarios = []scenario{
	{
		name:        "owned",
		description: "Owned(S), leave scope: S is released once",
		run:         runOwned,
	},
	{
		name:        "borrowed",
		description: "Borrowed(S), leave scope: S is untouched",
		run:         runBorrowed,
	},
	{
		name:        "take",
		description: "Owned(S), Take, leave scope: S survives with the caller",
		run:         runTake,
	},
	{
		name:        "take-twice",
		description: "Owned(S), Take twice: second Take is rejected",
		run:         runTakeTwice,
	},
	{
		name:        "take-borrowed",
		description: "Borrowed(S), Take: rejected, S untouched",
		run:         runTakeBorrowed,
	},
	{
		name:        "nil",
		description: "Owned(nil), leave scope: release is a no-op",
		run:         runNil,
	},
	{
		name:        "wazero",
		description: "OwnedAsync(wazero runtime), CloseAsync: runtime is closed",
		run:         runWazero,
	},
	{
		name:        "table",
		description: "Table with three adopted and one lent entry, Close releases adopted ones LIFO",
		run:         runTable,
	},
}

func findScenario(name string) (scenario, bool) {
	for _, sc := range scenarios {
		if sc.name == name {
			return sc, true
		}
	}
	return scenario{}, false
}

func runOwned(_ context.Context, label string) (string, error) {
	s := &stub{label: label}
	func() {
		w := ownership.Owned(s)
		defer w.Close()
	}()
	if s.released != 1 {
		return "", fmt.Errorf("%s released %d time(s), want 1", label, s.released)
	}
	return fmt.Sprintf("%s released once", label), nil
}

func runBorrowed(_ context.Context, label string) (string, error) {
	s := &stub{label: label}
	func() {
		w := ownership.Borrowed(s)
		defer w.Close()
	}()
	if s.released != 0 {
		return "", fmt.Errorf("%s released by a borrowed wrapper", label)
	}
	return fmt.Sprintf("%s not released", label), nil
}

func runTake(_ context.Context, label string) (string, error) {
	s := &stub{label: label}
	var taken *stub
	var takeErr error
	func() {
		w := ownership.Owned(s)
		defer w.Close()
		taken, takeErr = w.Take()
	}()
	if takeErr != nil {
		return "", takeErr
	}
	if s.released != 0 {
		return "", fmt.Errorf("%s released after ownership moved out", label)
	}
	_ = taken.Close()
	return fmt.Sprintf("%s survived the scope, caller released it", label), nil
}

func runTakeTwice(_ context.Context, label string) (string, error) {
	s := &stub{label: label}
	w := ownership.Owned(s)
	if _, err := w.Take(); err != nil {
		return "", err
	}
	_, err := w.Take()
	if !errors.Is(err, ownerrors.ErrInvalidTransferState) {
		return "", fmt.Errorf("second Take returned %v", err)
	}
	if s.released != 0 {
		return "", fmt.Errorf("%s released by Take", label)
	}
	return err.Error(), nil
}

func runTakeBorrowed(_ context.Context, label string) (string, error) {
	s := &stub{label: label}
	_, err := ownership.Borrowed(s).Take()
	if !errors.Is(err, ownerrors.ErrInvalidTransferState) {
		return "", fmt.Errorf("Take on borrowed wrapper returned %v", err)
	}
	if s.released != 0 {
		return "", fmt.Errorf("%s released by Take", label)
	}
	return err.Error(), nil
}

func runNil(_ context.Context, _ string) (string, error) {
	var s *stub
	if err := ownership.Owned(s).Close(); err != nil {
		return "", err
	}
	return "nil resource skipped", nil
}

func runWazero(ctx context.Context, _ string) (string, error) {
	rt := wazero.NewRuntime(ctx)
	ref := ownership.OwnedAsync(rt)
	desc := ref.String()

	if err := <-ref.CloseAsync(ctx); err != nil {
		return "", err
	}
	if _, err := rt.CompileModule(ctx, emptyModule); err == nil {
		return "", fmt.Errorf("runtime still usable after owned release")
	}
	return desc + " closed", nil
}

func runTable(_ context.Context, label string) (string, error) {
	var log []string
	table := resource.NewTableWithDefaults[*stub]()
	for i := 1; i <= 3; i++ {
		if _, err := table.Adopt(&stub{label: fmt.Sprintf("%s%d", label, i), log: &log}); err != nil {
			return "", err
		}
	}
	lent := &stub{label: label + "-lent", log: &log}
	if _, err := table.Lend(lent); err != nil {
		return "", err
	}

	if err := table.Close(); err != nil {
		return "", err
	}
	if lent.released != 0 {
		return "", fmt.Errorf("lent entry released")
	}
	want := []string{label + "3", label + "2", label + "1"}
	if strings.Join(log, ",") != strings.Join(want, ",") {
		return "", fmt.Errorf("release order %v, want %v", log, want)
	}
	return "released " + strings.Join(log, ", "), nil
}
