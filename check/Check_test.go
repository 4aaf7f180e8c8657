package check

import (
	"fmt"
	"testing"
)

func TestValidators(t *testing.T) {
	bad := []error{
		Discount(-0.1),
		Discount(1.01),
		Tolerance(0),
		Epsilon(1.5),
		StepSize(0),
		StepSize(1.2),
		NStep(0),
		Exploration(0),
		Positive("episodes", 0),
		Distribution("probs", []float64{0.5, 0.6}),
		Distribution("probs", []float64{-0.1, 1.1}),
		Distribution("probs", nil),
	}
	for i, err := range bad {
		if !IsConfig(err) {
			t.Errorf("case %d: expected ConfigError, got %v", i, err)
		}
	}

	good := []error{
		Discount(0),
		Discount(1),
		Tolerance(1e-12),
		Epsilon(0),
		StepSize(1),
		NStep(1),
		Exploration(0.5),
		Positive("sweeps", 1),
		Distribution("probs", []float64{0.2, 0.8}),
	}
	for i, err := range good {
		if err != nil {
			t.Errorf("case %d: unexpected error %v", i, err)
		}
	}
}

func TestIndex(t *testing.T) {
	if err := Index("state", 3, 3); !IsIndex(err) {
		t.Errorf("expected IndexError, got %v", err)
	}
	if err := Index("state", -1, 3); !IsIndex(err) {
		t.Errorf("expected IndexError, got %v", err)
	}
	if err := Index("state", 2, 3); err != nil {
		t.Errorf("unexpected error %v", err)
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !IsIndex(err) {
			t.Errorf("expected IndexError panic, got %v", r)
		}
	}()
	MustIndex("action", 4, 4)
}

func TestWrapped(t *testing.T) {
	err := fmt.Errorf("policyIteration: %w", ErrNonConvergence)
	if !IsNonConvergence(err) {
		t.Errorf("wrapped ErrNonConvergence not detected")
	}
	err = fmt.Errorf("evaluate: %w", Discount(2))
	if !IsConfig(err) {
		t.Errorf("wrapped ConfigError not detected")
	}
}
