package measure

import (
	"math"
	"math/rand"
	"testing"
)

func TestOddsRatioIdentity(t *testing.T) {
	// OR = RR * RR* by construction, everywhere in (0,1)x(0,1)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		s := New(rng.Float64(), rng.Float64())
		or := s.OddsRatio()
		product := s.RelativeRisk() * s.ComplementRelativeRisk()
		if math.Abs(or-product) > 1e-12 {
			t.Fatalf("OR identity broken for %+v: OR=%v RR*RR*=%v", s, or, product)
		}
	}
}

func TestEqualRisks(t *testing.T) {
	s := New(0.4, 0.4)

	if rd := s.RiskDifference(); rd != 0 {
		t.Errorf("expected RD=0 for equal risks, got %v", rd)
	}
	if rr := s.RelativeRisk(); rr != 1 {
		t.Errorf("expected RR=1 for equal risks, got %v", rr)
	}
	if or := s.OddsRatio(); or != 1 {
		t.Errorf("expected OR=1 for equal risks, got %v", or)
	}
}

func TestVectorCanonicalOrder(t *testing.T) {
	s := New(0.2, 0.3)
	v := s.Vector()

	expected := [MeasureCount]float64{
		s.RelativeRisk(),
		s.ComplementRelativeRisk(),
		s.OddsRatio(),
		s.RiskDifference(),
		s.HazardRatio(),
		s.ComplementHazardRatio(),
	}
	if v != expected {
		t.Errorf("vector order mismatch: got %v want %v", v, expected)
	}
}

func TestDegenerateInputsPropagate(t *testing.T) {
	t.Run("zero control risk", func(t *testing.T) {
		s := New(0, 0.5)
		if rr := s.RelativeRisk(); !math.IsInf(rr, 1) {
			t.Errorf("expected RR=+Inf, got %v", rr)
		}
	})

	t.Run("unit treatment risk", func(t *testing.T) {
		s := New(0.5, 1)
		if crr := s.ComplementRelativeRisk(); !math.IsInf(crr, 1) {
			t.Errorf("expected RR*=+Inf, got %v", crr)
		}
	})

	t.Run("both risks zero", func(t *testing.T) {
		s := New(0, 0)
		if rr := s.RelativeRisk(); !math.IsNaN(rr) {
			t.Errorf("expected RR=NaN, got %v", rr)
		}
		if chr := s.ComplementHazardRatio(); !math.IsNaN(chr) {
			t.Errorf("expected HR*=NaN, got %v", chr)
		}
	})
}
