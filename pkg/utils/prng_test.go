package utils

import "testing"

func TestPRNGService_SameSeedSameSequence(t *testing.T) {
	a := NewPRNGService(42)
	b := NewPRNGService(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}
}

func TestPRNGService_RandomInRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"常规区间", 0.6, 1.5},
		{"负区间", -80, 880},
		{"退化区间", 3, 3},
		{"反转区间", 5, 1},
	}

	s := NewPRNGService(7)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				v := s.RandomInRange(tt.min, tt.max)
				if tt.max <= tt.min {
					if v != tt.min {
						t.Fatalf("RandomInRange(%v, %v) = %v, want %v", tt.min, tt.max, v, tt.min)
					}
					continue
				}
				if v < tt.min || v >= tt.max {
					t.Fatalf("RandomInRange(%v, %v) = %v out of range", tt.min, tt.max, v)
				}
			}
		})
	}
}

func TestPRNGService_IntnNonPositive(t *testing.T) {
	s := NewPRNGService(1)
	if got := s.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, want 0", got)
	}
	if got := s.Intn(-5); got != 0 {
		t.Errorf("Intn(-5) = %d, want 0", got)
	}
}
