package valueobjects

import "testing"

func TestAmount_Arithmetic(t *testing.T) {
	a := NewAmount(1_500_000_000)
	b := NewAmount(500_000_000)

	if got := a.Add(b).Nano(); got != 2_000_000_000 {
		t.Errorf("Add() = %d, want 2_000_000_000", got)
	}
	if got := a.Sub(b).Nano(); got != 1_000_000_000 {
		t.Errorf("Sub() = %d, want 1_000_000_000", got)
	}
	if got := b.Neg().Nano(); got != -500_000_000 {
		t.Errorf("Neg() = %d, want -500_000_000", got)
	}
	if !a.Equals(NewAmount(1_500_000_000)) {
		t.Error("Equals() = false for identical amounts")
	}
	if a.Equals(b) {
		t.Error("Equals() = true for different amounts")
	}
}

func TestAmount_SplitEqually(t *testing.T) {
	tests := []struct {
		name    string
		nano    int64
		n       int
		want    int64
		wantErr bool
	}{
		{"even three way", 3_000_000_000, 3, 1_000_000_000, false},
		{"uneven", 100, 3, 0, true},
		{"zero participants", 100, 0, 0, true},
		{"negative participants", 100, -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAmount(tt.nano).SplitEqually(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitEqually() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Nano() != tt.want {
				t.Errorf("SplitEqually() = %d, want %d", got.Nano(), tt.want)
			}
		})
	}
}

func TestAmount_String(t *testing.T) {
	tests := []struct {
		nano int64
		want string
	}{
		{1_500_000_000, "1.500000000 TON"},
		{1, "0.000000001 TON"},
		{-1_000_000_001, "-1.000000001 TON"},
	}

	for _, tt := range tests {
		if got := NewAmount(tt.nano).String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.nano, got, tt.want)
		}
	}
}

func TestValidAddress(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", true},
		{"UQBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB", true},
		{"0:abcdef", true},
		{"-1:abcdef", true},
		{"EQshort", false},
		{"0:", false},
		{"", false},
		{"random", false},
	}

	for _, tt := range tests {
		if got := ValidAddress(tt.addr); got != tt.want {
			t.Errorf("ValidAddress(%q) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}
