package ui

import (
	"reflect"
	"testing"
)

func TestFilterBySubstring(t *testing.T) {
	base := []string{"hello world", "foo bar", "hello bar"}
	idx := []int{0, 1, 2}
	cfg := FilterConfig{MaxResults: 10}
	want := []int{0, 2}
	if got := filterBySubstring("hello", base, idx, cfg); !reflect.DeepEqual(got, want) {
		t.Fatalf("substring filter mismatch: want %v got %v", want, got)
	}
	cfg.MaxResults = 1
	want = []int{0}
	if got := filterBySubstring("hello", base, idx, cfg); !reflect.DeepEqual(got, want) {
		t.Fatalf("substring maxresults mismatch: want %v got %v", want, got)
	}
}

func TestFilterByFuzzyThresholds(t *testing.T) {
	base := []string{"abc", "axc", "ac"}
	idx := []int{0, 1, 2}
	cfg := FilterConfig{MinCoverage: 1, MaxSpread: 1, MaxResults: 10}
	want := []int{2}
	if got := filterByFuzzy("ac", base, idx, cfg); !reflect.DeepEqual(got, want) {
		t.Fatalf("fuzzy filter mismatch: want %v got %v", want, got)
	}
}

func TestQuickFindMatchesNameAndLocation(t *testing.T) {
	cfg := FilterConfig{MinCoverage: 0.6, MaxSpread: 40, MaxResults: 200}
	if got, want := quickFind("JAKARTA", sampleEvents, cfg), []int{0, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v got %v", want, got)
	}
	if got := quickFind("  ", sampleEvents, cfg); got != nil {
		t.Fatalf("blank query should match nothing, got %v", got)
	}
}

func TestQuickFindFuzzyKeepsServerOrder(t *testing.T) {
	cfg := FilterConfig{MinCoverage: 0.6, MaxSpread: 40, MaxResults: 200}
	if got, want := quickFind("jzz", sampleEvents, cfg), []int{0, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v got %v", want, got)
	}
}
