// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package recommend

import (
	"math"
	"testing"
)

func TestColdStartUsers(t *testing.T) {
	t.Parallel()

	s := scenario(t)

	tests := []struct {
		name     string
		minEdges int
		want     []int64
	}{
		{"default", 1, []int64{3, 4}},
		{"two edges", 2, []int64{2, 3, 4}},
		{"disabled", 0, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestEngine(t, func(c *Config) { c.Fallback.MinTrustEdges = tt.minEdges })
			got := e.ColdStartUsers(s.Social, s.Trust)
			if len(got) != len(tt.want) {
				t.Fatalf("ColdStartUsers() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ColdStartUsers()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}

	if got := newTestEngine(t, nil).ColdStartUsers(s.Social, nil); len(got) != 4 {
		t.Errorf("without trust graph = %v, want every user", got)
	}
}

func TestCompareCoverage(t *testing.T) {
	t.Parallel()

	s := scenario(t)
	summary := newTestEngine(t, nil).CompareCoverage(s, []int64{1, 4})

	if summary.Users != 2 || summary.WithTrustCoverage != 1 || summary.NeedingFallback != 2 {
		t.Errorf("summary = %+v", summary)
	}
	if len(summary.Comparisons) != 2 {
		t.Fatalf("len(Comparisons) = %d, want 2", len(summary.Comparisons))
	}

	trusted, cold := summary.Comparisons[0], summary.Comparisons[1]
	if trusted.TrustCurators != 2 || !trusted.HasTrustCoverage || !trusted.NeedsFallback {
		t.Errorf("user 1 = %+v", trusted)
	}
	if trusted.PageRankCurators != 3 {
		t.Errorf("user 1 PageRankCurators = %d, want 3", trusted.PageRankCurators)
	}
	if want := (0.3 + 0.2 + 0.1) / 3; math.Abs(trusted.FallbackQuality-want) > 1e-9 {
		t.Errorf("user 1 FallbackQuality = %v, want %v", trusted.FallbackQuality, want)
	}
	if cold.TrustCurators != 0 || cold.HasTrustCoverage || !cold.NeedsFallback {
		t.Errorf("user 4 = %+v", cold)
	}
}
