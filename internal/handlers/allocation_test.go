package handlers

import "testing"

func TestAllocationFormula(t *testing.T) {
	cases := []struct {
		members int
		want    int64
	}{
		{0, 0},
		{1, 6000},
		{25, 150000},
		{1000, 6000000},
	}
	for _, tc := range cases {
		got, err := allocationFor(tc.members)
		if err != nil {
			t.Fatalf("allocationFor(%d): %v", tc.members, err)
		}
		if got != tc.want {
			t.Errorf("allocationFor(%d) = %d, want %d", tc.members, got, tc.want)
		}
	}
}
