package session

import (
	"reflect"
	"testing"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		size int
		want [][]int
	}{
		{"empty size means one batch", []int{1, 2, 3}, 0, [][]int{{1, 2, 3}}},
		{"under limit", []int{1, 2}, 5, [][]int{{1, 2}}},
		{"exact multiple", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"remainder", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"nil input", nil, 2, [][]int{nil}},
	}
	// spec.md §8 seed scenario 6: 250 nodes against a server-advertised
	// MaxNodesPerRead of 100 must batch as exactly 100, 100, 50.
	autoBatch := make([]int, 250)
	for i := range autoBatch {
		autoBatch[i] = i
	}
	want100 := append([]int{}, autoBatch[:100]...)
	want200 := append([]int{}, autoBatch[100:200]...)
	want250 := append([]int{}, autoBatch[200:250]...)
	tests = append(tests, struct {
		name string
		in   []int
		size int
		want [][]int
	}{"250 nodes over MaxNodesPerRead=100", autoBatch, 100, [][]int{want100, want200, want250}})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunk(tt.in, tt.size)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("chunk(%v, %d) = %v, want %v", tt.in, tt.size, got, tt.want)
			}
		})
	}
}
