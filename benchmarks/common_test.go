// Package benchmarks compares min-query with other Go collection and
// stream libraries on the same workloads.
package benchmarks

import (
	"context"
	"strconv"
)

// Test data sizes
const (
	SmallSize  = 100
	MediumSize = 1_000
	LargeSize  = 10_000
)

// generateInts creates a slice of integers for benchmarking.
func generateInts(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return data
}

type person struct {
	Name string
	Team int
	Age  int
}

// generatePeople creates records with repeating teams and ages so that
// grouping and ordering have ties to resolve.
func generatePeople(n int) []person {
	data := make([]person, n)
	for i := range data {
		data[i] = person{Name: "p" + strconv.Itoa(n-i), Team: i % 16, Age: 18 + i%47}
	}
	return data
}

func square(x int) int {
	return x * x
}

func isEven(x int) bool {
	return x%2 == 0
}

func add(a, b int) int {
	return a + b
}

var ctx = context.Background()
