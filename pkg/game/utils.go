package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// RandomItem returns a uniformly chosen element of items.
// With a nil source it uses the unseeded global generator.
// It returns false if items is empty.
func RandomItem[T any](r *rand.Rand, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	var i int
	if r == nil {
		i = rand.Intn(len(items))
	} else {
		i = r.Intn(len(items))
	}
	return items[i], true
}

// parseLeadingInt parses the integer at the start of s, ignoring leading
// whitespace and anything after the digits, so "3", " 3" and "3rd" all yield 3.
func parseLeadingInt(s string) (int, error) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if digits == 0 {
		return 0, fmt.Errorf("no digits in %q", s)
	}
	return strconv.Atoi(s[:end])
}

func pressesLeftText(n int) string {
	if n == 1 {
		return "You have 1 press left"
	}
	return fmt.Sprintf("You have %d presses left", n)
}
