package sizeclass

import "fmt"

// Class is a connector capacity tier.
type Class string

const (
	Small  Class = "small"
	Medium Class = "medium"
	Large  Class = "large"
)

// MaxInterfaces is the highest service-interface count any tier exposes.
const MaxInterfaces = 3

// Parse converts a configuration string into a Class.
func Parse(s string) (Class, error) {
	switch Class(s) {
	case Small, Medium, Large:
		return Class(s), nil
	default:
		return "", fmt.Errorf("unknown size class %q (expected small, medium or large)", s)
	}
}

// Interfaces returns the number of service interfaces a connector of
// this class exposes. Address slots above this count never produce
// target registrations.
func (c Class) Interfaces() int {
	switch c {
	case Small:
		return 1
	case Medium:
		return 2
	case Large:
		return 3
	default:
		return 0
	}
}

func (c Class) String() string {
	return string(c)
}
