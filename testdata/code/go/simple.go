package sample

import "strings"

// Greeting is the default salutation.
const Greeting = "hello"

// Join concatenates parts with sep.
// @param parts the strings to join
// @param sep the separator
// @returns the joined string
func Join(parts []string, sep string) string {
	return strings.Join(parts, sep)
}

type Greeter struct {
	name string
}

// Greet is a method and is not reported.
// @returns a greeting
func (g Greeter) Greet() string {
	return Greeting + " " + g.name
}

func undocumented() {}
