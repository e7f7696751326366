package parser

import "fmt"

// anonNamer hands out synthetic names for anonymous types and members.
// Names are unique within one Parse call: "inline-1", "anon-2", ...
type anonNamer func(prefix string) string

func anonymousNames() anonNamer {
	counter := 1
	return func(prefix string) string {
		name := fmt.Sprintf("%s%d", prefix, counter)
		counter++
		return name
	}
}
