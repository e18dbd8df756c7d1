package order

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collate returns a string comparator following the collation rules of
// the given language, for use with ByFunc and ThenByFunc.
//
//	order.ByFunc(names, fullName, order.Collate(language.German), false)
func Collate(tag language.Tag, opts ...collate.Option) func(a, b string) int {
	// A Collator keeps scratch buffers and must not be shared between
	// goroutines; traversals may run concurrently.
	pool := sync.Pool{New: func() any { return collate.New(tag, opts...) }}
	return func(a, b string) int {
		c := pool.Get().(*collate.Collator)
		defer pool.Put(c)
		return c.CompareString(a, b)
	}
}
