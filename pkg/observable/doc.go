// Package observable provides a small publish-subscribe value container.
//
// A Store holds one value. Readers call Get, writers call Set or Update,
// and interested parties register with Subscribe to be called with every
// new value:
//
//	counter := observable.New(0)
//	stop := counter.Subscribe(func(v int) {
//	    fmt.Println("counter is", v)
//	})
//	defer stop()
//
//	counter.Update(func(v int) int { return v + 1 })
//
// Subscribe calls the callback immediately with the current value, so a
// subscriber never has to special-case its first render.
//
// Stores are safe for concurrent use. Every subscriber sees writes in the
// order they were applied. Callbacks run outside the store's lock on the
// goroutine that performed the write, unless another goroutine is already
// delivering: the write is then queued and delivered by that goroutine
// once the values before it have been delivered. A callback may itself
// write to the store; its write is delivered after the current one.
package observable
