package numbers

import (
	"errors"
	"fmt"
	"iter"
)

var ErrUnknownSequence = errors.New("unknown sequence")

// Sequences lists the kinds accepted by Sequence.
var Sequences = []string{"count", "fibonacci", "primes"}

// Fibonacci yields the first n Fibonacci numbers, starting 0, 1.
func Fibonacci(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		a, b := 0, 1
		for range n {
			if !yield(a) {
				return
			}
			a, b = b, a+b
		}
	}
}

// Primes yields the first n primes.
func Primes(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for candidate, found := 2, 0; found < n; candidate++ {
			if !isPrime(candidate) {
				continue
			}
			found++
			if !yield(candidate) {
				return
			}
		}
	}
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Notify announces each value of seq on p before passing it on. The
// sequence ends early if the announcement fails; p.Err reports why.
func Notify(seq iter.Seq[int], p *Publisher) iter.Seq[int] {
	return func(yield func(int) bool) {
		for v := range seq {
			if err := p.Publish(fmt.Sprintf("yielding number: %d", v)); err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Sequence builds the announced sequence named by kind. The returned func
// reports a failure on the producing side once iteration is over.
func Sequence(kind string, n int, p *Publisher, options ...CounterOption) (iter.Seq[int], func() error, error) {
	switch kind {
	case "", "count":
		c := NewCounter(n, append([]CounterOption{WithPublisher(p)}, options...)...)
		return c.All(), c.Err, nil
	case "fibonacci":
		return Notify(Fibonacci(n), p), p.Err, nil
	case "primes":
		return Notify(Primes(n), p), p.Err, nil
	default:
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownSequence, kind)
	}
}
