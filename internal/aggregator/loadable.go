package aggregator

// Loadable is the tri-state result of an asynchronous fetch: still
// loading, failed, or ready with a value.
type Loadable[T any] struct {
	ready bool
	value T
	err   error
}

func Loading[T any]() Loadable[T] {
	return Loadable[T]{}
}

func Ready[T any](value T) Loadable[T] {
	return Loadable[T]{
		ready: true,
		value: value,
	}
}

func Failed[T any](err error) Loadable[T] {
	return Loadable[T]{
		err: err,
	}
}

func (l Loadable[T]) IsLoading() bool {
	return !l.ready && l.err == nil
}

func (l Loadable[T]) IsReady() bool {
	return l.ready
}

func (l Loadable[T]) Err() error {
	return l.err
}

// Value returns the loaded value; ok is false unless the Loadable is
// ready.
func (l Loadable[T]) Value() (T, bool) {
	return l.value, l.ready
}

// Combine2 derives a Loadable from two independent ones: failed if either
// failed, loading if either is still loading, ready only when both are.
func Combine2[A, B, R any](a Loadable[A], b Loadable[B], fn func(A, B) R) Loadable[R] {
	if a.err != nil {
		return Failed[R](a.err)
	}
	if b.err != nil {
		return Failed[R](b.err)
	}
	if !a.ready || !b.ready {
		return Loading[R]()
	}
	return Ready(fn(a.value, b.value))
}
