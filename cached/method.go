package cached

// Method0 caches a method without arguments, such as a hash or a derived
// property. Every owner gets its own single-entry cache keyed by the empty
// argument list, so the owner's own hash is never needed to find it.
type Method0[T, V any] struct {
	*binder[T, V]
	fn func(*T) (V, error)
}

// NewMethod0 declares a cached method without arguments.
func NewMethod0[T, V any](name string, fn func(*T) (V, error), opts ...Option) *Method0[T, V] {
	return &Method0[T, V]{binder: newBinder[T, V](name, fn == nil, opts), fn: fn}
}

// Bind returns recv's method backed by recv's instance cache.
func (m *Method0[T, V]) Bind(recv *T) (func() (V, error), error) {
	c, err := m.Cache(recv)
	if err != nil {
		return nil, err
	}
	return func() (V, error) {
		return m.do(c, nil, nil, func() (V, error) { return m.fn(recv) })
	}, nil
}

// Call invokes the method on recv through its instance cache.
func (m *Method0[T, V]) Call(recv *T) (V, error) {
	c, err := m.Cache(recv)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.do(c, nil, nil, func() (V, error) { return m.fn(recv) })
}

// Method1 caches a one-argument method.
type Method1[T, A1, V any] struct {
	*binder[T, V]
	fn func(*T, A1) (V, error)
}

// NewMethod1 declares a cached one-argument method.
func NewMethod1[T, A1, V any](name string, fn func(*T, A1) (V, error), opts ...Option) *Method1[T, A1, V] {
	return &Method1[T, A1, V]{binder: newBinder[T, V](name, fn == nil, opts), fn: fn}
}

// Bind returns recv's method backed by recv's instance cache.
func (m *Method1[T, A1, V]) Bind(recv *T) (func(A1) (V, error), error) {
	c, err := m.Cache(recv)
	if err != nil {
		return nil, err
	}
	return func(a1 A1) (V, error) { return m.call(c, recv, a1) }, nil
}

// Call invokes the method on recv with a1 through its instance cache.
func (m *Method1[T, A1, V]) Call(recv *T, a1 A1) (V, error) {
	c, err := m.Cache(recv)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.call(c, recv, a1)
}

func (m *Method1[T, A1, V]) call(c *InstanceCache[V], recv *T, a1 A1) (V, error) {
	return m.do(c, []any{a1}, nil, func() (V, error) { return m.fn(recv, a1) })
}

// Method2 caches a two-argument method.
type Method2[T, A1, A2, V any] struct {
	*binder[T, V]
	fn func(*T, A1, A2) (V, error)
}

// NewMethod2 declares a cached two-argument method.
func NewMethod2[T, A1, A2, V any](name string, fn func(*T, A1, A2) (V, error), opts ...Option) *Method2[T, A1, A2, V] {
	return &Method2[T, A1, A2, V]{binder: newBinder[T, V](name, fn == nil, opts), fn: fn}
}

// Bind returns recv's method backed by recv's instance cache.
func (m *Method2[T, A1, A2, V]) Bind(recv *T) (func(A1, A2) (V, error), error) {
	c, err := m.Cache(recv)
	if err != nil {
		return nil, err
	}
	return func(a1 A1, a2 A2) (V, error) { return m.call(c, recv, a1, a2) }, nil
}

// Call invokes the method on recv through its instance cache.
func (m *Method2[T, A1, A2, V]) Call(recv *T, a1 A1, a2 A2) (V, error) {
	c, err := m.Cache(recv)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.call(c, recv, a1, a2)
}

func (m *Method2[T, A1, A2, V]) call(c *InstanceCache[V], recv *T, a1 A1, a2 A2) (V, error) {
	return m.do(c, []any{a1, a2}, nil, func() (V, error) { return m.fn(recv, a1, a2) })
}

// Method3 caches a three-argument method.
type Method3[T, A1, A2, A3, V any] struct {
	*binder[T, V]
	fn func(*T, A1, A2, A3) (V, error)
}

// NewMethod3 declares a cached three-argument method.
func NewMethod3[T, A1, A2, A3, V any](name string, fn func(*T, A1, A2, A3) (V, error), opts ...Option) *Method3[T, A1, A2, A3, V] {
	return &Method3[T, A1, A2, A3, V]{binder: newBinder[T, V](name, fn == nil, opts), fn: fn}
}

// Bind returns recv's method backed by recv's instance cache.
func (m *Method3[T, A1, A2, A3, V]) Bind(recv *T) (func(A1, A2, A3) (V, error), error) {
	c, err := m.Cache(recv)
	if err != nil {
		return nil, err
	}
	return func(a1 A1, a2 A2, a3 A3) (V, error) { return m.call(c, recv, a1, a2, a3) }, nil
}

// Call invokes the method on recv through its instance cache.
func (m *Method3[T, A1, A2, A3, V]) Call(recv *T, a1 A1, a2 A2, a3 A3) (V, error) {
	c, err := m.Cache(recv)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.call(c, recv, a1, a2, a3)
}

func (m *Method3[T, A1, A2, A3, V]) call(c *InstanceCache[V], recv *T, a1 A1, a2 A2, a3 A3) (V, error) {
	return m.do(c, []any{a1, a2, a3}, nil, func() (V, error) { return m.fn(recv, a1, a2, a3) })
}

// Method4 caches a four-argument method.
type Method4[T, A1, A2, A3, A4, V any] struct {
	*binder[T, V]
	fn func(*T, A1, A2, A3, A4) (V, error)
}

// NewMethod4 declares a cached four-argument method.
func NewMethod4[T, A1, A2, A3, A4, V any](name string, fn func(*T, A1, A2, A3, A4) (V, error), opts ...Option) *Method4[T, A1, A2, A3, A4, V] {
	return &Method4[T, A1, A2, A3, A4, V]{binder: newBinder[T, V](name, fn == nil, opts), fn: fn}
}

// Bind returns recv's method backed by recv's instance cache.
func (m *Method4[T, A1, A2, A3, A4, V]) Bind(recv *T) (func(A1, A2, A3, A4) (V, error), error) {
	c, err := m.Cache(recv)
	if err != nil {
		return nil, err
	}
	return func(a1 A1, a2 A2, a3 A3, a4 A4) (V, error) { return m.call(c, recv, a1, a2, a3, a4) }, nil
}

// Call invokes the method on recv through its instance cache.
func (m *Method4[T, A1, A2, A3, A4, V]) Call(recv *T, a1 A1, a2 A2, a3 A3, a4 A4) (V, error) {
	c, err := m.Cache(recv)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.call(c, recv, a1, a2, a3, a4)
}

func (m *Method4[T, A1, A2, A3, A4, V]) call(c *InstanceCache[V], recv *T, a1 A1, a2 A2, a3 A3, a4 A4) (V, error) {
	return m.do(c, []any{a1, a2, a3, a4}, nil, func() (V, error) { return m.fn(recv, a1, a2, a3, a4) })
}

// MethodKw caches a method taking positional and keyword arguments. Keyword
// order does not affect the key.
type MethodKw[T, V any] struct {
	*binder[T, V]
	fn func(*T, Args) (V, error)
}

// NewMethodKw declares a cached method taking Args.
func NewMethodKw[T, V any](name string, fn func(*T, Args) (V, error), opts ...Option) *MethodKw[T, V] {
	return &MethodKw[T, V]{binder: newBinder[T, V](name, fn == nil, opts), fn: fn}
}

// Bind returns recv's method backed by recv's instance cache.
func (m *MethodKw[T, V]) Bind(recv *T) (func(Args) (V, error), error) {
	c, err := m.Cache(recv)
	if err != nil {
		return nil, err
	}
	return func(args Args) (V, error) { return m.call(c, recv, args) }, nil
}

// Call invokes the method on recv with args through its instance cache.
func (m *MethodKw[T, V]) Call(recv *T, args Args) (V, error) {
	c, err := m.Cache(recv)
	if err != nil {
		var zero V
		return zero, err
	}
	return m.call(c, recv, args)
}

func (m *MethodKw[T, V]) call(c *InstanceCache[V], recv *T, args Args) (V, error) {
	return m.do(c, args.Positional, args.Keyword, func() (V, error) { return m.fn(recv, args) })
}
