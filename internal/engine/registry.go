package engine

// Registry maps asset symbols to their configured engines.
type Registry struct {
	engines map[string]Engine
}

func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]Engine),
	}
}

func (r *Registry) Add(e Engine) {
	r.engines[e.Symbol()] = e
}

func (r *Registry) Get(symbol string) (Engine, bool) {
	e, ok := r.engines[symbol]
	return e, ok
}

func (r *Registry) Symbols() []string {
	symbols := make([]string, 0, len(r.engines))
	for symbol := range r.engines {
		symbols = append(symbols, symbol)
	}
	return symbols
}
