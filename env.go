package main

// binding is one (symbol, value) entry. Its value is replaced in place by set!
// so every frame that reaches the binding observes the update.
type binding struct {
	sym  Symbol
	val  Datum
	next *binding
}

// Env is one frame of the lexical scope chain. Bindings are kept newest
// first; a later define of the same symbol shadows the earlier one.
type Env struct {
	bindings *binding
	parent   *Env
}

func NewEnv(parent *Env) *Env {
	return &Env{parent: parent}
}

func (e *Env) Parent() *Env {
	return e.parent
}

func (e *Env) find(sym Symbol) *binding {
	for frame := e; frame != nil; frame = frame.parent {
		for b := frame.bindings; b != nil; b = b.next {
			if b.sym == sym {
				return b
			}
		}
	}
	return nil
}

// Lookup returns the value of the nearest binding of sym.
func (e *Env) Lookup(sym Symbol) (Datum, error) {
	b := e.find(sym)
	if b == nil {
		return nil, newError(UnboundSymbol, sym, "symbol unbound")
	}
	return b.val, nil
}

// Define adds a binding to this frame only.
func (e *Env) Define(sym Symbol, val Datum) {
	e.bindings = &binding{sym: sym, val: val, next: e.bindings}
}

// Set replaces the value of the nearest existing binding of sym.
func (e *Env) Set(sym Symbol, val Datum) error {
	b := e.find(sym)
	if b == nil {
		return newError(UnboundSymbol, sym, "cannot set! unbound symbol")
	}
	b.val = val
	return nil
}

// Register binds a native procedure in this frame.
func (e *Env) Register(name string, fn PrimitiveFunc) {
	e.Define(Symbol(name), &Primitive{Name: name, Fn: fn})
}

// Symbols lists the names bound in this frame, newest first.
func (e *Env) Symbols() []Symbol {
	var syms []Symbol
	for b := e.bindings; b != nil; b = b.next {
		syms = append(syms, b.sym)
	}
	return syms
}

