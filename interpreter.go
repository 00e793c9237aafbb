package main

// Form identifies a special form. Special forms receive their arguments
// unevaluated and are recognised by keyword before any environment lookup,
// so they cannot be shadowed.
type Form int

const (
	FormQuote Form = iota
	FormIf
	FormDefine
	FormLambda
	FormLet
	FormLetStar
	FormLetrec
	FormSet
	FormBegin
	FormAnd
	FormOr
	FormCond
)

var formNames = [...]string{
	FormQuote:   "quote",
	FormIf:      "if",
	FormDefine:  "define",
	FormLambda:  "lambda",
	FormLet:     "let",
	FormLetStar: "let*",
	FormLetrec:  "letrec",
	FormSet:     "set!",
	FormBegin:   "begin",
	FormAnd:     "and",
	FormOr:      "or",
	FormCond:    "cond",
}

var keywords = func() map[Symbol]Form {
	m := make(map[Symbol]Form, len(formNames))
	for form, name := range formNames {
		m[Symbol(name)] = Form(form)
	}
	return m
}()

func (f Form) String() string {
	return formNames[f]
}

// special forms take unevaluated arguments and the env
type specialform func(args Datum, env *Env) (Datum, error)

func (f Form) handler() specialform {
	switch f {
	case FormQuote:
		return quote
	case FormIf:
		return ifForm
	case FormDefine:
		return define
	case FormLambda:
		return lambda
	case FormLet:
		return let
	case FormLetStar:
		return letStar
	case FormLetrec:
		return letrec
	case FormSet:
		return set
	case FormBegin:
		return begin
	case FormAnd:
		return and
	case FormOr:
		return or
	case FormCond:
		return cond
	}
	return nil
}

// Eval computes the value of expr in env.
func Eval(expr Datum, env *Env) (Datum, error) {
	switch t := expr.(type) {
	case Integer, Float, Boolean, String, *Closure, *Primitive:
		return t, nil
	case Symbol:
		val, err := env.Lookup(t)
		if err != nil {
			return nil, err
		}
		if _, pending := val.(Unspecified); pending {
			return nil, newError(UnspecifiedReference, t, "letrec binding referenced before it was assigned")
		}
		return val, nil
	case Unspecified:
		return nil, newError(UnspecifiedReference, nil, "unassigned letrec placeholder evaluated")
	case *Pair:
		return evalPair(t, env)
	default:
		return nil, newError(MalformedExpression, expr, "cannot evaluate")
	}
}

func evalPair(expr *Pair, env *Env) (Datum, error) {
	if IsEmpty(expr.Car) {
		return nil, newError(MalformedExpression, expr, "empty operator position")
	}

	if sym, isSym := expr.Car.(Symbol); isSym {
		if form, isForm := keywords[sym]; isForm {
			return form.handler()(expr.Cdr, env)
		}
	}

	front, err := Eval(expr.Car, env)
	if err != nil {
		return nil, err
	}

	args, err := evalArgs(expr.Cdr, env)
	if err != nil {
		return nil, err
	}

	return Apply(front, args)
}

// eval every element of a proper list, left to right, into a fresh list
func evalArgs(list Datum, env *Env) (Datum, error) {
	var head Datum = Empty{}
	var tail *Pair
	for cur := list; !IsEmpty(cur); {
		p, isPair := cur.(*Pair)
		if !isPair {
			return nil, newError(MalformedExpression, list, "improper argument list")
		}

		val, err := Eval(p.Car, env)
		if err != nil {
			return nil, err
		}

		cell := Cons(val, Empty{})
		if tail == nil {
			head = cell
		} else {
			tail.Cdr = cell
		}
		tail = cell
		cur = p.Cdr
	}
	return head, nil
}

// evaluate forms in order and return the last result, or Void if there are none
func evalSequence(forms Datum, env *Env) (Datum, error) {
	items, err := ToSlice(forms)
	if err != nil {
		return nil, err
	}

	var result Datum = Void{}
	for _, item := range items {
		result, err = Eval(item, env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Apply calls proc with an already evaluated argument list.
func Apply(proc Datum, args Datum) (Datum, error) {
	switch fn := proc.(type) {
	case *Primitive:
		return fn.Fn(args)
	case *Closure:
		child := NewEnv(fn.Env)
		cur := args
		for _, param := range fn.Params {
			p, isPair := cur.(*Pair)
			if !isPair {
				return nil, arityMismatch(fn, args)
			}
			child.Define(param, p.Car)
			cur = p.Cdr
		}
		if !IsEmpty(cur) {
			return nil, arityMismatch(fn, args)
		}
		return Eval(fn.Body, child)
	default:
		return nil, newError(NotCallable, proc, "first expression in a call is not a procedure")
	}
}

func arityMismatch(fn *Closure, args Datum) error {
	n, _ := Length(args)
	return newError(ArityError, fn, "wrong number of args (%d) passed to procedure expecting %d", n, len(fn.Params))
}

// Special Forms

// formArgs checks that a special form received exactly n arguments
func formArgs(form Form, args Datum, n int) ([]Datum, error) {
	items, err := ToSlice(args)
	if err != nil {
		return nil, err
	}
	if len(items) != n {
		return nil, newError(ArityError, Cons(Symbol(form.String()), args),
			"wrong number of args (%d) passed to %s, expected %d", len(items), form, n)
	}
	return items, nil
}

func quote(args Datum, env *Env) (Datum, error) {
	items, err := formArgs(FormQuote, args, 1)
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

func ifForm(args Datum, env *Env) (Datum, error) {
	items, err := formArgs(FormIf, args, 3)
	if err != nil {
		return nil, err
	}

	test, err := Eval(items[0], env)
	if err != nil {
		return nil, err
	}

	if IsTruthy(test) {
		return Eval(items[1], env)
	}
	return Eval(items[2], env)
}

func define(args Datum, env *Env) (Datum, error) {
	items, err := formArgs(FormDefine, args, 2)
	if err != nil {
		return nil, err
	}

	sym, isSym := items[0].(Symbol)
	if !isSym {
		return nil, newError(TypeError, items[0], "first argument to define must be a symbol")
	}

	evaled, err := Eval(items[1], env)
	if err != nil {
		return nil, err
	}

	env.Define(sym, evaled)
	return Void{}, nil
}

func lambda(args Datum, env *Env) (Datum, error) {
	items, err := formArgs(FormLambda, args, 2)
	if err != nil {
		return nil, err
	}

	params, err := ToSlice(items[0])
	if err != nil {
		return nil, newError(MalformedExpression, items[0], "lambda parameters must be a list")
	}

	symbols := make([]Symbol, len(params))
	for i, p := range params {
		sym, isSym := p.(Symbol)
		if !isSym {
			return nil, newError(TypeError, p, "lambda parameter must be a symbol")
		}
		for _, prev := range symbols[:i] {
			if prev == sym {
				return nil, newError(DuplicateBinding, sym, "duplicate lambda parameter")
			}
		}
		symbols[i] = sym
	}

	return &Closure{
		Params: symbols,
		Body:   items[1],
		Env:    env,
	}, nil
}

// splitLet separates the binding list from the body of a let family form
func splitLet(form Form, args Datum) (names []Symbol, exprs []Datum, body Datum, err error) {
	p, isPair := args.(*Pair)
	if !isPair {
		return nil, nil, nil, newError(ArityError, Cons(Symbol(form.String()), args), "%s requires bindings and a body", form)
	}
	if IsEmpty(p.Cdr) {
		return nil, nil, nil, newError(ArityError, Cons(Symbol(form.String()), args), "no body in %s expression", form)
	}

	bindings, err := ToSlice(p.Car)
	if err != nil {
		return nil, nil, nil, newError(MalformedExpression, p.Car, "%s bindings must be a list", form)
	}

	names = make([]Symbol, len(bindings))
	exprs = make([]Datum, len(bindings))
	for i, b := range bindings {
		pair, err := ToSlice(b)
		if err != nil || len(pair) != 2 {
			return nil, nil, nil, newError(MalformedExpression, b, "%s binding must be (name expr)", form)
		}
		sym, isSym := pair[0].(Symbol)
		if !isSym {
			return nil, nil, nil, newError(TypeError, pair[0], "%s binding name must be a symbol", form)
		}
		names[i] = sym
		exprs[i] = pair[1]
	}
	return names, exprs, p.Cdr, nil
}

func checkDistinct(form Form, names []Symbol) error {
	seen := make(map[Symbol]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return newError(DuplicateBinding, name, "attempt to bind symbol twice in %s", form)
		}
		seen[name] = true
	}
	return nil
}

func let(args Datum, env *Env) (Datum, error) {
	names, exprs, body, err := splitLet(FormLet, args)
	if err != nil {
		return nil, err
	}
	if err := checkDistinct(FormLet, names); err != nil {
		return nil, err
	}

	// initializers see only the outer frame
	vals := make([]Datum, len(exprs))
	for i, expr := range exprs {
		vals[i], err = Eval(expr, env)
		if err != nil {
			return nil, err
		}
	}

	child := NewEnv(env)
	for i, name := range names {
		child.Define(name, vals[i])
	}
	return evalSequence(body, child)
}

func letStar(args Datum, env *Env) (Datum, error) {
	names, exprs, body, err := splitLet(FormLetStar, args)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return evalSequence(body, NewEnv(env))
	}

	frame := env
	for i, name := range names {
		val, err := Eval(exprs[i], frame)
		if err != nil {
			return nil, err
		}
		next := NewEnv(frame)
		next.Define(name, val)
		frame = next
	}
	return evalSequence(body, frame)
}

func letrec(args Datum, env *Env) (Datum, error) {
	names, exprs, body, err := splitLet(FormLetrec, args)
	if err != nil {
		return nil, err
	}
	if err := checkDistinct(FormLetrec, names); err != nil {
		return nil, err
	}

	child := NewEnv(env)
	for _, name := range names {
		child.Define(name, Unspecified{})
	}

	// every initializer runs before any placeholder is replaced
	vals := make([]Datum, len(exprs))
	for i, expr := range exprs {
		vals[i], err = Eval(expr, child)
		if err != nil {
			return nil, err
		}
	}

	for i, name := range names {
		if err := child.Set(name, vals[i]); err != nil {
			return nil, err
		}
	}
	return evalSequence(body, child)
}

func set(args Datum, env *Env) (Datum, error) {
	items, err := formArgs(FormSet, args, 2)
	if err != nil {
		return nil, err
	}

	sym, isSym := items[0].(Symbol)
	if !isSym {
		return nil, newError(TypeError, items[0], "first argument to set! must be a symbol")
	}

	evaled, err := Eval(items[1], env)
	if err != nil {
		return nil, err
	}

	if err := env.Set(sym, evaled); err != nil {
		return nil, err
	}
	return Void{}, nil
}

func begin(args Datum, env *Env) (Datum, error) {
	return evalSequence(args, env)
}

func and(args Datum, env *Env) (Datum, error) {
	items, err := ToSlice(args)
	if err != nil {
		return nil, err
	}

	var result Datum = True
	for _, item := range items {
		result, err = Eval(item, env)
		if err != nil {
			return nil, err
		}
		if !IsTruthy(result) {
			return False, nil
		}
	}
	return result, nil
}

func or(args Datum, env *Env) (Datum, error) {
	items, err := ToSlice(args)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		val, err := Eval(item, env)
		if err != nil {
			return nil, err
		}
		if IsTruthy(val) {
			return True, nil
		}
	}
	return False, nil
}

func cond(args Datum, env *Env) (Datum, error) {
	clauses, err := ToSlice(args)
	if err != nil {
		return nil, err
	}

	for _, clause := range clauses {
		parts, err := ToSlice(clause)
		if err != nil || len(parts) != 2 {
			return nil, newError(MalformedExpression, clause, "cond clause must be (test expr)")
		}

		if sym, isSym := parts[0].(Symbol); isSym && sym == "else" {
			return Eval(parts[1], env)
		}

		test, err := Eval(parts[0], env)
		if err != nil {
			return nil, err
		}
		if IsTruthy(test) {
			return Eval(parts[1], env)
		}
	}
	return Void{}, nil
}
