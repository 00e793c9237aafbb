package main

// Datum is a value produced by the reader and manipulated by the evaluator.
// The set of implementations is closed: Integer, Float, Boolean, String,
// Symbol, *Pair, Empty, *Closure, *Primitive, Unspecified and Void.
type Datum interface {
	datum()
}

type Integer int64
type Float float64
type Boolean bool
type String string
type Symbol string

// Pair is a cons cell. Both fields may be mutated independently.
type Pair struct {
	Car Datum
	Cdr Datum
}

// Empty is the end-of-list marker. It is not a pair.
type Empty struct{}

// Unspecified marks a letrec binding whose value has not been assigned yet.
type Unspecified struct{}

// Void is the result of forms with nothing to print, such as define and set!.
type Void struct{}

// PrimitiveFunc receives the evaluated argument list as a proper list.
type PrimitiveFunc func(args Datum) (Datum, error)

// a native procedure bound in the global environment
type Primitive struct {
	Name string
	Fn   PrimitiveFunc
}

// a user defined procedure that can be applied later
type Closure struct {
	Params []Symbol
	Body   Datum
	Env    *Env
}

const (
	True  Boolean = true
	False Boolean = false
)

func (Integer) datum()     {}
func (Float) datum()       {}
func (Boolean) datum()     {}
func (String) datum()      {}
func (Symbol) datum()      {}
func (*Pair) datum()       {}
func (Empty) datum()       {}
func (Unspecified) datum() {}
func (Void) datum()        {}
func (*Primitive) datum()  {}
func (*Closure) datum()    {}

func Cons(car, cdr Datum) *Pair {
	return &Pair{Car: car, Cdr: cdr}
}

func IsEmpty(d Datum) bool {
	_, ok := d.(Empty)
	return ok
}

// IsTruthy reports whether d counts as true in a conditional.
// Only the false token is falsy.
func IsTruthy(d Datum) bool {
	b, ok := d.(Boolean)
	return !ok || bool(b)
}

// List builds a proper list from items.
func List(items ...Datum) Datum {
	var ret Datum = Empty{}
	for i := len(items) - 1; i >= 0; i-- {
		ret = Cons(items[i], ret)
	}
	return ret
}

// Reverse returns a new list with the elements of list in reverse order.
// The cells of the input are never reused.
func Reverse(list Datum) (Datum, error) {
	var ret Datum = Empty{}
	for cur := list; !IsEmpty(cur); {
		p, ok := cur.(*Pair)
		if !ok {
			return nil, newError(TypeError, list, "improper list")
		}
		ret = Cons(p.Car, ret)
		cur = p.Cdr
	}
	return ret, nil
}

// ToSlice collects the elements of a proper list.
func ToSlice(list Datum) ([]Datum, error) {
	var items []Datum
	for cur := list; !IsEmpty(cur); {
		p, ok := cur.(*Pair)
		if !ok {
			return nil, newError(MalformedExpression, list, "improper list")
		}
		items = append(items, p.Car)
		cur = p.Cdr
	}
	return items, nil
}

// Length counts the elements of a proper list.
func Length(list Datum) (int, error) {
	n := 0
	for cur := list; !IsEmpty(cur); n++ {
		p, ok := cur.(*Pair)
		if !ok {
			return 0, newError(TypeError, list, "improper list")
		}
		cur = p.Cdr
	}
	return n, nil
}
