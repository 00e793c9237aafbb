package main

import (
	"github.com/nukata/goarith"
)

var defaultEnv []*Primitive

func init() {
	defaultEnv = []*Primitive{
		{"+", add},
		{"-", sub},
		{"*", mul},
		{"/", div},
		{"modulo", modulo},
		{"=", numEq},
		{"<", lt},
		{">", gt},
		{"<=", lte},
		{">=", gte},
		{"cons", cons},
		{"car", car},
		{"cdr", cdr},
		{"list", list},
		{"reverse", reverse},
		{"length", length},
		{"null?", nullPred},
		{"pair?", pairPred},
		{"not", not},
		{"eq?", eq},
		{"equal?", equal},
	}
}

// NewGlobalEnv creates the root frame with every primitive bound.
func NewGlobalEnv() *Env {
	env := NewEnv(nil)
	for _, p := range defaultEnv {
		env.Register(p.Name, p.Fn)
	}
	return env
}

// primArgs converts the argument list and checks its length.
// A negative max means no upper bound.
func primArgs(name string, args Datum, min, max int) ([]Datum, error) {
	items, err := ToSlice(args)
	if err != nil {
		return nil, err
	}
	if len(items) < min || (max >= 0 && len(items) > max) {
		return nil, newError(ArityError, Symbol(name), "wrong number of args (%d) passed to procedure", len(items))
	}
	return items, nil
}

func invalidOperand(name string, arg Datum) error {
	return newError(TypeError, arg, "'%s' has invalid argument", name)
}

// Arithmetic

func add(args Datum) (Datum, error) {
	items, err := primArgs("+", args, 0, -1)
	if err != nil {
		return nil, err
	}
	return agg("+", append([]Datum{Integer(0)}, items...),
		func(r, x Integer) Integer {
			return r + x
		},
		func(r, x Float) Float {
			return r + x
		})
}

func sub(args Datum) (Datum, error) {
	items, err := primArgs("-", args, 1, -1)
	if err != nil {
		return nil, err
	}
	if len(items) == 1 {
		items = []Datum{Integer(0), items[0]}
	}
	return agg("-", items,
		func(r, x Integer) Integer {
			return r - x
		},
		func(r, x Float) Float {
			return r - x
		})
}

func mul(args Datum) (Datum, error) {
	items, err := primArgs("*", args, 0, -1)
	if err != nil {
		return nil, err
	}
	return agg("*", append([]Datum{Integer(1)}, items...),
		func(r, x Integer) Integer {
			return r * x
		},
		func(r, x Float) Float {
			return r * x
		})
}

// agg folds args left to right, staying Integer until a Float shows up
func agg(name string, args []Datum, accumInt func(Integer, Integer) Integer, accumFloat func(Float, Float) Float) (Datum, error) {
	ret := args[0]
	if !isNumber(ret) {
		return nil, invalidOperand(name, ret)
	}

	for i := 1; i < len(args); i++ {
		ri, rIsInt := ret.(Integer)
		rf, rIsFloat := ret.(Float)

		ai, aIsInt := args[i].(Integer)
		af, aIsFloat := args[i].(Float)

		if rIsInt && aIsInt {
			ret = accumInt(ri, ai)
		} else if rIsInt && aIsFloat {
			ret = accumFloat(Float(ri), af)
		} else if rIsFloat && aIsInt {
			ret = accumFloat(rf, Float(ai))
		} else if rIsFloat && aIsFloat {
			ret = accumFloat(rf, af)
		} else {
			return nil, invalidOperand(name, args[i])
		}
	}
	return ret, nil
}

// div keeps integer results when the division is exact
func div(args Datum) (Datum, error) {
	items, err := primArgs("/", args, 2, -1)
	if err != nil {
		return nil, err
	}

	ret := items[0]
	if !isNumber(ret) {
		return nil, invalidOperand("/", ret)
	}

	for _, x := range items[1:] {
		ri, rIsInt := ret.(Integer)
		ai, aIsInt := x.(Integer)
		if rIsInt && aIsInt {
			if ai == 0 {
				return nil, newError(TypeError, x, "'/' division by zero")
			}
			if ri%ai == 0 {
				ret = ri / ai
			} else {
				ret = Float(ri) / Float(ai)
			}
			continue
		}

		if !isNumber(x) {
			return nil, invalidOperand("/", x)
		}
		ret = toFloat(ret) / toFloat(x)
	}
	return ret, nil
}

func modulo(args Datum) (Datum, error) {
	items, err := primArgs("modulo", args, 2, 2)
	if err != nil {
		return nil, err
	}

	a, aIsInt := items[0].(Integer)
	if !aIsInt {
		return nil, invalidOperand("modulo", items[0])
	}
	b, bIsInt := items[1].(Integer)
	if !bIsInt {
		return nil, invalidOperand("modulo", items[1])
	}
	if b == 0 {
		return nil, newError(TypeError, items[1], "'modulo' division by zero")
	}

	// the result takes the sign of the divisor
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m, nil
}

func isNumber(d Datum) bool {
	switch d.(type) {
	case Integer, Float:
		return true
	}
	return false
}

func toFloat(d Datum) Float {
	switch t := d.(type) {
	case Integer:
		return Float(t)
	case Float:
		return t
	}
	return 0
}

// Comparison

func numEq(args Datum) (Datum, error) {
	return compare("=", args, func(c int) bool { return c == 0 })
}

func lt(args Datum) (Datum, error) {
	return compare("<", args, func(c int) bool { return c < 0 })
}

func gt(args Datum) (Datum, error) {
	return compare(">", args, func(c int) bool { return c > 0 })
}

func lte(args Datum) (Datum, error) {
	return compare("<=", args, func(c int) bool { return c <= 0 })
}

func gte(args Datum) (Datum, error) {
	return compare(">=", args, func(c int) bool { return c >= 0 })
}

// compare checks holds for every adjacent pair of arguments, comparing by
// numeric value whatever the Integer/Float mix
func compare(name string, args Datum, holds func(int) bool) (Datum, error) {
	items, err := primArgs(name, args, 2, -1)
	if err != nil {
		return nil, err
	}

	nums := make([]goarith.Number, len(items))
	for i, item := range items {
		nums[i] = asNumber(item)
		if nums[i] == nil {
			return nil, invalidOperand(name, item)
		}
	}

	for i := 1; i < len(nums); i++ {
		if !holds(nums[i-1].Cmp(nums[i])) {
			return False, nil
		}
	}
	return True, nil
}

func asNumber(d Datum) goarith.Number {
	switch t := d.(type) {
	case Integer:
		return goarith.AsNumber(int64(t))
	case Float:
		return goarith.AsNumber(float64(t))
	}
	return nil
}

// Lists

func cons(args Datum) (Datum, error) {
	items, err := primArgs("cons", args, 2, 2)
	if err != nil {
		return nil, err
	}
	return Cons(items[0], items[1]), nil
}

func car(args Datum) (Datum, error) {
	items, err := primArgs("car", args, 1, 1)
	if err != nil {
		return nil, err
	}
	p, isPair := items[0].(*Pair)
	if !isPair {
		return nil, invalidOperand("car", items[0])
	}
	return p.Car, nil
}

func cdr(args Datum) (Datum, error) {
	items, err := primArgs("cdr", args, 1, 1)
	if err != nil {
		return nil, err
	}
	p, isPair := items[0].(*Pair)
	if !isPair {
		return nil, invalidOperand("cdr", items[0])
	}
	return p.Cdr, nil
}

func list(args Datum) (Datum, error) {
	items, err := ToSlice(args)
	if err != nil {
		return nil, err
	}
	return List(items...), nil
}

func reverse(args Datum) (Datum, error) {
	items, err := primArgs("reverse", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Reverse(items[0])
}

func length(args Datum) (Datum, error) {
	items, err := primArgs("length", args, 1, 1)
	if err != nil {
		return nil, err
	}
	n, err := Length(items[0])
	if err != nil {
		return nil, err
	}
	return Integer(n), nil
}

// Predicates

func nullPred(args Datum) (Datum, error) {
	items, err := primArgs("null?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Boolean(IsEmpty(items[0])), nil
}

func pairPred(args Datum) (Datum, error) {
	items, err := primArgs("pair?", args, 1, 1)
	if err != nil {
		return nil, err
	}
	_, ok := items[0].(*Pair)
	return Boolean(ok), nil
}

func not(args Datum) (Datum, error) {
	items, err := primArgs("not", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return Boolean(!IsTruthy(items[0])), nil
}

// eq compares identity: pointers for pairs and procedures, values for atoms
func eq(args Datum) (Datum, error) {
	items, err := primArgs("eq?", args, 2, 2)
	if err != nil {
		return nil, err
	}
	return Boolean(items[0] == items[1]), nil
}

func equal(args Datum) (Datum, error) {
	items, err := primArgs("equal?", args, 2, 2)
	if err != nil {
		return nil, err
	}
	return Boolean(Equals(items[0], items[1])), nil
}
