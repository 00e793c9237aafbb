package main

// Equals reports structural equality: pairs are compared element by element,
// everything else by value. Integers and floats are never equal to each other.
func Equals(v1, v2 Datum) bool {
	for {
		pair1, isPair1 := v1.(*Pair)
		pair2, isPair2 := v2.(*Pair)
		if !isPair1 || !isPair2 {
			return v1 == v2
		}
		if pair1 == pair2 {
			return true
		}
		if !Equals(pair1.Car, pair2.Car) {
			return false
		}
		v1, v2 = pair1.Cdr, pair2.Cdr
	}
}
