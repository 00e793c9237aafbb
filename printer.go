package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders val the way the driver shows results. Void renders as "".
func Print(val Datum) string {
	switch t := val.(type) {
	case Integer:
		return strconv.FormatInt(int64(t), 10)
	case Float:
		return formatFloat(t)
	case Boolean:
		if t {
			return "#t"
		}
		return "#f"
	case String:
		return fmt.Sprintf("%q", string(t))
	case Symbol:
		return string(t)
	case Empty:
		return "()"
	case *Pair:
		return printList(t)
	case *Closure:
		return "#<procedure>"
	case *Primitive:
		return fmt.Sprintf("#<primitive:%s>", t.Name)
	case Unspecified:
		return "#<unspecified>"
	case Void:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

func printList(p *Pair) string {
	var arr []string
	var cur Datum = p
	for {
		switch t := cur.(type) {
		case *Pair:
			arr = append(arr, Print(t.Car))
			cur = t.Cdr
			continue
		case Empty:
		default:
			arr = append(arr, ".", Print(t))
		}
		break
	}
	return fmt.Sprintf("(%s)", strings.Join(arr, " "))
}

// floats always carry a decimal point so they read back as floats
func formatFloat(f Float) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}
