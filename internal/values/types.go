package values

import (
	"fmt"
	"sync"
	"time"
)

// Weekday is an iota enumeration with a String method, the Go shape of a
// C-like enum.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Flags is a bit set built from shifted constants.
type Flags uint8

const (
	FlagRead Flags = 1 << iota
	FlagWrite
	FlagExec
)

// Shape is a closed sum type: only the variants in this package implement it.
type Shape interface {
	Area() float64
	isShape()
}

// Unit is a variant with no payload.
type Unit struct{}

// Circle is a variant with a single field.
type Circle struct {
	Radius float64
}

// Rect is a variant with named fields.
type Rect struct {
	Width, Height float64
}

// Triangle is a variant holding a fixed array.
type Triangle struct {
	Sides [3]float64
}

// Area implements Shape. A Unit has no extent.
func (Unit) Area() float64 { return 0 }

// Area implements Shape.
func (c Circle) Area() float64 { return 3.141592653589793 * c.Radius * c.Radius }

// Area implements Shape.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Area implements Shape, treating the first two sides as the legs of a
// right triangle.
func (t Triangle) Area() float64 { return t.Sides[0] * t.Sides[1] / 2 }

func (Unit) isShape()     {}
func (Circle) isShape()   {}
func (Rect) isShape()     {}
func (Triangle) isShape() {}

// Empty has no fields.
type Empty struct{}

// Point is a plain two-field struct.
type Point struct {
	X, Y int
}

// Pair is the closest Go shape to a tuple struct.
type Pair struct {
	First  int32
	Second string
}

// Line nests two Points.
type Line struct {
	From, To Point
	Label    string
}

// Named is embedded by Labeled to exercise promoted fields.
type Named struct {
	Name string
}

// Labeled embeds Named and a pointer to Point.
type Labeled struct {
	Named
	*Point
	Tags []string
}

// Wrapper is a generic struct.
type Wrapper[T any] struct {
	Value T
	Valid bool
}

// private keeps unexported fields, which debuggers show but reflection hides.
type private struct {
	id     uint64
	secret string
	next   *private
}

// Node links to itself to form a cycle.
type Node struct {
	Value int
	Next  *Node
}

// Assorted groups types that have no better home.
type Assorted struct {
	Mu      sync.Mutex
	Started time.Time
	Timeout time.Duration
	Err     error
}
