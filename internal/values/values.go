// Package values builds variables of every common Go shape so a debugger
// has something to break on and inspect. Each exercise hands its locals to
// Inspect, a non-inlined call that gives every shape a stable line.
//
// The binary is meant to be built with -gcflags=all=-N -l; the exercises
// still keep every value reachable through Inspect when it is not.
package values

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var (
	mu   sync.Mutex
	seen = map[string][]any{}
)

// Inspect records vals under name. It is the intended breakpoint target.
//
//go:noinline
func Inspect(name string, vals ...any) {
	mu.Lock()
	defer mu.Unlock()
	seen[name] = vals
}

// Seen returns the values the named exercise last passed to Inspect.
func Seen(name string) ([]any, bool) {
	mu.Lock()
	defer mu.Unlock()
	vals, ok := seen[name]
	return vals, ok
}

// Reset forgets everything recorded by Inspect.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	seen = map[string][]any{}
}

// Exercise is one named value-construction step.
type Exercise struct {
	Name string
	Run  func()
}

// Exercises lists the steps run by All, in order.
func Exercises() []Exercise {
	return []Exercise{
		{"primitives", Primitives},
		{"enums", Enums},
		{"structs", Structs},
		{"arrays", Arrays},
		{"boxes", Boxes},
		{"strings", Strings},
		{"maps", Maps},
		{"misc", Misc},
		{"step_in", func() { StepIn() }},
	}
}

// All runs every exercise in order. A non-nil before is called ahead of
// each exercise, which lets callers trace progress without knowing the list.
func All(before func(Exercise)) {
	for _, e := range Exercises() {
		if before != nil {
			before(e)
		}
		e.Run()
	}
}

// Primitives covers every built-in scalar type, each set to a boundary or
// otherwise recognizable value so a variable view is easy to check.
func Primitives() {
	vBool := true
	vInt := -42
	vInt8 := int8(-128)
	vInt16 := int16(-32768)
	vInt32 := int32(-2147483648)
	vInt64 := int64(-9223372036854775808)
	vUint := uint(42)
	vUint8 := uint8(255)
	vUint16 := uint16(65535)
	vUint32 := uint32(4294967295)
	vUint64 := uint64(18446744073709551615)
	vUintptr := uintptr(0xdeadbeef)
	vFloat32 := float32(3.1415927)
	vFloat64 := 2.718281828459045
	vComplex64 := complex64(complex(1.5, -2.5))
	vComplex128 := complex(-1.25, 0.75)
	vByte := byte('A')
	vRune := 'λ'

	Inspect("primitives",
		vBool, vInt, vInt8, vInt16, vInt32, vInt64,
		vUint, vUint8, vUint16, vUint32, vUint64, vUintptr,
		vFloat32, vFloat64, vComplex64, vComplex128,
		vByte, vRune)
}

// Enums covers iota constants, bit flags and a closed sum type.
func Enums() {
	day := Wednesday
	weekend := []Weekday{Saturday, Sunday}
	outOfRange := Weekday(12)
	flags := FlagRead | FlagWrite
	none := Flags(0)

	var shapes []Shape
	shapes = append(shapes, Unit{}, Circle{Radius: 2}, Rect{Width: 3, Height: 4}, Triangle{Sides: [3]float64{3, 4, 5}})
	var noShape Shape

	total := 0.0
	for _, s := range shapes {
		total += s.Area()
	}

	Inspect("enums", day, weekend, outOfRange, flags, none, shapes, noShape, total)
}

// Structs covers empty, nested, embedded, anonymous and generic structs,
// plus one with only unexported fields. Debuggers read unexported fields
// straight from memory, so they show up even though reflection hides them.
func Structs() {
	empty := Empty{}
	point := Point{X: 1, Y: -1}
	pair := Pair{First: 7, Second: "seven"}
	line := Line{From: Point{0, 0}, To: Point{3, 4}, Label: "hypotenuse"}
	labeled := Labeled{Named: Named{Name: "origin"}, Point: &Point{}, Tags: []string{"a", "b"}}
	anon := struct {
		Key   string
		Count int
	}{"anon", 3}
	wrapped := Wrapper[Point]{Value: point, Valid: true}
	wrappedInt := Wrapper[int]{}
	hidden := private{id: 1, secret: "hunter2"}
	hidden.next = &private{id: 2, secret: "swordfish"}

	Inspect("structs", empty, point, pair, line, labeled, anon, wrapped, wrappedInt, hidden)
}

// Arrays covers fixed arrays and slices, including nil and shared-backing ones.
func Arrays() {
	fixed := [5]int{1, 2, 3, 4, 5}
	var zeroed [3]float64
	emptyArray := [0]int{}
	slice := []int{10, 20, 30}
	var nilSlice []int
	emptySlice := []int{}
	grid := [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	points := []Point{{1, 2}, {3, 4}}
	sub := fixed[1:4]
	sub[0] = 20
	withCap := make([]byte, 2, 16)

	Inspect("arrays", fixed, zeroed, emptyArray, slice, nilSlice, emptySlice, grid, points, sub, withCap)
}

// Boxes covers pointers and interfaces, including typed and untyped nils.
func Boxes() {
	n := 5
	ptr := &n
	ptrPtr := &ptr
	var nilPtr *Point
	boxed := &Point{X: 9, Y: 9}
	var iface Shape = &Circle{Radius: 1}
	var typedNil fmt.Stringer = (*strings.Builder)(nil)
	var anyInt any = 42
	var anyStruct any = Pair{First: 1, Second: "one"}
	var anyNil any
	list := &Node{Value: 1, Next: &Node{Value: 2, Next: &Node{Value: 3}}}

	**ptrPtr = 6

	Inspect("boxes", ptr, ptrPtr, nilPtr, boxed, iface, typedNil, anyInt, anyStruct, anyNil, list)
}

// Strings covers empty, ASCII, multi-byte and raw strings alongside their
// byte and rune slice forms. The long string is there to test truncation
// in variable views.
func Strings() {
	empty := ""
	ascii := "Hello, debugger"
	unicode := "Привет, 世界 🐞"
	raw := `C:\path\with "quotes"
and a newline`
	bytes := []byte("bytes")
	runes := []rune(unicode)
	runeCount := utf8.RuneCountInString(unicode)

	var b strings.Builder
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "[%d]", i)
	}
	built := b.String()
	long := strings.Repeat("0123456789", 30)

	Inspect("strings", empty, ascii, unicode, raw, bytes, runes, runeCount, built, long)
}

// Maps covers string, int and struct keys, nil and empty maps, a map of
// slices and a set. byName is mutated after construction so the map holds
// a deleted slot.
func Maps() {
	byName := map[string]int{"one": 1, "two": 2, "three": 3}
	byID := map[int]string{1: "a", 2: "b"}
	byPoint := map[Point]string{{0, 0}: "origin", {1, 1}: "diagonal"}
	var nilMap map[string]bool
	emptyMap := map[string]bool{}
	nested := map[string][]Point{"square": {{0, 0}, {0, 1}, {1, 1}, {1, 0}}}
	sets := map[Weekday]struct{}{Saturday: {}, Sunday: {}}

	byName["four"] = 4
	delete(byName, "one")

	Inspect("maps", byName, byID, byPoint, nilMap, emptyMap, nested, sets)
}

// Misc covers channels, closures, errors, time values, a mutex and a pointer cycle.
func Misc() {
	unbuffered := make(chan int)
	buffered := make(chan string, 4)
	buffered <- "queued"
	var nilChan chan struct{}

	add := func(a, b int) int { return a + b }
	counter := 0
	incr := func() int {
		counter++
		return counter
	}
	incr()
	var nilFunc func()

	base := errors.New("base failure")
	wrapped := fmt.Errorf("while inspecting: %w", base)

	m := &Assorted{
		Started: time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC),
		Timeout: 1500 * time.Millisecond,
		Err:     wrapped,
	}
	m.Mu.Lock()
	m.Mu.Unlock()

	a := &Node{Value: 1}
	b := &Node{Value: 2, Next: a}
	a.Next = b

	Inspect("misc", unbuffered, buffered, nilChan, add, incr, nilFunc, counter, base, wrapped, m, a)
}

// StepIn calls down a short chain of functions and returns the result, a
// target for step-into and step-out.
func StepIn() int {
	result := stepOuter(3)
	Inspect("step_in", result)
	return result
}

//go:noinline
func stepOuter(n int) int {
	doubled := stepInner(n) * 2
	return doubled
}

//go:noinline
func stepInner(n int) int {
	sum := 0
	for i := 1; i <= n; i++ {
		sum += i
	}
	return sum
}
