package packarray

import (
	"iter"
	"strconv"
	"strings"
)

// All yields (index, value) pairs in ascending index order. Each call starts
// over from index 0. Iteration stops early if the store fails a read; use
// ToSlice when the error matters.
func (a *Array) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := 0; i < a.Len(); i++ {
			v, err := a.Get(i)
			if err != nil || !yield(i, v) {
				return
			}
		}
	}
}

// Values yields the elements in index order, with the same rules as All.
func (a *Array) Values() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, v := range a.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Append is the index Indexed.Put treats as "after the last element".
const Append = -1

// Indexed exposes an Array through index-style access.
type Indexed struct {
	a *Array
}

// Index returns an indexed view of a. The view holds no state of its own.
func Index(a *Array) Indexed {
	return Indexed{a: a}
}

func (x Indexed) Len() int { return x.a.Len() }

// Has reports whether i is a valid index.
func (x Indexed) Has(i int) bool {
	return i >= 0 && i < x.a.Len()
}

func (x Indexed) At(i int) (int, error) { return x.a.Get(i) }

// Put sets the element at i, or appends v when i is Append.
func (x Indexed) Put(i, v int) error {
	if i == Append {
		return x.a.Push(v)
	}
	return x.a.Set(i, v)
}

func (x Indexed) Delete(i int) error { return x.a.Remove(i) }

// String renders the elements for debugging, e.g. "int64[ 0, 1, 2 ]".
// Elements that cannot be read are shown as "...".
func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteString(a.width.String())
	if a.closed {
		sb.WriteString("(closed)")
		return sb.String()
	}
	if a.length == 0 {
		sb.WriteString("[]")
		return sb.String()
	}
	sb.WriteString("[ ")
	for i := 0; i < a.length; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, err := a.Get(i)
		if err != nil {
			sb.WriteString("...")
			break
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteString(" ]")
	return sb.String()
}
