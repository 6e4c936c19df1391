/*
Package sparse implements a simple type for sparse integer matrices.
It is used for accumulating parser tables (GOTO-table and ACTION-table)
before they get packed into their final form.
Every entry in the table is either a single int32 or a pair (int32,int32);
the second value of a pair remembers a displaced value, e.g. the loser of a
resolved table conflict.

This implementation uses the COO algorithm (a.k.a. triplet-encoding),
with triplets kept in row-major order.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a spare matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value. Space for
// null-values is not re-claimed.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    intPair
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of values in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// search returns the index of the first triplet not stored left of (i,j).
func (m *IntMatrix) search(i, j int) int {
	return sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	a, _ := m.Values(i, j)
	return a
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue)
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	k := m.search(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		return m.values[k].value.a, m.values[k].value.b
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j).
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, false)
}

// Add a value in the matrix at position (i,j).
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, true)
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) *IntMatrix {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse matrix index (%d,%d) out of range %dx%d", i, j, m.rowcnt, m.colcnt))
	}
	at := m.search(i, j)
	if at < len(m.values) && m.values[at].storedAt(i, j) {
		if doAdd {
			m.values[at].value = addIntValue(m.values[at].value, value, m.nullval)
		} else {
			m.values[at].value = newIntPair(value, m.nullval)
		}
		return m
	}
	tnew := triplet{row: i, col: j, value: newIntPair(value, m.nullval)}
	// the following 3 lines have to work for at being the right edge of values or not
	m.values = append(m.values, tnew)
	copy(m.values[at+1:], m.values[at:])
	m.values[at] = tnew
	return m
}

func addIntValue(v intPair, n int32, nullval int32) intPair {
	if v.a == nullval {
		v.a = n
	} else {
		v.b = n // a full entry keeps the last displaced value only
	}
	return v
}

// EachInRow calls f for every non-null primary value of row i, in column order.
func (m *IntMatrix) EachInRow(i int, f func(j int, value int32)) {
	for k := m.search(i, 0); k < len(m.values) && m.values[k].row == i; k++ {
		if v := m.values[k].value.a; v != m.nullval {
			f(m.values[k].col, v)
		}
	}
}

// RowValueCount returns the number of non-null primary values in row i.
func (m *IntMatrix) RowValueCount(i int) int {
	cnt := 0
	m.EachInRow(i, func(int, int32) { cnt++ })
	return cnt
}

// Group is a set of columns of a row which share a value.
type Group struct {
	Value   int32
	Columns []int
}

// Groups partitions the non-null values of row i by value. Groups are ordered
// by their first column, columns within a group ascending.
func (m *IntMatrix) Groups(i int) []Group {
	var groups []Group
	index := make(map[int32]int)
	m.EachInRow(i, func(j int, v int32) {
		g, ok := index[v]
		if !ok {
			g = len(groups)
			index[v] = g
			groups = append(groups, Group{Value: v})
		}
		groups[g].Columns = append(groups[g].Columns, j)
	})
	return groups
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

// we will store 2 int32 in one position
type intPair struct {
	a int32
	b int32
}

func (pr intPair) String() string {
	return fmt.Sprintf("[%d,%d]", pr.a, pr.b)
}

func newIntPair(a, b int32) intPair {
	return intPair{a, b}
}
