/*
Copyright 2026 The Sydney-Go Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package dplan

import (
	"container/heap"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// OrderSpec is a single-key ordering: the column SortUnion merges by,
// and its direction.
type OrderSpec struct {
	Column     string
	Descending bool
}

// CascadeUnion executes its children concurrently and concatenates
// their rows in child order, with no ordering requirement; when
// Distinct is set, a row is dropped if a row already emitted has the
// same column names and the same values as compared by their fmt.Sprint
// text (so the int 1 and the string "1" count as equal).
type CascadeUnion struct {
	Children []Candidate
	Distinct bool
}

var _ Candidate = (*CascadeUnion)(nil)

func (u *CascadeUnion) GenerateSQL(env *Environment) ([]Statement, error) {
	var all []Statement
	for _, c := range u.Children {
		stmts, err := c.GenerateSQL(env)
		if err != nil {
			return nil, err
		}
		all = append(all, stmts...)
	}
	return all, nil
}

func (u *CascadeUnion) Execute(ctx context.Context, env *Environment) ([]Row, error) {
	results := make([][]Row, len(u.Children))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range u.Children {
		i, c := i, c
		g.Go(func() error {
			rows, err := c.Execute(gctx, env)
			results[i] = rows
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Row
	var seen map[string]bool
	if u.Distinct {
		seen = make(map[string]bool)
	}
	for _, rows := range results {
		for _, row := range rows {
			if u.Distinct {
				k := rowKey(row)
				if seen[k] {
					continue
				}
				seen[k] = true
			}
			out = append(out, row)
		}
	}
	return out, nil
}

func rowKey(row Row) string {
	var b []byte
	for _, col := range sortedKeys(row) {
		b = append(b, col...)
		b = append(b, '=')
		b = append(b, []byte(stringify(row[col]))...)
		b = append(b, ';')
	}
	return string(b)
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	// insertion sort: row widths are small (planner-side column counts)
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// SortUnion merges len(Children) already-sorted (by Order) child
// result streams with a k-way container/heap merge.
type SortUnion struct {
	Children []Candidate
	Order    OrderSpec
}

var _ Candidate = (*SortUnion)(nil)

func (u *SortUnion) GenerateSQL(env *Environment) ([]Statement, error) {
	var all []Statement
	for _, c := range u.Children {
		stmts, err := c.GenerateSQL(env)
		if err != nil {
			return nil, err
		}
		all = append(all, stmts...)
	}
	return all, nil
}

func (u *SortUnion) Execute(ctx context.Context, env *Environment) ([]Row, error) {
	streams := make([][]Row, len(u.Children))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range u.Children {
		i, c := i, c
		g.Go(func() error {
			rows, err := c.Execute(gctx, env)
			streams[i] = rows
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mergeSorted(streams, u.Order), nil
}

type heapItem struct {
	row    Row
	stream int
	index  int
}

type mergeHeap struct {
	items []heapItem
	order OrderSpec
}

func (h *mergeHeap) Len() int { return len(h.items) }
func (h *mergeHeap) Less(i, j int) bool {
	a, b := h.items[i].row[h.order.Column], h.items[j].row[h.order.Column]
	less := lessValue(a, b)
	if h.order.Descending {
		return !less && !equalValue(a, b)
	}
	return less
}
func (h *mergeHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *mergeHeap) Push(x interface{}) { h.items = append(h.items, x.(heapItem)) }
func (h *mergeHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// mergeSorted k-way merges streams (each already sorted by order) into
// one sorted Row slice.
func mergeSorted(streams [][]Row, order OrderSpec) []Row {
	h := &mergeHeap{order: order}
	positions := make([]int, len(streams))
	for s, rows := range streams {
		if len(rows) > 0 {
			heap.Push(h, heapItem{row: rows[0], stream: s, index: 0})
			positions[s] = 1
		}
	}
	var out []Row
	for h.Len() > 0 {
		top := heap.Pop(h).(heapItem)
		out = append(out, top.row)
		s := top.stream
		if positions[s] < len(streams[s]) {
			heap.Push(h, heapItem{row: streams[s][positions[s]], stream: s, index: positions[s]})
			positions[s]++
		}
	}
	return out
}

func lessValue(a, b interface{}) bool {
	switch x := a.(type) {
	case int:
		y, _ := b.(int)
		return x < y
	case int64:
		y, _ := b.(int64)
		return x < y
	case float64:
		y, _ := b.(float64)
		return x < y
	case string:
		y, _ := b.(string)
		return x < y
	default:
		return false
	}
}

func equalValue(a, b interface{}) bool {
	return a == b
}
