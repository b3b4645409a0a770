package db

// ResultKind discriminates the two normalized result shapes
type ResultKind int

const (
	// ResultRows is an ordered sequence of column/field mappings
	ResultRows ResultKind = iota
	// ResultCount is a scalar affected-row count from a write operation
	ResultCount
)

// Result is the normalized output of a backend execution. Every handler
// reduces its driver's native rows, documents or write summaries to one
// of these two shapes so the router never branches on backend kind.
type Result struct {
	Kind  ResultKind
	Rows  []map[string]any
	Count int64
}

// Rows wraps an ordered row set as a Result
func Rows(rows []map[string]any) *Result {
	return &Result{Kind: ResultRows, Rows: rows}
}

// Count wraps an affected-row count as a Result
func Count(n int64) *Result {
	return &Result{Kind: ResultCount, Count: n}
}

// Payload returns the value placed in the response envelope's data field.
// An empty row set is an empty sequence, never nil.
func (r *Result) Payload() any {
	if r.Kind == ResultCount {
		return r.Count
	}
	if r.Rows == nil {
		return []map[string]any{}
	}
	return r.Rows
}
