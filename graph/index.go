package graph

import "iter"

// ByPredicate yields every statement whose predicate is p.
//
// The sequence is lazy and restartable; each iteration reads the graph's maintained
// predicate index at that moment. For an unmutated graph repeated iterations produce the
// same statements in the same order.
func ByPredicate(r Reader, p Term) iter.Seq[Statement] {
	return r.Find(Any, p, Any)
}

// ByPredicates concatenates ByPredicate over each predicate in order
func ByPredicates(r Reader, predicates ...Term) iter.Seq[Statement] {
	return func(yield func(Statement) bool) {
		for _, p := range predicates {
			for st := range ByPredicate(r, p) {
				if !yield(st) {
					return
				}
			}
		}
	}
}

// Filter yields the statements of seq accepted by keep
func Filter(seq iter.Seq[Statement], keep func(Statement) bool) iter.Seq[Statement] {
	return func(yield func(Statement) bool) {
		for st := range seq {
			if keep(st) && !yield(st) {
				return
			}
		}
	}
}
