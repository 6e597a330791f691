// Package spec implements composable boolean predicates over a candidate
// type. A Specification is a plain function value; And/Or/Not build new
// predicates without mutating their operands, with standard short-circuit
// semantics. Domain packages provide concrete predicate libraries on top.
package spec

// Specification reports whether a candidate satisfies a business rule.
type Specification[T any] func(candidate T) bool

// IsSatisfiedBy evaluates the predicate. Equivalent to calling the function
// directly; exists so call sites read as rule checks.
func (s Specification[T]) IsSatisfiedBy(candidate T) bool {
	return s(candidate)
}

// And returns a specification satisfied only when both operands are.
// The receiver is evaluated first; other is skipped when it fails.
func (s Specification[T]) And(other Specification[T]) Specification[T] {
	return func(candidate T) bool {
		return s(candidate) && other(candidate)
	}
}

// Or returns a specification satisfied when either operand is.
func (s Specification[T]) Or(other Specification[T]) Specification[T] {
	return func(candidate T) bool {
		return s(candidate) || other(candidate)
	}
}

// Not returns the negated specification.
func (s Specification[T]) Not() Specification[T] {
	return func(candidate T) bool {
		return !s(candidate)
	}
}
