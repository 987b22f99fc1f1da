// Package validation implements the precondition checks every mutating
// operation runs before touching state. A service assembles a Bucket tailored
// to the operation and the actor, then calls Validate; the first violated
// check aborts the operation with its error.
package validation

// Validator evaluates a single precondition against already-loaded state.
// Implementations are pure: no I/O, no mutation, safe to re-run.
type Validator interface {
	Validate() error
}

// Bucket is an ordered collection of validators. Insertion order is evaluation
// order and evaluation is fail-fast: later checks may assume earlier ones
// passed (an account-activity check runs before any role check, role checks
// before target checks, and so on).
type Bucket struct {
	checks []Validator
}

func NewBucket() Bucket {
	return Bucket{}
}

// ConsistOf returns a new bucket with v appended. The receiver is left
// untouched, so partially built buckets can be shared between branches.
func (b Bucket) ConsistOf(v Validator) Bucket {
	checks := make([]Validator, len(b.checks), len(b.checks)+1)
	copy(checks, b.checks)
	return Bucket{checks: append(checks, v)}
}

// Validate runs the checks in insertion order and returns the first failure.
// No check after a failing one is evaluated.
func (b Bucket) Validate() error {
	for _, check := range b.checks {
		if err := check.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func() error

func (f ValidatorFunc) Validate() error {
	return f()
}
