package policy

import "errors"

// RetryOn returns a RetryOnError predicate that retries only errors matching
// one of targets via errors.Is.
func RetryOn(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// SkipOn returns a RetryOnError predicate that retries any error except those
// matching one of targets via errors.Is.
func SkipOn(targets ...error) func(error) bool {
	return Not(RetryOn(targets...))
}

// Not inverts a predicate.
func Not(pred func(error) bool) func(error) bool {
	return func(err error) bool { return !pred(err) }
}
