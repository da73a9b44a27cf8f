// Package pool holds the concurrency settings shared by the fan-out stages.
package pool

// Unlimited is the errgroup limit meaning no cap on in-flight tasks.
const Unlimited = -1

// Limit converts a configured concurrency into an errgroup limit.
// Zero or negative values mean no limit.
func Limit(concurrency int) int {
	if concurrency <= 0 {
		return Unlimited
	}
	return concurrency
}
