package orchestrator

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces result identifiers for a domain prefix such as "INC".
// Implementations must be safe for concurrent use.
type IDGenerator interface {
	NextID(prefix string) string
}

// IDGeneratorFunc adapts a function into an IDGenerator.
type IDGeneratorFunc func(prefix string) string

// NextID calls the underlying function.
func (fn IDGeneratorFunc) NextID(prefix string) string {
	return fn(prefix)
}

const (
	randomIDMin = 1000
	randomIDMax = 9999
)

// RandomIDs returns PREFIX-NNNN identifiers with NNNN drawn uniformly from
// [1000, 9999]. Identifiers are not unique across calls.
func RandomIDs() IDGenerator {
	return IDGeneratorFunc(func(prefix string) string {
		n := randomIDMin + rand.IntN(randomIDMax-randomIDMin+1)
		return joinID(prefix, fmt.Sprintf("%d", n))
	})
}

// SequentialIDs returns monotonically increasing identifiers starting at
// start (PREFIX-1001, PREFIX-1002, ...). The counter is shared across
// prefixes.
func SequentialIDs(start int64) IDGenerator {
	var counter atomic.Int64
	counter.Store(start - 1)
	return IDGeneratorFunc(func(prefix string) string {
		return joinID(prefix, fmt.Sprintf("%d", counter.Add(1)))
	})
}

// UUIDs returns PREFIX-<uuid> identifiers.
func UUIDs() IDGenerator {
	return IDGeneratorFunc(func(prefix string) string {
		return joinID(prefix, uuid.NewString())
	})
}

// IDGeneratorByName resolves the generator names accepted in configuration:
// "random" (default), "sequence" and "uuid".
func IDGeneratorByName(name string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "random":
		return RandomIDs(), nil
	case "sequence", "sequential":
		return SequentialIDs(randomIDMin + 1), nil
	case "uuid":
		return UUIDs(), nil
	default:
		return nil, fmt.Errorf("orchestrator: unknown id generator %q", name)
	}
}

func joinID(prefix, suffix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return suffix
	}
	return prefix + "-" + suffix
}
