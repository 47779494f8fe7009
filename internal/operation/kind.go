package operation

import (
	"fmt"
	"strings"
)

// Kind names one of the built-in operations.
type Kind int

const (
	KindMostFrequent Kind = iota + 1
	KindLeastFrequent
	KindEvents
	KindTotalBytes
)

// Kinds lists every operation in the order the CLI activates them.
var Kinds = []Kind{KindMostFrequent, KindLeastFrequent, KindEvents, KindTotalBytes}

var kindNames = map[Kind]string{
	KindMostFrequent:  "mostfreqip",
	KindLeastFrequent: "lessfreqip",
	KindEvents:        "events",
	KindTotalBytes:    "totalbytes",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts an operation name to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown operation: %s", s)
}

// New creates a fresh operation of the given kind.
func New(k Kind) (Operation, error) {
	switch k {
	case KindMostFrequent:
		return NewMostFrequent(), nil
	case KindLeastFrequent:
		return NewLeastFrequent(), nil
	case KindEvents:
		return NewRatePerSecond(), nil
	case KindTotalBytes:
		return NewByteTotals(), nil
	default:
		return nil, fmt.Errorf("unknown operation: %s", k)
	}
}
