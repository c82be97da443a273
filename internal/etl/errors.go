package etl

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. Every stage fails the whole run on
// the first error it hits; the kind tells the caller which stage gave up.
type Kind int

const (
	// KindSourceRead means the raw input was unavailable or undecodable.
	KindSourceRead Kind = iota
	// KindNormalization means a raw record had an unparseable field.
	KindNormalization
	// KindIntegrity means a fact record failed to resolve a dimension key.
	// Dimensions are derived from the same records the facts join against,
	// so this signals a logic defect, not bad input.
	KindIntegrity
	// KindSchema means DDL failed during provisioning.
	KindSchema
	// KindLoad means a bulk insert failed.
	KindLoad
)

func (k Kind) String() string {
	switch k {
	case KindSourceRead:
		return "source read error"
	case KindNormalization:
		return "normalization error"
	case KindIntegrity:
		return "integrity error"
	case KindSchema:
		return "schema error"
	case KindLoad:
		return "load error"
	default:
		return "unknown error"
	}
}

// Error is a pipeline failure tagged with the stage that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SourceReadError wraps err as a source read failure.
func SourceReadError(op string, err error) error {
	return &Error{Kind: KindSourceRead, Op: op, Err: err}
}

// NormalizationError wraps err as a record normalization failure.
func NormalizationError(op string, err error) error {
	return &Error{Kind: KindNormalization, Op: op, Err: err}
}

// IntegrityError reports a fact row that failed to resolve a dimension key.
func IntegrityError(op string, err error) error {
	return &Error{Kind: KindIntegrity, Op: op, Err: err}
}

// SchemaError wraps err as a provisioning DDL failure.
func SchemaError(op string, err error) error {
	return &Error{Kind: KindSchema, Op: op, Err: err}
}

// LoadError wraps err as a bulk insert failure.
func LoadError(op string, err error) error {
	return &Error{Kind: KindLoad, Op: op, Err: err}
}

// IsKind reports whether err (or anything it wraps) is a pipeline error of
// the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
