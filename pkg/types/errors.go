// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// ErrorKind classifies the failures a session iteration can end with.
type ErrorKind int

const (
	// KindRetrieval covers network and HTTP failures at either the search or
	// the image download step, and an empty search result set.
	KindRetrieval ErrorKind = iota + 1
	// KindDecode covers payloads that cannot be decoded or quantized.
	KindDecode
)

// Sentinels for errors.Is matching against a kind.
var (
	ErrRetrieval = errors.New("retrieval error")
	ErrDecode    = errors.New("decode error")
)

// String returns the kind name as shown to the user.
func (k ErrorKind) String() string {
	switch k {
	case KindRetrieval:
		return "RetrievalError"
	case KindDecode:
		return "DecodeError"
	default:
		return "UnknownError"
	}
}

// Error is a classified failure from one of the pipeline stages.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRetrieval) and errors.Is(err, ErrDecode) match
// on kind regardless of the wrapped cause.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRetrieval:
		return e.Kind == KindRetrieval
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

// Retrieval wraps err as a KindRetrieval error for operation op.
func Retrieval(op string, err error) error {
	return &Error{Kind: KindRetrieval, Op: op, Err: err}
}

// Decode wraps err as a KindDecode error for operation op.
func Decode(op string, err error) error {
	return &Error{Kind: KindDecode, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or zero if
// there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
