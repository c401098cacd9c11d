// Copyright 2023 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package outcome

import (
	"errors"
	"fmt"
)

// ErrFutureNotReady is returned by a core's TryGetResult before a result
// has arrived.
var ErrFutureNotReady = errors.New("futurecore: future not ready")

// kind distinguishes the handful of failure shapes that carry their own
// identity (broken promise, logic error) from a plain wrapped error or
// recovered panic.
type kind int

const (
	kindErr kind = iota
	kindPanic
	kindBroken
	kindLogic
)

// Failure is the failure descriptor flowing through the Outcome channel. It
// is constructible from an ordinary error, from a recovered panic value, or
// from the two well-known internal signals, BrokenPromise and LogicError.
type Failure struct {
	kind kind
	err  error  // kindErr, kindLogic
	v    any    // kindPanic
	name string // kindBroken: the value type's name
}

// NewFailure wraps an ordinary error as a Failure.
func NewFailure(err error) *Failure {
	if err == nil {
		panic("outcome: nil error passed to NewFailure")
	}
	return &Failure{kind: kindErr, err: err}
}

// NewPanicFailure wraps a recovered panic value as a Failure. This is the
// Go analogue of Folly's "constructible from an in-flight exception".
func NewPanicFailure(v any) *Failure {
	return &Failure{kind: kindPanic, v: v}
}

// BrokenPromise builds the signal delivered when a Promise detaches without
// ever setting a result. typeName is the name of the value type the Future
// was parameterized with.
func BrokenPromise(typeName string) *Failure {
	return &Failure{kind: kindBroken, name: typeName}
}

// LogicError builds a protocol-misuse signal, e.g. "setResult called twice".
func LogicError(msg string) *Failure {
	return &Failure{kind: kindLogic, err: errors.New(msg)}
}

// IsBrokenPromise reports whether f is a BrokenPromise signal. Only f itself
// is checked; a Failure built by NewFailure around one is not unwrapped.
func IsBrokenPromise(f *Failure) bool {
	return f != nil && f.kind == kindBroken
}

// IsLogicError reports whether f is a LogicError signal. Only f itself is
// checked; a Failure built by NewFailure around one is not unwrapped.
func IsLogicError(f *Failure) bool {
	return f != nil && f.kind == kindLogic
}

// PanicValue returns the recovered panic value wrapped by f, and true, if f
// was built with NewPanicFailure.
func (f *Failure) PanicValue() (any, bool) {
	if f == nil || f.kind != kindPanic {
		return nil, false
	}
	return f.v, true
}

func (f *Failure) Error() string {
	switch f.kind {
	case kindPanic:
		return fmt.Sprintf("futurecore: panic recovered: %v", f.v)
	case kindBroken:
		return fmt.Sprintf("futurecore: broken promise: %s", f.name)
	case kindLogic:
		return fmt.Sprintf("futurecore: logic error: %s", f.err)
	default:
		return f.err.Error()
	}
}

// Unwrap exposes the wrapped error for errors.Is/errors.As, for the two
// failure kinds that carry one.
func (f *Failure) Unwrap() error {
	switch f.kind {
	case kindErr, kindLogic:
		return f.err
	default:
		return nil
	}
}
