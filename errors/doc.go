/*
Package errors implements the error handling used across the module.

The idea is to reuse as many errors from this package as possible and
define custom package errors when absolutely necessary. It is best to
define a new error here if you feel it's going to be somewhat
package-agnostic.

x/multisig and client register their own domain errors, each in a
separate code range.

If you want to register a custom error - use Register(code, description).
For reusing errors - use Errxxx.New and Errxxx.Newf.
Codes allow to distinguish types of errors on the caller side and act
accordingly.

There is also support for stacktraces. Please ensure you create the
custom error using ErrXyz.New("...") or errors.Wrap(err, "...") at the
point of creation to ensure we attach a stacktrace. If you wrap multiple
times, we only record the first wrap with the stacktrace. (And don't do
this as a global `var ErrFoo = errors.ErrState.New("foo")` or you will
get a useless stacktrace).
*/
package errors
