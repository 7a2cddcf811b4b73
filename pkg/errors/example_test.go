// Package errors provides examples of structured error handling in coltype.
package errors_test

import (
	"fmt"
	"io"

	"github.com/ajitpratap0/coltype/pkg/errors"
)

// Example demonstrates basic error creation with details.
func Example() {
	err := errors.New(errors.ErrorTypeArity, "qdigest expects 1 type parameter, got 2").
		WithDetail("signature", "qdigest(double,bigint)").
		WithDetail("expected", 1).
		WithDetail("actual", 2)

	fmt.Println(err.Error())

	// Output:
	// arity: qdigest expects 1 type parameter, got 2
}

// ExampleWrap shows how resolution wraps a lower-level failure.
func ExampleWrap() {
	cause := errors.New(errors.ErrorTypeNotFound, "unknown type uuid")

	err := errors.Wrap(cause, errors.ErrorTypeSignature, "cannot resolve qdigest(uuid)").
		WithDetail("signature", "qdigest(uuid)")

	if errors.IsType(err, errors.ErrorTypeSignature) {
		fmt.Println("signature error")
	}
	if errors.IsType(err, errors.ErrorTypeNotFound) {
		fmt.Println("caused by an unknown type")
	}
	fmt.Println(err)

	// Output:
	// signature error
	// caused by an unknown type
	// signature: cannot resolve qdigest(uuid): not_found: unknown type uuid
}

// ExampleTypeOf shows how to branch on the outermost error type.
func ExampleTypeOf() {
	errs := []error{
		errors.New(errors.ErrorTypeConfig, "type varbinary already registered"),
		errors.Wrap(io.ErrUnexpectedEOF, errors.ErrorTypeSignature, "unterminated parameter list"),
		io.EOF,
	}

	for _, err := range errs {
		switch errors.TypeOf(err) {
		case errors.ErrorTypeConfig:
			fmt.Println("fatal configuration error")
		case errors.ErrorTypeSignature:
			fmt.Println("bad signature")
		default:
			fmt.Println("unstructured:", err)
		}
	}

	// Output:
	// fatal configuration error
	// bad signature
	// unstructured: EOF
}

// Example_detail demonstrates reading details back from an error.
func Example_detail() {
	err := errors.Newf(errors.ErrorTypeCapability, "type %s is not orderable", "qdigest(double)").
		WithDetail("operation", "CompareTo")

	op, _ := err.Detail("operation")
	fmt.Println(err)
	fmt.Println(op)

	// Output:
	// capability: type qdigest(double) is not orderable
	// CompareTo
}
