// Package errors defines the error taxonomy shared by every xedit package.
//
// Every editor operation that can fail returns a *Error carrying a Kind.
// The kind drives two things downstream: the message text shown to the
// user (Editor.message) and the return code a macro's command handler
// reports back to the host scripting engine (see internal/xedit/macro).
package errors

import "fmt"

// Kind classifies why an operation failed.
type Kind int

const (
	// InvalidCommand is a syntactically well-formed but semantically
	// rejected command, e.g. "Cannot delete at Top of File".
	InvalidCommand Kind = iota
	// TargetNotFound is a search target that did not match.
	TargetNotFound
	// InvalidTarget is an ill-formed target expression.
	InvalidTarget
	// PrefixError is a prefix-area protocol violation.
	PrefixError
	// FileNotFound is a named file that could not be read.
	FileNotFound
	// Io is an underlying read/write failure.
	Io
	// FileModified is QUIT attempted on a dirty buffer.
	FileModified
	// ReadOnly is an attempted save on a read-only file.
	ReadOnly
	// NoFile is an operation requiring a bound file with none bound.
	NoFile
)

func (k Kind) String() string {
	switch k {
	case InvalidCommand:
		return "InvalidCommand"
	case TargetNotFound:
		return "TargetNotFound"
	case InvalidTarget:
		return "InvalidTarget"
	case PrefixError:
		return "PrefixError"
	case FileNotFound:
		return "FileNotFound"
	case Io:
		return "Io"
	case FileModified:
		return "FileModified"
	case ReadOnly:
		return "ReadOnly"
	case NoFile:
		return "NoFile"
	default:
		return "Unknown"
	}
}

// Error is the concrete error value every xedit package returns.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying error, set for Io/FileNotFound wraps
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given kind with a literal message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Io or FileNotFound Error around an underlying error.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf("I/O error: %v", err), Err: err}
}

// FileNotFoundf builds a FileNotFound error naming the missing file.
func FileNotFoundf(name string) *Error {
	return Newf(FileNotFound, "File not found: %s", name)
}

// As reports whether err is an *Error and returns it.
func As(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}

// Fixed-text constructors matching the historical message strings.

func ErrFileModified() *Error {
	return New(FileModified, "File has been modified; use QQUIT to quit anyway")
}

func ErrReadOnly() *Error {
	return New(ReadOnly, "File is read-only")
}

func ErrNoFile() *Error {
	return New(NoFile, "No file in ring")
}
