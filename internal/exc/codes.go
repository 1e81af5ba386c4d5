package exc

// File and driver level codes.
const (
	CodeUnknownFatal                   = "M0000"
	CodeFileNotFound                   = "M0001"
	CodeUnsupportedFileSystemOperation = "M0002"
	CodePermissionDenied               = "M0003"
	CodeUnsupportedFileFormat          = "M0004"
	CodeInvalidConfig                  = "M0005"
	CodeSchema                         = "M0006"
)

// Parse level codes. Only the last five are ever recorded as diagnostics by
// the grammar; the first four describe local failures that recovery turns
// into diagnostics.
const (
	CodeTagMismatch       = "M0100"
	CodePatternMismatch   = "M0101"
	CodeNeedsMoreInput    = "M0102"
	CodeNegativeLookahead = "M0103"
	CodeExpectedMissing   = "M0104"
	CodeUnexpectedInput   = "M0105"
	CodeUnterminated      = "M0106"
	CodeInvalidLiteral    = "M0107"
	CodeNestingTooDeep    = "M0108"
)

var (
	defaultNonFatal = map[string]bool{}
)
