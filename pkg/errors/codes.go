package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every module.
const (
	ErrCodeUnknown        ErrorCode = "COMMON_000"
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeBadRequest     ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_003"
	ErrCodeConflict       ErrorCode = "COMMON_004"
	ErrCodeValidation     ErrorCode = "COMMON_005"
	ErrCodeSerialization  ErrorCode = "COMMON_006"
	ErrCodeNotImplemented ErrorCode = "COMMON_007"
	ErrCodeOK             ErrorCode = "OK"
)

// DNA-profile module error codes.
const (
	ErrCodeProfileNotFound    ErrorCode = "DNA_001"
	ErrCodeProfileInvalid     ErrorCode = "DNA_002"
	ErrCodeProfileStoreRead   ErrorCode = "DNA_003"
	ErrCodeProfileStoreDecode ErrorCode = "DNA_004"
)

// Emotional-space module error codes.
const (
	ErrCodeSpaceEmptyInput   ErrorCode = "SPACE_001"
	ErrCodeSpaceNotBuilt     ErrorCode = "SPACE_002"
	ErrCodeTrackNotFound     ErrorCode = "SPACE_003"
	ErrCodeEmbeddingFailed   ErrorCode = "SPACE_004"
	ErrCodeExportWriteFailed ErrorCode = "SPACE_005"
	ErrCodeDimensionMismatch ErrorCode = "SPACE_006"
	ErrCodeStrategyUnknown   ErrorCode = "SPACE_007"
)

// Journey module error codes.
const (
	ErrCodeJourneyEndpoints ErrorCode = "JOURNEY_001"
	ErrCodeJourneyDuration  ErrorCode = "JOURNEY_002"
)

// Shorter aliases used at call sites, mirroring the factory function names.
const (
	CodeUnknown      = ErrCodeUnknown
	CodeOK           = ErrCodeOK
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
)
