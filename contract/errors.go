package contract

import (
	"errors"
	"fmt"
)

// Kind groups failures the way callers react to them.
type Kind uint8

const (
	KindValidation Kind = iota
	KindState
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindState:
		return "state"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Validation failures.
var (
	ErrInvalidRatio           = errors.New("InvalidRatio")
	ErrAccountMismatch        = errors.New("AccountMismatch")
	ErrMintMismatch           = errors.New("MintMismatch")
	ErrWrongOwner             = errors.New("WrongOwner")
	ErrLedgerMismatch         = errors.New("LedgerMismatch")
	ErrAlreadyExists          = errors.New("AlreadyExists")
	ErrZeroAmount             = errors.New("ZeroAmount")
	ErrInvalidWindow          = errors.New("InvalidWindow")
	ErrInvalidCaps            = errors.New("InvalidCaps")
	ErrSignerRequired         = errors.New("SignerRequired")
	ErrArithmeticOverflow     = errors.New("ArithmeticOverflow")
	ErrProjectNotFound        = errors.New("ProjectNotFound")
	ErrDonorNotFound          = errors.New("DonorNotFound")
	ErrPlatformNotInitialized = errors.New("PlatformNotInitialized")
)

// State failures.
var (
	ErrPoolAlreadyInitialized = errors.New("PoolAlreadyInitialized")
	ErrPoolNotInitialized     = errors.New("PoolNotInitialized")
	ErrDonationWindowClosed   = errors.New("DonationWindowClosed")
	ErrDonationNotOpen        = errors.New("DonationNotOpen")
	ErrDonationCapExceeded    = errors.New("DonationCapExceeded")
	ErrDonationBelowMinimum   = errors.New("DonationBelowMinimum")
	ErrRefundNotEligible      = errors.New("RefundNotEligible")
	ErrClaimNotEligible       = errors.New("ClaimNotEligible")
	ErrSeedWindowExpired      = errors.New("SeedWindowExpired")
	ErrAlreadySettled         = errors.New("AlreadySettled")
)

// External capability failures.
var (
	ErrTransferFailed = errors.New("TransferFailed")
	ErrMintFailed     = errors.New("MintFailed")
	ErrPoolSeedFailed = errors.New("PoolSeedFailed")
)

var kinds = map[error]Kind{
	ErrPoolAlreadyInitialized: KindState,
	ErrPoolNotInitialized:     KindState,
	ErrDonationWindowClosed:   KindState,
	ErrDonationNotOpen:        KindState,
	ErrDonationCapExceeded:    KindState,
	ErrDonationBelowMinimum:   KindState,
	ErrRefundNotEligible:      KindState,
	ErrClaimNotEligible:       KindState,
	ErrSeedWindowExpired:      KindState,
	ErrAlreadySettled:         KindState,
	ErrTransferFailed:         KindExternal,
	ErrMintFailed:             KindExternal,
	ErrPoolSeedFailed:         KindExternal,
}

// Error is the failure every operation returns. Code is one of the Err* sentinels,
// Err the capability or decode error that caused it, if any.
type Error struct {
	Kind    Kind
	Code    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Code.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the code and the cause so errors.Is matches either.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Code}
	}
	return []error{e.Code, e.Err}
}

// NewError tags code with its kind. Unknown codes count as validation failures.
func NewError(code error, cause error, format string, args ...any) *Error {
	kind, ok := kinds[code]
	if !ok {
		kind = KindValidation
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Code: code, Message: msg, Err: cause}
}

// fail is the short form used by preconditions.
func fail(code error, format string, args ...any) error {
	return NewError(code, nil, format, args...)
}

// KindOf reports the kind of err, ok is false for errors not raised by this package.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}

// CodeOf returns the sentinel code name, or "Internal" for foreign errors.
// Example payload: CodeOf(err) == "DonationCapExceeded"
func CodeOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "Internal"
	}
	return e.Code.Error()
}
