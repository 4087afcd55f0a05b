package presale

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTokenAccount         = errors.New("InvalidTokenAccount")
	ErrInvalidStableToken          = errors.New("InvalidStableToken")
	ErrPrivateSaleNotOver          = errors.New("PrivateSaleNotOver")
	ErrPublicSaleNotOver           = errors.New("PublicSaleNotOver")
	ErrSaleAlreadyEnded            = errors.New("SaleAlreadyEnded")
	ErrPresaleNotActive            = errors.New("PresaleNotActive")
	ErrInsufficientTokens          = errors.New("InsufficientTokens")
	ErrHardcapReached              = errors.New("HardcapReached")
	ErrInvalidPaymentType          = errors.New("InvalidPaymentType")
	ErrInvalidPrice                = errors.New("InvalidPrice")
	ErrUnauthorized                = errors.New("Unauthorized")
	ErrLiquidityPoolAlreadyCreated = errors.New("LiquidityPoolAlreadyCreated")
	ErrInsufficientBalance         = errors.New("InsufficientBalance")
	ErrCannotBeZero                = errors.New("CannotBeZero")
)

func ErrInvalidUserAddress(address string) error {
	return fmt.Errorf("InvalidUserAddress: %s", address)
}

func ErrInvalidAmount(entity, value string) error {
	return fmt.Errorf("InvalidAmount for %s with value %s", entity, value)
}

type CustomError struct {
	Code    int
	Message string
	Err     error
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func NewCustomError(code int, message string, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
