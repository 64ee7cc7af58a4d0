package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden the caller is not allowed to perform the operation
	ErrOperationForbidden ErrorCode = 100001
	// ErrOperationPaused the operation is paused for the market
	ErrOperationPaused ErrorCode = 100002

	// ErrMarketNotFound no market
	ErrMarketNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrBorrowNotFound no borrow position
	ErrBorrowNotFound ErrorCode = 100102
	// ErrInsufficientCollaterals insufficient collaterals
	ErrInsufficientCollaterals ErrorCode = 100103
	// ErrInsufficientLiquidity insufficient pool liquidity
	ErrInsufficientLiquidity ErrorCode = 100104
	// ErrRedeemNotAllowed redeem not allowed
	ErrRedeemNotAllowed ErrorCode = 100105
	// ErrSeizeNotAllowed seize not allowed
	ErrSeizeNotAllowed ErrorCode = 100106
	// ErrInvalidPrice price missing or not positive
	ErrInvalidPrice ErrorCode = 100107
	// ErrBorrowNotAllowed borrow not allowed
	ErrBorrowNotAllowed ErrorCode = 100108
	// ErrBorrowsOverCap borrows over market borrow cap
	ErrBorrowsOverCap ErrorCode = 100109
	// ErrInvalidParameter parameter out of its declared range
	ErrInvalidParameter ErrorCode = 100110

	// ErrCalculation fixed point calculation failed
	ErrCalculation ErrorCode = 100200
	// ErrBorrowRateTooHigh borrow rate breached max_borrow_rate
	ErrBorrowRateTooHigh ErrorCode = 100201
	// ErrClockMovedBack accrual clock is not monotone
	ErrClockMovedBack ErrorCode = 100202

	// ErrSwapFailed swap venue refused or failed the conversion
	ErrSwapFailed ErrorCode = 100300
	// ErrInsufficientBalance ledger account balance too low
	ErrInsufficientBalance ErrorCode = 100301
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
