package presale

import (
	"fmt"
	"math/big"
	"net/http"
)

// The custodial ledger holds one balance per (currency symbol, account)
// pair, persisted as a decimal string. Purchases and finalization never
// touch balances directly; they go through transferBalance so that an
// overdraft aborts before any state is written.

func balanceKey(symbol, account string) string {
	return fmt.Sprintf("balance_%s_%s", symbol, account)
}

func BalanceOf(ctx TransactionContextInterface, symbol, account string) (*big.Int, error) {
	balanceAsBytes, err := ctx.GetState(balanceKey(symbol, account))
	if err != nil {
		return nil, NewCustomError(http.StatusInternalServerError, fmt.Sprintf("failed to get %s balance for %s", symbol, account), err)
	}
	if balanceAsBytes == nil {
		return big.NewInt(0), nil
	}

	balance, ok := new(big.Int).SetString(string(balanceAsBytes), 10)
	if !ok {
		return nil, ErrInvalidAmount("balance", string(balanceAsBytes))
	}

	return balance, nil
}

func setBalance(ctx TransactionContextInterface, symbol, account string, balance *big.Int) error {
	err := ctx.PutStateWithoutKYC(balanceKey(symbol, account), []byte(balance.String()))
	if err != nil {
		return NewCustomError(http.StatusInternalServerError, fmt.Sprintf("failed to set %s balance for %s", symbol, account), err)
	}
	return nil
}

func creditBalance(ctx TransactionContextInterface, symbol, account string, amount *big.Int) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount("credit", amount.String())
	}

	balance, err := BalanceOf(ctx, symbol, account)
	if err != nil {
		return err
	}

	return setBalance(ctx, symbol, account, new(big.Int).Add(balance, amount))
}

func transferBalance(ctx TransactionContextInterface, symbol, from, to string, amount *big.Int) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount("transfer", amount.String())
	}

	fromBalance, err := BalanceOf(ctx, symbol, from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: account %s holds %s %s, needs %s", ErrInsufficientBalance, from, fromBalance.String(), symbol, amount.String())
	}

	toBalance, err := BalanceOf(ctx, symbol, to)
	if err != nil {
		return err
	}

	err = setBalance(ctx, symbol, from, new(big.Int).Sub(fromBalance, amount))
	if err != nil {
		return err
	}

	return setBalance(ctx, symbol, to, new(big.Int).Add(toBalance, amount))
}
