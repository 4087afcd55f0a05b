package presale

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/golang/protobuf/ptypes/timestamp"
	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/p2eengineering/kalp-sdk-public/kalpsdk"
)

// TransactionContextInterface narrows kalpsdk.TransactionContextInterface to
// the collaborators the presale contract consumes: the record store, the
// event sink, the transaction time source and the caller identity.
type TransactionContextInterface interface {
	GetState(key string) ([]byte, error)
	PutStateWithoutKYC(key string, value []byte) error
	SetEvent(name string, payload []byte) error
	GetTxTimestamp() (*timestamp.Timestamp, error)
	GetClientIdentity() cid.ClientIdentity
}

type SmartContract struct {
	kalpsdk.Contract
}

// Initialize creates the presale record. The invoking identity becomes the
// sale admin. The record is create-once: a second call fails.
func (s *SmartContract) Initialize(
	ctx TransactionContextInterface,
	usdPriceCentsPerToken uint64,
	nativePricePerToken uint64,
	privateSaleDurationDays int64,
	publicSaleDurationDays int64,
	hardcapTokens uint64,
	presaleWallet string,
	merchantWallet string,
) error {
	if usdPriceCentsPerToken == 0 || nativePricePerToken == 0 {
		return ErrInvalidPrice
	}
	if privateSaleDurationDays <= 0 || publicSaleDurationDays <= 0 {
		return NewCustomError(http.StatusBadRequest, "sale durations must be positive", ErrCannotBeZero)
	}
	if hardcapTokens == 0 {
		return NewCustomError(http.StatusBadRequest, "hardcap must be positive", ErrCannotBeZero)
	}
	if presaleWallet == "" || merchantWallet == "" {
		return ErrInvalidTokenAccount
	}

	signer, err := GetUserId(ctx)
	if err != nil {
		return NewCustomError(http.StatusBadRequest, "failed to get client id", err)
	}

	exists, err := presaleRecordExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return NewCustomError(http.StatusConflict, "presale record already initialized", nil)
	}

	presale := &Presale{
		Admin:                 signer,
		UsdPriceCentsPerToken: usdPriceCentsPerToken,
		NativePricePerToken:   nativePricePerToken,
		PrivateSaleDuration:   privateSaleDurationDays * secondsPerDay,
		PublicSaleDuration:    publicSaleDurationDays * secondsPerDay,
		SaleStage:             NotStarted,
		TotalSold:             0,
		HardcapTokens:         hardcapTokens,
		PoolCreated:           false,
		PresaleWallet:         presaleWallet,
		MerchantWallet:        merchantWallet,
	}

	err = SetPresaleRecord(ctx, presale)
	if err != nil {
		return err
	}

	return EmitPresaleInitialized(ctx, presale)
}

// SetStage advances the sale by exactly one stage. Entering the private
// sale stamps the sale start; later transitions are gated on elapsed time.
func (s *SmartContract) SetStage(ctx TransactionContextInterface) error {
	presale, err := GetPresaleRecord(ctx)
	if err != nil {
		return err
	}

	if err := IsSignerAdmin(ctx, presale); err != nil {
		return err
	}

	now, err := txTimestamp(ctx)
	if err != nil {
		return err
	}

	oldStage := presale.SaleStage

	switch presale.SaleStage {
	case NotStarted:
		presale.PresaleStart = now
		presale.SaleStage = PrivateSale
	case PrivateSale:
		if now < presale.PresaleStart+presale.PrivateSaleDuration {
			return ErrPrivateSaleNotOver
		}
		presale.SaleStage = PublicSale
	case PublicSale:
		if now < presale.PresaleStart+presale.PrivateSaleDuration+presale.PublicSaleDuration {
			return ErrPublicSaleNotOver
		}
		presale.SaleStage = Ended
	default:
		return ErrSaleAlreadyEnded
	}

	err = SetPresaleRecord(ctx, presale)
	if err != nil {
		return err
	}

	return EmitStageChanged(ctx, presale.Admin, oldStage, presale.SaleStage, now)
}

// UpdateSalePeriod rewrites the stage durations. Durations are adjustable
// while the sale has not started and while the private sale is running; a
// window that has already closed can no longer be rewritten.
func (s *SmartContract) UpdateSalePeriod(
	ctx TransactionContextInterface,
	newPrivateSaleDurationDays int64,
	newPublicSaleDurationDays int64,
) error {
	presale, err := GetPresaleRecord(ctx)
	if err != nil {
		return err
	}

	if err := IsSignerAdmin(ctx, presale); err != nil {
		return err
	}

	if newPrivateSaleDurationDays <= 0 || newPublicSaleDurationDays <= 0 {
		return NewCustomError(http.StatusBadRequest, "sale durations must be positive", ErrCannotBeZero)
	}

	newPrivateDuration := newPrivateSaleDurationDays * secondsPerDay
	newPublicDuration := newPublicSaleDurationDays * secondsPerDay

	switch presale.SaleStage {
	case NotStarted:
	case PrivateSale:
		now, err := txTimestamp(ctx)
		if err != nil {
			return err
		}
		// The running private window may be stretched or shortened but
		// not placed entirely in the past.
		if now >= presale.PresaleStart+newPrivateDuration {
			return ErrPrivateSaleNotOver
		}
	case PublicSale:
		return ErrPublicSaleNotOver
	default:
		return ErrSaleAlreadyEnded
	}

	presale.PrivateSaleDuration = newPrivateDuration
	presale.PublicSaleDuration = newPublicDuration

	err = SetPresaleRecord(ctx, presale)
	if err != nil {
		return err
	}

	return EmitSalePeriodUpdated(ctx, presale.Admin, newPrivateDuration, newPublicDuration)
}

// UpdateSalePrice adjusts both token prices while a sale stage is active.
func (s *SmartContract) UpdateSalePrice(
	ctx TransactionContextInterface,
	newUsdPriceCents uint64,
	newNativePricePerToken uint64,
) error {
	presale, err := GetPresaleRecord(ctx)
	if err != nil {
		return err
	}

	if err := IsSignerAdmin(ctx, presale); err != nil {
		return err
	}

	if presale.SaleStage != PrivateSale && presale.SaleStage != PublicSale {
		return ErrPresaleNotActive
	}

	if newUsdPriceCents == 0 || newNativePricePerToken == 0 {
		return ErrInvalidPrice
	}

	presale.UsdPriceCentsPerToken = newUsdPriceCents
	presale.NativePricePerToken = newNativePricePerToken

	err = SetPresaleRecord(ctx, presale)
	if err != nil {
		return err
	}

	return EmitSalePriceUpdated(ctx, presale.Admin, newUsdPriceCents, newNativePricePerToken, presale.SaleStage)
}

// BuyTokens purchases sale tokens with the native currency. The amount
// sent must buy a whole number of tokens at the configured price; anything
// else is a caller-side pricing error.
func (s *SmartContract) BuyTokens(ctx TransactionContextInterface, paymentType uint8, nativeAmount uint64) error {
	presale, err := GetPresaleRecord(ctx)
	if err != nil {
		return err
	}

	buyer, err := GetUserId(ctx)
	if err != nil {
		return NewCustomError(http.StatusBadRequest, "failed to get client id", err)
	}

	if presale.SaleStage != PrivateSale && presale.SaleStage != PublicSale {
		return ErrPresaleNotActive
	}

	tokensToPurchase := nativeAmount / presale.NativePricePerToken
	if tokensToPurchase < 1 {
		return ErrInvalidPrice
	}
	if nativeAmount%presale.NativePricePerToken != 0 {
		return fmt.Errorf("%w: %d is not a whole-token multiple of price %d", ErrInvalidPrice, nativeAmount, presale.NativePricePerToken)
	}

	newTotalSold, err := admitPurchase(ctx, presale, tokensToPurchase)
	if err != nil {
		return err
	}

	switch paymentType {
	case PaymentTypeWeb3:
		err = transferBalance(ctx, NativeSymbol, buyer, presale.MerchantWallet, new(big.Int).SetUint64(nativeAmount))
		if err != nil {
			return err
		}
	case PaymentTypeWeb2:
		// Off-chain settlement; only the sale is recorded.
	default:
		return ErrInvalidPaymentType
	}

	err = transferBalance(ctx, SaleTokenSymbol, presale.PresaleWallet, buyer, new(big.Int).SetUint64(tokensToPurchase))
	if err != nil {
		return err
	}

	presale.TotalSold = newTotalSold
	err = SetPresaleRecord(ctx, presale)
	if err != nil {
		return err
	}

	return EmitTokensPurchased(ctx, buyer, tokensToPurchase, nativeAmount, presale.NativePricePerToken, paymentType)
}

// BuyTokensByStableCoin purchases sale tokens with an allow-listed
// stable-value token, priced in hundredths of the reference currency.
func (s *SmartContract) BuyTokensByStableCoin(
	ctx TransactionContextInterface,
	paymentType uint8,
	stableCoin string,
	stableCoinAmount uint64,
) error {
	presale, err := GetPresaleRecord(ctx)
	if err != nil {
		return err
	}

	buyer, err := GetUserId(ctx)
	if err != nil {
		return NewCustomError(http.StatusBadRequest, "failed to get client id", err)
	}

	if !isAllowedStableCoin(stableCoin) {
		return fmt.Errorf("%w: %s", ErrInvalidStableToken, stableCoin)
	}

	if stableCoinAmount < 1 {
		return ErrInvalidPrice
	}

	if presale.SaleStage != PrivateSale && presale.SaleStage != PublicSale {
		return ErrPresaleNotActive
	}

	stableCoinAmountCents, ok := checkedMul64(stableCoinAmount, 100)
	if !ok {
		return ErrInvalidPrice
	}

	tokensToPurchase := stableCoinAmountCents / presale.UsdPriceCentsPerToken
	if tokensToPurchase < 1 {
		return ErrInvalidPrice
	}
	if stableCoinAmountCents%presale.UsdPriceCentsPerToken != 0 {
		return fmt.Errorf("%w: %d cents is not a whole-token multiple of price %d", ErrInvalidPrice, stableCoinAmountCents, presale.UsdPriceCentsPerToken)
	}

	newTotalSold, err := admitPurchase(ctx, presale, tokensToPurchase)
	if err != nil {
		return err
	}

	switch paymentType {
	case PaymentTypeWeb3:
		err = transferBalance(ctx, stableCoin, buyer, presale.MerchantWallet, new(big.Int).SetUint64(stableCoinAmount))
		if err != nil {
			return err
		}
	case PaymentTypeWeb2:
		// Off-chain settlement; only the sale is recorded.
	default:
		return ErrInvalidPaymentType
	}

	err = transferBalance(ctx, SaleTokenSymbol, presale.PresaleWallet, buyer, new(big.Int).SetUint64(tokensToPurchase))
	if err != nil {
		return err
	}

	presale.TotalSold = newTotalSold
	err = SetPresaleRecord(ctx, presale)
	if err != nil {
		return err
	}

	return EmitStableCoinPurchase(ctx, buyer, tokensToPurchase, stableCoinAmount, stableCoin, paymentType)
}

// admitPurchase runs the checks shared by both purchase paths: the hardcap
// admission and the custodial inventory check. It returns the new
// cumulative total without committing it.
func admitPurchase(ctx TransactionContextInterface, presale *Presale, tokensToPurchase uint64) (uint64, error) {
	newTotalSold, ok := checkedAdd64(presale.TotalSold, tokensToPurchase)
	if !ok || newTotalSold > presale.HardcapTokens {
		return 0, ErrHardcapReached
	}

	availableTokens, err := BalanceOf(ctx, SaleTokenSymbol, presale.PresaleWallet)
	if err != nil {
		return 0, err
	}

	if availableTokens.Cmp(new(big.Int).SetUint64(tokensToPurchase)) < 0 {
		return 0, ErrInsufficientTokens
	}

	return newTotalSold, nil
}

// CheckPresaleTokenBalance returns the number of tokens still sellable
// under the hardcap. Read-only.
func (s *SmartContract) CheckPresaleTokenBalance(ctx TransactionContextInterface) (uint64, error) {
	presale, err := GetPresaleRecord(ctx)
	if err != nil {
		return 0, err
	}

	return presale.HardcapTokens - presale.TotalSold, nil
}

// GetPresale returns the current sale record. Read-only.
func (s *SmartContract) GetPresale(ctx TransactionContextInterface) (*Presale, error) {
	return GetPresaleRecord(ctx)
}

// FinalizePresale moves the unsold custodial inventory to the liquidity
// wallet, exactly once, after the sale has ended. The pool flag flips only
// after the transfer has succeeded so a failed attempt stays retryable.
func (s *SmartContract) FinalizePresale(ctx TransactionContextInterface, liquidityWallet string) error {
	presale, err := GetPresaleRecord(ctx)
	if err != nil {
		return err
	}

	if err := IsSignerAdmin(ctx, presale); err != nil {
		return err
	}

	if liquidityWallet == "" {
		return ErrInvalidTokenAccount
	}

	switch presale.SaleStage {
	case NotStarted:
		return ErrPresaleNotActive
	case PrivateSale:
		return ErrPrivateSaleNotOver
	case PublicSale:
		return ErrPublicSaleNotOver
	}

	if presale.PoolCreated {
		return ErrLiquidityPoolAlreadyCreated
	}

	// The transfer operates on the actual custodial balance, not on
	// hardcap bookkeeping; the two must reconcile but only one is money.
	unsoldTokens, err := BalanceOf(ctx, SaleTokenSymbol, presale.PresaleWallet)
	if err != nil {
		return err
	}

	if unsoldTokens.Sign() > 0 {
		err = transferBalance(ctx, SaleTokenSymbol, presale.PresaleWallet, liquidityWallet, unsoldTokens)
		if err != nil {
			return err
		}
	}

	presale.PoolCreated = true
	err = SetPresaleRecord(ctx, presale)
	if err != nil {
		return err
	}

	return EmitPresaleFinalized(ctx, presale.Admin, unsoldTokens.String())
}

// Deposit credits a custodial account. It stands in for the external
// funding flow that provisions the presale wallet and buyer accounts.
func (s *SmartContract) Deposit(ctx TransactionContextInterface, symbol, account, amount string) error {
	presale, err := GetPresaleRecord(ctx)
	if err != nil {
		return err
	}

	if err := IsSignerAdmin(ctx, presale); err != nil {
		return err
	}

	if account == "" {
		return ErrInvalidTokenAccount
	}

	amountInInt, ok := new(big.Int).SetString(amount, 10)
	if !ok || amountInInt.Sign() <= 0 {
		return ErrInvalidAmount("deposit", amount)
	}

	return creditBalance(ctx, symbol, account, amountInInt)
}
