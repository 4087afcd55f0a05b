package presale

type SaleStage uint8

const (
	presaleKey      = "presale"
	secondsPerDay   = 24 * 60 * 60
	hexAddressRegex = `^[0-9a-fA-F]{40}$`

	// Currency symbols tracked by the custodial ledger.
	SaleTokenSymbol = "NLOV"
	NativeSymbol    = "SOL"

	// Accepted stable-value token identifiers.
	USDCAddress = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	USDTAddress = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"

	// Payment types accepted by the purchase operations.
	PaymentTypeWeb3 uint8 = 0
	PaymentTypeWeb2 uint8 = 1

	// Event names.
	presaleInitializedEvent = "PresaleInitialized"
	stageChangedEvent       = "StageChanged"
	salePeriodUpdatedEvent  = "SalePeriodUpdated"
	salePriceUpdatedEvent   = "SalePriceUpdated"
	tokensPurchasedEvent    = "TokensPurchased"
	stableCoinPurchaseEvent = "StableCoinPurchase"
	presaleFinalizedEvent   = "PresaleFinalized"
)

const (
	NotStarted SaleStage = iota
	PrivateSale
	PublicSale
	Ended
)

func (s SaleStage) String() string {
	return [...]string{
		"NotStarted",
		"PrivateSale",
		"PublicSale",
		"Ended",
	}[s]
}

func isAllowedStableCoin(stableCoin string) bool {
	allowedStableCoins := map[string]bool{
		USDCAddress: true,
		USDTAddress: true,
	}
	return allowedStableCoins[stableCoin]
}
