package presale

import (
	"encoding/json"
	"fmt"
)

type PresaleInitializedEvent struct {
	Admin                 string `json:"admin"`
	UsdPriceCentsPerToken uint64 `json:"usdPriceCentsPerToken"`
	NativePricePerToken   uint64 `json:"nativePricePerToken"`
	PrivateSaleDuration   int64  `json:"privateSaleDuration"`
	PublicSaleDuration    int64  `json:"publicSaleDuration"`
	HardcapTokens         uint64 `json:"hardcapTokens"`
}

type StageChangedEvent struct {
	Admin     string `json:"admin"`
	OldStage  string `json:"oldStage"`
	NewStage  string `json:"newStage"`
	Timestamp int64  `json:"timestamp"`
}

type SalePeriodUpdatedEvent struct {
	Admin               string `json:"admin"`
	PrivateSaleDuration int64  `json:"privateSaleDuration"`
	PublicSaleDuration  int64  `json:"publicSaleDuration"`
}

type SalePriceUpdatedEvent struct {
	Admin                 string `json:"admin"`
	NewUsdPriceCents      uint64 `json:"newUsdPriceCents"`
	NewNativePricePerUnit uint64 `json:"newNativePricePerUnit"`
	SaleStage             string `json:"saleStage"`
}

type TokensPurchasedEvent struct {
	Buyer               string `json:"buyer"`
	TokensPurchased     uint64 `json:"tokensPurchased"`
	NativeSpent         uint64 `json:"nativeSpent"`
	NativePricePerToken uint64 `json:"nativePricePerToken"`
	PaymentType         uint8  `json:"paymentType"`
}

type StableCoinPurchaseEvent struct {
	Buyer            string `json:"buyer"`
	TokensPurchased  uint64 `json:"tokensPurchased"`
	StableCoinAmount uint64 `json:"stableCoinAmount"`
	StableCoin       string `json:"stableCoin"`
	PaymentType      uint8  `json:"paymentType"`
}

type PresaleFinalizedEvent struct {
	Admin        string `json:"admin"`
	UnsoldTokens string `json:"unsoldTokens"`
}

func emitEvent(ctx TransactionContextInterface, name string, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to obtain JSON encoding: %v", err)
	}

	err = ctx.SetEvent(name, payloadJSON)
	if err != nil {
		return fmt.Errorf("failed to set event: %v", err)
	}

	return nil
}

func EmitPresaleInitialized(ctx TransactionContextInterface, presale *Presale) error {
	return emitEvent(ctx, presaleInitializedEvent, PresaleInitializedEvent{
		Admin:                 presale.Admin,
		UsdPriceCentsPerToken: presale.UsdPriceCentsPerToken,
		NativePricePerToken:   presale.NativePricePerToken,
		PrivateSaleDuration:   presale.PrivateSaleDuration,
		PublicSaleDuration:    presale.PublicSaleDuration,
		HardcapTokens:         presale.HardcapTokens,
	})
}

func EmitStageChanged(ctx TransactionContextInterface, admin string, oldStage, newStage SaleStage, timestamp int64) error {
	return emitEvent(ctx, stageChangedEvent, StageChangedEvent{
		Admin:     admin,
		OldStage:  oldStage.String(),
		NewStage:  newStage.String(),
		Timestamp: timestamp,
	})
}

func EmitSalePeriodUpdated(ctx TransactionContextInterface, admin string, privateDuration, publicDuration int64) error {
	return emitEvent(ctx, salePeriodUpdatedEvent, SalePeriodUpdatedEvent{
		Admin:               admin,
		PrivateSaleDuration: privateDuration,
		PublicSaleDuration:  publicDuration,
	})
}

func EmitSalePriceUpdated(ctx TransactionContextInterface, admin string, newUsdPriceCents, newNativePrice uint64, stage SaleStage) error {
	return emitEvent(ctx, salePriceUpdatedEvent, SalePriceUpdatedEvent{
		Admin:                 admin,
		NewUsdPriceCents:      newUsdPriceCents,
		NewNativePricePerUnit: newNativePrice,
		SaleStage:             stage.String(),
	})
}

func EmitTokensPurchased(ctx TransactionContextInterface, buyer string, tokens, nativeSpent, nativePrice uint64, paymentType uint8) error {
	return emitEvent(ctx, tokensPurchasedEvent, TokensPurchasedEvent{
		Buyer:               buyer,
		TokensPurchased:     tokens,
		NativeSpent:         nativeSpent,
		NativePricePerToken: nativePrice,
		PaymentType:         paymentType,
	})
}

func EmitStableCoinPurchase(ctx TransactionContextInterface, buyer string, tokens, stableAmount uint64, stableCoin string, paymentType uint8) error {
	return emitEvent(ctx, stableCoinPurchaseEvent, StableCoinPurchaseEvent{
		Buyer:            buyer,
		TokensPurchased:  tokens,
		StableCoinAmount: stableAmount,
		StableCoin:       stableCoin,
		PaymentType:      paymentType,
	})
}

func EmitPresaleFinalized(ctx TransactionContextInterface, admin, unsoldTokens string) error {
	return emitEvent(ctx, presaleFinalizedEvent, PresaleFinalizedEvent{
		Admin:        admin,
		UnsoldTokens: unsoldTokens,
	})
}
