package presale

import (
	"encoding/json"
	"net/http"
)

// Presale is the authoritative sale record, stored once per deployment
// under the "presale" key.
type Presale struct {
	Admin                 string    `json:"admin"`
	UsdPriceCentsPerToken uint64    `json:"usdPriceCentsPerToken"`
	NativePricePerToken   uint64    `json:"nativePricePerToken"`
	PresaleStart          int64     `json:"presaleStart"`
	PrivateSaleDuration   int64     `json:"privateSaleDuration"`
	PublicSaleDuration    int64     `json:"publicSaleDuration"`
	SaleStage             SaleStage `json:"saleStage"`
	TotalSold             uint64    `json:"totalSold"`
	HardcapTokens         uint64    `json:"hardcapTokens"`
	PoolCreated           bool      `json:"poolCreated"`
	PresaleWallet         string    `json:"presaleWallet"`
	MerchantWallet        string    `json:"merchantWallet"`
}

func GetPresaleRecord(ctx TransactionContextInterface) (*Presale, error) {
	presaleAsBytes, err := ctx.GetState(presaleKey)
	if err != nil {
		return nil, NewCustomError(http.StatusInternalServerError, "failed to get presale record", err)
	}
	if presaleAsBytes == nil {
		return nil, NewCustomError(http.StatusNotFound, "presale record does not exist", nil)
	}

	var presale Presale
	err = json.Unmarshal(presaleAsBytes, &presale)
	if err != nil {
		return nil, NewCustomError(http.StatusInternalServerError, "failed to unmarshal presale record", err)
	}

	return &presale, nil
}

func SetPresaleRecord(ctx TransactionContextInterface, presale *Presale) error {
	presaleAsBytes, err := json.Marshal(presale)
	if err != nil {
		return NewCustomError(http.StatusInternalServerError, "failed to marshal presale record", err)
	}

	err = ctx.PutStateWithoutKYC(presaleKey, presaleAsBytes)
	if err != nil {
		return NewCustomError(http.StatusInternalServerError, "failed to save presale record", err)
	}

	return nil
}

func presaleRecordExists(ctx TransactionContextInterface) (bool, error) {
	presaleAsBytes, err := ctx.GetState(presaleKey)
	if err != nil {
		return false, NewCustomError(http.StatusInternalServerError, "failed to get presale record", err)
	}
	return presaleAsBytes != nil, nil
}
