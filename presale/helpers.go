package presale

import (
	"encoding/base64"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strings"
)

func GetUserId(ctx TransactionContextInterface) (string, error) {
	b64ID, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return "", fmt.Errorf("failed to read clientID: %v", err)
	}

	decodeID, err := base64.StdEncoding.DecodeString(b64ID)
	if err != nil {
		return "", fmt.Errorf("failed to base64 decode clientID: %v", err)
	}

	completeId := string(decodeID)
	cnIndex := strings.Index(completeId, "x509::CN=")
	commaIndex := strings.Index(completeId, ",")
	if cnIndex == -1 || commaIndex < cnIndex+9 {
		return "", ErrInvalidUserAddress(completeId)
	}
	userId := completeId[cnIndex+9 : commaIndex]

	if !IsUserAddressValid(userId) {
		return "", ErrInvalidUserAddress(userId)
	}

	return userId, nil
}

func IsUserAddressValid(address string) bool {
	if address == "" {
		return false
	}

	isValid, _ := regexp.MatchString(hexAddressRegex, address)
	return isValid
}

// IsSignerAdmin resolves the invoking identity and compares it against the
// presale admin.
func IsSignerAdmin(ctx TransactionContextInterface, presale *Presale) error {
	signer, err := GetUserId(ctx)
	if err != nil {
		return NewCustomError(http.StatusBadRequest, "failed to get client id", err)
	}

	if signer != presale.Admin {
		return ErrUnauthorized
	}

	return nil
}

func txTimestamp(ctx TransactionContextInterface) (int64, error) {
	ts, err := ctx.GetTxTimestamp()
	if err != nil {
		return 0, NewCustomError(http.StatusInternalServerError, "failed to get transaction timestamp", err)
	}
	return ts.GetSeconds(), nil
}

// checkedAdd64 mirrors the overflow semantics the accounting requires:
// a wrapped sum is an error, never a silent value.
func checkedAdd64(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

func checkedMul64(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxUint64/b {
		return 0, false
	}
	return a * b, true
}
