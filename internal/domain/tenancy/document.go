package tenancy

import (
	"fmt"
	"strings"

	"github.com/aptos/backend/internal/domain/shared"
)

// CleanDocument strips formatting from a CPF/CNPJ, keeping digits only
func CleanDocument(document string) string {
	var b strings.Builder
	for _, r := range document {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCPF validates a CPF using the Receita Federal check-digit
// algorithm and returns the digits-only form.
func ValidateCPF(cpf string) (string, error) {
	cleaned := CleanDocument(cpf)
	if cleaned == "" {
		return "", shared.NewDomainError("INVALID_CPF", "CPF is required")
	}
	if len(cleaned) != 11 {
		return "", shared.NewDomainError("INVALID_CPF", "CPF must have 11 digits")
	}
	if allSameDigit(cleaned) {
		return "", shared.NewDomainError("INVALID_CPF", "Invalid CPF")
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(cleaned[i]-'0') * (10 - i)
	}
	dv1 := checkDigit(sum)

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(cleaned[i]-'0') * (11 - i)
	}
	dv2 := checkDigit(sum)

	if cleaned[9:] != fmt.Sprintf("%d%d", dv1, dv2) {
		return "", shared.NewDomainError("INVALID_CPF", "Invalid CPF")
	}

	return cleaned, nil
}

// cnpjWeights1 and cnpjWeights2 are the multiplier sequences for the first
// and second CNPJ check digits.
var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidateCNPJ validates a CNPJ using the Receita Federal check-digit
// algorithm and returns the digits-only form.
func ValidateCNPJ(cnpj string) (string, error) {
	cleaned := CleanDocument(cnpj)
	if cleaned == "" {
		return "", shared.NewDomainError("INVALID_CNPJ", "CNPJ is required")
	}
	if len(cleaned) != 14 {
		return "", shared.NewDomainError("INVALID_CNPJ", "CNPJ must have 14 digits")
	}
	if allSameDigit(cleaned) {
		return "", shared.NewDomainError("INVALID_CNPJ", "Invalid CNPJ")
	}

	sum := 0
	for i, w := range cnpjWeights1 {
		sum += int(cleaned[i]-'0') * w
	}
	dv1 := checkDigit(sum)

	sum = 0
	for i, w := range cnpjWeights2 {
		sum += int(cleaned[i]-'0') * w
	}
	dv2 := checkDigit(sum)

	if cleaned[12:] != fmt.Sprintf("%d%d", dv1, dv2) {
		return "", shared.NewDomainError("INVALID_CNPJ", "Invalid CNPJ")
	}

	return cleaned, nil
}

// FormatCPF applies the 000.000.000-00 mask to a digits-only CPF
func FormatCPF(cpf string) string {
	if len(cpf) != 11 {
		return cpf
	}
	return fmt.Sprintf("%s.%s.%s-%s", cpf[0:3], cpf[3:6], cpf[6:9], cpf[9:11])
}

// FormatCNPJ applies the 00.000.000/0000-00 mask to a digits-only CNPJ
func FormatCNPJ(cnpj string) string {
	if len(cnpj) != 14 {
		return cnpj
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", cnpj[0:2], cnpj[2:5], cnpj[5:8], cnpj[8:12], cnpj[12:14])
}

// MaskDocument hides the middle digits of a document for display in
// listings and logs (e.g. 111.***.***-35).
func MaskDocument(document string) string {
	switch len(document) {
	case 11:
		return fmt.Sprintf("%s.***.***-%s", document[0:3], document[9:11])
	case 14:
		return fmt.Sprintf("%s.***.***/****-%s", document[0:2], document[12:14])
	default:
		return document
	}
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func checkDigit(sum int) int {
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
