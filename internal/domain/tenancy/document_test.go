package tenancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDocument(t *testing.T) {
	assert.Equal(t, "11144477735", CleanDocument("111.444.777-35"))
	assert.Equal(t, "11222333000181", CleanDocument("11.222.333/0001-81"))
	assert.Equal(t, "", CleanDocument("---"))
}

func TestValidateCPF(t *testing.T) {
	t.Run("accepts valid CPF with or without mask", func(t *testing.T) {
		for _, input := range []string{"11144477735", "111.444.777-35"} {
			got, err := ValidateCPF(input)
			require.NoError(t, err, input)
			assert.Equal(t, "11144477735", got)
		}
	})

	t.Run("rejects wrong check digits", func(t *testing.T) {
		_, err := ValidateCPF("11144477736")
		assert.Error(t, err)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := ValidateCPF("1114447773")
		assert.Error(t, err)
	})

	t.Run("rejects repeated-digit sequences", func(t *testing.T) {
		for _, input := range []string{"00000000000", "11111111111", "99999999999"} {
			_, err := ValidateCPF(input)
			assert.Error(t, err, input)
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := ValidateCPF("")
		assert.Error(t, err)
	})
}

func TestValidateCNPJ(t *testing.T) {
	t.Run("accepts valid CNPJ with or without mask", func(t *testing.T) {
		for _, input := range []string{"11222333000181", "11.222.333/0001-81"} {
			got, err := ValidateCNPJ(input)
			require.NoError(t, err, input)
			assert.Equal(t, "11222333000181", got)
		}
	})

	t.Run("rejects wrong check digits", func(t *testing.T) {
		_, err := ValidateCNPJ("11222333000182")
		assert.Error(t, err)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := ValidateCNPJ("112223330001")
		assert.Error(t, err)
	})

	t.Run("rejects repeated-digit sequences", func(t *testing.T) {
		_, err := ValidateCNPJ("11111111111111")
		assert.Error(t, err)
	})
}

func TestFormatAndMask(t *testing.T) {
	assert.Equal(t, "111.444.777-35", FormatCPF("11144477735"))
	assert.Equal(t, "11.222.333/0001-81", FormatCNPJ("11222333000181"))

	assert.Equal(t, "111.***.***-35", MaskDocument("11144477735"))
	assert.Equal(t, "11.***.***/****-81", MaskDocument("11222333000181"))
	assert.Equal(t, "123", MaskDocument("123"))
}
