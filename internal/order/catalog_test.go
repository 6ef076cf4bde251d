package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationCodeDerivation(t *testing.T) {
	assert.Equal(t, "CEKDX", CheckCode("LISTDX"))
	assert.Equal(t, "CEKSAKTI", CheckCode("LISTSAKTI"))

	assert.Equal(t, "DX", ExecuteCode("LISTDX"))
	assert.Equal(t, "DX", ExecuteCode("CEKDX"))
	assert.Equal(t, "SAKTI", ExecuteCode("LISTSAKTI"))
}

func TestCatalogCodes(t *testing.T) {
	for key, item := range Catalog {
		assert.True(t, strings.HasPrefix(item.Code, "LIST"), "kategori %s", key)
		assert.NotEmpty(t, item.Name, "kategori %s", key)
	}
}

func TestNewRefID(t *testing.T) {
	a := NewRefID("TRX")
	b := NewRefID("LIST")

	assert.True(t, strings.HasPrefix(a, "TRX"))
	assert.True(t, strings.HasPrefix(b, "LIST"))
	// millis + 3 digit acak
	assert.GreaterOrEqual(t, len(a), len("TRX")+13+3)
}
