package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionSukses(t *testing.T) {
	body := "R#987654321 HSF5.088123456789 SUKSES. SN/Ref: 123456789. Saldo 99.999.999-4.880=99.995.119 @17/11 04.19.18"
	res := ParseTransaction(body)

	assert.True(t, res.Success)
	assert.Equal(t, StatusSukses, res.Status)
	assert.Equal(t, "987654321", res.RefID)
	assert.Equal(t, "123456789", res.SN)
	assert.Equal(t, "99995119", res.Saldo)
	assert.Equal(t, "4880", res.HargaBeli)
	assert.Equal(t, body, res.Raw)
}

func TestParseTransactionGagal(t *testing.T) {
	res := ParseTransaction("R#TRX17000 HSF5.088123456789 GAGAL. Saldo tidak cukup. Sisa saldo 1.000")

	assert.False(t, res.Success)
	assert.Equal(t, StatusGagal, res.Status)
	assert.Equal(t, "TRX17000", res.RefID)
	assert.Equal(t, "Saldo tidak cukup", res.Message)
	assert.Empty(t, res.SN)
}

func TestParseTransactionPending(t *testing.T) {
	for _, body := range []string{
		"R#TRX17001 Transaksi PENDING, mohon tunggu",
		"R#TRX17002 Menunggu Jawaban dari operator",
	} {
		res := ParseTransaction(body)
		assert.False(t, res.Success, body)
		assert.Equal(t, StatusPending, res.Status, body)
	}
}

func TestParseTransactionPriority(t *testing.T) {
	// SUKSES dicek sebelum GAGAL sebelum PENDING
	res := ParseTransaction("SUKSES walau ada kata GAGAL dan PENDING di body")
	assert.Equal(t, StatusSukses, res.Status)
	assert.True(t, res.Success)

	res = ParseTransaction("GAGAL. Transaksi PENDING dibatalkan")
	assert.Equal(t, StatusGagal, res.Status)
}

func TestParseTransactionStatusCode(t *testing.T) {
	res := ParseTransaction("R#X GAGAL. Tujuan salah. status=52")
	assert.Equal(t, 52, res.StatusCode)
	assert.Equal(t, "Tujuan Salah", StatusDescription(res.StatusCode))
	assert.Equal(t, "Unknown", StatusDescription(999))
}

func TestParseTransactionGarbageNeverFails(t *testing.T) {
	for _, body := range []string{
		"",
		"<html><body>502 Bad Gateway</body></html>",
		"R#",
		"SN/Ref:",
		"Saldo = = =",
		"987#654#321;;;###",
	} {
		res := ParseTransaction(body)
		assert.False(t, res.Success, body)
		assert.Equal(t, StatusUnknown, res.Status, body)
	}
}

func TestParseProductList(t *testing.T) {
	body := "R#LIST1700 LISTDX.628123456789 SUKSES. SN/Ref: 906752#AIGO 75GB + Kuota di Kota-mu, 60hr, 180rb#Rp156275;905897#AIGO Mini 1.5GB#Rp3775."
	products := ParseProductList(body)

	require.Len(t, products, 2)
	assert.Equal(t, "906752", products[0].ID)
	assert.Equal(t, "AIGO 75GB + Kuota di Kota-mu, 60hr, 180rb", products[0].Name)
	assert.Equal(t, 156275, products[0].Price)
	assert.Equal(t, "905897", products[1].ID)
	assert.Equal(t, "AIGO Mini 1.5GB", products[1].Name)
	assert.Equal(t, 3775, products[1].Price)
}

func TestParseProductListDropsBrokenItems(t *testing.T) {
	body := "SUKSES. SN/Ref: 906752#AIGO 75GB#Rp156275;rusak-tanpa-pagar;1#2#3#4;905897#AIGO Mini#Rp3.775."
	products := ParseProductList(body)

	require.Len(t, products, 2)
	assert.Equal(t, "906752", products[0].ID)
	assert.Equal(t, 3775, products[1].Price) // separator ribuan dibuang
}

func TestParseProductListNoMatch(t *testing.T) {
	assert.Nil(t, ParseProductList("GAGAL. Produk gangguan."))
	assert.Nil(t, ParseProductList(""))
	assert.Nil(t, ParseProductList("SUKSES tanpa marker"))
}

func TestParsePrice(t *testing.T) {
	body := "R#CEK22222 CEKSAKTI.083896959466 SUKSES. SN/Ref: Rp3.775/AIGO Mini 1.5GB."
	res := ParsePrice(body)

	assert.True(t, res.Success)
	assert.Equal(t, "3775", res.Price)
	assert.Equal(t, "AIGO Mini 1.5GB", res.Description)
}

func TestParsePriceMalformed(t *testing.T) {
	// tanpa SUKSES tidak pernah berarti
	res := ParsePrice("GAGAL. SN/Ref: Rp3.775/AIGO Mini.")
	assert.False(t, res.Success)

	// SUKSES tapi pola harga tidak ada = payload rusak, bukan crash
	res = ParsePrice("SUKSES. SN/Ref: 123456789.")
	assert.False(t, res.Success)
	assert.Empty(t, res.Price)
}
