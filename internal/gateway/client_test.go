package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSigner() Signer {
	return Signer{MemberID: "OM12345", PIN: "1234", Password: "secret"}
}

func TestClientFailover(t *testing.T) {
	var primaryHits, backupHits atomic.Int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryHits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()

	backup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backupHits.Add(1)
		_, _ = w.Write([]byte("Saldo anda 1.000.000"))
	}))
	defer backup.Close()

	fo := NewFailover(primary.URL+"/", backup.URL+"/")
	c := NewClient(testSigner(), fo, 2*time.Second, "")

	// kegagalan pertama: tepat satu retry ke backup
	body, err := c.CheckBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Saldo anda 1.000.000", body)
	assert.Equal(t, int32(1), primaryHits.Load())
	assert.Equal(t, int32(1), backupHits.Load())
	assert.True(t, fo.OnBackup())

	// call berikutnya langsung ke backup, primary tidak dicoba lagi
	_, err = c.CheckBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), primaryHits.Load())
	assert.Equal(t, int32(2), backupHits.Load())
}

func TestClientFailureOnBackupSurfaces(t *testing.T) {
	var primaryHits, backupHits atomic.Int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryHits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer primary.Close()

	backup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backupHits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer backup.Close()

	fo := NewFailover(primary.URL+"/", backup.URL+"/")
	c := NewClient(testSigner(), fo, 2*time.Second, "")

	_, err := c.CheckBalance(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), primaryHits.Load())
	assert.Equal(t, int32(1), backupHits.Load())

	// sudah di backup: gagal lagi tidak memicu retry tambahan
	_, err = c.CheckBalance(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), primaryHits.Load())
	assert.Equal(t, int32(2), backupHits.Load())
}

func TestFailoverTripCAS(t *testing.T) {
	fo := NewFailover("http://primary/", "http://backup/")

	assert.Equal(t, "http://primary/", fo.Endpoint())
	assert.True(t, fo.Trip())
	assert.False(t, fo.Trip()) // cuma satu pemenang CAS
	assert.Equal(t, "http://backup/", fo.Endpoint())
}

func TestClientRequestParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/trx", r.URL.Path)
		assert.Equal(t, "CEKDX", q.Get("product"))
		assert.Equal(t, "628123456789", q.Get("dest"))
		assert.Equal(t, "CEK1700", q.Get("refID"))
		assert.Equal(t, "OM12345", q.Get("memberID"))
		assert.Equal(t, "906752", q.Get("idproduk"))
		assert.Equal(t, testSigner().ForTransaction("CEKDX", "628123456789", "CEK1700"), q.Get("sign"))

		_, _ = w.Write([]byte("R#CEK1700 CEKDX.628123456789 SUKSES. SN/Ref: Rp156.275/AIGO 75GB."))
	}))
	defer srv.Close()

	c := NewClient(testSigner(), NewFailover(srv.URL+"/", srv.URL+"/"), 2*time.Second, "")

	res, err := c.CheckPrice(context.Background(), "CEKDX", "628123456789", "CEK1700", "906752")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "156275", res.Price)
	assert.Equal(t, "AIGO 75GB", res.Description)
}

func TestClientListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("idproduk"))
		_, _ = w.Write([]byte("SUKSES. SN/Ref: 906752#AIGO 75GB#Rp156275;905897#AIGO Mini#Rp3775."))
	}))
	defer srv.Close()

	c := NewClient(testSigner(), NewFailover(srv.URL+"/", srv.URL+"/"), 2*time.Second, "")

	products, raw, err := c.ListProducts(context.Background(), "LISTDX", "628123456789", "LIST1700")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Contains(t, raw, "SN/Ref:")
}

func TestClientFetchPriceList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"kode":"DX","harga":156275}]`))
	}))
	defer srv.Close()

	c := NewClient(testSigner(), NewFailover(srv.URL+"/", srv.URL+"/"), 2*time.Second, srv.URL)
	b, err := c.FetchPriceList(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"kode":"DX","harga":156275}]`, string(b))

	noURL := NewClient(testSigner(), NewFailover(srv.URL+"/", srv.URL+"/"), 2*time.Second, "")
	_, err = noURL.FetchPriceList(context.Background())
	assert.Error(t, err)
}
