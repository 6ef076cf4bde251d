package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Client bicara ke API Omega Tronik lewat parameterized GET ke path "trx".
// Body balasan berupa teks bebas; interpretasi isinya urusan decode.go.
type Client struct {
	http         *http.Client
	signer       Signer
	failover     *Failover
	priceListURL string
}

func NewClient(signer Signer, fo *Failover, timeout time.Duration, priceListURL string) *Client {
	return &Client{
		http:         &http.Client{Timeout: timeout},
		signer:       signer,
		failover:     fo,
		priceListURL: priceListURL,
	}
}

// call mengeksekusi request terhadap endpoint terpilih. Loop dibatasi
// eksplisit: paling banyak satu percobaan ekstra, itu pun hanya untuk call
// yang men-trip failover-nya sendiri. Gagal saat sudah di backup langsung
// diteruskan ke caller.
func (c *Client) call(ctx context.Context, params url.Values) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		body, err := c.get(ctx, c.failover.Endpoint()+"trx", params)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !c.failover.Trip() {
			break
		}
		log.Printf("gateway: endpoint utama gagal, pindah ke backup: %v", err)
	}
	return "", lastErr
}

func (c *Client) get(ctx context.Context, rawURL string, params url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gateway status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckBalance mengembalikan body mentah; saldo ditampilkan apa adanya.
func (c *Client) CheckBalance(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("product", "SALDO")
	params.Set("memberID", c.signer.MemberID)
	params.Set("sign", c.signer.ForCheckBalance())
	return c.call(ctx, params)
}

// ListProducts memanggil operasi list (kode LISTxxx) dan decode hasilnya.
// Body mentah ikut dikembalikan untuk audit trail.
func (c *Client) ListProducts(ctx context.Context, productCode, dest, refID string) ([]Product, string, error) {
	body, err := c.call(ctx, c.trxParams(productCode, dest, refID, ""))
	if err != nil {
		return nil, "", err
	}
	return ParseProductList(body), body, nil
}

// CheckPrice memanggil operasi cek harga (kode CEKxxx) untuk satu id produk.
func (c *Client) CheckPrice(ctx context.Context, productCode, dest, refID, productID string) (PriceResult, error) {
	body, err := c.call(ctx, c.trxParams(productCode, dest, refID, productID))
	if err != nil {
		return PriceResult{}, err
	}
	return ParsePrice(body), nil
}

// Execute menjalankan transaksi beneran. productID opsional; hanya dipakai
// produk yang dipilih dari list.
func (c *Client) Execute(ctx context.Context, productCode, dest, refID, productID string) (TrxResult, error) {
	body, err := c.call(ctx, c.trxParams(productCode, dest, refID, productID))
	if err != nil {
		return TrxResult{}, err
	}
	return ParseTransaction(body), nil
}

func (c *Client) trxParams(productCode, dest, refID, productID string) url.Values {
	params := url.Values{}
	params.Set("product", productCode)
	params.Set("dest", dest)
	params.Set("refID", refID)
	params.Set("memberID", c.signer.MemberID)
	params.Set("sign", c.signer.ForTransaction(productCode, dest, refID))
	if productID != "" {
		params.Set("idproduk", productID)
	}
	return params
}

// FetchPriceList menarik daftar harga dari endpoint JSON terpisah.
// Ini bukan bagian protokol teks; balasan diteruskan mentah.
func (c *Client) FetchPriceList(ctx context.Context) ([]byte, error) {
	if c.priceListURL == "" {
		return nil, fmt.Errorf("price list url not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.priceListURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price list status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
