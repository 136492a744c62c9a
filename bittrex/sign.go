package bittrex

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// lastNonce holds the most recently issued nonce. Nonces must be strictly
// increasing per api key even when requests are built concurrently, or the
// exchange treats the lower one as a replay.
var lastNonce atomic.Int64

func nextNonce() int64 {
	for {
		nonce := time.Now().UnixNano()
		last := lastNonce.Load()
		if nonce <= last {
			nonce = last + 1
		}
		if lastNonce.CompareAndSwap(last, nonce) {
			return nonce
		}
	}
}

// SignRequest builds the complete authenticated URI for baseURI and params
// and returns it together with the apisign digest for the request header.
//
// The apikey and nonce parameters are appended after the caller's params,
// and the digest is HMAC-SHA512 over the UTF-8 bytes of the complete URI,
// keyed by the api secret and rendered as uppercase hex. The URI must be
// sent exactly as returned; re-encoding the query would break the signature.
func SignRequest(baseURI string, params url.Values, apiKey string, secret []byte) (uri, digest string) {
	uri = authenticatedURI(baseURI, params, apiKey, nextNonce())
	return uri, signURI(uri, secret)
}

func authenticatedURI(baseURI string, params url.Values, apiKey string, nonce int64) string {
	var b strings.Builder
	b.WriteString(baseURI)
	b.WriteByte('?')
	if q := params.Encode(); q != "" {
		b.WriteString(q)
		b.WriteByte('&')
	}
	b.WriteString("apikey=")
	b.WriteString(url.QueryEscape(apiKey))
	b.WriteString("&nonce=")
	b.WriteString(strconv.FormatInt(nonce, 10))
	return b.String()
}

func signURI(uri string, secret []byte) string {
	mac := hmac.New(sha512.New, secret)
	mac.Write([]byte(uri))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}
