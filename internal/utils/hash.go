package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strconv"
	"sync"
	"time"
)

// HashHeader carries the hex HMAC-SHA256 of a request body.
const HashHeader = "HashSHA256"

// hasherPool is a package-level pool of reusable HMAC-SHA256 hash instances.
// Must be initialized via InitHasherPool before use.
var hasherPool sync.Pool

// InitHasherPool initializes a sync.Pool of HMAC-SHA256 hashers keyed with
// hashKey. It backs [Hash], used by the HashSHA256 body integrity header on
// both ends of the wire.
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash computes an HMAC-SHA256 digest of data with a pooled hasher.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashString computes a hex-encoded HMAC-SHA256 of data with hashKey.
// Unlike Hash, it does not use the pool.
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}

// SignPath returns the signature of path valid until expires. Local photo
// urls carry it as the "sig" query parameter with "exp" holding the unix
// expiry.
func SignPath(path string, expires time.Time, hashKey string) string {
	return HashString(path+"\n"+strconv.FormatInt(expires.Unix(), 10), hashKey)
}

// VerifyPathSignature checks a signature produced by [SignPath] and that it
// has not expired at now.
func VerifyPathSignature(path, exp, sig, hashKey string, now time.Time) bool {
	unix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return false
	}
	expires := time.Unix(unix, 0)
	if now.After(expires) {
		return false
	}

	want := SignPath(path, expires, hashKey)
	return hmac.Equal([]byte(want), []byte(sig))
}
