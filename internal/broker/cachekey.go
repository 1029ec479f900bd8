package broker

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strconv"
)

const cacheKeyPrefix = "broker:"

// CacheKey derives the cache key for a call. Parameters are sorted by key
// before hashing, so insertion order does not matter. With a non-empty secret
// the digest is an HMAC, which keeps CPR/CVR values from being brute-forced
// out of keys stored in a shared cache.
func CacheKey(secret []byte, service ServiceID, operation string, params Parameters) string {
	var h hash.Hash
	if len(secret) > 0 {
		h = hmac.New(sha256.New, secret)
	} else {
		h = sha256.New()
	}

	writeField(h, string(service))
	writeField(h, operation)
	for _, p := range params.canonical() {
		writeField(h, p.Key)
		writeField(h, p.Value)
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// writeField length-prefixes s so that ("ab","c") and ("a","bc") differ.
func writeField(h hash.Hash, s string) {
	h.Write([]byte(strconv.Itoa(len(s))))
	h.Write([]byte{':'})
	h.Write([]byte(s))
}
