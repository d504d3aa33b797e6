package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 of data. Document hashes and key digests both
// go through it, so keys look alike in every backend.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "<prefix>:<digest>", the digest covering the JSON encoding
// of parts. Key option structs encode with a fixed field order.
func hashKey(prefix string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// NaN sizes do not encode; the formatted values still separate keys
		data = fmt.Appendf(nil, "%v", parts)
	}
	return prefix + ":" + Hash(data)
}
