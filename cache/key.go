package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// DeriveKey produces a deterministic cache key from a tool name and its
// arguments (a JSON object encoded as a string). Arguments are canonicalized
// before hashing, so semantically identical inputs with different key order
// derive the same key. The key has the form "<tool>_<hex8>".
//
// DeriveKey is pure and never fails: argument text that does not parse as
// JSON is hashed verbatim.
func DeriveKey(toolName, arguments string) string {
	canonical := canonicalize(arguments)
	sum := sha256.Sum256([]byte(canonical))
	return toolName + "_" + hex.EncodeToString(sum[:4])
}

// canonicalize re-encodes a JSON document with object keys sorted at every
// nesting level. encoding/json marshals map keys in sorted order, so a
// decode/encode round trip yields a canonical form. Non-JSON input is
// returned unchanged.
func canonicalize(arguments string) string {
	if arguments == "" {
		return "{}"
	}

	var v any
	if err := json.Unmarshal([]byte(arguments), &v); err != nil {
		return arguments
	}

	out, err := json.Marshal(v)
	if err != nil {
		return arguments
	}
	return string(out)
}
