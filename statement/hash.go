// Package statement computes order-insensitive statement digests.
package statement

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Hash returns a digest consistent with Equal: statements that compare equal
// hash equal, regardless of parameter insertion order. The statement's code,
// order-normalized parameters, and temporary tables are encoded to msgpack
// and streamed into an xxhash digest.
func (s *Statement) Hash() (uint64, error) {
	digest := xxhash.New()
	enc := msgpack.NewEncoder(digest)

	if err := enc.EncodeString(s.code); err != nil {
		return 0, err
	}

	// Parameters are an unordered set under Equal, so normalize by
	// case-folded name before encoding.
	params := make([]Param, len(s.params))
	copy(params, s.params)
	sort.Slice(params, func(i, j int) bool {
		return strings.ToLower(params[i].Name) < strings.ToLower(params[j].Name)
	})
	for _, p := range params {
		if err := enc.EncodeString(strings.ToLower(p.Name)); err != nil {
			return 0, err
		}
		if err := enc.Encode(p.Value); err != nil {
			return 0, err
		}
	}

	for _, t := range s.tables {
		if err := enc.EncodeString(t.Name); err != nil {
			return 0, err
		}
		elem := ""
		if t.Elem != nil {
			elem = t.Elem.String()
		}
		if err := enc.EncodeString(elem); err != nil {
			return 0, err
		}
		if err := enc.Encode(t.Values); err != nil {
			return 0, err
		}
	}

	return digest.Sum64(), nil
}
