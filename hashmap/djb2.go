// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashmap

// DJB2 returns Bernstein's hash of k: starting from 5381, each byte c
// updates the hash to h*33 + c. Arithmetic wraps at 32 bits, so the result
// is stable across processes and platforms.
func DJB2[K Key](k K) int32 {
	h := int32(5381)
	for i := 0; i < len(k); i++ {
		h = (h << 5) + h + int32(k[i])
	}
	return h
}
