// Package pairaddr derives deterministic pool addresses for asset pairs and
// memoizes them behind a concurrency-safe cache.
//
// The derivation mirrors the factory/init-code scheme of on-chain pair
// deployments: the address is the low 20 bytes of
//
//	keccak256(0xff || factory || keccak256(pack(first, second)) || initCodeHash)
//
// where pack length-prefixes each denomination and appends its big-endian
// chain ID, and (first, second) is the canonical pair order. The packing is
// fixed so the scheme is bit-exact reproducible across processes.
package pairaddr

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/crestswap/crest/types"
)

// AddressLen is the byte length of a derived pair address.
const AddressLen = 20

// Address is the low 20 bytes of a Keccak-256 digest, identifying one pair
// deployment under a given factory and init code hash.
type Address [AddressLen]byte

// String renders the address as 0x-prefixed lowercase hex.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Derive computes the pool address for an asset pair under the given factory
// address and init code hash. The pair is put in canonical order first, so
// both argument orders yield the same address. The factory must be exactly
// 20 bytes.
func Derive(factory []byte, initCodeHash [32]byte, a, b types.Asset) (Address, error) {
	if len(factory) != AddressLen {
		return Address{}, types.ErrInvalidAddress.Wrapf("factory address must be %d bytes, got %d", AddressLen, len(factory))
	}
	if err := types.ValidateAssetPair(a, b); err != nil {
		return Address{}, err
	}
	first, second := types.SortAssets(a, b)

	salt := keccak256(packPair(first, second))

	payload := make([]byte, 0, 1+AddressLen+2*32)
	payload = append(payload, 0xff)
	payload = append(payload, factory...)
	payload = append(payload, salt...)
	payload = append(payload, initCodeHash[:]...)

	var addr Address
	copy(addr[:], keccak256(payload)[12:])
	return addr, nil
}

// packPair encodes the sorted pair for salting: per asset, a 4-byte
// big-endian denom length, the denom bytes, and the 4-byte big-endian chain
// ID. The length prefix keeps distinct pairs from colliding under
// concatenation.
func packPair(first, second types.Asset) []byte {
	buf := make([]byte, 0, 16+len(first.Denom)+len(second.Denom))
	for _, asset := range []types.Asset{first, second} {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(asset.Denom)))
		buf = append(buf, asset.Denom...)
		buf = binary.BigEndian.AppendUint32(buf, asset.ChainID)
	}
	return buf
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
