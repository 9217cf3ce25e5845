package record

import "hash/crc32"

// Checksum computes the CRC32 (IEEE) of the encoded record. Records that
// encode identically share a checksum.
func Checksum(rec *AddressRecord) (uint32, error) {
	data, err := Encode(rec)
	if err != nil {
		return 0, err
	}
	return crc32.ChecksumIEEE(data), nil
}
