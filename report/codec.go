package report

import (
	"encoding/hex"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2), so equal
// reports always encode to identical bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

// digestKey separates report digests from any other BLAKE3 use.
var digestKey = [32]byte{
	'i', 'f', 'u', 'd', 'e', 'r', 'i', 'v', 'e', '.', 'r', 'e', 'p', 'o', 'r', 't',
}

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("report: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("report: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR encodes r deterministically.
func (r Report) MarshalCBOR() ([]byte, error) {
	type plain Report
	return encMode.Marshal(plain(r))
}

// UnmarshalCBOR decodes data into r.
func (r *Report) UnmarshalCBOR(data []byte) error {
	type plain Report

	var p plain
	if err := decMode.Unmarshal(data, &p); err != nil {
		return err
	}

	*r = Report(p)

	return nil
}

// WriteCBOR writes the CBOR encoding of r to w.
func WriteCBOR(w io.Writer, r Report) error {
	data, err := r.MarshalCBOR()
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// ReadCBOR decodes a report from data.
func ReadCBOR(data []byte) (Report, error) {
	var r Report
	if err := r.UnmarshalCBOR(data); err != nil {
		return Report{}, err
	}

	return r, nil
}

// Digest returns the hex BLAKE3 keyed hash of the CBOR encoding of r. Two
// reports with the same content have the same digest.
func Digest(r Report) (string, error) {
	data, err := r.MarshalCBOR()
	if err != nil {
		return "", err
	}

	h, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		return "", err
	}

	if _, err := h.Write(data); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
