package ntru

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/tuneinsight/ntrugo/ring"
)

// PolyType selects the representation of the private polynomial f.
type PolyType int32

const (
	// TypeSimple stores f as a single ternary polynomial of weight df.
	TypeSimple PolyType = iota
	// TypeProduct stores f as f1*f2 + f3 with sparse factors of weights
	// df1, df2 and df3.
	TypeProduct
)

// Parameters is an immutable NTRUEncrypt parameter set. The small modulus
// p = 3 is implicit. A zero value is unusable; parameter sets are obtained
// from the predefined variables, from ParametersFromOID or from
// UnmarshalBinary, all of which run Initialize.
type Parameters struct {
	// N is the ring dimension, an odd prime.
	N int
	// Q is the large modulus, a power of two.
	Q int64
	// Df is the weight of f for simple-form parameter sets.
	Df int
	// Df1, Df2, Df3 are the factor weights for product-form sets.
	Df1, Df2, Df3 int
	// Db is the number of random prefix bits of the SVES-3 buffer, a
	// multiple of 8.
	Db int
	// Dm0 is the minimum count of each of {-1, 0, 1} in the masked message.
	Dm0 int
	// MaxM1 bounds |sum of coefficients| of the masked message when
	// nonzero, and forces the constant message coefficient to zero.
	MaxM1 int
	// C is the candidate bit width of the index generation function.
	C int
	// MinIGFHashCalls and MinMGFHashCalls prescribe the minimum number of
	// hash blocks the IGF resp. MGF absorb up front.
	MinIGFHashCalls int
	MinMGFHashCalls int
	// HashSeed indicates whether the MGF hashes its seed.
	HashSeed bool
	// OID is the three-byte parameter set identifier.
	OID [3]byte
	// Sparse selects the sparse ternary representation for generated
	// polynomials.
	Sparse bool
	// FastFp indicates f = 1 + 3F, making the inverse of f modulo 3
	// trivially 1.
	FastFp bool
	// PolyType selects simple or product form.
	PolyType PolyType
	// Digest selects the hash function, Rand the random source.
	Digest Digest
	Rand   PRNGSource

	dg             int
	maxMsgLenBytes int
	bufferLenBits  int
	pkLen          int
	initialized    bool
}

// Predefined parameter sets from EESS #1 and the 2011 "Choosing NTRU
// Parameters" families. The FAST variants share the OID of their base set
// and toggle the product form.
var (
	EES1087EP2 = Parameters{
		N: 1087, Q: 2048, Df: 120, Dm0: 120, Db: 256, C: 13,
		MinIGFHashCalls: 25, MinMGFHashCalls: 14, HashSeed: true,
		OID: [3]byte{0, 6, 3}, Sparse: true, FastFp: true,
		PolyType: TypeSimple, Digest: SHA512,
	}
	EES1087EP2FAST = Parameters{
		N: 1087, Q: 2048, Df1: 8, Df2: 8, Df3: 11, Dm0: 120, Db: 256, C: 13,
		MinIGFHashCalls: 25, MinMGFHashCalls: 14, HashSeed: true,
		OID: [3]byte{0, 6, 3}, Sparse: true, FastFp: true,
		PolyType: TypeProduct, Digest: SHA512,
	}
	EES1171EP1 = Parameters{
		N: 1171, Q: 2048, Df: 106, Dm0: 106, Db: 256, C: 13,
		MinIGFHashCalls: 20, MinMGFHashCalls: 15, HashSeed: true,
		OID: [3]byte{0, 6, 4}, Sparse: true, FastFp: true,
		PolyType: TypeSimple, Digest: SHA512,
	}
	EES1171EP1FAST = Parameters{
		N: 1171, Q: 2048, Df1: 8, Df2: 7, Df3: 11, Dm0: 106, Db: 256, C: 13,
		MinIGFHashCalls: 20, MinMGFHashCalls: 15, HashSeed: true,
		OID: [3]byte{0, 6, 4}, Sparse: true, FastFp: true,
		PolyType: TypeProduct, Digest: SHA512,
	}
	EES1499EP1 = Parameters{
		N: 1499, Q: 2048, Df: 79, Dm0: 79, Db: 256, C: 13,
		MinIGFHashCalls: 17, MinMGFHashCalls: 19, HashSeed: true,
		OID: [3]byte{0, 6, 5}, Sparse: true, FastFp: true,
		PolyType: TypeSimple, Digest: SHA512,
	}
	EES1499EP1FAST = Parameters{
		N: 1499, Q: 2048, Df1: 7, Df2: 6, Df3: 11, Dm0: 79, Db: 256, C: 13,
		MinIGFHashCalls: 17, MinMGFHashCalls: 19, HashSeed: true,
		OID: [3]byte{0, 6, 5}, Sparse: true, FastFp: true,
		PolyType: TypeProduct, Digest: SHA512,
	}
	APR2011439 = Parameters{
		N: 439, Q: 2048, Df: 146, Dm0: 130, MaxM1: 126, Db: 128, C: 12,
		MinIGFHashCalls: 32, MinMGFHashCalls: 9, HashSeed: true,
		OID: [3]byte{0, 7, 101}, Sparse: true, FastFp: false,
		PolyType: TypeSimple, Digest: SHA256,
	}
	APR2011439FAST = Parameters{
		N: 439, Q: 2048, Df1: 9, Df2: 8, Df3: 5, Dm0: 130, MaxM1: 126, Db: 128, C: 12,
		MinIGFHashCalls: 32, MinMGFHashCalls: 9, HashSeed: true,
		OID: [3]byte{0, 7, 101}, Sparse: true, FastFp: true,
		PolyType: TypeProduct, Digest: SHA256,
	}
	APR2011743 = Parameters{
		N: 743, Q: 2048, Df: 248, Dm0: 220, MaxM1: 60, Db: 256, C: 12,
		MinIGFHashCalls: 55, MinMGFHashCalls: 10, HashSeed: false,
		OID: [3]byte{0, 7, 105}, Sparse: false, FastFp: false,
		PolyType: TypeSimple, Digest: SHA512,
	}
	APR2011743FAST = Parameters{
		N: 743, Q: 2048, Df1: 11, Df2: 11, Df3: 15, Dm0: 220, MaxM1: 60, Db: 256, C: 12,
		MinIGFHashCalls: 55, MinMGFHashCalls: 10, HashSeed: false,
		OID: [3]byte{0, 7, 105}, Sparse: false, FastFp: true,
		PolyType: TypeProduct, Digest: SHA512,
	}
)

// ParameterSets lists every predefined parameter set.
var ParameterSets = []*Parameters{
	&EES1087EP2, &EES1087EP2FAST,
	&EES1171EP1, &EES1171EP1FAST,
	&EES1499EP1, &EES1499EP1FAST,
	&APR2011439, &APR2011439FAST,
	&APR2011743, &APR2011743FAST,
}

func init() {
	for _, params := range ParameterSets {
		if err := params.Initialize(); err != nil {
			panic(err)
		}
	}
}

// ParametersFromOID returns the predefined parameter set matching the OID.
// The useProduct hint distinguishes the FAST variants, which share the OID of
// their base set.
func ParametersFromOID(oid [3]byte, useProduct bool) (Parameters, error) {
	for _, params := range ParameterSets {
		if params.OID == oid && (params.PolyType == TypeProduct) == useProduct {
			return *params, nil
		}
	}
	return Parameters{}, fmt.Errorf("ntru: unsupported OID %v", oid)
}

// Initialize validates the explicit fields and computes the derived ones.
// It must be re-run after deserialization.
func (params *Parameters) Initialize() error {
	if params.N <= 0 {
		return errors.New("ntru: parameters: N must be positive")
	}
	if params.Q < 2 || params.Q&(params.Q-1) != 0 {
		return errors.New("ntru: parameters: q must be a power of two >= 2")
	}
	if params.Db <= 0 || params.Db%8 != 0 {
		return errors.New("ntru: parameters: db must be a positive multiple of 8")
	}
	if params.C <= 0 || params.C > 31 {
		return errors.New("ntru: parameters: invalid candidate bit width")
	}

	params.dg = params.N / 3

	effectiveN := params.N
	if params.MaxM1 > 0 {
		effectiveN--
	}
	params.maxMsgLenBytes = effectiveN*3/2/8 - 1 - params.Db/8
	if params.maxMsgLenBytes <= 0 {
		return errors.New("ntru: parameters: no message capacity")
	}
	if params.maxMsgLenBytes > 255 {
		return errors.New("ntru: parameters: message capacity exceeds the one-byte length field")
	}

	params.bufferLenBits = (params.N*3/2+7)/8*8 + 1
	params.pkLen = params.Db

	params.initialized = true
	return nil
}

// Dg returns the weight parameter of the generator polynomial g, N/3.
func (params *Parameters) Dg() int {
	return params.dg
}

// Dr returns the weight of the blinding polynomial: df for simple-form sets
// and df1+df2+df3 for product-form sets.
func (params *Parameters) Dr() int {
	if params.PolyType == TypeProduct {
		return params.Df1 + params.Df2 + params.Df3
	}
	return params.Df
}

// MaxMsgLenBytes returns the maximum plaintext length in bytes.
func (params *Parameters) MaxMsgLenBytes() int {
	return params.maxMsgLenBytes
}

// BufferLenBits returns the bit length of the SVES-3 message buffer.
func (params *Parameters) BufferLenBits() int {
	return params.bufferLenBits
}

// PkLen returns the number of public key bits mixed into the blinding seed.
func (params *Parameters) PkLen() int {
	return params.pkLen
}

// CiphertextLen returns the byte length of a ciphertext.
func (params *Parameters) CiphertextLen() int {
	return ring.PackedLength(params.N, params.Q)
}

// Equal reports whether the two parameter sets have the same explicit
// fields.
func (params *Parameters) Equal(other *Parameters) bool {
	return params.N == other.N &&
		params.Q == other.Q &&
		params.Df == other.Df &&
		params.Df1 == other.Df1 &&
		params.Df2 == other.Df2 &&
		params.Df3 == other.Df3 &&
		params.Db == other.Db &&
		params.Dm0 == other.Dm0 &&
		params.MaxM1 == other.MaxM1 &&
		params.C == other.C &&
		params.MinIGFHashCalls == other.MinIGFHashCalls &&
		params.MinMGFHashCalls == other.MinMGFHashCalls &&
		params.HashSeed == other.HashSeed &&
		params.OID == other.OID &&
		params.Sparse == other.Sparse &&
		params.FastFp == other.FastFp &&
		params.PolyType == other.PolyType &&
		params.Digest == other.Digest &&
		params.Rand == other.Rand
}

// MarshalBinary encodes the parameter set: twelve little-endian signed
// 32-bit integers (N, q, df, df1, df2, df3, db, dm0, maxM1, c, minIGF,
// minMGF), the hashSeed boolean, the three OID bytes, the sparse and fastFp
// booleans, and three little-endian 32-bit selectors (polyType, digest,
// prng). Derived fields are not serialized; readers re-run Initialize.
func (params *Parameters) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)

	for _, v := range []int32{
		int32(params.N), int32(params.Q),
		int32(params.Df), int32(params.Df1), int32(params.Df2), int32(params.Df3),
		int32(params.Db), int32(params.Dm0), int32(params.MaxM1),
		int32(params.C), int32(params.MinIGFHashCalls), int32(params.MinMGFHashCalls),
	} {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	buf.WriteByte(boolByte(params.HashSeed))
	buf.Write(params.OID[:])
	buf.WriteByte(boolByte(params.Sparse))
	buf.WriteByte(boolByte(params.FastFp))

	for _, v := range []int32{int32(params.PolyType), int32(params.Digest), int32(params.Rand)} {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a parameter set written by MarshalBinary and
// re-runs Initialize.
func (params *Parameters) UnmarshalBinary(data []byte) error {
	buf := bytes.NewReader(data)

	ints := make([]int32, 12)
	for i := range ints {
		if err := binary.Read(buf, binary.LittleEndian, &ints[i]); err != nil {
			return errParamsTruncated(err)
		}
	}
	params.N = int(ints[0])
	params.Q = int64(ints[1])
	params.Df = int(ints[2])
	params.Df1 = int(ints[3])
	params.Df2 = int(ints[4])
	params.Df3 = int(ints[5])
	params.Db = int(ints[6])
	params.Dm0 = int(ints[7])
	params.MaxM1 = int(ints[8])
	params.C = int(ints[9])
	params.MinIGFHashCalls = int(ints[10])
	params.MinMGFHashCalls = int(ints[11])

	var flags [6]byte
	if _, err := io.ReadFull(buf, flags[:]); err != nil {
		return errParamsTruncated(err)
	}
	params.HashSeed = flags[0] != 0
	copy(params.OID[:], flags[1:4])
	params.Sparse = flags[4] != 0
	params.FastFp = flags[5] != 0

	sels := make([]int32, 3)
	for i := range sels {
		if err := binary.Read(buf, binary.LittleEndian, &sels[i]); err != nil {
			return errParamsTruncated(err)
		}
	}
	params.PolyType = PolyType(sels[0])
	params.Digest = Digest(sels[1])
	params.Rand = PRNGSource(sels[2])

	return params.Initialize()
}

func errParamsTruncated(err error) error {
	return fmt.Errorf("ntru: premature end of stream in parameters: %w", err)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
