package ntru

import (
	"encoding/binary"
	"errors"

	"github.com/tuneinsight/ntrugo/ring"
	"github.com/tuneinsight/ntrugo/utils"
)

const (
	flagSparse  = 1
	flagFastFp  = 2
	flagProduct = 4
)

// ErrInvalidKeyBlob is the error returned when a serialized key cannot be
// parsed.
var ErrInvalidKeyBlob = errors.New("ntru: invalid key blob")

// PublicKey is an NTRUEncrypt public key: the polynomial h reduced into
// [0, q), together with the ring dimension and the large modulus.
type PublicKey struct {
	N int
	Q int64
	H *ring.Poly
}

// Equal reports whether the two public keys are identical.
func (pub *PublicKey) Equal(other *PublicKey) bool {
	return pub.N == other.N && pub.Q == other.Q && pub.H.Equal(other.H)
}

// MarshalBinary encodes the public key as big-endian 16-bit N and q followed
// by the base-q packing of h.
func (pub *PublicKey) MarshalBinary() ([]byte, error) {
	data := make([]byte, 4+ring.PackedLength(pub.N, pub.Q))
	binary.BigEndian.PutUint16(data[0:], uint16(pub.N))
	binary.BigEndian.PutUint16(data[2:], uint16(pub.Q))
	copy(data[4:], pub.H.ToBinary(pub.Q))
	return data, nil
}

// UnmarshalBinary decodes a public key written by MarshalBinary.
func (pub *PublicKey) UnmarshalBinary(data []byte) error {
	n, err := pub.decode(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return ErrInvalidKeyBlob
	}
	return nil
}

// decode parses a public key from the front of data and returns the number
// of bytes consumed.
func (pub *PublicKey) decode(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, ErrInvalidKeyBlob
	}
	pub.N = int(binary.BigEndian.Uint16(data[0:]))
	pub.Q = int64(binary.BigEndian.Uint16(data[2:]))
	if pub.N == 0 || pub.Q < 2 || pub.Q&(pub.Q-1) != 0 {
		return 0, ErrInvalidKeyBlob
	}

	hLen := ring.PackedLength(pub.N, pub.Q)
	if len(data) < 4+hLen {
		return 0, ErrInvalidKeyBlob
	}
	h, err := ring.FromBinary(data[4:4+hLen], pub.N, pub.Q)
	if err != nil {
		return 0, ErrInvalidKeyBlob
	}
	pub.H = h
	return 4 + hLen, nil
}

// PrivateKey is an NTRUEncrypt private key: the secret polynomial t in its
// dense, sparse or product-form representation, and the inverse of f modulo
// 3.
type PrivateKey struct {
	N        int
	Q        int64
	Sparse   bool
	FastFp   bool
	PolyType PolyType
	T        ring.TernaryPolynomial
	Fp       *ring.Poly
}

// Equal reports whether the two private keys hold the same secret.
func (priv *PrivateKey) Equal(other *PrivateKey) bool {
	return priv.N == other.N && priv.Q == other.Q &&
		priv.Sparse == other.Sparse && priv.FastFp == other.FastFp &&
		priv.PolyType == other.PolyType &&
		priv.T.Poly().Equal(other.T.Poly())
}

// Clear zeroizes the secret material.
func (priv *PrivateKey) Clear() {
	if priv.T != nil {
		priv.T.Clear()
	}
	if priv.Fp != nil {
		priv.Fp.Zero()
	}
}

// MarshalBinary encodes the private key: big-endian 16-bit N and q, a flags
// byte, then t. Product-form keys write the three sparse factors, each
// self-delimited by its two 16-bit counts with the indices packed at
// ceil(log2(N)) bits; other keys write the base-3 tight packing of t.
func (priv *PrivateKey) MarshalBinary() ([]byte, error) {
	data := make([]byte, 5)
	binary.BigEndian.PutUint16(data[0:], uint16(priv.N))
	binary.BigEndian.PutUint16(data[2:], uint16(priv.Q))

	var flags byte
	if priv.Sparse {
		flags |= flagSparse
	}
	if priv.FastFp {
		flags |= flagFastFp
	}
	if priv.PolyType == TypeProduct {
		flags |= flagProduct
	}
	data[4] = flags

	if priv.PolyType == TypeProduct {
		pf := priv.T.(*ring.ProductFormPolynomial)
		for _, f := range []*ring.SparseTernaryPolynomial{pf.F1, pf.F2, pf.F3} {
			data = append(data, encodeSparse(f, priv.N)...)
		}
	} else {
		data = append(data, priv.T.Poly().ToBinary3Tight()...)
	}

	return data, nil
}

// UnmarshalBinary decodes a private key written by MarshalBinary and
// re-derives fp.
func (priv *PrivateKey) UnmarshalBinary(data []byte) error {
	n, err := priv.decode(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return ErrInvalidKeyBlob
	}
	return nil
}

// decode parses a private key from the front of data and returns the number
// of bytes consumed.
func (priv *PrivateKey) decode(data []byte) (int, error) {
	if len(data) < 5 {
		return 0, ErrInvalidKeyBlob
	}
	priv.N = int(binary.BigEndian.Uint16(data[0:]))
	priv.Q = int64(binary.BigEndian.Uint16(data[2:]))
	if priv.N == 0 || priv.Q < 2 || priv.Q&(priv.Q-1) != 0 {
		return 0, ErrInvalidKeyBlob
	}

	flags := data[4]
	priv.Sparse = flags&flagSparse != 0
	priv.FastFp = flags&flagFastFp != 0
	if flags&flagProduct != 0 {
		priv.PolyType = TypeProduct
	} else {
		priv.PolyType = TypeSimple
	}

	off := 5
	if priv.PolyType == TypeProduct {
		factors := make([]*ring.SparseTernaryPolynomial, 3)
		for i := range factors {
			f, n, err := decodeSparse(data[off:], priv.N)
			if err != nil {
				return 0, err
			}
			factors[i] = f
			off += n
		}
		priv.T = ring.NewProductForm(factors[0], factors[1], factors[2])
	} else {
		tightLen := (priv.N + 4) / 5
		if len(data) < off+tightLen {
			return 0, ErrInvalidKeyBlob
		}
		pol, err := ring.FromBinary3Tight(data[off:off+tightLen], priv.N)
		if err != nil {
			return 0, ErrInvalidKeyBlob
		}
		if priv.Sparse {
			priv.T = ring.SparseFromPoly(pol)
		} else {
			priv.T = ring.NewDenseTernary(pol)
		}
		off += tightLen
	}

	if priv.FastFp {
		priv.Fp = ring.NewPoly(priv.N)
		priv.Fp.Coeffs[0] = 1
	} else {
		fp := priv.T.Poly().InvertF3()
		if fp == nil {
			return 0, ErrInvalidKeyBlob
		}
		priv.Fp = fp
	}

	return off, nil
}

// encodeSparse writes a sparse ternary polynomial as two big-endian 16-bit
// counts followed by the one indices and the negative-one indices, packed at
// ceil(log2(N)) bits each.
func encodeSparse(f *ring.SparseTernaryPolynomial, N int) []byte {
	data := make([]byte, 4)
	binary.BigEndian.PutUint16(data[0:], uint16(len(f.Ones())))
	binary.BigEndian.PutUint16(data[2:], uint16(len(f.NegOnes())))

	indices := append(append([]int(nil), f.Ones()...), f.NegOnes()...)
	return append(data, packIndices(indices, indexBits(N))...)
}

// decodeSparse parses a sparse ternary polynomial from the front of data and
// returns the number of bytes consumed.
func decodeSparse(data []byte, N int) (*ring.SparseTernaryPolynomial, int, error) {
	if len(data) < 4 {
		return nil, 0, ErrInvalidKeyBlob
	}
	numOnes := int(binary.BigEndian.Uint16(data[0:]))
	numNegOnes := int(binary.BigEndian.Uint16(data[2:]))
	if numOnes+numNegOnes > N {
		return nil, 0, ErrInvalidKeyBlob
	}

	bits := indexBits(N)
	packedLen := ((numOnes+numNegOnes)*bits + 7) / 8
	if len(data) < 4+packedLen {
		return nil, 0, ErrInvalidKeyBlob
	}

	indices, err := unpackIndices(data[4:4+packedLen], numOnes+numNegOnes, bits, N)
	if err != nil {
		return nil, 0, err
	}

	return ring.NewSparseTernary(N, indices[:numOnes], indices[numOnes:]), 4 + packedLen, nil
}

func indexBits(N int) int {
	return utils.BitLen(uint64(N - 1))
}

// packIndices bit-packs the indices little-endian, the same bit order as the
// base-q coefficient packing.
func packIndices(indices []int, bits int) []byte {
	data := make([]byte, (len(indices)*bits+7)/8)
	bitIndex, byteIndex := 0, 0
	for _, idx := range indices {
		for j := 0; j < bits; j++ {
			data[byteIndex] |= byte(idx>>uint(j)&1) << uint(bitIndex)
			if bitIndex == 7 {
				bitIndex = 0
				byteIndex++
			} else {
				bitIndex++
			}
		}
	}
	return data
}

func unpackIndices(data []byte, count, bits, N int) ([]int, error) {
	indices := make([]int, count)
	bitIndex, byteIndex := 0, 0
	for i := range indices {
		var v int
		for j := 0; j < bits; j++ {
			v |= int(data[byteIndex]>>uint(bitIndex)&1) << uint(j)
			if bitIndex == 7 {
				bitIndex = 0
				byteIndex++
			} else {
				bitIndex++
			}
		}
		if v >= N {
			return nil, ErrInvalidKeyBlob
		}
		indices[i] = v
	}
	return indices, nil
}

// KeyPair owns a matched private and public key.
type KeyPair struct {
	Priv *PrivateKey
	Pub  *PublicKey
}

// Equal reports whether the two key pairs are identical.
func (kp *KeyPair) Equal(other *KeyPair) bool {
	return kp.Priv.Equal(other.Priv) && kp.Pub.Equal(other.Pub)
}

// Clear zeroizes the private half.
func (kp *KeyPair) Clear() {
	kp.Priv.Clear()
}

// MarshalBinary encodes the key pair as publicKey || privateKey.
func (kp *KeyPair) MarshalBinary() ([]byte, error) {
	pubData, err := kp.Pub.MarshalBinary()
	if err != nil {
		return nil, err
	}
	privData, err := kp.Priv.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(pubData, privData...), nil
}

// UnmarshalBinary decodes a key pair written by MarshalBinary.
func (kp *KeyPair) UnmarshalBinary(data []byte) error {
	kp.Pub = new(PublicKey)
	n, err := kp.Pub.decode(data)
	if err != nil {
		return err
	}
	kp.Priv = new(PrivateKey)
	m, err := kp.Priv.decode(data[n:])
	if err != nil {
		return err
	}
	if n+m != len(data) {
		return ErrInvalidKeyBlob
	}
	return nil
}

// IsValid checks the structural validity of the key pair: h is reduced
// modulo q, t is ternary for simple-form keys, and the generator polynomial
// recovered from f*h has exactly dg ones and dg-1 negative ones.
func (kp *KeyPair) IsValid() bool {
	priv, pub := kp.Priv, kp.Pub
	if priv == nil || pub == nil || priv.N != pub.N || priv.Q != pub.Q {
		return false
	}
	N, q := pub.N, pub.Q

	if pub.H.N() != N || !pub.H.IsReduced(q) {
		return false
	}

	f := priv.T.Poly().CopyNew()
	if f.N() != N {
		return false
	}
	if priv.PolyType == TypeSimple && !f.IsTernary() {
		return false
	}
	if priv.FastFp {
		f.Mult(3)
		f.Coeffs[0]++
	}

	// h = 3*g*f^-1, so f*h*3 = 9*g and dividing by 9 recovers g.
	inv9, ok := utils.ModInverse(int64(9), q)
	if !ok {
		return false
	}
	g := f.MulMod(pub.H, q)
	g.Mult3(q)
	g.MultMod(inv9, q)
	g.ModCenter(q)

	if !g.IsTernary() {
		return false
	}
	dg := N / 3
	return g.Count(1) == dg && g.Count(-1) == dg-1
}
