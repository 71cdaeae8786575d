package ntru

import (
	"errors"

	"github.com/tuneinsight/ntrugo/ring"
	"github.com/tuneinsight/ntrugo/utils/sampling"
)

// ErrMessageTooLong is the error returned when a plaintext exceeds the
// capacity of the parameter set.
var ErrMessageTooLong = errors.New("ntru: message too long for parameter set")

// ErrDecryption is the error returned for every decryption-integrity
// failure. It is deliberately a single opaque value so that corruption, a
// wrong key and an adversarial ciphertext are indistinguishable.
var ErrDecryption = errors.New("ntru: invalid message encoding")

// ErrRejectionLimit is the error returned when the encryption rejection
// loop exceeds its iteration ceiling; on sound parameter sets the loop is
// expected to terminate within a couple of iterations.
var ErrRejectionLimit = errors.New("ntru: rejection sampling limit reached")

const maxEncryptAttempts = 1000

// KeyGenerator generates NTRUEncrypt key pairs for a parameter set.
type KeyGenerator struct {
	params Parameters
}

// NewKeyGenerator creates a KeyGenerator for an initialized parameter set.
func NewKeyGenerator(params Parameters) *KeyGenerator {
	if !params.initialized {
		panic("ntru: parameters not initialized")
	}
	return &KeyGenerator{params: params}
}

// GenKeyPair generates a key pair from the parameter set's random source.
func (kg *KeyGenerator) GenKeyPair() (*KeyPair, error) {
	prng, err := kg.params.Rand.New()
	if err != nil {
		return nil, err
	}
	return kg.genKeyPair(prng, prng)
}

// GenKeyPairFromPassphrase deterministically generates a key pair from a
// passphrase and a salt, using the parameter set's digest. The generator
// polynomial g is drawn from the derived stream and the secret f from an
// independent branch of it, so two calls with identical inputs produce
// byte-identical key pairs.
func (kg *KeyGenerator) GenKeyPairFromPassphrase(passphrase, salt []byte) (*KeyPair, error) {
	prandG := sampling.NewHashDRBG(kg.params.Digest.New, salt, passphrase)
	return kg.genKeyPair(prandG, prandG.Branch())
}

type genGResult struct {
	g   *ring.Poly
	err error
}

// genKeyPair runs the two independent searches: the invertible generator g
// on prandG, overlapped in a goroutine, and the secret (f, fq) on prandF.
func (kg *KeyGenerator) genKeyPair(prandG, prandF sampling.PRNG) (*KeyPair, error) {
	params := kg.params
	N, q := params.N, params.Q

	gCh := make(chan genGResult, 1)
	go func() {
		for {
			tp, err := ring.GenerateRandomTernary(N, params.dg, params.dg-1, false, prandG)
			if err != nil {
				gCh <- genGResult{err: err}
				return
			}
			g := tp.Poly()
			if gq := g.InvertFq(q); gq != nil {
				gq.Zero()
				gCh <- genGResult{g: g}
				return
			}
		}
	}()

	var t ring.TernaryPolynomial
	var fq, fp *ring.Poly

	for {
		var err error
		if params.PolyType == TypeProduct {
			negOnes3 := params.Df3
			if !params.FastFp {
				negOnes3--
			}
			t, err = ring.GenerateProductForm(N, params.Df1, params.Df2, params.Df3, negOnes3, prandF)
		} else {
			negOnes := params.Df
			if !params.FastFp {
				negOnes--
			}
			t, err = ring.GenerateRandomTernary(N, params.Df, negOnes, params.Sparse, prandF)
		}
		if err != nil {
			return nil, err
		}

		f := t.Poly().CopyNew()
		if params.FastFp {
			// f = 1 + 3F, so the inverse of f modulo 3 is 1.
			f.Mult(3)
			f.Coeffs[0]++
		} else {
			if fp = f.InvertF3(); fp == nil {
				continue
			}
		}

		if fq = f.InvertFq(q); fq == nil {
			continue
		}
		f.Zero()
		break
	}

	if params.FastFp {
		fp = ring.NewPoly(N)
		fp.Coeffs[0] = 1
	}

	gRes := <-gCh
	if gRes.err != nil {
		return nil, gRes.err
	}

	h := gRes.g.MulMod(fq, q)
	h.Mult3(q)

	gRes.g.Zero()
	fq.Zero()

	priv := &PrivateKey{
		N: N, Q: q,
		Sparse:   params.Sparse,
		FastFp:   params.FastFp,
		PolyType: params.PolyType,
		T:        t,
		Fp:       fp,
	}
	pub := &PublicKey{N: N, Q: q, H: h}

	return &KeyPair{Priv: priv, Pub: pub}, nil
}

// Encryptor encrypts messages under a public key with the SVES-3 scheme.
type Encryptor struct {
	params Parameters
	pub    *PublicKey
	prng   sampling.PRNG
}

// NewEncryptor creates an Encryptor for an initialized parameter set and a
// matching public key.
func NewEncryptor(params Parameters, pub *PublicKey) (*Encryptor, error) {
	if !params.initialized {
		panic("ntru: parameters not initialized")
	}
	if pub.N != params.N || pub.Q != params.Q {
		return nil, errors.New("ntru: public key does not match parameter set")
	}
	prng, err := params.Rand.New()
	if err != nil {
		return nil, err
	}
	return &Encryptor{params: params, pub: pub, prng: prng}, nil
}

// Encrypt encrypts msg, which must be at most MaxMsgLenBytes long, and
// returns the base-q packed ciphertext.
func (enc *Encryptor) Encrypt(msg []byte) ([]byte, error) {
	params := enc.params
	N, q := params.N, params.Q

	if len(msg) > params.maxMsgLenBytes {
		return nil, ErrMessageTooLong
	}

	db8 := params.Db / 8
	skipConstant := params.MaxM1 > 0

	for attempt := 0; attempt < maxEncryptAttempts; attempt++ {

		// M' = b || len(msg) || msg || 0...0
		buf := make([]byte, (params.bufferLenBits+7)/8)
		b := buf[:db8]
		if _, err := enc.prng.Read(b); err != nil {
			return nil, err
		}
		buf[db8] = byte(len(msg))
		copy(buf[db8+1:], msg)
		for i := db8 + 1 + len(msg); i < len(buf); i++ {
			buf[i] = 0
		}

		mTrin := ring.FromBinary3Sves(buf, N, skipConstant)

		r, err := ring.GenerateBlindingPoly(
			NewIndexGenerator(enc.formSData(msg, b), params), N, params.Dr(), params.Sparse)
		if err != nil {
			return nil, err
		}

		R := r.MulMod(enc.pub.H, q)
		mask := GenerateMask(R.ToBinary4(), params)

		mTrin.Add(mask)
		if params.MaxM1 > 0 {
			sum := mTrin.SumCoeffs()
			if sum > int64(params.MaxM1) || sum < -int64(params.MaxM1) {
				continue
			}
			mTrin.Coeffs[0] = 0
		}
		mTrin.Mod3()

		if mTrin.Count(-1) < params.Dm0 || mTrin.Count(0) < params.Dm0 || mTrin.Count(1) < params.Dm0 {
			continue
		}

		e := R
		e.AddMod(mTrin, q)
		return e.ToBinary(q), nil
	}

	return nil, ErrRejectionLimit
}

// formSData builds sData = OID || msg || b || hTrunc, the seed of the
// blinding polynomial index generator.
func (enc *Encryptor) formSData(msg, b []byte) []byte {
	return formSData(enc.params, enc.pub, msg, b)
}

func formSData(params Parameters, pub *PublicKey, msg, b []byte) []byte {
	hTrunc := pub.H.ToBinaryTrunc(params.Q, params.pkLen/8)

	sData := make([]byte, 0, 3+len(msg)+len(b)+len(hTrunc))
	sData = append(sData, params.OID[:]...)
	sData = append(sData, msg...)
	sData = append(sData, b...)
	sData = append(sData, hTrunc...)
	return sData
}

// Decryptor decrypts SVES-3 ciphertexts with a key pair.
type Decryptor struct {
	params Parameters
	kp     *KeyPair
}

// NewDecryptor creates a Decryptor for an initialized parameter set and a
// matching key pair.
func NewDecryptor(params Parameters, kp *KeyPair) (*Decryptor, error) {
	if !params.initialized {
		panic("ntru: parameters not initialized")
	}
	if kp.Priv == nil || kp.Pub == nil || kp.Priv.N != params.N || kp.Priv.Q != params.Q {
		return nil, errors.New("ntru: key pair does not match parameter set")
	}
	return &Decryptor{params: params, kp: kp}, nil
}

// Decrypt decrypts a ciphertext and returns the plaintext. All integrity
// failures report the single opaque ErrDecryption.
func (dec *Decryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	params := dec.params
	priv, pub := dec.kp.Priv, dec.kp.Pub
	N, q := params.N, params.Q

	if len(ciphertext) != params.CiphertextLen() {
		return nil, ErrDecryption
	}
	e, err := ring.FromBinary(ciphertext, N, q)
	if err != nil {
		return nil, ErrDecryption
	}

	// Recover the candidate message polynomial ci.
	var ci *ring.Poly
	if priv.FastFp {
		// f = 1 + 3t, so f*e = e + 3*(t*e).
		a := priv.T.MulMod(e, q)
		a.Mult3(q)
		a.AddMod(e, q)
		a.Center0(q)
		a.Mod3()
		ci = a
	} else {
		a := priv.T.MulMod(e, q)
		a.Center0(q)
		a.Mod3()
		ci = a.MulMod(priv.Fp, 3)
		ci.Center0(3)
	}

	fail := false
	if ci.Count(-1) < params.Dm0 || ci.Count(0) < params.Dm0 || ci.Count(1) < params.Dm0 {
		fail = true
	}

	// Candidate for r*h.
	cR := e.CopyNew()
	cR.SubMod(ci, q)

	mask := GenerateMask(cR.ToBinary4(), params)
	cMTrin := ci.CopyNew()
	cMTrin.Sub(mask)
	cMTrin.Mod3()

	skipConstant := params.MaxM1 > 0
	cM := cMTrin.ToBinary3Sves(skipConstant)

	// Parse cM = b || len || msg || p0 and verify the format.
	db8 := params.Db / 8
	if len(cM) < db8+1 {
		return nil, ErrDecryption
	}
	b := cM[:db8]
	msgLen := int(cM[db8])
	if msgLen > params.maxMsgLenBytes {
		msgLen = 1
		fail = true
	}
	if len(cM) < db8+1+msgLen {
		return nil, ErrDecryption
	}
	msg := cM[db8+1 : db8+1+msgLen]
	for _, v := range cM[db8+1+msgLen:] {
		if v != 0 {
			fail = true
		}
	}

	// Re-run the blinding step and check that it explains the ciphertext.
	rPrime, err := ring.GenerateBlindingPoly(
		NewIndexGenerator(formSData(params, pub, msg, b), params), N, params.Dr(), params.Sparse)
	if err != nil {
		return nil, ErrDecryption
	}
	RPrime := rPrime.MulMod(pub.H, q)

	if !cR.Equal(RPrime) {
		fail = true
	}

	if fail {
		return nil, ErrDecryption
	}

	out := make([]byte, msgLen)
	copy(out, msg)
	return out, nil
}
