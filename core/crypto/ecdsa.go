package crypto

import (
	"errors"
	"math/big"

	"github.com/NethermindEth/probe/core/felt"
	starkcurve "github.com/consensys/gnark-crypto/ecc/stark-curve"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/ecdsa"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fr"
)

// Signature is an ECDSA signature over the Stark curve.
type Signature struct {
	R, S felt.Felt
}

// PublicKey is the x coordinate of a Stark curve point. The y coordinate is
// recovered during verification, so a signature is accepted for either of
// the two points sharing the x coordinate.
type PublicKey felt.Felt

func NewPublicKey(f *felt.Felt) *PublicKey {
	return (*PublicKey)(f)
}

// the Weierstrass b coefficient of the Stark curve (a = 1)
var curveB = mustFpElement("0x6f21413efbe40de150e596d72f7a8c5609ad26c15c915c1f4cdfcb99cee9e89")

func mustFpElement(hex string) *fp.Element {
	e, err := new(fp.Element).SetString(hex)
	if err != nil {
		panic(err)
	}
	return e
}

// Verify reports whether sig is a valid signature of msgHash by the private
// counterpart of k.
func (k *PublicKey) Verify(sig *Signature, msgHash *felt.Felt) (bool, error) {
	point, err := curvePoint((*felt.Felt)(k).Impl())
	if err != nil {
		return false, err
	}

	sigBin := sig.bytes()
	msg := msgHash.Bytes()

	pub := ecdsa.PublicKey{A: *point}
	if ok, err := pub.Verify(sigBin, msg[:], nil); err != nil || ok {
		return ok, err
	}

	point.Y.Neg(&point.Y)
	pub = ecdsa.PublicKey{A: *point}
	return pub.Verify(sigBin, msg[:], nil)
}

// Sign signs msgHash with the private key scalar privKey.
func Sign(privKey, msgHash *felt.Felt) (*Signature, error) {
	scalar := privKey.BigInt(new(big.Int))
	if scalar.Sign() == 0 || scalar.Cmp(fr.Modulus()) >= 0 {
		return nil, errors.New("private key is not a valid curve scalar")
	}

	_, g := starkcurve.Generators()
	var pubPoint starkcurve.G1Affine
	pubPoint.ScalarMultiplication(&g, scalar)

	// gnark's private key layout is compressedPublicKey || scalar.
	pubBin := pubPoint.Bytes()
	scalarBin := privKey.Bytes()

	var sk ecdsa.PrivateKey
	if _, err := sk.SetBytes(append(pubBin[:], scalarBin[:]...)); err != nil {
		return nil, err
	}

	msg := msgHash.Bytes()
	sigBin, err := sk.Sign(msg[:], nil)
	if err != nil {
		return nil, err
	}

	sig := new(Signature)
	sig.R.SetBytes(sigBin[:felt.Bytes])
	sig.S.SetBytes(sigBin[felt.Bytes:])
	return sig, nil
}

// PublicKeyFromPrivate derives the x coordinate of privKey*G.
func PublicKeyFromPrivate(privKey *felt.Felt) (*felt.Felt, error) {
	scalar := privKey.BigInt(new(big.Int))
	if scalar.Sign() == 0 || scalar.Cmp(fr.Modulus()) >= 0 {
		return nil, errors.New("private key is not a valid curve scalar")
	}

	_, g := starkcurve.Generators()
	var pubPoint starkcurve.G1Affine
	pubPoint.ScalarMultiplication(&g, scalar)
	return felt.NewFelt(&pubPoint.X), nil
}

func (sig *Signature) bytes() []byte {
	r := sig.R.Bytes()
	s := sig.S.Bytes()
	return append(r[:], s[:]...)
}

// curvePoint recovers a curve point from its x coordinate.
func curvePoint(x *fp.Element) (*starkcurve.G1Affine, error) {
	var ySquared, y fp.Element
	ySquared.Square(x).Mul(&ySquared, x) // x^3
	ySquared.Add(&ySquared, x)           // a = 1
	ySquared.Add(&ySquared, curveB)
	if y.Sqrt(&ySquared) == nil {
		return nil, errors.New("not a valid public key")
	}
	return &starkcurve.G1Affine{X: *x, Y: y}, nil
}
