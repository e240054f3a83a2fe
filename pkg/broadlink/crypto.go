package broadlink

import (
	"crypto/aes"
	"crypto/cipher"
)

// InitialKey is the fixed AES-128 key every device accepts before
// authentication has derived a per-session key. A successful Authenticate
// replaces it with the server-issued key for every device class alike.
var InitialKey = [16]byte{
	0x09, 0x76, 0x28, 0x34, 0x3f, 0xe9, 0x9e, 0x23,
	0x76, 0x5c, 0x15, 0x13, 0xac, 0xcf, 0x8b, 0x02,
}

// InitialVector is the fixed AES-CBC initialization vector used for every
// encrypted envelope, pre- and post-authentication alike. The protocol does
// not rotate IVs; session secrecy comes entirely from the per-device key.
var InitialVector = [16]byte{
	0x56, 0x2e, 0x17, 0x99, 0x6d, 0x09, 0x3d, 0x28,
	0xdd, 0xb3, 0xba, 0x69, 0x5a, 0x2e, 0x6f, 0x58,
}

// encryptZeroPad zero-pads plaintext to a multiple of the AES block size and
// encrypts it with AES-128-CBC under key/iv. The padding is never stripped by
// the corresponding decrypt step; inner codecs recover the true length from
// their own explicit length fields.
func encryptZeroPad(key, iv [16]byte, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, &CryptoFailureError{Cause: err}
	}
	padded := zeroPad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	mode := cipher.NewCBCEncrypter(block, iv[:])
	mode.CryptBlocks(out, padded)
	return out, nil
}

// decryptBlocks decrypts ciphertext (which must already be a multiple of the
// AES block size) with AES-128-CBC under key/iv. It returns the raw,
// block-aligned plaintext including whatever zero padding encryptZeroPad
// added; callers slice out the meaningful prefix using their own length
// fields rather than trusting trailing zero bytes to mark the end of data,
// since legitimate payloads may themselves end in zero bytes.
func decryptBlocks(key, iv [16]byte, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, &CryptoFailureError{Cause: &ShortReplyError{Expected: aes.BlockSize, Got: len(ciphertext) % aes.BlockSize}}
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, &CryptoFailureError{Cause: err}
	}
	out := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, iv[:])
	mode.CryptBlocks(out, ciphertext)
	return out, nil
}
