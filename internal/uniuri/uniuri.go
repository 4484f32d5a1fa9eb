package uniuri

import (
	"crypto/rand"

	"github.com/pkg/errors"
)

const (
	// InviteTokenLen gives ~285 bits of entropy with the URL safe alphabet.
	InviteTokenLen = 48

	// byteRange is the total number of possible byte values (2^8).
	byteRange = 256
)

// URLSafeChars is the alphabet used for tokens that travel in links.
var URLSafeChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_")

// ErrCharset is returned for an alphabet shorter than 2 or longer than 256 characters.
var ErrCharset = errors.New("uniuri: charset length must be between 2 and 256")

// InviteToken returns a new random token for invitation links.
func InviteToken() (string, error) {
	return NewLenChars(InviteTokenLen, URLSafeChars)
}

// NewLenChars returns a random string of length characters drawn from chars.
// Random bytes above the largest multiple of len(chars) are dropped to avoid modulo bias.
func NewLenChars(length int, chars []byte) (string, error) {
	clen := len(chars)
	if clen < 2 || clen > byteRange {
		return "", ErrCharset
	}

	if length <= 0 {
		return "", nil
	}

	limit := byteRange - (byteRange % clen)
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", errors.Wrap(err, "uniuri: read random bytes")
		}

		for _, rb := range buf {
			if int(rb) >= limit {
				continue
			}

			out = append(out, chars[int(rb)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
