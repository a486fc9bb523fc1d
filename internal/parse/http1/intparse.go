package http1

import "math"

// parseDecimal parses the leading base-10 digits of raw. consumed is the number
// of digits read, so the caller decides whether trailing bytes are acceptable.
func parseDecimal(raw []byte) (num, consumed int, err error) {
	for _, char := range raw {
		char -= '0'
		if char > 9 {
			break
		}

		if num > (math.MaxInt-int(char))/10 {
			return 0, consumed, ErrBadContentLength
		}

		num = num*10 + int(char)
		consumed++
	}

	if consumed == 0 {
		return 0, 0, ErrBadContentLength
	}

	return num, consumed, nil
}

// parseHex parses the leading hexadecimal digits of raw. The scan stops at the
// first non-hex byte, so chunk extensions are never taken for a part of the length.
func parseHex(raw []byte) (num, consumed int, err error) {
	for _, char := range raw {
		decoded, ishex := unhex(char)
		if !ishex {
			break
		}

		if num > math.MaxInt>>4 {
			return 0, consumed, ErrBadChunkLength
		}

		num = (num << 4) | int(decoded)
		consumed++
	}

	if consumed == 0 {
		return 0, 0, ErrBadChunkLength
	}

	return num, consumed, nil
}

func unhex(char byte) (byte, bool) {
	switch {
	case '0' <= char && char <= '9':
		return char - '0', true
	case 'a' <= char && char <= 'f':
		return char - 'a' + 10, true
	case 'A' <= char && char <= 'F':
		return char - 'A' + 10, true
	}

	return 0, false
}
