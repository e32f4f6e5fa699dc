// Package maskcodec converts between CIDR prefix lengths and dotted-decimal
// subnet masks. The conversions are used for human-readable diagnostics only;
// the netlink mutation path takes the integer prefix length directly.
package maskcodec

import (
	"fmt"
	"math/bits"
	"regexp"
	"strconv"
	"strings"
)

// ValidationError indicates a prefix length or mask outside the accepted
// range or format. A ValidationError during input validation is fatal to the
// whole run, before any target is contacted.
type ValidationError struct {
	Input string
	Cause string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid prefix length %q: %s", e.Input, e.Cause)
}

var prefixPattern = regexp.MustCompile(`^\d+$`)

// ParsePrefix parses a base-10 prefix length string and range-checks it to
// [1,32]. This is the single pre-dispatch validation gate.
func ParsePrefix(s string) (int, error) {
	if !prefixPattern.MatchString(s) {
		return 0, &ValidationError{Input: s, Cause: "must be a base-10 integer"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Input: s, Cause: err.Error()}
	}
	if n < 1 || n > 32 {
		return 0, &ValidationError{Input: s, Cause: "must be between 1 and 32"}
	}
	return n, nil
}

// PrefixToMask renders a prefix length n in [1,32] as a dotted-decimal
// subnet mask, e.g. 24 -> "255.255.255.0". Pure and side-effect-free.
func PrefixToMask(n int) (string, error) {
	if n < 1 || n > 32 {
		return "", &ValidationError{Input: strconv.Itoa(n), Cause: "must be between 1 and 32"}
	}
	field := uint32(0xFFFFFFFF) << (32 - n)
	octets := []string{
		strconv.Itoa(int(field >> 24 & 0xFF)),
		strconv.Itoa(int(field >> 16 & 0xFF)),
		strconv.Itoa(int(field >> 8 & 0xFF)),
		strconv.Itoa(int(field & 0xFF)),
	}
	return strings.Join(octets, "."), nil
}

// MaskToPrefix parses a dotted-decimal subnet mask back to its bit count.
// The mask must be contiguous (ones followed by zeros).
func MaskToPrefix(mask string) (int, error) {
	parts := strings.Split(mask, ".")
	if len(parts) != 4 {
		return 0, &ValidationError{Input: mask, Cause: "must have four octets"}
	}
	var field uint32
	for _, part := range parts {
		octet, err := strconv.Atoi(part)
		if err != nil || octet < 0 || octet > 255 {
			return 0, &ValidationError{Input: mask, Cause: fmt.Sprintf("octet %q out of range", part)}
		}
		field = field<<8 | uint32(octet)
	}
	n := bits.LeadingZeros32(^field)
	if n < 1 || n > 32 || field != uint32(0xFFFFFFFF)<<(32-n) {
		return 0, &ValidationError{Input: mask, Cause: "not a contiguous subnet mask"}
	}
	return n, nil
}
