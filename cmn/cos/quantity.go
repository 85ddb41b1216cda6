package cos

import (
	"strconv"
	"strings"
)

// ParseQuantity parses config fields written as either a percentage
// ("81%") or an absolute byte count with a unit suffix ("1GB", "512MiB",
// "4096"). Used by bucket/config capacity and slice-bandwidth settings
// that may be expressed either way.
type Quantity struct {
	IsPercent bool
	Percent   int
	Bytes     int64
}

func ParseQuantity(s string) (q Quantity, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return q, ErrQuantityUsage
	}
	if strings.HasSuffix(s, "%") {
		n, perr := strconv.Atoi(strings.TrimSuffix(s, "%"))
		if perr != nil {
			return q, ErrQuantityUsage
		}
		if n <= 0 || n >= 100 {
			return q, ErrQuantityPercent
		}
		q.IsPercent = true
		q.Percent = n
		return q, nil
	}
	b, berr := ParseSize(s)
	if berr != nil {
		return q, ErrQuantityUsage
	}
	if b < 0 {
		return q, errQuantityNonNegative
	}
	q.Bytes = b
	return q, nil
}

var sizeUnits = []struct {
	suffix string
	mult   int64
}{
	{"KiB", 1 << 10}, {"MiB", 1 << 20}, {"GiB", 1 << 30}, {"TiB", 1 << 40},
	{"KB", 1000}, {"MB", 1000 * 1000}, {"GB", 1000 * 1000 * 1000}, {"TB", 1000 * 1000 * 1000 * 1000},
	{"K", 1 << 10}, {"M", 1 << 20}, {"G", 1 << 30}, {"T", 1 << 40},
	{"B", 1},
}

// ParseSize parses a byte quantity like "1GB", "512KiB", or a bare integer
// number of bytes.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	for _, u := range sizeUnits {
		if strings.HasSuffix(s, u.suffix) {
			numPart := strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			f, err := strconv.ParseFloat(numPart, 64)
			if err != nil {
				return 0, err
			}
			return int64(f * float64(u.mult)), nil
		}
	}
	return strconv.ParseInt(s, 10, 64)
}

// ToBytes resolves the quantity against a capacity total, handling both
// percentage and absolute forms.
func (q Quantity) ToBytes(total int64) int64 {
	if q.IsPercent {
		return total * int64(q.Percent) / 100
	}
	return q.Bytes
}
