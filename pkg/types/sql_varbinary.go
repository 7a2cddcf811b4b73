package types

import (
	"bytes"

	json "github.com/goccy/go-json"

	stringpool "github.com/ajitpratap0/coltype/pkg/strings"
)

const (
	varbinaryBytesPerLine  = 32
	varbinaryBytesPerGroup = 8
)

// SQLVarbinary is the display value of varbinary and digest positions
type SQLVarbinary struct {
	bytes []byte
}

// NewSQLVarbinary wraps b. The SQLVarbinary takes ownership of b.
func NewSQLVarbinary(b []byte) SQLVarbinary {
	if b == nil {
		b = []byte{}
	}
	return SQLVarbinary{bytes: b}
}

// Bytes returns the wrapped bytes
func (v SQLVarbinary) Bytes() []byte { return v.bytes }

// Len returns the number of wrapped bytes
func (v SQLVarbinary) Len() int { return len(v.bytes) }

// Equal reports whether both values wrap the same bytes
func (v SQLVarbinary) Equal(other SQLVarbinary) bool {
	return bytes.Equal(v.bytes, other.bytes)
}

// String renders the bytes as lowercase hex pairs separated by spaces, with an
// extra gap every 8 bytes and a line break every 32 bytes
func (v SQLVarbinary) String() string {
	if len(v.bytes) == 0 {
		return ""
	}

	return stringpool.BuildString(len(v.bytes)*3+len(v.bytes)/4, func(b *stringpool.Builder) {
		for i, c := range v.bytes {
			switch {
			case i == 0:
			case i%varbinaryBytesPerLine == 0:
				_ = b.WriteByte('\n')
			case i%varbinaryBytesPerGroup == 0:
				b.WriteString("   ")
			default:
				_ = b.WriteByte(' ')
			}
			b.WriteHexByte(c)
		}
	})
}

// MarshalJSON encodes the bytes as a base64 string
func (v SQLVarbinary) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.bytes)
}

// UnmarshalJSON decodes a base64 string
func (v *SQLVarbinary) UnmarshalJSON(data []byte) error {
	var b []byte
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*v = NewSQLVarbinary(b)
	return nil
}
