package tuple

import (
	"LeafDB/types"
	"bytes"
	"encoding/binary"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

/*
Record encoding, fields back to back in schema order:

	INT    -> 4 bytes, big-endian two's complement
	STRING -> 4 byte big-endian length + UTF-8 bytes

There is no field count or null bitmap; the schema is the only description.
*/

var ErrTruncated = errors.New("record truncated")

// Encode serializes values in schema order.
func Encode(schema types.Schema, values []any) ([]byte, error) {
	if len(values) != schema.NumFields() {
		return nil, errors.Errorf("field count (%d) != value count (%d)", schema.NumFields(), len(values))
	}

	buf := new(bytes.Buffer)
	for i, field := range schema.Fields {
		if err := writeValue(buf, values[i], field.Type); err != nil {
			return nil, errors.Wrapf(err, "field %s", field.Name)
		}
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, val any, ft types.FieldType) error {
	switch ft {
	case types.FieldTypeInt:
		i32, err := ToInt(val)
		if err != nil {
			return err
		}
		return binary.Write(buf, binary.BigEndian, i32)

	case types.FieldTypeString:
		s, err := ToString(val)
		if err != nil {
			return err
		}
		if len(s) > math.MaxInt32 {
			return errors.New("string too long")
		}
		if err := binary.Write(buf, binary.BigEndian, int32(len(s))); err != nil {
			return err
		}
		buf.WriteString(s)
		return nil
	}
	return errors.Errorf("unsupported type %s", ft)
}

// Decode parses a record produced by Encode. INT fields come back as int32,
// STRING fields as string. Trailing bytes are an error.
func Decode(schema types.Schema, data []byte) ([]any, error) {
	out := make([]any, schema.NumFields())
	offset := 0

	for i, field := range schema.Fields {
		val, read, err := readValue(data[offset:], field.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s at offset %d", field.Name, offset)
		}
		out[i] = val
		offset += read
	}

	if offset != len(data) {
		return nil, errors.Errorf("extra bytes at end of record: decoded %d of %d", offset, len(data))
	}
	return out, nil
}

func readValue(b []byte, ft types.FieldType) (any, int, error) {
	switch ft {
	case types.FieldTypeInt:
		if len(b) < 4 {
			return nil, 0, errors.Wrap(ErrTruncated, "not enough bytes for int")
		}
		return int32(binary.BigEndian.Uint32(b[:4])), 4, nil

	case types.FieldTypeString:
		if len(b) < 4 {
			return nil, 0, errors.Wrap(ErrTruncated, "not enough bytes for string length")
		}
		n := int32(binary.BigEndian.Uint32(b[:4]))
		if n < 0 || len(b)-4 < int(n) {
			return nil, 0, errors.Wrapf(ErrTruncated, "string length %d exceeds record", n)
		}
		return string(b[4 : 4+n]), 4 + int(n), nil
	}
	return nil, 0, errors.Errorf("unknown type %s", ft)
}

// ToInt coerces the integer kinds and decimal strings to int32.
func ToInt(val any) (int32, error) {
	switch v := val.(type) {
	case int32:
		return v, nil
	case int:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, errors.Errorf("int %d overflows int32", v)
		}
		return int32(v), nil
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, errors.Errorf("int %d overflows int32", v)
		}
		return int32(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid int %q", v)
		}
		return int32(n), nil
	}
	return 0, errors.Errorf("cannot use %T as INT", val)
}

func ToString(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", errors.Errorf("cannot use %T as STRING", val)
}

// ParseValues converts textual input (CLI, REPL) to typed values for schema.
func ParseValues(schema types.Schema, fields []string) ([]any, error) {
	if len(fields) != schema.NumFields() {
		return nil, errors.Errorf("expected %d values (%s), got %d", schema.NumFields(), schema, len(fields))
	}
	out := make([]any, len(fields))
	for i, f := range schema.Fields {
		switch f.Type {
		case types.FieldTypeInt:
			n, err := ToInt(fields[i])
			if err != nil {
				return nil, errors.Wrapf(err, "field %s", f.Name)
			}
			out[i] = n
		default:
			out[i] = fields[i]
		}
	}
	return out, nil
}
