package xmljson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Indent is the indentation used by Encode.
const Indent = "  "

// Marshal encodes a decoded tree as compact JSON without HTML escaping.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes v to w as JSON indented by two spaces, followed by a newline.
func Encode(w io.Writer, v any) error {
	compact, err := Marshal(v)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", Indent); err != nil {
		return fmt.Errorf("indenting JSON: %w", err)
	}
	out.WriteByte('\n')
	_, err = w.Write(out.Bytes())
	return err
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case *Object:
		return writeObject(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return writeScalar(buf, val)
	}
}

// writeObject walks the pairs itself: OrderedMap.MarshalJSON encodes values
// with json.Marshal, which escapes the <, > and & of C++ signatures.
func writeObject(buf *bytes.Buffer, o *Object) error {
	if o == nil {
		buf.WriteString("null")
		return nil
	}
	buf.WriteByte('{')
	for pair := o.pairs.Oldest(); pair != nil; pair = pair.Next() {
		if pair != o.pairs.Oldest() {
			buf.WriteByte(',')
		}
		if err := writeScalar(buf, pair.Key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeValue(buf, pair.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeScalar encodes strings, numbers, booleans and nil.
func writeScalar(buf *bytes.Buffer, v any) error {
	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %T: %w", v, err)
	}
	buf.Write(bytes.TrimSuffix(scratch.Bytes(), []byte("\n")))
	return nil
}
