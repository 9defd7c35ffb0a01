package value

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"

	"boscoin.io/minidao/lib/errors"
)

type Type byte

const (
	Nil     Type = 0x00
	UInt    Type = 0x02
	String  Type = 0x03
	Boolean Type = 0x04
	Object  Type = 0x05
)

const (
	True  = 0x01
	False = 0x00
)

func (t Type) String() string {
	switch t {
	case Nil:
		return "nil"
	case UInt:
		return "uint"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Value is what a contract call returns. `Object` holds anything which can be
// encoded to json, like a proposal.
type Value struct {
	Type  Type
	value interface{}
}

var NilValue = &Value{Type: Nil}

// ToValue makes `Value` from a native go value; a `[]byte` is regarded as
// a serialized `Value`.
func ToValue(iv interface{}) (v *Value, err error) {
	if b, ok := iv.([]byte); ok {
		return deserialize(b)
	}

	v = &Value{value: iv}

	switch t := iv.(type) {
	case nil:
		v.Type = Nil
	case string:
		v.Type = String
	case bool:
		v.Type = Boolean
	case uint:
		v.Type = UInt
		v.value = uint64(t)
	case uint8:
		v.Type = UInt
		v.value = uint64(t)
	case uint16:
		v.Type = UInt
		v.value = uint64(t)
	case uint32:
		v.Type = UInt
		v.value = uint64(t)
	case uint64:
		v.Type = UInt
	case json.RawMessage:
		v.Type = Object
	default:
		var b []byte
		if b, err = json.Marshal(iv); err != nil {
			v.Type = Nil
			v.value = nil
			err = errors.ContractInvalidArguments.Clone().SetData("error", err.Error())
			return
		}
		v.Type = Object
		v.value = json.RawMessage(b)
	}

	return
}

func deserialize(b []byte) (*Value, error) {
	if len(b) < 1 {
		return nil, errors.InvalidMessage
	}

	encoded := b[1:]
	v := &Value{Type: Type(b[0])}

	switch v.Type {
	case Nil:
	case String:
		v.value = string(encoded)
	case UInt:
		if len(encoded) != 8 {
			return nil, errors.InvalidMessage
		}
		v.value = binary.LittleEndian.Uint64(encoded)
	case Boolean:
		if len(encoded) != 1 {
			return nil, errors.InvalidMessage
		}
		v.value = encoded[0] == True
	case Object:
		v.value = json.RawMessage(append([]byte{}, encoded...))
	default:
		return nil, errors.InvalidMessage
	}

	return v, nil
}

func (v *Value) Serialize() (encoded []byte, err error) {
	switch v.Type {
	case Nil:
		encoded = []byte{}
	case UInt:
		encoded = make([]byte, 8)
		binary.LittleEndian.PutUint64(encoded, v.value.(uint64))
	case String:
		encoded = []byte(v.value.(string))
	case Boolean:
		if v.value.(bool) {
			encoded = []byte{True}
		} else {
			encoded = []byte{False}
		}
	case Object:
		encoded = []byte(v.value.(json.RawMessage))
	}

	encoded = append([]byte{byte(v.Type)}, encoded...)

	return
}

func (v *Value) Interface() interface{} {
	return v.value
}

// Unmarshal decodes an `Object` value into `i`.
func (v *Value) Unmarshal(i interface{}) error {
	if v.Type != Object {
		return errors.InvalidMessage
	}

	return json.Unmarshal(v.value.(json.RawMessage), i)
}

func (v *Value) String() string {
	switch v.Type {
	case Nil:
		return "nil"
	case UInt:
		return strconv.FormatUint(v.value.(uint64), 10)
	case String:
		return v.value.(string)
	case Boolean:
		return strconv.FormatBool(v.value.(bool))
	case Object:
		return string(v.value.(json.RawMessage))
	default:
		return fmt.Sprintf("%v", v.value)
	}
}

func (v *Value) Equal(o *Value) bool {
	if v.Type != o.Type {
		return false
	}

	if v.Type == Object {
		return bytes.Equal(v.value.(json.RawMessage), o.value.(json.RawMessage))
	}

	return v.value == o.value
}

func (v *Value) EqualNative(i interface{}) bool {
	o, err := ToValue(i)
	if err != nil {
		return false
	}

	return v.Equal(o)
}

func (v *Value) MarshalJSON() ([]byte, error) {
	var raw interface{} = v.value
	return json.Marshal(map[string]interface{}{
		"type":  v.Type.String(),
		"value": raw,
	})
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var m struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	switch m.Type {
	case "nil":
		v.Type, v.value = Nil, nil
	case "uint":
		var n uint64
		if err := json.Unmarshal(m.Value, &n); err != nil {
			return err
		}
		v.Type, v.value = UInt, n
	case "string":
		var s string
		if err := json.Unmarshal(m.Value, &s); err != nil {
			return err
		}
		v.Type, v.value = String, s
	case "boolean":
		var t bool
		if err := json.Unmarshal(m.Value, &t); err != nil {
			return err
		}
		v.Type, v.value = Boolean, t
	case "object":
		v.Type, v.value = Object, append(json.RawMessage{}, m.Value...)
	default:
		return errors.InvalidMessage
	}

	return nil
}
