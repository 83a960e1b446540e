package request

import (
	jsonlib "encoding/json"
	"fmt"
	"net/http"
	"reflect"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"
)

// Param is a key/value pair usable as a header, query, form or cookie entry.
// The value is converted to a string when the Param is merged into a request.
type Param struct {
	Key   string
	Value any
}

// NewParam creates a Param.
func NewParam(key string, value any) Param {
	return Param{Key: key, Value: value}
}

// ValueString converts the value to its string form.
//
// A string is used as it is, scalars and other simple types are converted by the spf13/cast,
// everything else is encoded to JSON.
func (p Param) ValueString() (string, error) {
	return castToString(p.Value)
}

func (p Param) validate() error {
	if p.Key == "" {
		return fmt.Errorf(`%w: param key is missing`, ErrInvalidArgument)
	}
	if isNil(p.Value) {
		return fmt.Errorf(`%w: value of the param "%s" is missing`, ErrInvalidArgument, p.Key)
	}
	return nil
}

func castToString(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case *orderedmap.OrderedMap:
		// Standard json encoding library is used.
		// JsonIter lib returns non-compact JSON,
		// if custom OrderedMap.MarshalJSON method is used.
		out, err := jsonlib.Marshal(v)
		if err != nil {
			return "", fmt.Errorf(`cannot cast %T to string: %w`, v, err)
		}
		return string(out), nil
	}

	// Scalars
	if out, err := cast.ToStringE(v); err == nil {
		return out, nil
	}

	// Other types
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf(`cannot cast %T to string: %w`, v, err)
	}
	return string(out), nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// mergeParams validates and stringifies params and returns a modified copy of the map, the in map is not modified.
// Keys are normalized by the keyFn, if any. The last value of a duplicate key wins, the first position is kept.
func mergeParams(in *orderedmap.OrderedMap, params []Param, keyFn func(string) string) (*orderedmap.OrderedMap, error) {
	out := cloneMap(in)
	for _, p := range params {
		if err := p.validate(); err != nil {
			return nil, err
		}
		value, err := p.ValueString()
		if err != nil {
			return nil, fmt.Errorf(`%w: param "%s": %w`, ErrInvalidArgument, p.Key, err)
		}
		key := p.Key
		if keyFn != nil {
			key = keyFn(key)
		}
		out.Set(key, value)
	}
	return out, nil
}

func cloneMap(in *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	out := orderedmap.New()
	if in == nil {
		return out
	}
	for _, k := range in.Keys() {
		v, _ := in.Get(k)
		out.Set(k, v)
	}
	return out
}

// forEach iterates string values of the map in the insertion order.
func forEach(m *orderedmap.OrderedMap, fn func(key, value string)) {
	if m == nil {
		return
	}
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		fn(k, v.(string))
	}
}

func canonicalHeaderKey(key string) string {
	return http.CanonicalHeaderKey(key)
}
