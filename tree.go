package mapmatcher

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// nodeType defines all of the atoms in our universe, or the kinds of value
// we will encounter while walking an actual tree
type nodeType uint8

const (
	ntUnknown nodeType = iota
	ntObject
	ntArray
	ntScalar
	ntNull
)

func (nt nodeType) String() string {
	switch nt {
	case ntObject:
		return "Object"
	case ntArray:
		return "Array"
	case ntScalar:
		return "Scalar"
	case ntNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// typeOf classifies v
// typed nil maps and slices are empty containers, not nulls
func typeOf(v interface{}) nodeType {
	if _, ok := asObject(v); ok {
		return ntObject
	}
	if _, ok := asArray(v); ok {
		return ntArray
	}
	if isNil(v) {
		return ntNull
	}
	return ntScalar
}

// pair is a single key/value entry of an object
type pair struct {
	key   interface{}
	value interface{}
}

// object is a read-only, ordered view over a map-like value. iteration order
// is the value's own insertion order when it has one, sorted keys otherwise
type object struct {
	pairs []pair
	index map[interface{}]int
}

func newObject(size int) *object {
	return &object{
		pairs: make([]pair, 0, size),
		index: make(map[interface{}]int, size),
	}
}

func (o *object) add(key, value interface{}) {
	o.index[key] = len(o.pairs)
	o.pairs = append(o.pairs, pair{key: key, value: value})
}

// Len returns the number of entries, a nil object is empty
func (o *object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.pairs)
}

// Pairs lists entries in iteration order
func (o *object) Pairs() []pair {
	if o == nil {
		return nil
	}
	return o.pairs
}

// Get looks up the value stored under key
func (o *object) Get(key interface{}) (interface{}, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.pairs[i].value, true
}

// asObject converts map-like values into an object
func asObject(v interface{}) (*object, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case *orderedmap.OrderedMap[string, interface{}]:
		if x == nil {
			return nil, false
		}
		o := newObject(x.Len())
		for p := x.Oldest(); p != nil; p = p.Next() {
			o.add(p.Key, p.Value)
		}
		return o, true
	case *orderedmap.OrderedMap[interface{}, interface{}]:
		if x == nil {
			return nil, false
		}
		o := newObject(x.Len())
		for p := x.Oldest(); p != nil; p = p.Next() {
			o.add(p.Key, p.Value)
		}
		return o, true
	case map[string]interface{}:
		names := make([]string, 0, len(x))
		for name := range x {
			names = append(names, name)
		}
		// go maps don't carry an order, sort keys for consistent output
		sort.Strings(names)
		o := newObject(len(x))
		for _, name := range names {
			o.add(name, x[name])
		}
		return o, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })
	o := newObject(len(keys))
	for _, k := range keys {
		o.add(k.Interface(), rv.MapIndex(k).Interface())
	}
	return o, true
}

// asArray converts list-like values into a slice of elements. byte slices
// are treated as scalars
func asArray(v interface{}) ([]interface{}, bool) {
	switch x := v.(type) {
	case nil, []byte:
		return nil, false
	case []interface{}:
		return x, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]interface{}, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// lessKey orders map keys, numerically or lexically when both keys share a
// kind, by their text form otherwise
func lessKey(a, b reflect.Value) bool {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	if a.IsValid() && b.IsValid() && a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return a.Int() < b.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return a.Uint() < b.Uint()
		case reflect.Float32, reflect.Float64:
			return a.Float() < b.Float()
		case reflect.String:
			return a.String() < b.String()
		}
	}
	return fmt.Sprint(valueOf(a)) < fmt.Sprint(valueOf(b))
}

func valueOf(rv reflect.Value) interface{} {
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// isNil reports whether v is nil or a nil pointer, map, slice, channel,
// function or interface
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// keyString is the text form of a key as it's printed in reports
func keyString(key interface{}) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}

// keyLen is the printed width of a key, in runes
func keyLen(key interface{}) int {
	return utf8.RuneCountInString(keyString(key))
}

// indexLen is the printed width of the widest index of a list of length n
func indexLen(n int) int {
	return len(fmt.Sprint(n))
}

// path joins the addresses leading to a node into a slash-separated string
func path(addrs ...Addr) string {
	strs := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a == nil {
			continue
		}
		strs = append(strs, a.String())
	}
	return "/" + strings.Join(strs, "/")
}
