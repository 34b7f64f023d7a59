package ir

import (
	"fmt"
	"strings"
)

// Type is the variant over packetc value types. Types are immutable
// once constructed; passes share them freely.
type Type interface {
	isType()
	String() string
}

// BitsType is a fixed-width bit vector, bit<N>.
type BitsType struct {
	Width int
}

// BoolType is the boolean type.
type BoolType struct{}

// StructType is a named collection of fields.
type StructType struct {
	Name   string
	Fields []Field
}

// HeaderType is like a struct but additionally carries a validity bit,
// manipulated through the isValid/setValid/setInvalid methods.
type HeaderType struct {
	Name   string
	Fields []Field
}

// ExternType is an opaque, externally implemented object such as an
// action selector or hashing unit. Its methods are the only operations.
type ExternType struct {
	Name    string
	Methods []ExternMethod
}

// ExternMethod describes one callable method of an extern. A nil Result
// means the method produces no value.
type ExternMethod struct {
	Name   string
	Result Type
}

// Field is one named member of a struct or header type.
type Field struct {
	Name string
	Type Type
}

func (*BitsType) isType()   {}
func (*BoolType) isType()   {}
func (*StructType) isType() {}
func (*HeaderType) isType() {}
func (*ExternType) isType() {}

// Bool is the canonical boolean type instance.
var Bool = &BoolType{}

// Bits returns the bit<w> type.
func Bits(w int) *BitsType { return &BitsType{Width: w} }

func (t *BitsType) String() string   { return fmt.Sprintf("bit<%d>", t.Width) }
func (t *BoolType) String() string   { return "bool" }
func (t *StructType) String() string { return "struct " + t.Name }
func (t *HeaderType) String() string { return "header " + t.Name }
func (t *ExternType) String() string { return "extern " + t.Name }

// Field looks up a member by name.
func (t *StructType) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Field looks up a member by name.
func (t *HeaderType) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Method looks up an extern method by name.
func (t *ExternType) Method(name string) (ExternMethod, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return ExternMethod{}, false
}

// Same reports type compatibility: structural for bit vectors and
// booleans, nominal for struct, header and extern types.
func Same(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch at := a.(type) {
	case *BitsType:
		bt, ok := b.(*BitsType)
		return ok && at.Width == bt.Width
	case *BoolType:
		_, ok := b.(*BoolType)
		return ok
	case *StructType:
		bt, ok := b.(*StructType)
		return ok && at.Name == bt.Name
	case *HeaderType:
		bt, ok := b.(*HeaderType)
		return ok && at.Name == bt.Name
	case *ExternType:
		bt, ok := b.(*ExternType)
		return ok && at.Name == bt.Name
	default:
		return false
	}
}

// KindOf names a node's concrete kind for diagnostics.
func KindOf(n any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ir.")
}
