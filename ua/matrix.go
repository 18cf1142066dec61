// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"reflect"
)

// Matrix is a multi-dimensional array of a built-in type, stored as a flat
// slice in row-major order, i.e. the last index varies fastest.
type Matrix struct {
	elements    any
	dimensions  []int32
	elementType VariantType
}

// NewMatrix returns a Matrix of the flat elements slice. The product of the
// dimensions must equal the number of elements.
func NewMatrix(elements any, dimensions []int32) (Matrix, error) {
	rv := reflect.ValueOf(elements)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return Matrix{}, encodingError("matrix elements must be a slice, not %T", elements)
	}
	t, ok := variantTypeOfElem[rv.Type().Elem()]
	if !ok {
		return Matrix{}, encodingError("matrix cannot hold %s", rv.Type().Elem())
	}
	n := int64(1)
	for _, d := range dimensions {
		if d < 0 {
			return Matrix{}, encodingError("matrix dimension %d is negative", d)
		}
		n *= int64(d)
	}
	if len(dimensions) == 0 || n != int64(rv.Len()) {
		return Matrix{}, encodingError("matrix dimensions %v do not match %d elements", dimensions, rv.Len())
	}
	dims := make([]int32, len(dimensions))
	copy(dims, dimensions)
	return Matrix{elements, dims, t}, nil
}

// NewMatrixFromNested flattens a rectangular nested slice, e.g. [][]int32.
func NewMatrixFromNested(nested any) (Matrix, error) {
	rv := reflect.ValueOf(nested)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return Matrix{}, encodingError("matrix must be a nested slice, not %T", nested)
	}
	var dims []int32
	elemType := rv.Type()
	for v := rv; elemType.Kind() == reflect.Slice; elemType = elemType.Elem() {
		if _, ok := variantTypeOfElem[elemType]; ok {
			break
		}
		dims = append(dims, int32(v.Len()))
		if v.Len() > 0 {
			v = v.Index(0)
		} else {
			v = reflect.Zero(elemType.Elem())
		}
	}
	flat := reflect.MakeSlice(reflect.SliceOf(elemType), 0, 0)
	var walk func(v reflect.Value, level int) error
	walk = func(v reflect.Value, level int) error {
		if level == len(dims) {
			flat = reflect.Append(flat, v)
			return nil
		}
		if v.Len() != int(dims[level]) {
			return encodingError("matrix is not rectangular at dimension %d", level)
		}
		for i := 0; i < v.Len(); i++ {
			if err := walk(v.Index(i), level+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(rv, 0); err != nil {
		return Matrix{}, err
	}
	return NewMatrix(flat.Interface(), dims)
}

// Elements returns the flat slice of elements.
func (m Matrix) Elements() any {
	return m.elements
}

// Dimensions returns the length of each dimension.
func (m Matrix) Dimensions() []int32 {
	return m.dimensions
}

// ElementType returns the built-in type of the elements.
func (m Matrix) ElementType() VariantType {
	return m.elementType
}

// Len returns the number of elements.
func (m Matrix) Len() int {
	if m.elements == nil {
		return 0
	}
	return reflect.ValueOf(m.elements).Len()
}

// At returns the element at the indices.
func (m Matrix) At(indices ...int) (any, bool) {
	if len(indices) != len(m.dimensions) {
		return nil, false
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= int(m.dimensions[i]) {
			return nil, false
		}
		offset = offset*int(m.dimensions[i]) + idx
	}
	return reflect.ValueOf(m.elements).Index(offset).Interface(), true
}

// Nested returns the elements as a nested slice, e.g. [][]int32.
func (m Matrix) Nested() any {
	flat := reflect.ValueOf(m.elements)
	var build func(level, offset int) reflect.Value
	build = func(level, offset int) reflect.Value {
		if level == len(m.dimensions)-1 {
			n := int(m.dimensions[level])
			return flat.Slice(offset, offset+n)
		}
		stride := 1
		for _, d := range m.dimensions[level+1:] {
			stride *= int(d)
		}
		n := int(m.dimensions[level])
		var typ reflect.Type = flat.Type()
		for range m.dimensions[level+1:] {
			typ = reflect.SliceOf(typ)
		}
		out := reflect.MakeSlice(typ, n, n)
		for i := 0; i < n; i++ {
			out.Index(i).Set(build(level+1, offset+i*stride))
		}
		return out
	}
	return build(0, 0).Interface()
}

// Equal reports whether both have the same element type, dimensions and elements.
func (m Matrix) Equal(other Matrix) bool {
	return m.elementType == other.elementType &&
		reflect.DeepEqual(m.dimensions, other.dimensions) &&
		reflect.DeepEqual(m.elements, other.elements)
}
