package snapshot

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotDetached is returned by VerifyDetached when a Snapshot still references memory of its owner.
var ErrNotDetached = errors.New("snapshot is not detached from its owner")

type memRange struct {
	start uintptr
	end   uintptr
}

func (r memRange) overlaps(other memRange) bool {
	return r.start < other.end && other.start < r.end
}

type visitKey struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// referenceVisitor is called for each non-nil reference found while walking a value graph.
type referenceVisitor func(path string, kind reflect.Kind, r memRange) error

// VerifyDetached walks the value graph of s and fails with ErrNotDetached if any pointer, slice backing
// array, map or channel reachable from s lies in memory reachable from owner, or if s holds a func,
// channel or unsafe pointer at all. Owner should be passed as the pointer the component lives behind.
func VerifyDetached(s Snapshot, owner any) error {
	ownerRanges := make([]memRange, 0)

	collect := func(_ string, kind reflect.Kind, r memRange) error {
		if kind != reflect.Func {
			ownerRanges = append(ownerRanges, r)
		}

		return nil
	}

	_ = walkReferences(reflect.ValueOf(owner), "owner", map[visitKey]struct{}{}, collect)

	check := func(path string, kind reflect.Kind, r memRange) error {
		switch kind {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			return errors.Join(ErrNotDetached, fmt.Errorf("%s holds a %s", path, kind))
		default:
		}

		for _, ownerRange := range ownerRanges {
			if r.overlaps(ownerRange) {
				return errors.Join(ErrNotDetached, fmt.Errorf("%s references memory of the owner", path))
			}
		}

		return nil
	}

	return walkReferences(reflect.ValueOf(s), "snapshot", map[visitKey]struct{}{}, check)
}

func walkReferences(v reflect.Value, path string, visited map[visitKey]struct{}, visit referenceVisitor) error {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}

		key := visitKey{ptr: v.Pointer(), typ: v.Type()}
		if _, seen := visited[key]; seen {
			return nil
		}
		visited[key] = struct{}{}

		if size := v.Type().Elem().Size(); size > 0 {
			if err := visit(path, reflect.Pointer, memRange{start: v.Pointer(), end: v.Pointer() + size}); err != nil {
				return err
			}
		}

		return walkReferences(v.Elem(), path, visited, visit)

	case reflect.Interface:
		if v.IsNil() {
			return nil
		}

		return walkReferences(v.Elem(), path, visited, visit)

	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if err := walkReferences(v.Field(i), path+"."+v.Type().Field(i).Name, visited, visit); err != nil {
				return err
			}
		}

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := walkReferences(v.Index(i), fmt.Sprintf("%s[%d]", path, i), visited, visit); err != nil {
				return err
			}
		}

	case reflect.Slice:
		if v.IsNil() {
			return nil
		}

		key := visitKey{ptr: v.Pointer(), typ: v.Type(), len: v.Len()}
		if _, seen := visited[key]; seen {
			return nil
		}
		visited[key] = struct{}{}

		if elemSize := v.Type().Elem().Size(); elemSize > 0 && v.Cap() > 0 {
			r := memRange{start: v.Pointer(), end: v.Pointer() + uintptr(v.Cap())*elemSize}
			if err := visit(path, reflect.Slice, r); err != nil {
				return err
			}
		}

		for i := 0; i < v.Len(); i++ {
			if err := walkReferences(v.Index(i), fmt.Sprintf("%s[%d]", path, i), visited, visit); err != nil {
				return err
			}
		}

	case reflect.Map:
		if v.IsNil() {
			return nil
		}

		key := visitKey{ptr: v.Pointer(), typ: v.Type()}
		if _, seen := visited[key]; seen {
			return nil
		}
		visited[key] = struct{}{}

		if err := visit(path, reflect.Map, memRange{start: v.Pointer(), end: v.Pointer() + 1}); err != nil {
			return err
		}

		iter := v.MapRange()
		for iter.Next() {
			entryPath := fmt.Sprintf("%s[%v]", path, iter.Key())
			if err := walkReferences(iter.Key(), entryPath, visited, visit); err != nil {
				return err
			}

			if err := walkReferences(iter.Value(), entryPath, visited, visit); err != nil {
				return err
			}
		}

	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if v.IsNil() {
			return nil
		}

		return visit(path, v.Kind(), memRange{start: v.Pointer(), end: v.Pointer() + 1})

	default:
	}

	return nil
}
