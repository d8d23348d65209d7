package hypergraph

import (
	"maps"
	"reflect"
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/hgx/internal/ident"
)

// Meta is free-form metadata attached to a node or an edge.
// Keys are NFC-normalized on the way in. Values are deep-copied on the
// way in and out, so callers never share state with the store.
type Meta map[string]any

// Clone returns a deep copy of m. Slices, maps, arrays and pointers of
// any type are copied recursively; structs are copied by assignment.
func (m Meta) Clone() Meta {
	if m == nil {
		return nil
	}
	out := make(Meta, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case Meta:
		return t.Clone()
	case map[string]any:
		return map[string]any(Meta(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Pointer:
		return cloneReflect(rv).Interface()
	default:
		return v
	}
}

func cloneReflect(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneReflect(v.Index(i)))
		}
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneReflect(v.Index(i)))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneReflect(iter.Value()))
		}
		return out
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(cloneReflect(v.Elem()))
		return out
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(reflect.ValueOf(cloneValue(v.Elem().Interface())))
		return out
	default:
		return v
	}
}

// normalizeMeta deep-copies m and NFC-normalizes every map key.
// Keys that collide after normalization keep the value of the last key
// in byte order.
func normalizeMeta(m Meta) Meta {
	if m == nil {
		return nil
	}
	out := make(Meta, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out[norm.NFC.String(k)] = normalizeValue(m[k])
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case Meta:
		return normalizeMeta(t)
	case map[string]any:
		return map[string]any(normalizeMeta(Meta(t)))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return cloneValue(v)
	}
}

// Weight returns the weight of the edge with the given members.
// Unweighted hypergraphs report 1.0 for every edge.
func (h *Hypergraph[N]) Weight(members []N) (float64, error) {
	key, err := h.lookup("Weight", members)
	if err != nil {
		return 0, err
	}
	return h.weights[key], nil
}

// SetWeight changes the weight of an existing edge.
// Unweighted hypergraphs reject the call with INVALID_ARGUMENT.
func (h *Hypergraph[N]) SetWeight(members []N, w float64) (err error) {
	defer func() { h.observe("SetWeight", err) }()

	if !h.weighted {
		return newArgumentError("SetWeight", "hypergraph is unweighted")
	}
	key, err := h.lookup("SetWeight", members)
	if err != nil {
		return err
	}
	h.weights[key] = w
	return nil
}

// Weights returns a copy of the weight table keyed by edge key.
func (h *Hypergraph[N]) Weights() map[ident.Key]float64 {
	return maps.Clone(h.weights)
}

// NodeMeta returns a copy of the node's metadata. A node without
// metadata returns an empty, non-nil Meta.
func (h *Hypergraph[N]) NodeMeta(n N) (Meta, error) {
	if _, ok := h.nodes[n]; !ok {
		return nil, newNotFoundError("NodeMeta", "node", n)
	}
	if m := h.nodeMeta[n]; m != nil {
		return m.Clone(), nil
	}
	return Meta{}, nil
}

// SetNodeMeta replaces the node's metadata. A nil meta clears it.
func (h *Hypergraph[N]) SetNodeMeta(n N, meta Meta) error {
	if _, ok := h.nodes[n]; !ok {
		return newNotFoundError("SetNodeMeta", "node", n)
	}
	h.setNodeMeta(n, meta)
	return nil
}

// EdgeMeta returns a copy of the edge's metadata.
func (h *Hypergraph[N]) EdgeMeta(members []N) (Meta, error) {
	key, err := h.lookup("EdgeMeta", members)
	if err != nil {
		return nil, err
	}
	if m := h.edgeMeta[key]; m != nil {
		return m.Clone(), nil
	}
	return Meta{}, nil
}

// SetEdgeMeta replaces the edge's metadata. A nil meta clears it.
func (h *Hypergraph[N]) SetEdgeMeta(members []N, meta Meta) error {
	key, err := h.lookup("SetEdgeMeta", members)
	if err != nil {
		return err
	}
	h.setEdgeMeta(key, meta)
	return nil
}

// MetaAttr returns a single attribute of a node's metadata.
func (h *Hypergraph[N]) MetaAttr(n N, attr string) (any, error) {
	if _, ok := h.nodes[n]; !ok {
		return nil, newNotFoundError("MetaAttr", "node", n)
	}
	v, ok := h.nodeMeta[n][norm.NFC.String(attr)]
	if !ok {
		return nil, newNotFoundError("MetaAttr", "attribute", attr)
	}
	return cloneValue(v), nil
}

// EdgeAttr returns a single attribute of an edge's metadata.
func (h *Hypergraph[N]) EdgeAttr(members []N, attr string) (any, error) {
	key, err := h.lookup("EdgeAttr", members)
	if err != nil {
		return nil, err
	}
	v, ok := h.edgeMeta[key][norm.NFC.String(attr)]
	if !ok {
		return nil, newNotFoundError("EdgeAttr", "attribute", attr)
	}
	return cloneValue(v), nil
}

func (h *Hypergraph[N]) setNodeMeta(n N, meta Meta) {
	if len(meta) == 0 {
		delete(h.nodeMeta, n)
		return
	}
	h.nodeMeta[n] = normalizeMeta(meta)
}

func (h *Hypergraph[N]) mergeNodeMeta(n N, meta Meta) {
	if len(meta) == 0 {
		return
	}
	cur := h.nodeMeta[n]
	if cur == nil {
		cur = make(Meta, len(meta))
		h.nodeMeta[n] = cur
	}
	for k, v := range normalizeMeta(meta) {
		cur[k] = v
	}
}

func (h *Hypergraph[N]) setEdgeMeta(key ident.Key, meta Meta) {
	if len(meta) == 0 {
		delete(h.edgeMeta, key)
		return
	}
	h.edgeMeta[key] = normalizeMeta(meta)
}
