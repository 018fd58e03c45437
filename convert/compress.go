package convert

// Numeric constrains edge-weight element types to the supported kinds.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Compressed is the offset/index form of an edge set: Offsets has length
// V+1, is non-decreasing, starts at 0 and ends at len(Indices).
type Compressed struct {
	Offsets []int32
	Indices []int32
}

// NumVertices returns V, the number of vertices implied by the offsets.
func (c Compressed) NumVertices() int32 {
	return int32(len(c.Offsets)) - 1
}

// NumEdges returns E, the number of entries in the index column.
func (c Compressed) NumEdges() int32 {
	return int32(len(c.Indices))
}

// Degree returns offsets[v+1]-offsets[v], the out-degree of vertex v in the
// forward form (in-degree in the transposed form).
func (c Compressed) Degree(v int32) int32 {
	return c.Offsets[v+1] - c.Offsets[v]
}

// ToCompressed groups the unweighted edge list (src, dest) by source vertex.
// V is 1 + the largest vertex id seen in either column; an empty edge list
// yields Offsets == [0].
//
// Stability: edges sharing a source keep their original relative order.
//
// Complexity: O(V + E) time, O(V + E) space.
func ToCompressed(src, dest []int32) (Compressed, error) {
	if len(src) != len(dest) {
		return Compressed{}, ErrLengthMismatch
	}
	comp, _ := compress[int32](src, dest, nil)

	return comp, nil
}

// ToCompressedWeighted is ToCompressed for a weighted edge list: weights are
// permuted exactly like the index column, so weights[i] stays attached to
// the edge at position i of the compressed form.
func ToCompressedWeighted[W Numeric](src, dest []int32, weights []W) (Compressed, []W, error) {
	if len(src) != len(dest) || len(weights) != len(src) {
		return Compressed{}, nil, ErrLengthMismatch
	}
	comp, perm := compress(src, dest, weights)

	return comp, perm, nil
}

// compress is the single counting-sort implementation behind both variants.
// A nil weight slice skips the weight permutation.
func compress[W Numeric](src, dest []int32, weights []W) (Compressed, []W) {
	// Stage 1: number of vertices implied by the edge set.
	numV := int32(0)
	if len(src) > 0 {
		numV = MaxInt32(src)
		if d := MaxInt32(dest); d > numV {
			numV = d
		}
		numV++
	}

	// Stage 2: bucket counts, shifted by one so the prefix sum lands in place.
	offsets := make([]int32, numV+1)
	for _, s := range src {
		offsets[s+1]++
	}
	for v := int32(1); v <= numV; v++ {
		offsets[v] += offsets[v-1]
	}

	// Stage 3: stable placement using a moving cursor per bucket.
	cursor := make([]int32, numV)
	copy(cursor, offsets[:numV])
	indices := make([]int32, len(src))
	var perm []W
	if weights != nil {
		perm = make([]W, len(weights))
	}
	for i, s := range src {
		at := cursor[s]
		indices[at] = dest[i]
		if weights != nil {
			perm[at] = weights[i]
		}
		cursor[s] = at + 1
	}

	return Compressed{Offsets: offsets, Indices: indices}, perm
}

// ExpandOffsets inverts the compression: for each offset range
// [offsets[v], offsets[v+1]) the output holds v. The result is the per-edge
// source column of the edge list matching the compressed form.
//
// Complexity: O(V + E).
func ExpandOffsets(offsets []int32) []int32 {
	if len(offsets) == 0 {
		return nil
	}
	numV := len(offsets) - 1
	src := make([]int32, offsets[numV])
	for v := 0; v < numV; v++ {
		for i := offsets[v]; i < offsets[v+1]; i++ {
			src[i] = int32(v)
		}
	}

	return src
}
