package graph

import (
	"errors"
	"fmt"

	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/katalvlaran/trigraph/column"
	"github.com/katalvlaran/trigraph/convert"
	"github.com/katalvlaran/trigraph/stream"
)

// Handle aggregates the representation store and the derived scalar
// properties of one logical graph, and exposes the public operations.
//
// Handles are created empty; see the package documentation for the
// view/add/delete lifecycle and the single-writer discipline.
type Handle struct {
	id       string
	str      *stream.Stream
	alloc    *stream.Allocator
	ownsStr  bool
	logger   *log.Logger
	validate EdgeValidator

	edges      *EdgeList
	adj        *CompressedList
	transposed *CompressedList

	numVertices int32
	negWeights  Flag
}

// New creates an empty Handle.
//
// Complexity: O(1); spawns the handle's stream worker unless WithStream
// provided one.
func New(opts ...Option) *Handle {
	h := &Handle{
		id:         uuid.NewString(),
		validate:   DefaultEdgeValidator,
		negWeights: FlagUnknown,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger != nil {
		h.logger = h.logger.With("handle", h.id)
	}
	if h.alloc == nil {
		h.alloc = stream.NewAllocator(nil)
	}
	if h.str == nil {
		var sopts []stream.Option
		if h.logger != nil {
			sopts = append(sopts, stream.WithLogger(h.logger))
		}
		h.str = stream.New(sopts...)
		h.ownsStr = true
	}

	return h
}

// ID returns the handle's unique identifier, as used in diagnostics.
func (h *Handle) ID() string { return h.id }

// Allocator returns a memory.Allocator bound to the handle's stream, for
// callers materializing input columns with stream-ordered allocation.
func (h *Handle) Allocator() memory.Allocator { return h.alloc.Bind(h.str) }

// Empty reports whether no representation is installed.
func (h *Handle) Empty() bool {
	return h.edges == nil && h.adj == nil && h.transposed == nil
}

// EdgeList returns the installed COO representation, or nil. The buffers
// are read-only views valid until DeleteEdgeList or Close.
func (h *Handle) EdgeList() *EdgeList { return h.edges }

// AdjacencyList returns the installed CSR representation, or nil.
func (h *Handle) AdjacencyList() *CompressedList { return h.adj }

// TransposedAdjacencyList returns the installed CSC representation, or nil.
func (h *Handle) TransposedAdjacencyList() *CompressedList { return h.transposed }

// HasNegativeWeights reports the negative-edge-weight property. It is
// FlagUnknown until a representation with (or without) weights is installed,
// then pinned: FlagFalse for unweighted graphs by definition.
func (h *Handle) HasNegativeWeights() Flag { return h.negWeights }

// ViewAsEdgeList installs (src, dst[, weights]) as the handle's sole
// representation, taking shallow ownership views of the three columns.
//
// Preconditions: the handle is empty (ErrInvalidState otherwise); src and
// dst are non-empty int32 columns of equal length with no nulls and weights,
// if given, matches their length (ErrSchemaMismatch / ErrEmptyInput); the
// indexing check over the pairs passes (ErrInvalidEdges); the weight dtype
// is a supported kind (ErrUnsupportedType).
//
// When weights are present they are scanned for a negative value on the
// stream, setting the negative-weight flag; otherwise the flag is false.
func (h *Handle) ViewAsEdgeList(src, dst, weights *column.Buffer) error {
	if !h.Empty() {
		return fmt.Errorf("view as edge list: %w", ErrInvalidState)
	}
	if src == nil || dst == nil || src.Len() == 0 || dst.Len() == 0 {
		return fmt.Errorf("view as edge list: %w", ErrEmptyInput)
	}
	if err := checkIndexPair(src, dst); err != nil {
		return fmt.Errorf("view as edge list: %w", err)
	}
	if src.Len() != dst.Len() {
		return fmt.Errorf("view as edge list: src length %d != dst length %d: %w",
			src.Len(), dst.Len(), ErrSchemaMismatch)
	}
	if weights != nil && weights.Len() != src.Len() {
		return fmt.Errorf("view as edge list: weights length %d != %d: %w",
			weights.Len(), src.Len(), ErrSchemaMismatch)
	}

	srcVals, err := src.Int32Values()
	if err != nil {
		return fmt.Errorf("view as edge list: %w", ErrSchemaMismatch)
	}
	dstVals, err := dst.Int32Values()
	if err != nil {
		return fmt.Errorf("view as edge list: %w", ErrSchemaMismatch)
	}
	if err = h.validate(srcVals, dstVals); err != nil {
		return fmt.Errorf("view as edge list: %v: %w", err, ErrInvalidEdges)
	}

	neg, err := h.scanWeights(weights)
	if err != nil {
		return fmt.Errorf("view as edge list: %w", err)
	}

	h.edges = &EdgeList{Src: src.View(), Dst: dst.View(), Weights: viewOrNil(weights)}
	h.negWeights = neg
	h.debug("installed edge list", "edges", src.Len(), "weighted", weights != nil)

	return nil
}

// ViewAsAdjacencyList installs (offsets, indices[, weights]) as the handle's
// sole representation and sets the vertex count to len(offsets)-1.
//
// Preconditions mirror ViewAsEdgeList: empty handle, non-empty int32 offset
// column, int32 index column, no nulls, weight length equal to the index
// length. The offsets/indices structural invariants (monotone, bounded) are
// the caller's contract and are not re-verified here.
func (h *Handle) ViewAsAdjacencyList(offsets, indices, weights *column.Buffer) error {
	if !h.Empty() {
		return fmt.Errorf("view as adjacency list: %w", ErrInvalidState)
	}
	if offsets == nil || indices == nil || offsets.Len() == 0 {
		return fmt.Errorf("view as adjacency list: %w", ErrEmptyInput)
	}
	if err := checkIndexPair(offsets, indices); err != nil {
		return fmt.Errorf("view as adjacency list: %w", err)
	}
	if weights != nil && weights.Len() != indices.Len() {
		return fmt.Errorf("view as adjacency list: weights length %d != %d: %w",
			weights.Len(), indices.Len(), ErrSchemaMismatch)
	}

	neg, err := h.scanWeights(weights)
	if err != nil {
		return fmt.Errorf("view as adjacency list: %w", err)
	}

	h.adj = &CompressedList{Offsets: offsets.View(), Indices: indices.View(), Weights: viewOrNil(weights)}
	h.numVertices = int32(offsets.Len()) - 1
	h.negWeights = neg
	h.debug("installed adjacency list", "vertices", h.numVertices, "edges", indices.Len())

	return nil
}

// AddAdjacencyList derives and caches the forward CSR layout from the edge
// list. A no-op success when the layout already exists; ErrInvalidState when
// no edge list is present. The vertex count is (re)computed from the new
// offsets.
func (h *Handle) AddAdjacencyList() error {
	if h.adj != nil {
		return nil
	}
	if h.edges == nil {
		return fmt.Errorf("add adjacency list: %w", ErrInvalidState)
	}

	adj, err := h.compress(h.edges, false)
	if err != nil {
		return fmt.Errorf("add adjacency list: %w", err)
	}
	h.adj = adj
	h.numVertices = adj.NumVertices()
	h.debug("derived adjacency list", "vertices", h.numVertices, "edges", adj.NumEdges())

	return nil
}

// AddTransposedAdjacencyList derives and caches the CSC layout: offsets
// index by destination vertex, yielding the compressed transpose. The edge
// list is the preferred source; if only an adjacency list exists, an edge
// list is derived from it first.
func (h *Handle) AddTransposedAdjacencyList() error {
	if h.transposed != nil {
		return nil
	}
	if h.edges == nil {
		if h.adj == nil {
			return fmt.Errorf("add transposed adjacency list: %w", ErrInvalidState)
		}
		if err := h.AddEdgeList(); err != nil {
			return err
		}
	}

	transposed, err := h.compress(h.edges, true)
	if err != nil {
		return fmt.Errorf("add transposed adjacency list: %w", err)
	}
	h.transposed = transposed
	if h.numVertices == 0 {
		h.numVertices = transposed.NumVertices()
	}
	h.debug("derived transposed adjacency list", "vertices", transposed.NumVertices())

	return nil
}

// AddEdgeList derives and caches the COO layout from the adjacency list:
// offsets expand into the per-edge source column (a new buffer), while the
// destination and weight columns are shallow views of the adjacency list's.
// A no-op success when already present; ErrInvalidState without a source.
func (h *Handle) AddEdgeList() error {
	if h.edges != nil {
		return nil
	}
	if h.adj == nil {
		return fmt.Errorf("add edge list: %w", ErrInvalidState)
	}

	offs, err := h.adj.Offsets.Int32Values()
	if err != nil {
		return fmt.Errorf("add edge list: %w", ErrSchemaMismatch)
	}

	mem := h.alloc.Arrow()
	var srcBuf *column.Buffer
	if err = h.run("expand offsets", func() error {
		srcBuf = column.NewInt32(mem, convert.ExpandOffsets(offs))

		return nil
	}); err != nil {
		return fmt.Errorf("add edge list: %w", errors.Join(ErrConversionFailed, err))
	}

	h.edges = &EdgeList{
		Src:     srcBuf,
		Dst:     h.adj.Indices.View(),
		Weights: viewOrNil(h.adj.Weights),
	}
	h.debug("derived edge list", "edges", h.edges.NumEdges())

	return nil
}

// DeleteEdgeList releases the COO buffers and clears the slot.
// Idempotent; other representations are unaffected.
func (h *Handle) DeleteEdgeList() {
	if h.edges == nil {
		return
	}
	h.edges.release()
	h.edges = nil
	h.debug("released edge list")
}

// DeleteAdjacencyList releases the CSR buffers and clears the slot.
// Idempotent.
func (h *Handle) DeleteAdjacencyList() {
	if h.adj == nil {
		return
	}
	h.adj.release()
	h.adj = nil
	h.debug("released adjacency list")
}

// DeleteTransposedAdjacencyList releases the CSC buffers and clears the
// slot. Idempotent.
func (h *Handle) DeleteTransposedAdjacencyList() {
	if h.transposed == nil {
		return
	}
	h.transposed.release()
	h.transposed = nil
	h.debug("released transposed adjacency list")
}

// NumberOfVertices returns the cached vertex count, computing it on first
// use from the edge list via a max-reduction over both index columns.
// Fails with ErrInvalidState when nothing can supply it and with
// ErrUnsupportedType when the index dtype is not int32.
func (h *Handle) NumberOfVertices() (int32, error) {
	if h.numVertices > 0 {
		return h.numVertices, nil
	}
	if h.edges == nil {
		return 0, fmt.Errorf("number of vertices: %w", ErrInvalidState)
	}
	if !h.edges.Src.IsInt32() || !h.edges.Dst.IsInt32() {
		return 0, fmt.Errorf("number of vertices: index dtype: %w", ErrUnsupportedType)
	}

	srcVals, _ := h.edges.Src.Int32Values()
	dstVals, _ := h.edges.Dst.Int32Values()

	var count int32
	if err := h.run("vertex count reduction", func() error {
		high := convert.MaxInt32(srcVals)
		if d := convert.MaxInt32(dstVals); d > high {
			high = d
		}
		count = high + 1

		return nil
	}); err != nil {
		return 0, fmt.Errorf("number of vertices: %w", err)
	}
	h.numVertices = count

	return count, nil
}

// NumberOfEdges returns E from whichever representation exists.
// ErrInvalidState when the handle is empty.
func (h *Handle) NumberOfEdges() (int32, error) {
	switch {
	case h.edges != nil:
		return h.edges.NumEdges(), nil
	case h.adj != nil:
		return h.adj.NumEdges(), nil
	case h.transposed != nil:
		return h.transposed.NumEdges(), nil
	default:
		return 0, fmt.Errorf("number of edges: %w", ErrInvalidState)
	}
}

// Close releases every populated representation and, when the handle owns
// its stream, shuts the stream down. The handle must not be used afterwards.
func (h *Handle) Close() error {
	h.DeleteEdgeList()
	h.DeleteAdjacencyList()
	h.DeleteTransposedAdjacencyList()
	if h.ownsStr {
		return h.str.Close()
	}

	return h.str.Sync()
}

// compress runs the format converter over the edge list on the handle's
// stream and materializes the resulting compressed columns. swap exchanges
// the roles of the source and destination columns, producing the transpose.
func (h *Handle) compress(edges *EdgeList, swap bool) (*CompressedList, error) {
	srcVals, err := edges.Src.Int32Values()
	if err != nil {
		return nil, ErrSchemaMismatch
	}
	dstVals, err := edges.Dst.Int32Values()
	if err != nil {
		return nil, ErrSchemaMismatch
	}
	if swap {
		srcVals, dstVals = dstVals, srcVals
	}
	if edges.Weights != nil && !convert.Supported(edges.Weights.TypeID()) {
		return nil, fmt.Errorf("weight dtype %s: %w", edges.Weights.DataType(), ErrUnsupportedType)
	}

	mem := h.alloc.Arrow()
	var out *CompressedList
	if err = h.run("edge list compression", func() error {
		var (
			comp  convert.Compressed
			permW *column.Buffer
			kerr  error
		)
		if edges.Weights != nil {
			comp, permW, kerr = convert.CompressWeighted(mem, srcVals, dstVals, edges.Weights)
		} else {
			comp, kerr = convert.ToCompressed(srcVals, dstVals)
		}
		if kerr != nil {
			return kerr
		}
		out = &CompressedList{
			Offsets: column.NewInt32(mem, comp.Offsets),
			Indices: column.NewInt32(mem, comp.Indices),
			Weights: permW,
		}

		return nil
	}); err != nil {
		return nil, errors.Join(ErrConversionFailed, err)
	}

	return out, nil
}

// scanWeights dispatches the negative-value scan for an optional weight
// column. No weights means no negative weights by the documented rule.
func (h *Handle) scanWeights(weights *column.Buffer) (Flag, error) {
	if weights == nil {
		return FlagFalse, nil
	}
	if !convert.Supported(weights.TypeID()) {
		return FlagUnknown, fmt.Errorf("weight dtype %s: %w", weights.DataType(), ErrUnsupportedType)
	}

	var found bool
	if err := h.run("negative weight scan", func() error {
		var scanErr error
		found, scanErr = convert.HasNegative(weights)

		return scanErr
	}); err != nil {
		return FlagUnknown, err
	}
	if found {
		return FlagTrue, nil
	}

	return FlagFalse, nil
}

// run submits one named task to the handle's stream and blocks on it.
func (h *Handle) run(name string, fn func() error) error {
	if err := h.str.Submit(name, fn); err != nil {
		return err
	}

	return h.str.Sync()
}

func (h *Handle) debug(msg string, keyvals ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, keyvals...)
	}
}

// checkIndexPair enforces the shared dtype/null contract for a pair of
// int32 structural columns.
func checkIndexPair(a, b *column.Buffer) error {
	if !column.SameType(a, b) || !a.IsInt32() {
		return fmt.Errorf("index columns must share dtype int32: %w", ErrSchemaMismatch)
	}
	if a.HasNulls() || b.HasNulls() {
		return fmt.Errorf("index columns must not contain nulls: %w", ErrSchemaMismatch)
	}

	return nil
}

func viewOrNil(b *column.Buffer) *column.Buffer {
	if b == nil {
		return nil
	}

	return b.View()
}
