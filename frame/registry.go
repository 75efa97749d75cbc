package frame

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/ostkgo/physics/ostkerr"
	"github.com/ostkgo/physics/timekernel"
)

// Handle is an integer reference into a Registry's frame slab, replacing
// the shared-pointer frame graph a naive Go port of the original C++ would
// reach for. Per spec.md §9, this is a sanctioned re-architecture: handles
// are cheap to copy, compare, and hash, and sidestep reference-cycle
// concerns a parent/child pointer graph would raise.
type Handle int

// NoParent marks a frame with no parent (a graph root).
const NoParent Handle = -1

type frameRecord struct {
	name      string
	parent    Handle
	provider  TransformProvider
	direction Direction
}

// Direction records whether a frame's TransformProvider maps from the frame
// to its parent, or from the parent to the frame. Both conventions appear
// in the pack (the teacher's coord/frames.go matrices map child->parent;
// EOP-driven providers naturally compute parent->child), so Registry
// normalizes at lookup time instead of forcing one convention everywhere.
type Direction int

const (
	// ChildToParent: provider.TransformAt maps the child frame to its parent.
	ChildToParent Direction = iota
	// ParentToChild: provider.TransformAt maps the parent frame to the child.
	ParentToChild
)

// Registry is a process-wide slab of registered frames plus a per-query
// transform cache. Grounded on other_examples/cheukt-rdk's SimpleModel
// (sync.Map pose cache, sync.RWMutex-guarded registration); the cache-miss
// coalescing via singleflight is an ecosystem-standard pattern for this
// concern applied on top of that shape.
type Registry struct {
	mu     sync.RWMutex
	frames []frameRecord
	byName map[string]Handle

	cache sync.Map // map[cacheKey]Transform
	group singleflight.Group
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Handle{}}
}

// RegisterRoot registers a frame with no parent (e.g. GCRF).
func (r *Registry) RegisterRoot(name string) (Handle, error) {
	return r.register(name, NoParent, NewStaticProvider(IdentityTransform()), ChildToParent)
}

// Register adds a frame whose TransformProvider maps to/from parent
// (per direction).
func (r *Registry) Register(name string, parent Handle, provider TransformProvider, direction Direction) (Handle, error) {
	return r.register(name, parent, provider, direction)
}

func (r *Registry) register(name string, parent Handle, provider TransformProvider, direction Direction) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; exists {
		return 0, errors.Wrapf(ostkerr.InvalidState, "frame: %q already registered", name)
	}
	if parent != NoParent && (int(parent) < 0 || int(parent) >= len(r.frames)) {
		return 0, errors.Wrapf(ostkerr.InvalidInput, "frame: parent handle %d out of range", parent)
	}
	h := Handle(len(r.frames))
	r.frames = append(r.frames, frameRecord{name: name, parent: parent, provider: provider, direction: direction})
	r.byName[name] = h
	return h, nil
}

// Lookup returns the Handle registered under name.
func (r *Registry) Lookup(name string) (Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byName[name]
	if !ok {
		return 0, errors.Wrapf(ostkerr.InvalidInput, "frame: %q not registered", name)
	}
	return h, nil
}

// Name returns the registered name of h.
func (r *Registry) Name(h Handle) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(h) < 0 || int(h) >= len(r.frames) {
		return fmt.Sprintf("Handle(%d)", h)
	}
	return r.frames[h].name
}

func (r *Registry) ancestorChain(h Handle) ([]Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var chain []Handle
	cursor := h
	seen := map[Handle]bool{}
	for {
		if int(cursor) < 0 || int(cursor) >= len(r.frames) {
			return nil, errors.Wrapf(ostkerr.InvalidInput, "frame: handle %d out of range", cursor)
		}
		if seen[cursor] {
			return nil, errors.Wrap(ostkerr.InvalidState, "frame: cycle detected in frame graph")
		}
		seen[cursor] = true
		chain = append(chain, cursor)
		if r.frames[cursor].parent == NoParent {
			return chain, nil
		}
		cursor = r.frames[cursor].parent
	}
}

// stepToParent returns the transform mapping node -> its registered parent
// at instant, normalizing whichever Direction the provider was registered
// with.
func (r *Registry) stepToParent(node Handle, instant timekernel.Instant) (Transform, error) {
	r.mu.RLock()
	rec := r.frames[node]
	r.mu.RUnlock()
	t, err := rec.provider.TransformAt(instant)
	if err != nil {
		return Transform{}, err
	}
	if rec.direction == ParentToChild {
		return t.Inverse(), nil
	}
	return t, nil
}

type cacheKey struct {
	from, to Handle
	ns       int64
	scale    timekernel.Scale
}

// GetTransform returns the transform mapping `from` to `to` at instant, by
// composing along the path through their lowest common ancestor. Identical
// concurrent queries are coalesced via singleflight; completed queries are
// memoized in an unbounded cache (per spec.md §4.A's "per-query cache").
func (r *Registry) GetTransform(from, to Handle, instant timekernel.Instant) (Transform, error) {
	if !instant.IsDefined() {
		return Transform{}, errors.Wrap(ostkerr.Undefined, "frame: instant undefined")
	}
	if from == to {
		return IdentityTransform(), nil
	}

	// Instant has no exported absolute-ns accessor outside its own package;
	// use a civil DateTime reading as a cheap, monotonic cache key surrogate
	// instead of reaching into internal fields.
	key := cacheKey{from: from, to: to, scale: instant.Scale()}
	if dt, derr := instant.DateTime(instant.Scale(), nil); derr == nil {
		key.ns = dt.Date.DaysSinceUnixEpoch()*86400_000_000_000 + dt.Time.NanosecondOfDay()
	}

	if v, ok := r.cache.Load(key); ok {
		return v.(Transform), nil
	}

	v, err, _ := r.group.Do(fmt.Sprintf("%v", key), func() (interface{}, error) {
		t, err := r.computeTransform(from, to, instant)
		if err != nil {
			return Transform{}, err
		}
		r.cache.Store(key, t)
		return t, nil
	})
	if err != nil {
		return Transform{}, err
	}
	return v.(Transform), nil
}

func (r *Registry) computeTransform(from, to Handle, instant timekernel.Instant) (Transform, error) {
	fromChain, err := r.ancestorChain(from)
	if err != nil {
		return Transform{}, err
	}
	toChain, err := r.ancestorChain(to)
	if err != nil {
		return Transform{}, err
	}
	toIndex := map[Handle]int{}
	for i, h := range toChain {
		toIndex[h] = i
	}
	lcaIdxInFrom := -1
	lcaIdxInTo := -1
	for i, h := range fromChain {
		if j, ok := toIndex[h]; ok {
			lcaIdxInFrom = i
			lcaIdxInTo = j
			break
		}
	}
	if lcaIdxInFrom < 0 {
		return Transform{}, errors.Wrap(ostkerr.InvalidState, "frame: no common ancestor between frames")
	}

	fromToLCA := IdentityTransform()
	for i := 0; i < lcaIdxInFrom; i++ {
		step, err := r.stepToParent(fromChain[i], instant)
		if err != nil {
			return Transform{}, err
		}
		fromToLCA = fromToLCA.Compose(step)
	}

	lcaToTo := IdentityTransform()
	for i := 0; i < lcaIdxInTo; i++ {
		step, err := r.stepToParent(toChain[i], instant)
		if err != nil {
			return Transform{}, err
		}
		lcaToTo = lcaToTo.Compose(step)
	}
	lcaToTo = lcaToTo.Inverse()

	return fromToLCA.Compose(lcaToTo), nil
}
