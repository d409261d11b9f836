package world

import (
	"encoding/json"
	"sort"

	"github.com/nebula4x/nebula4x/ids"
)

// Arena is a HashMap<Id, T> per entity kind, per the arena+id pattern:
// cross-references between entities are always by Id, never by pointer, so
// that the whole state is trivially serializable and the validator can be
// the sole integrity boundary. Adapted from the EntityCollection pattern
// used for Stars! fleets/planets/designs, generalized from a composite
// (type, owner, number) key down to the single 64-bit Id this spec uses.
type Arena[T any] struct {
	byId map[ids.Id]T
}

// NewArena returns an empty Arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{byId: make(map[ids.Id]T)}
}

// Get retrieves the entity for id.
func (a *Arena[T]) Get(id ids.Id) (T, bool) {
	v, ok := a.byId[id]
	return v, ok
}

// MustGet retrieves the entity for id, returning the zero value if absent.
// Callers that need to distinguish absence should use Get.
func (a *Arena[T]) MustGet(id ids.Id) T {
	return a.byId[id]
}

// Set inserts or replaces the entity for id.
func (a *Arena[T]) Set(id ids.Id, v T) {
	a.byId[id] = v
}

// Delete removes id from the arena, a no-op if absent.
func (a *Arena[T]) Delete(id ids.Id) {
	delete(a.byId, id)
}

// Has reports whether id is present.
func (a *Arena[T]) Has(id ids.Id) bool {
	_, ok := a.byId[id]
	return ok
}

// Len returns the number of entities.
func (a *Arena[T]) Len() int { return len(a.byId) }

// SortedIds returns every key in ascending Id order. Every per-tick subsystem
// that folds entities into a floating-point accumulator (combat damage,
// production, research) must iterate in this order rather than raw Go map
// order, which is randomized per process.
func (a *Arena[T]) SortedIds() []ids.Id {
	out := make([]ids.Id, 0, len(a.byId))
	for id := range a.byId {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Each calls fn for every entity in ascending Id order.
func (a *Arena[T]) Each(fn func(id ids.Id, v T)) {
	for _, id := range a.SortedIds() {
		fn(id, a.byId[id])
	}
}

// Map returns the underlying map directly, for JSON marshaling of the
// stringified-key object form the save file uses.
func (a *Arena[T]) Map() map[ids.Id]T { return a.byId }

// MaxId returns the largest Id present, or ids.Invalid if the arena is empty.
func (a *Arena[T]) MaxId() ids.Id {
	max := ids.Invalid
	for id := range a.byId {
		if id > max {
			max = id
		}
	}
	return max
}

// MarshalJSON renders the arena as the stringified-Id-keyed object the save
// format uses for every entity collection.
func (a *Arena[T]) MarshalJSON() ([]byte, error) {
	if a == nil || a.byId == nil {
		return []byte("{}"), nil
	}
	out := make(map[string]T, len(a.byId))
	for id, v := range a.byId {
		out[id.String()] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the stringified-Id-keyed object form back into the
// arena. Unknown object keys inside each entity are ignored by the forward
// compatible decoding of T itself.
func (a *Arena[T]) UnmarshalJSON(data []byte) error {
	var in map[string]T
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	a.byId = make(map[ids.Id]T, len(in))
	for k, v := range in {
		id, err := ids.ParseId(k)
		if err != nil {
			continue
		}
		a.byId[id] = v
	}
	return nil
}
