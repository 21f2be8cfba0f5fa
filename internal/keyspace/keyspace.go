package keyspace

// Value is the opaque value-object type a Keyspace stores. In this
// engine a Value is always a *setcol.Set or a *listcol.List; keyspace
// itself never inspects which.
type Value interface{}

// Keyspace is spec.md §3's "map keys → value-object" with
// lookup-read/lookup-write/add/delete and a signal-modified hook. It is
// not safe for concurrent use — see doc.go.
type Keyspace struct {
	entries map[string]Value
	dirty   uint64
	onMod   func(key string)
}

// New returns an empty Keyspace.
func New() *Keyspace {
	return &Keyspace{entries: make(map[string]Value)}
}

// SetModifiedHook installs fn to be invoked, in addition to incrementing
// the dirty counter, every time SignalModified is called; passing nil
// disables the hook. Nothing in this tree installs one: the blocking-key
// try-deliver is called directly by internal/engine's push path, not
// through this hook.
func (k *Keyspace) SetModifiedHook(fn func(key string)) {
	k.onMod = fn
}

// LookupRead retrieves the value stored at key without any
// read-triggered side effects.
func (k *Keyspace) LookupRead(key string) (Value, bool) {
	v, ok := k.entries[key]
	return v, ok
}

// LookupWrite retrieves the value stored at key for a mutating command.
// In this single-threaded core it behaves identically to LookupRead; the
// distinct name exists because spec.md §3 gives the two hooks separate
// names (callers in internal/command should still call the one matching
// their intent, since a lock-based keyspace implementation would
// distinguish them).
func (k *Keyspace) LookupWrite(key string) (Value, bool) {
	return k.LookupRead(key)
}

// Add installs value at key, overwriting any existing entry. It does not
// signal modification; callers call SignalModified once their mutation
// is complete, matching spec.md §9's destination-discipline rule of one
// signal per affected key regardless of how many keyspace calls it took.
func (k *Keyspace) Add(key string, value Value) {
	k.entries[key] = value
}

// Delete removes key, reporting whether it was present. Like Add, it
// does not itself signal modification.
func (k *Keyspace) Delete(key string) bool {
	_, ok := k.entries[key]
	if ok {
		delete(k.entries, key)
	}
	return ok
}

// SignalModified increments the process-wide dirty counter and invokes
// the modified hook, if one is installed. Set commands and the set-algebra
// STORE variants call this once per affected key; LPUSH/RPUSH with
// several values call it once per value pushed (spec.md §4.B "size 0"
// rule and the empty-container rule both route through this call site).
func (k *Keyspace) SignalModified(key string) {
	k.dirty++
	if k.onMod != nil {
		k.onMod(key)
	}
}

// DirtyCount returns the process-wide monotonic mutation count (spec.md
// §9, "Dirty counter").
func (k *Keyspace) DirtyCount() uint64 { return k.dirty }

// Len returns the number of keys currently stored.
func (k *Keyspace) Len() int { return len(k.entries) }

// Keys returns a snapshot of every key currently stored, in unspecified
// order.
func (k *Keyspace) Keys() []string {
	out := make([]string, 0, len(k.entries))
	for key := range k.entries {
		out = append(out, key)
	}
	return out
}
