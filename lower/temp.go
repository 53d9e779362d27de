package lower

import "fmt"

// Temp is a synthetic temporary register holding the value of a reusable
// sub-expression ($0, $1, ...) while it awaits a second read. refs counts
// how many pending reads still need it; it is returned to the pool the
// moment refs drops to zero.
type Temp struct {
	Name  string
	refs  int
	owned bool // true for a Temp minted by useTempVar; false for one wrapping an existing named local via shadowVar
}

// tempPool hands out and reclaims Temp names. Reclaimed names are reused
// before any new name is minted, so a function that allocates and frees
// temporaries in a tight loop does not grow its scope variable list
// without bound.
type tempPool struct {
	free []string
	next int
	live map[string]*Temp
}

func newTempPool() *tempPool {
	return &tempPool{live: make(map[string]*Temp)}
}

// useTempVar allocates a fresh Temp with refs == 1, representing one
// pending read of the expression it will hold.
func (p *tempPool) useTempVar() *Temp {
	var name string
	if n := len(p.free); n > 0 {
		name = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		name = fmt.Sprintf("$%d", p.next)
		p.next++
	}
	t := &Temp{Name: name, refs: 1, owned: true}
	p.live[name] = t
	return t
}

// retain records one more pending read of t, for an expression known to be
// reused more than once (e.g. the object of a chained MemberExpression
// also appearing as a CallExpression's receiver).
func (t *Temp) retain() {
	t.refs++
}

// freeTempVar releases one pending read of t; once every read has been
// consumed the name returns to the pool for reuse.
func (p *tempPool) freeTempVar(t *Temp) {
	t.refs--
	if t.refs > 0 || !t.owned {
		return
	}
	delete(p.live, t.Name)
	p.free = append(p.free, t.Name)
}

// shadowVar wraps an existing named local (a user variable or scope
// register, not a fresh temporary) as a Temp so the expression lowerer can
// treat "this expression is already materialized under a stable name" and
// "this expression needs a freshly allocated temporary" uniformly. A
// shadowed Temp is never returned to the free list: freeTempVar on one is
// a no-op beyond dropping the refcount, since its name belongs to the
// scope variable it shadows, not to the pool.
func (p *tempPool) shadowVar(name string) *Temp {
	return &Temp{Name: name, refs: 1}
}

// outstanding reports how many temporaries are still live (allocated but
// not yet fully freed). A non-zero count at function finalization means
// some expression lowering path failed to balance a useTempVar with a
// matching freeTempVar.
func (p *tempPool) outstanding() int {
	return len(p.live)
}
