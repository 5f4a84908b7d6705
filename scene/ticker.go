package scene

// Ticker fans one frame delta out to registered callbacks in registration
// order. Callbacks may add or remove callbacks while a tick is running;
// changes apply from the next tick.
type Ticker struct {
	next int
	ids  []int
	fns  map[int]func(dt float64)
}

func NewTicker() *Ticker {
	return &Ticker{fns: make(map[int]func(dt float64))}
}

func (t *Ticker) Add(fn func(dt float64)) int {
	if fn == nil {
		return 0
	}
	t.next++
	t.ids = append(t.ids, t.next)
	t.fns[t.next] = fn
	return t.next
}

func (t *Ticker) Remove(id int) {
	if _, ok := t.fns[id]; !ok {
		return
	}
	delete(t.fns, id)
	for i, v := range t.ids {
		if v == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
}

func (t *Ticker) Len() int { return len(t.ids) }

func (t *Ticker) Tick(dt float64) {
	snapshot := append([]int(nil), t.ids...)
	for _, id := range snapshot {
		// removed by an earlier callback this tick
		fn, ok := t.fns[id]
		if !ok {
			continue
		}
		fn(dt)
	}
}
