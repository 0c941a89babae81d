package otgen

import (
	"sync"

	"github.com/npillmayer/tinyfont/ot"
)

// tableCache holds the tables of a Generator.
//
// The nine character-independent tables are built on first use and shared
// afterwards. cmap tables are kept per code point; an entry, once published,
// is never replaced.
type tableCache struct {
	invariantOnce sync.Once
	invariant     map[ot.Tag]*Table

	mu   sync.RWMutex
	cmap map[CodePoint]*Table
}

var invariantBuilders = []func() *Table{
	BuildOS2, BuildGlyf, BuildHead, BuildHHea, BuildHMtx,
	BuildLoca, BuildMaxP, BuildName, BuildPost,
}

func (c *tableCache) invariantTables() map[ot.Tag]*Table {
	c.invariantOnce.Do(func() {
		c.invariant = make(map[ot.Tag]*Table, len(invariantBuilders))
		for _, build := range invariantBuilders {
			t := build()
			c.invariant[t.Tag] = t
		}
		tracer().Infof("built %d invariant tables", len(c.invariant))
	})
	return c.invariant
}

func (c *tableCache) cmapTable(cp CodePoint) (*Table, error) {
	c.mu.RLock()
	t, ok := c.cmap[cp]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}
	t, err := BuildCMap(cp)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cmap == nil {
		c.cmap = make(map[CodePoint]*Table)
	}
	if prev, ok := c.cmap[cp]; ok { // lost a race, keep the published table
		return prev, nil
	}
	c.cmap[cp] = t
	tracer().Infof("cached cmap table for %s", cp)
	return t, nil
}

func (c *tableCache) cmapCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cmap)
}
