package questionbank

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"
)

// FallbackWorld is served for any world id the bank does not know.
const FallbackWorld = 1

//go:embed data/worlds.json
var builtinPack []byte

// Bank is a read-only mapping from world id to its ordered questions.
type Bank struct {
	worlds map[int]World
	order  []int
}

// NewBank builds a bank from packs. Later packs replace earlier worlds with
// the same id. The result must contain FallbackWorld.
func NewBank(packs ...Pack) (*Bank, error) {
	b := &Bank{worlds: make(map[int]World)}
	for _, p := range packs {
		for _, w := range p.Worlds {
			b.worlds[w.ID] = w
		}
	}
	if _, ok := b.worlds[FallbackWorld]; !ok {
		return nil, fmt.Errorf("%w: world %d is required", ErrInvalidPack, FallbackWorld)
	}

	b.order = make([]int, 0, len(b.worlds))
	for id := range b.worlds {
		b.order = append(b.order, id)
	}
	slices.Sort(b.order)
	return b, nil
}

var defaultBank = sync.OnceValue(func() *Bank {
	p, err := ParsePack(builtinPack)
	if err != nil {
		panic(fmt.Sprintf("questionbank: builtin pack: %v", err))
	}
	b, err := NewBank(p)
	if err != nil {
		panic(fmt.Sprintf("questionbank: builtin pack: %v", err))
	}
	return b
})

// Default returns the bank of built-in worlds.
func Default() *Bank {
	return defaultBank()
}

// Load returns the built-in bank extended with the pack files at paths.
func Load(paths ...string) (*Bank, error) {
	if len(paths) == 0 {
		return Default(), nil
	}
	b := Default()
	for _, path := range paths {
		p, err := LoadPack(path)
		if err != nil {
			return nil, err
		}
		b, err = b.Merge(p)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Merge returns a new bank with p's worlds added or replacing existing ones.
func (b *Bank) Merge(p Pack) (*Bank, error) {
	base := Pack{Worlds: b.Worlds()}
	return NewBank(base, p)
}

// Questions returns the ordered questions for world id, falling back to
// FallbackWorld when id is unknown. The result is never empty.
func (b *Bank) Questions(id int) []Question {
	w, ok := b.worlds[id]
	if !ok {
		w = b.worlds[FallbackWorld]
	}
	return slices.Clone(w.Questions)
}

// Lookup returns world id and whether it exists.
func (b *Bank) Lookup(id int) (World, bool) {
	w, ok := b.worlds[id]
	return w, ok
}

// World returns world id, or FallbackWorld when id is unknown.
func (b *Bank) World(id int) World {
	if w, ok := b.worlds[id]; ok {
		return w
	}
	return b.worlds[FallbackWorld]
}

// Worlds returns all worlds ordered by id.
func (b *Bank) Worlds() []World {
	out := make([]World, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.worlds[id])
	}
	return out
}

// Len returns the number of worlds.
func (b *Bank) Len() int {
	return len(b.order)
}

// MaxWorld returns the highest world id.
func (b *Bank) MaxWorld() int {
	return b.order[len(b.order)-1]
}
