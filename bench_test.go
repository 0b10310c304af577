package indirection_test

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/djdv/go-indirection"
	"github.com/hashicorp/golang-lru/arc/v2"
	"github.com/maypok86/otter"
)

type (
	benchTable interface {
		Put(indirection.Key, int32) error
		Offset(indirection.Key) int32
	}
	tableCtor        = func(entries int, b *testing.B) (benchTable, func())
	tableConstructor struct {
		name string
		new  tableCtor
	}
	mapTable   map[indirection.Key]int32
	arcWrapper struct {
		*arc.ARCCache[indirection.Key, int32]
	}
	otterWrapper struct {
		otter.Cache[indirection.Key, int32]
	}
)

func (mt mapTable) Put(key indirection.Key, offset int32) error {
	mt[key] = offset
	return nil
}

func (mt mapTable) Offset(key indirection.Key) int32 {
	if offset, ok := mt[key]; ok {
		return offset
	}
	return indirection.NoOffset
}

func (aw arcWrapper) Put(key indirection.Key, offset int32) error {
	aw.Add(key, offset)
	return nil
}

func (aw arcWrapper) Offset(key indirection.Key) int32 {
	if offset, ok := aw.Get(key); ok {
		return offset
	}
	return indirection.NoOffset
}

func (ow otterWrapper) Put(key indirection.Key, offset int32) error {
	ow.Set(key, offset)
	return nil
}

func (ow otterWrapper) Offset(key indirection.Key) int32 {
	if offset, ok := ow.Get(key); ok {
		return offset
	}
	return indirection.NoOffset
}

// Fixed RNG seed for reproducibility.
// Change to test variance between runs.
const rngSeed = 1

func BenchmarkSession(b *testing.B) {
	var (
		constructors = tableConstructors()
		sizes        = []int{8, 64, 512}
	)
	for _, objects := range sizes {
		var (
			name       = fmt.Sprintf("Objects%d", objects)
			references = makeReferences(objects)
		)
		b.Run(name, func(b *testing.B) {
			for _, constructor := range constructors {
				b.Run(constructor.name, newBenchSession(
					constructor.new, objects, references,
				))
			}
		})
	}
}

func tableConstructors() []tableConstructor {
	return []tableConstructor{
		{
			"Linear",
			func(int, *testing.B) (benchTable, func()) {
				cache := indirection.NewLinear(sharedPools())
				return cache, cache.Done
			},
		},
		{
			"Hash",
			func(int, *testing.B) (benchTable, func()) {
				cache := indirection.NewHash(sharedPools())
				return cache, cache.Done
			},
		},
		{
			"Map",
			func(entries int, _ *testing.B) (benchTable, func()) {
				return make(mapTable, entries), func() {}
			},
		},
		{
			"ARC",
			func(entries int, b *testing.B) (benchTable, func()) {
				cache, err := arc.NewARC[indirection.Key, int32](entries)
				if err != nil {
					b.Fatal(err)
				}
				return arcWrapper{ARCCache: cache}, func() {}
			},
		},
		{
			"Otter",
			func(entries int, b *testing.B) (benchTable, func()) {
				cache, err := otter.MustBuilder[indirection.Key, int32](entries).Build()
				if err != nil {
					b.Fatal(err)
				}
				return otterWrapper{Cache: cache}, cache.Close
			},
		},
	}
}

// sharedPools is used by every benchmark session,
// as a process would share one across its streams.
var sharedPools = sync.OnceValue(func() *indirection.Pools {
	pools, err := indirection.NewPools(indirection.DefaultPoolCapacity)
	if err != nil {
		panic(err)
	}
	return pools
})

// makeReferences returns the order in which an encoder
// reaches objects while walking a graph. Most references
// are to objects reached shortly before.
func makeReferences(objects int) []int {
	const (
		revisits  = 4
		nearRatio = 0.8
		nearSpan  = 8
	)
	var (
		rng        = newReproducibleRNG()
		references = make([]int, 0, objects*revisits)
	)
	for i := range cap(references) {
		reached := min(i/revisits, objects-1)
		if rng.Float64() < nearRatio {
			reached = max(0, reached-rng.Intn(nearSpan))
		} else {
			reached = rng.Intn(reached + 1)
		}
		references = append(references, reached)
	}
	return references
}

func newBenchSession(ctor tableCtor, objects int, references []int) func(b *testing.B) {
	return func(b *testing.B) {
		keys := makeKeys(objects)
		b.ReportAllocs()
		b.ResetTimer()
		var indirections, writes int64
		for b.Loop() {
			table, done := ctor(objects, b)
			var position int32
			for _, reached := range references {
				key := keys[reached]
				if offset := table.Offset(key); offset != indirection.NoOffset {
					indirections++
					continue
				}
				if err := table.Put(key, position); err != nil {
					b.Fatal(err)
				}
				position += 8
				writes++
			}
			done()
		}
		b.StopTimer()
		total := float64(indirections + writes)
		b.ReportMetric(float64(indirections)/total*100.0, "indirection_pct")
	}
}

func newReproducibleRNG() *rand.Rand {
	return rand.New(rand.NewSource(rngSeed))
}
