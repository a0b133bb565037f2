package index

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
)

// Ensure IVFIndex implements the interface.
var _ driven.VectorIndex = (*IVFIndex)(nil)

// IVFConfig contains tuning parameters for the inverted-file index.
type IVFConfig struct {
	// Lists is the number of coarse clusters. 0 means auto: sqrt(n) at
	// training time, capped at 256. More lists = finer partitioning but
	// lower per-list recall for a fixed Probes.
	Lists int

	// Probes is the number of nearest clusters scanned per query.
	// Larger values trade latency for recall.
	Probes int

	// TrainThreshold is the minimum number of vectors before clustering
	// activates. Below it every query falls back to an exact scan.
	TrainThreshold int

	// KMeansIterations bounds the Lloyd's iterations per training run.
	KMeansIterations int

	// Dimensions is the vector dimensionality (0 = unchecked).
	Dimensions int
}

// DefaultIVFConfig returns sensible defaults for the given dimensionality.
func DefaultIVFConfig(dimensions int) IVFConfig {
	return IVFConfig{
		Lists:            0, // auto
		Probes:           4,
		TrainThreshold:   256,
		KMeansIterations: 10,
		Dimensions:       dimensions,
	}
}

// IVFIndex is an approximate nearest-neighbour index using inverted-file
// clustering: a coarse quantizer partitions the vector space into Lists
// clusters, queries probe the Probes nearest clusters and scan only those.
//
// Writes are serialized; reads run concurrently under the read lock and
// never observe a partially inserted vector.
type IVFIndex struct {
	mu      sync.RWMutex
	cfg     IVFConfig
	entries map[string]*entry
	nextSeq uint64

	// Cluster state, rebuilt by train(). assignment maps a document ID to
	// its list position; empty until the first training run.
	centroids  [][]float32
	lists      [][]string
	assignment map[string]int
	trainedAt  int // entry count at last training; retrain when doubled

	rng *rand.Rand
}

// NewIVFIndex creates an IVF index with the given configuration.
func NewIVFIndex(cfg IVFConfig) *IVFIndex {
	if cfg.Probes <= 0 {
		cfg.Probes = 4
	}
	if cfg.TrainThreshold <= 0 {
		cfg.TrainThreshold = 256
	}
	if cfg.KMeansIterations <= 0 {
		cfg.KMeansIterations = 10
	}
	return &IVFIndex{
		cfg:        cfg,
		entries:    make(map[string]*entry),
		assignment: make(map[string]int),
		rng:        rand.New(rand.NewSource(42)), // deterministic for reproducibility
	}
}

// Add inserts or replaces a vector. After training, new vectors are
// assigned to their nearest centroid; the index retrains once the corpus
// has doubled since the last run.
func (idx *IVFIndex) Add(_ context.Context, documentID string, embedding []float32) error {
	if idx.cfg.Dimensions > 0 && len(embedding) != idx.cfg.Dimensions {
		return fmt.Errorf("index: got %d dimensions, want %d: %w",
			len(embedding), idx.cfg.Dimensions, domain.ErrDimensionMismatch)
	}

	vec := make([]float32, len(embedding))
	copy(vec, embedding)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if existing, ok := idx.entries[documentID]; ok {
		existing.vector = vec
		if idx.trained() {
			idx.reassignLocked(documentID, vec)
		}
		return nil
	}

	idx.entries[documentID] = &entry{id: documentID, vector: vec, seq: idx.nextSeq}
	idx.nextSeq++

	if idx.shouldTrainLocked() {
		idx.trainLocked()
	} else if idx.trained() {
		idx.assignLocked(documentID, vec)
	}
	return nil
}

// Delete removes a vector and its cluster assignment.
func (idx *IVFIndex) Delete(_ context.Context, documentID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.entries[documentID]; !ok {
		return nil
	}
	delete(idx.entries, documentID)

	if list, ok := idx.assignment[documentID]; ok {
		ids := idx.lists[list]
		for i, id := range ids {
			if id == documentID {
				idx.lists[list] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
		delete(idx.assignment, documentID)
	}
	return nil
}

// Search probes the nearest clusters and scans only their members.
// Below the training threshold it degrades to an exact scan.
func (idx *IVFIndex) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return []driven.VectorHit{}, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var candidates []*entry
	if !idx.trained() {
		candidates = make([]*entry, 0, len(idx.entries))
		for _, e := range idx.entries {
			candidates = append(candidates, e)
		}
	} else {
		for _, list := range idx.nearestListsLocked(query, idx.cfg.Probes) {
			for _, id := range idx.lists[list] {
				if e, ok := idx.entries[id]; ok {
					candidates = append(candidates, e)
				}
			}
		}
	}

	type scored struct {
		id  string
		sim float64
		seq uint64
	}

	results := make([]scored, 0, len(candidates))
	for _, e := range candidates {
		results = append(results, scored{id: e.id, sim: CosineSimilarity(query, e.vector), seq: e.seq})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].sim != results[j].sim {
			return results[i].sim > results[j].sim
		}
		return results[i].seq < results[j].seq
	})

	if len(results) > k {
		results = results[:k]
	}

	hits := make([]driven.VectorHit, len(results))
	for i, r := range results {
		hits[i] = driven.VectorHit{DocumentID: r.id, Similarity: r.sim}
	}
	return hits, nil
}

// Len returns the number of indexed vectors.
func (idx *IVFIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Close is a no-op for the in-memory index.
func (idx *IVFIndex) Close() error {
	return nil
}

// Trained reports whether the coarse quantizer has been built.
// Exposed for tests and diagnostics.
func (idx *IVFIndex) Trained() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.trained()
}

func (idx *IVFIndex) trained() bool {
	return len(idx.centroids) > 0
}

func (idx *IVFIndex) shouldTrainLocked() bool {
	n := len(idx.entries)
	if n < idx.cfg.TrainThreshold {
		return false
	}
	if !idx.trained() {
		return true
	}
	return n >= idx.trainedAt*2
}

// trainLocked builds the coarse quantizer with Lloyd's k-means and
// reassigns every entry. Seeds are chosen in insertion order so repeated
// runs over the same corpus produce the same clustering.
func (idx *IVFIndex) trainLocked() {
	n := len(idx.entries)

	lists := idx.cfg.Lists
	if lists <= 0 {
		lists = int(math.Sqrt(float64(n)))
		if lists > 256 {
			lists = 256
		}
	}
	if lists < 1 {
		lists = 1
	}
	if lists > n {
		lists = n
	}

	ordered := make([]*entry, 0, n)
	for _, e := range idx.entries {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].seq < ordered[j].seq })

	// Evenly spaced seeds over the insertion order.
	centroids := make([][]float32, lists)
	for i := range centroids {
		seed := ordered[i*n/lists].vector
		c := make([]float32, len(seed))
		copy(c, seed)
		centroids[i] = c
	}

	assignments := make([]int, n)
	for iter := 0; iter < idx.cfg.KMeansIterations; iter++ {
		changed := false
		for i, e := range ordered {
			best := nearestCentroid(centroids, e.vector)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		sums := make([][]float64, lists)
		counts := make([]int, lists)
		for i := range sums {
			sums[i] = make([]float64, len(centroids[0]))
		}
		for i, e := range ordered {
			c := assignments[i]
			counts[c]++
			for d, v := range e.vector {
				sums[c][d] += float64(v)
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				// Re-seed an empty cluster from a random member.
				reseed := ordered[idx.rng.Intn(n)].vector
				copy(centroids[c], reseed)
				continue
			}
			for d := range centroids[c] {
				centroids[c][d] = float32(sums[c][d] / float64(counts[c]))
			}
		}

		if !changed && iter > 0 {
			break
		}
	}

	idx.centroids = centroids
	idx.lists = make([][]string, lists)
	idx.assignment = make(map[string]int, n)
	for i, e := range ordered {
		c := assignments[i]
		idx.lists[c] = append(idx.lists[c], e.id)
		idx.assignment[e.id] = c
	}
	idx.trainedAt = n
}

func (idx *IVFIndex) assignLocked(documentID string, vec []float32) {
	c := nearestCentroid(idx.centroids, vec)
	idx.lists[c] = append(idx.lists[c], documentID)
	idx.assignment[documentID] = c
}

func (idx *IVFIndex) reassignLocked(documentID string, vec []float32) {
	if old, ok := idx.assignment[documentID]; ok {
		ids := idx.lists[old]
		for i, id := range ids {
			if id == documentID {
				idx.lists[old] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
	idx.assignLocked(documentID, vec)
}

// nearestListsLocked returns the indices of the probes nearest centroids.
func (idx *IVFIndex) nearestListsLocked(query []float32, probes int) []int {
	type centroidDist struct {
		list int
		dist float64
	}

	dists := make([]centroidDist, len(idx.centroids))
	for i, c := range idx.centroids {
		dists[i] = centroidDist{list: i, dist: L2DistanceSquared(query, c)}
	}
	sort.Slice(dists, func(i, j int) bool {
		if dists[i].dist != dists[j].dist {
			return dists[i].dist < dists[j].dist
		}
		return dists[i].list < dists[j].list
	})

	if probes > len(dists) {
		probes = len(dists)
	}
	result := make([]int, probes)
	for i := 0; i < probes; i++ {
		result[i] = dists[i].list
	}
	return result
}

func nearestCentroid(centroids [][]float32, vec []float32) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, c := range centroids {
		if d := L2DistanceSquared(vec, c); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
