package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"notegraph/internal/ingest"
	"notegraph/internal/ingest/mocks"
)

const dim = 4

type pipeline struct {
	vision *mocks.MockVisionModel
	text   *mocks.MockTextModel
	embed  *mocks.MockEmbedder
	notes  *mocks.MockNoteStore
	index  *mocks.MockVectorIndex
	edges  *mocks.MockEdgeStore
	blobs  *mocks.MockBlobStore
	stages []ingest.Stage
	c      *ingest.Coordinator
}

func newPipeline(t *testing.T) *pipeline {
	ctrl := gomock.NewController(t)
	p := &pipeline{
		vision: mocks.NewMockVisionModel(ctrl),
		text:   mocks.NewMockTextModel(ctrl),
		embed:  mocks.NewMockEmbedder(ctrl),
		notes:  mocks.NewMockNoteStore(ctrl),
		index:  mocks.NewMockVectorIndex(ctrl),
		edges:  mocks.NewMockEdgeStore(ctrl),
		blobs:  mocks.NewMockBlobStore(ctrl),
	}
	p.c = ingest.NewCoordinator(
		ingest.NewOrchestrator(p.vision, p.text, 0),
		ingest.NewEmbeddingGenerator(p.embed, 0, ingest.WithDimension(dim)),
		ingest.NewLinker(p.index, p.edges, ingest.DefaultMaxResults, ingest.DefaultThreshold),
		p.notes,
		p.index,
		ingest.WithBlobStore(p.blobs),
		ingest.WithObserver(func(_ context.Context, s ingest.Stage) { p.stages = append(p.stages, s) }),
	)
	return p
}

func assignID(id string) func(context.Context, *ingest.Note) error {
	return func(_ context.Context, n *ingest.Note) error {
		n.ID = id
		return nil
	}
}

func TestCoordinator_Ingest_TextEndToEnd(t *testing.T) {
	p := newPipeline(t)
	vec := []float32{0.1, 0.2, 0.3, 0.4}

	p.text.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(groceryResponse, nil)
	p.embed.EXPECT().
		Embed(gomock.Any(), "Title: Grocery List\nSummary: A short shopping reminder.\nContent: Buy milk and eggs").
		Return(vec, nil)
	p.notes.EXPECT().InsertNote(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *ingest.Note) error {
		assert.Equal(t, ingest.LinkingPending, n.LinkingStatus)
		assert.Equal(t, "alice", n.Owner)
		assert.Empty(t, n.ImageURL)
		n.ID = "note-1"
		return nil
	})
	p.index.EXPECT().IndexNote(gomock.Any(), gomock.Any()).Return(nil)
	p.index.EXPECT().FindNeighbors(gomock.Any(), gomock.Any()).Return([]ingest.Neighbor{{ID: "note-1", Similarity: 1}}, nil)
	p.notes.EXPECT().SetLinkingStatus(gomock.Any(), "note-1", ingest.LinkingLinked).Return(nil)

	res, err := p.c.Ingest(context.Background(), "alice", ingest.Request{TextContent: "Buy milk and eggs"})
	require.NoError(t, err)

	assert.Equal(t, "Buy milk and eggs", res.Note.Transcription)
	assert.Equal(t, "Grocery List", res.Note.Title)
	assert.Len(t, res.Note.Embedding, dim)
	assert.Empty(t, res.Edges)
	assert.NoError(t, res.LinkWarning)
	assert.Equal(t, ingest.LinkingLinked, res.Note.LinkingStatus)
	assert.Equal(t, []ingest.Stage{
		ingest.StageNormalizing, ingest.StageAnalyzing, ingest.StageEmbedding,
		ingest.StagePersistingNote, ingest.StageLinking, ingest.StageDone,
	}, p.stages)
}

func TestCoordinator_Ingest_ImageEndToEnd(t *testing.T) {
	p := newPipeline(t)
	img := []byte("png-bytes")

	p.blobs.EXPECT().Put(gomock.Any(), "alice", "board.png", "image/png", img).Return("http://blobs/alice/x.png", nil)
	p.vision.EXPECT().AnalyzeImage(gomock.Any(), gomock.Any(), img, "image/png").
		Return("```json\n{\"title\":\"Meeting Notes\",\"transcription\":\"Discuss Q3 roadmap\",\"summary\":\"Roadmap.\",\"tags\":[\"work\"]}\n```", nil)
	p.embed.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1, 0, 0, 0}, nil)
	p.notes.EXPECT().InsertNote(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *ingest.Note) error {
		assert.Equal(t, "http://blobs/alice/x.png", n.ImageURL)
		n.ID = "img-1"
		return nil
	})
	p.index.EXPECT().IndexNote(gomock.Any(), gomock.Any()).Return(nil)
	p.index.EXPECT().FindNeighbors(gomock.Any(), gomock.Any()).Return([]ingest.Neighbor{{ID: "old", Similarity: 0.83}}, nil)
	p.edges.EXPECT().InsertEdges(gomock.Any(), []ingest.Edge{
		{Owner: "alice", SourceNoteID: "img-1", TargetNoteID: "old", Similarity: 0.83},
	}).Return(1, nil)
	p.notes.EXPECT().SetLinkingStatus(gomock.Any(), "img-1", ingest.LinkingLinked).Return(nil)

	res, err := p.c.Ingest(context.Background(), "alice", ingest.Request{
		ImageBytes: img, MimeType: "image/png", ImageName: "board.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Discuss Q3 roadmap", res.Note.Transcription)
	assert.Len(t, res.Edges, 1)
}

func TestCoordinator_Ingest_InvalidInputMakesNoCalls(t *testing.T) {
	p := newPipeline(t)

	res, err := p.c.Ingest(context.Background(), "alice", ingest.Request{})
	require.Error(t, err)
	assert.Nil(t, res)

	stage, ok := ingest.StageOf(err)
	require.True(t, ok)
	assert.Equal(t, ingest.StageNormalizing, stage)
	assert.True(t, errors.Is(err, ingest.ErrInvalidInput))
	assert.Equal(t, []ingest.Stage{ingest.StageNormalizing}, p.stages)
}

func TestCoordinator_Ingest_Failures(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(p *pipeline)
		wantStage ingest.Stage
		wantKind  ingest.Kind
	}{
		{
			name: "analysis failure",
			setup: func(p *pipeline) {
				p.text.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("nope", nil).Times(2)
			},
			wantStage: ingest.StageAnalyzing,
			wantKind:  ingest.KindMalformedResponse,
		},
		{
			name: "embedding failure",
			setup: func(p *pipeline) {
				p.text.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(groceryResponse, nil)
				p.embed.EXPECT().Embed(gomock.Any(), gomock.Any()).Return(nil, errors.New("quota exceeded"))
			},
			wantStage: ingest.StageEmbedding,
			wantKind:  ingest.KindModelService,
		},
		{
			name: "note insert failure stops the pipeline",
			setup: func(p *pipeline) {
				p.text.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(groceryResponse, nil)
				p.embed.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1, 2, 3, 4}, nil)
				p.notes.EXPECT().InsertNote(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantStage: ingest.StagePersistingNote,
			wantKind:  ingest.KindPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPipeline(t)
			tt.setup(p)

			_, err := p.c.Ingest(context.Background(), "alice", ingest.Request{TextContent: "Buy milk"})
			require.Error(t, err)
			stage, ok := ingest.StageOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantStage, stage)
			assert.Equal(t, tt.wantKind, ingest.KindOf(err))
		})
	}
}

func TestCoordinator_Ingest_UploadFailure(t *testing.T) {
	p := newPipeline(t)

	p.blobs.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket missing"))
	p.vision.EXPECT().AnalyzeImage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`{"title":"t","transcription":"x","summary":"s","tags":[]}`, nil)
	p.embed.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1, 2, 3, 4}, nil)

	_, err := p.c.Ingest(context.Background(), "alice", ingest.Request{ImageBytes: []byte{1}})
	require.Error(t, err)
	stage, _ := ingest.StageOf(err)
	assert.Equal(t, ingest.StagePersistingNote, stage)
	assert.True(t, errors.Is(err, ingest.ErrPersistence))
}

func TestCoordinator_Ingest_LinkingFailureStillSucceeds(t *testing.T) {
	p := newPipeline(t)

	p.text.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(groceryResponse, nil)
	p.embed.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1, 2, 3, 4}, nil)
	p.notes.EXPECT().InsertNote(gomock.Any(), gomock.Any()).DoAndReturn(assignID("n1"))
	p.index.EXPECT().IndexNote(gomock.Any(), gomock.Any()).Return(nil)
	p.index.EXPECT().FindNeighbors(gomock.Any(), gomock.Any()).Return([]ingest.Neighbor{{ID: "a", Similarity: 0.9}, {ID: "b", Similarity: 0.8}}, nil)
	p.edges.EXPECT().InsertEdges(gomock.Any(), gomock.Any()).Return(1, errors.New("one edge rejected"))
	p.notes.EXPECT().SetLinkingStatus(gomock.Any(), "n1", ingest.LinkingPartial).Return(nil)

	res, err := p.c.Ingest(context.Background(), "alice", ingest.Request{TextContent: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, ingest.LinkingPartial, res.Note.LinkingStatus)
	assert.True(t, errors.Is(res.LinkWarning, ingest.ErrLinking))
	assert.Equal(t, ingest.StageDone, p.stages[len(p.stages)-1])
}

func TestCoordinator_Ingest_CancelAfterPersistStillLinks(t *testing.T) {
	p := newPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.text.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(groceryResponse, nil)
	p.embed.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1, 2, 3, 4}, nil)
	p.notes.EXPECT().InsertNote(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *ingest.Note) error {
		n.ID = "n1"
		cancel()
		return nil
	})
	p.index.EXPECT().IndexNote(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ ingest.Note) error {
		return ctx.Err()
	})
	p.index.EXPECT().FindNeighbors(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ ingest.NeighborQuery) ([]ingest.Neighbor, error) {
		return nil, ctx.Err()
	})
	p.notes.EXPECT().SetLinkingStatus(gomock.Any(), "n1", ingest.LinkingLinked).Return(nil)

	res, err := p.c.Ingest(ctx, "alice", ingest.Request{TextContent: "Buy milk"})
	require.NoError(t, err)
	assert.NoError(t, res.LinkWarning)
}

func TestCoordinator_Analyze(t *testing.T) {
	p := newPipeline(t)

	p.text.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(groceryResponse, nil)
	p.embed.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1, 2, 3, 4}, nil)

	preview, err := p.c.Analyze(context.Background(), ingest.Request{TextContent: "Buy milk and eggs"})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk and eggs", preview.Analysis.Transcription)
	assert.Len(t, preview.Embedding, dim)
}

// memStore is an in-memory NoteStore, VectorIndex and EdgeStore for
// concurrency tests. It enforces the edge uniqueness constraint.
type memStore struct {
	mu    sync.Mutex
	seq   int
	notes map[string]ingest.Note
	edges map[[2]string]ingest.Edge
}

func newMemStore() *memStore {
	return &memStore{notes: map[string]ingest.Note{}, edges: map[[2]string]ingest.Edge{}}
}

func (m *memStore) InsertNote(_ context.Context, n *ingest.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	n.ID = fmt.Sprintf("n%d", m.seq)
	m.notes[n.ID] = *n
	return nil
}

func (m *memStore) SetLinkingStatus(_ context.Context, id string, s ingest.LinkingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.notes[id]
	n.LinkingStatus = s
	m.notes[id] = n
	return nil
}

func (m *memStore) IndexNote(context.Context, ingest.Note) error { return nil }

func (m *memStore) FindNeighbors(_ context.Context, q ingest.NeighborQuery) ([]ingest.Neighbor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ingest.Neighbor
	for _, n := range m.notes {
		if n.Owner != q.Owner {
			continue
		}
		if s := cosine(q.Vector, n.Embedding); s >= q.Threshold {
			out = append(out, ingest.Neighbor{ID: n.ID, Similarity: s})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStore) InsertEdges(_ context.Context, edges []ingest.Edge) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range edges {
		key := [2]string{e.SourceNoteID, e.TargetNoteID}
		if _, dup := m.edges[key]; dup {
			return 0, fmt.Errorf("duplicate edge %v", key)
		}
		m.edges[key] = e
	}
	return len(edges), nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestCoordinator_Ingest_ConcurrentSameOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	text := mocks.NewMockTextModel(ctrl)
	embed := mocks.NewMockEmbedder(ctrl)
	text.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(groceryResponse, nil).Times(2)
	embed.EXPECT().Embed(gomock.Any(), gomock.Any()).Return([]float32{1, 1, 0, 0}, nil).Times(2)

	store := newMemStore()
	c := ingest.NewCoordinator(
		ingest.NewOrchestrator(mocks.NewMockVisionModel(ctrl), text, 0),
		ingest.NewEmbeddingGenerator(embed, 0),
		ingest.NewLinker(store, store, 5, 0.7),
		store,
		store,
	)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.Ingest(context.Background(), "alice", ingest.Request{TextContent: "Buy milk and eggs"})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, store.notes, 2)
	assert.LessOrEqual(t, len(store.edges), 2)
	for key := range store.edges {
		assert.NotEqual(t, key[0], key[1])
	}
	for _, n := range store.notes {
		assert.Equal(t, ingest.LinkingLinked, n.LinkingStatus)
	}
}
