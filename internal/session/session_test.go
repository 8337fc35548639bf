package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/pdf-merger/internal/collection"
	"github.com/ytget/pdf-merger/internal/merge"
	"github.com/ytget/pdf-merger/internal/model"
	"github.com/ytget/pdf-merger/internal/testutil"
)

// stubMerger records the inputs of every accepted Start call
type stubMerger struct {
	inputs  [][]string
	outputs []string
	running bool
	err     error
}

func (m *stubMerger) Start(inputs []string, outputPath string) (*model.MergeJob, <-chan model.Event, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	m.inputs = append(m.inputs, inputs)
	m.outputs = append(m.outputs, outputPath)
	events := make(chan model.Event)
	close(events)
	return model.NewMergeJob("stub", inputs, outputPath), events, nil
}

func (m *stubMerger) Current() (*model.MergeJob, bool) { return nil, false }
func (m *stubMerger) IsRunning() bool                  { return m.running }

func newSession(m merge.Merger) *Session {
	return New(collection.New(zerolog.Nop()), m, zerolog.Nop())
}

func TestSession_StartMergeUsesCollectionOrder(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "a.pdf")
	b := testutil.WritePDF(t, dir, "b.pdf")
	c := testutil.WritePDF(t, dir, "c.pdf")

	stub := &stubMerger{}
	s := newSession(stub)
	_, err := s.AddFiles(a, b, c)
	require.NoError(t, err)

	idx, err := s.MoveUp(2)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, _, err = s.StartMerge("/out/merged.pdf")
	require.NoError(t, err)
	require.Len(t, stub.inputs, 1)
	assert.Equal(t, []string{a, c, b}, stub.inputs[0])
	assert.Equal(t, "/out/merged.pdf", s.OutputPath())
}

func TestSession_StartMergeRequiresOutputPath(t *testing.T) {
	dir := t.TempDir()
	s := newSession(merge.NewService(zerolog.Nop()))
	_, err := s.AddFiles(testutil.WritePDF(t, dir, "a.pdf"))
	require.NoError(t, err)

	s.SetOutputPath("/out/recorded.pdf")
	_, _, err = s.StartMerge("")
	assert.ErrorIs(t, err, model.ErrNoOutputPath)
	assert.Equal(t, "/out/recorded.pdf", s.OutputPath())
}

func TestSession_StartMergeWithoutFiles(t *testing.T) {
	s := newSession(merge.NewService(zerolog.Nop()))

	_, _, err := s.StartMerge(filepath.Join(t.TempDir(), "merged.pdf"))
	assert.ErrorIs(t, err, model.ErrNoInput)
	assert.False(t, s.IsRunning())
}

func TestSession_StartMergeError(t *testing.T) {
	stub := &stubMerger{err: model.ErrMergeRunning}
	s := newSession(stub)

	_, _, err := s.StartMerge("/out/merged.pdf")
	assert.ErrorIs(t, err, model.ErrMergeRunning)
	assert.Empty(t, s.OutputPath())
}

func TestSession_EditingForwardsToCollection(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "a.pdf")
	b := testutil.WritePDF(t, dir, "b.pdf")
	testutil.WritePDF(t, dir, "sub/c.PDF")

	s := newSession(&stubMerger{})
	added, err := s.AddDirectory(dir)
	require.NoError(t, err)
	assert.Len(t, added, 3)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 3*int64(len(testutil.MinimalPDF())), s.TotalSize())

	require.NoError(t, s.Remove(a))
	assert.Equal(t, b, s.Entries()[0].Path)

	assert.ErrorIs(t, s.Remove(), model.ErrNoSelection)

	_, err = s.MoveDown(5)
	assert.ErrorIs(t, err, model.ErrNoSelection)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Zero(t, s.TotalSize())
}

func TestSession_MutationDuringJobDoesNotAffectIt(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "a.pdf", testutil.SizeA)
	b := testutil.WritePDF(t, dir, "b.pdf", testutil.SizeB)
	out := filepath.Join(dir, "out", "merged.pdf")

	s := newSession(merge.NewService(zerolog.Nop()))
	_, err := s.AddFiles(a, b)
	require.NoError(t, err)

	job, events, err := s.StartMerge(out)
	require.NoError(t, err)
	s.Clear()

	var last model.Event
	timeout := time.After(10 * time.Second)
	for done := false; !done; {
		select {
		case ev, ok := <-events:
			if !ok {
				done = true
				break
			}
			last = ev
		case <-timeout:
			t.Fatal("timed out waiting for merge")
		}
	}

	assert.Equal(t, []string{a, b}, job.Inputs)
	require.NotNil(t, last.Outcome)
	assert.True(t, last.Outcome.Success, last.Outcome.Message)
	assert.Equal(t, 2, last.Outcome.Processed)
	assert.False(t, s.IsRunning())

	current, ok := s.CurrentJob()
	require.True(t, ok)
	assert.Equal(t, model.JobStatusCompleted, current.Status)
}
