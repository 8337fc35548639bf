package merge

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmodel "github.com/ytget/pdf-merger/internal/model"
	"github.com/ytget/pdf-merger/internal/pdfdoc"
	"github.com/ytget/pdf-merger/internal/testutil"
)

const eventTimeout = 10 * time.Second

func newTestService(opts ...Option) *Service {
	return NewService(zerolog.Nop(), opts...)
}

// pageWidths returns the media box width of every page of the PDF at path
func pageWidths(t *testing.T, path string) []float64 {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	dims, err := api.PageDims(bytes.NewReader(data), model.NewDefaultConfiguration())
	require.NoError(t, err)
	widths := make([]float64, len(dims))
	for i, d := range dims {
		widths[i] = d.Width
	}
	return widths
}

// drain collects events until the channel closes
func drain(t *testing.T, events <-chan appmodel.Event) []appmodel.Event {
	t.Helper()
	var out []appmodel.Event
	timeout := time.After(eventTimeout)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for merge events, got %d", len(out))
			return out
		}
	}
}

func assertNoStagingFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "staging file left behind: %s", e.Name())
	}
}

func TestMerge_TwoValidDocuments(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf", testutil.SizeA)
	b := testutil.WritePDF(t, dir, "B.pdf", testutil.SizeB)
	out := filepath.Join(dir, "merged.pdf")

	outcome := newTestService().Merge("job", []string{a, b}, out, nil)

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, 2, outcome.Processed)
	assert.Equal(t, 2, outcome.Pages)
	assert.Empty(t, outcome.Skipped)
	assert.Equal(t, []float64{testutil.SizeA.Width, testutil.SizeB.Width}, pageWidths(t, out))
	assert.Equal(t, "Successfully merged 2 PDFs!\nSaved to: "+out, outcome.Message)
	assertNoStagingFiles(t, dir)
}

func TestMerge_SkipsInvalidInput(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf", testutil.SizeA, testutil.SizeC)
	invalid := testutil.WriteFile(t, dir, "invalid.txt", []byte("not a pdf"))
	b := testutil.WritePDF(t, dir, "B.pdf", testutil.SizeB)
	out := filepath.Join(dir, "merged.pdf")

	outcome := newTestService().Merge("job", []string{a, invalid, b}, out, nil)

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, 2, outcome.Processed)
	assert.Equal(t, []string{invalid}, outcome.Skipped)
	assert.Equal(t, []float64{testutil.SizeA.Width, testutil.SizeC.Width, testutil.SizeB.Width}, pageWidths(t, out))
}

func TestMerge_SkipsUnreadableInput(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf", testutil.SizeA)
	gone := filepath.Join(dir, "deleted.pdf")
	out := filepath.Join(dir, "merged.pdf")

	outcome := newTestService().Merge("job", []string{gone, a}, out, nil)

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, 1, outcome.Processed)
	assert.Equal(t, []string{gone}, outcome.Skipped)
}

func TestMerge_AllInvalidWritesNothing(t *testing.T) {
	dir := t.TempDir()
	x := testutil.WriteFile(t, dir, "x.pdf", []byte("%PDF-garbage"))
	y := testutil.WriteFile(t, dir, "y.txt", []byte("hello"))
	out := filepath.Join(dir, "merged.pdf")

	outcome := newTestService().Merge("job", []string{x, y}, out, nil)

	assert.False(t, outcome.Success)
	assert.ErrorIs(t, outcome.Err, appmodel.ErrNoValidInput)
	assert.Equal(t, "no valid PDF files to merge", outcome.Message)
	assert.NoFileExists(t, out)
	assertNoStagingFiles(t, dir)
}

func TestMerge_Preconditions(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "merged.pdf")

	outcome := newTestService().Merge("job", nil, out, nil)
	assert.ErrorIs(t, outcome.Err, appmodel.ErrNoInput)
	assert.NoFileExists(t, out)

	outcome = newTestService().Merge("job", []string{"/a.pdf"}, "", nil)
	assert.ErrorIs(t, outcome.Err, appmodel.ErrNoOutputPath)
}

func TestMerge_CreatesOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf")
	out := filepath.Join(dir, "nested", "deeper", "merged.pdf")

	outcome := newTestService().Merge("job", []string{a}, out, nil)

	require.True(t, outcome.Success, outcome.Message)
	assert.FileExists(t, out)
}

func TestMerge_OutputDirectoryBlocked(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf")
	blocker := testutil.WriteFile(t, dir, "blocker", []byte("x"))

	outcome := newTestService().Merge("job", []string{a}, filepath.Join(blocker, "merged.pdf"), nil)

	assert.False(t, outcome.Success)
	var ioErr *appmodel.IOError
	require.ErrorAs(t, outcome.Err, &ioErr)
	assert.Equal(t, "mkdir", ioErr.Op)
	assert.True(t, strings.HasPrefix(outcome.Message, "Error during merging:"))
}

func TestMerge_OverwritesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf", testutil.SizeA)
	out := testutil.WriteFile(t, dir, "merged.pdf", []byte("old contents"))

	outcome := newTestService().Merge("job", []string{a}, out, nil)

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, []float64{testutil.SizeA.Width}, pageWidths(t, out))
}

func TestMerge_WriteFailureLeavesNoPartialFile(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf")
	// the destination is a directory, so the final rename fails
	out := filepath.Join(dir, "merged.pdf")
	require.NoError(t, os.Mkdir(out, 0755))
	testutil.WriteFile(t, out, "keep.txt", []byte("x"))

	outcome := newTestService().Merge("job", []string{a}, out, nil)

	assert.False(t, outcome.Success)
	var ioErr *appmodel.IOError
	require.ErrorAs(t, outcome.Err, &ioErr)
	assertNoStagingFiles(t, dir)
}

func TestMerge_ProgressEvents(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf")
	bad := testutil.WriteFile(t, dir, "bad.pdf", []byte("bad"))
	b := testutil.WritePDF(t, dir, "B.pdf")

	var events []appmodel.Event
	newTestService().Merge("job-1", []string{a, bad, b}, filepath.Join(dir, "out.pdf"), func(ev appmodel.Event) {
		events = append(events, ev)
	})

	require.Len(t, events, 3)
	assert.Equal(t, []int{0, 33, 66}, []int{events[0].Percent, events[1].Percent, events[2].Percent})
	assert.Equal(t, "Processing A.pdf... (1/3)", events[0].Message)
	assert.Equal(t, "Processing bad.pdf... (2/3)", events[1].Message)
	assert.Equal(t, "Processing B.pdf... (3/3)", events[2].Message)
	for _, ev := range events {
		assert.Equal(t, appmodel.EventProgress, ev.Kind)
		assert.Equal(t, "job-1", ev.JobID)
	}
}

func TestMerge_SkipsInputThatPanicsValidator(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf", testutil.SizeA)
	bad := testutil.WriteFile(t, dir, "bad.pdf", []byte("%PDF-1.4\ncorrupt xref\n"))
	b := testutil.WritePDF(t, dir, "B.pdf", testutil.SizeB)
	out := filepath.Join(dir, "merged.pdf")

	pdfValidator := pdfdoc.NewValidator(false)
	svc := newTestService(WithValidator(validatorFunc(func(data []byte) (int, error) {
		if bytes.Contains(data, []byte("corrupt xref")) {
			panic("runtime error: invalid memory address or nil pointer dereference")
		}
		return pdfValidator.Validate(data)
	})))
	outcome := svc.Merge("job", []string{a, bad, b}, out, nil)

	require.True(t, outcome.Success, outcome.Message)
	assert.Equal(t, 2, outcome.Processed)
	assert.Equal(t, []string{bad}, outcome.Skipped)
	assert.Equal(t, []float64{testutil.SizeA.Width, testutil.SizeB.Width}, pageWidths(t, out))
	assertNoStagingFiles(t, dir)
}

func TestMerge_AllInputsPanicValidator(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf")
	out := filepath.Join(dir, "merged.pdf")

	svc := newTestService(WithValidator(validatorFunc(func([]byte) (int, error) {
		panic("corrupt xref")
	})))
	outcome := svc.Merge("job", []string{a}, out, nil)

	assert.False(t, outcome.Success)
	assert.ErrorIs(t, outcome.Err, appmodel.ErrNoValidInput)
	assert.Equal(t, []string{a}, outcome.Skipped)
	assert.NoFileExists(t, out)
}

func TestStart_EventStream(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf", testutil.SizeA)
	b := testutil.WritePDF(t, dir, "B.pdf", testutil.SizeB)
	out := filepath.Join(dir, "merged.pdf")
	svc := newTestService()

	assert.Equal(t, appmodel.JobStatusIdle, svc.Status())

	job, events, err := svc.Start([]string{a, b}, out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(job.ID, JobIDPrefix))
	assert.Equal(t, appmodel.JobStatusRunning, job.Status)

	got := drain(t, events)
	require.Len(t, got, 3)
	assert.Equal(t, appmodel.EventProgress, got[0].Kind)
	assert.Equal(t, appmodel.EventProgress, got[1].Kind)
	assert.Equal(t, appmodel.EventComplete, got[2].Kind)
	require.NotNil(t, got[2].Outcome)
	assert.True(t, got[2].Outcome.Success)
	assert.Equal(t, 100, got[2].Percent)

	assert.False(t, svc.IsRunning())
	assert.Equal(t, appmodel.JobStatusCompleted, svc.Status())
	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, job.ID, current.ID)
	assert.Equal(t, 2, current.Processed)
	assert.Equal(t, []float64{testutil.SizeA.Width, testutil.SizeB.Width}, pageWidths(t, out))
}

func TestStart_Preconditions(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Start(nil, "/tmp/out.pdf")
	assert.ErrorIs(t, err, appmodel.ErrNoInput)

	_, _, err = svc.Start([]string{"/tmp/a.pdf"}, "")
	assert.ErrorIs(t, err, appmodel.ErrNoOutputPath)

	assert.False(t, svc.IsRunning())
	_, ok := svc.Current()
	assert.False(t, ok)
}

func TestStart_FailedJobReportsFailure(t *testing.T) {
	dir := t.TempDir()
	bad := testutil.WriteFile(t, dir, "bad.pdf", []byte("bad"))
	svc := newTestService()

	_, events, err := svc.Start([]string{bad}, filepath.Join(dir, "out.pdf"))
	require.NoError(t, err)

	got := drain(t, events)
	require.Len(t, got, 2)
	last := got[len(got)-1]
	assert.Equal(t, appmodel.EventComplete, last.Kind)
	assert.False(t, last.Outcome.Success)
	assert.Equal(t, appmodel.JobStatusFailed, svc.Status())
	assert.NoFileExists(t, filepath.Join(dir, "out.pdf"))
}

func TestStart_RejectsConcurrentJob(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf", testutil.SizeA)
	b := testutil.WritePDF(t, dir, "B.pdf", testutil.SizeB)
	out := filepath.Join(dir, "merged.pdf")

	gate := make(chan struct{})
	entered := make(chan struct{}, 2)
	pdfValidator := pdfdoc.NewValidator(false)
	svc := newTestService(WithValidator(validatorFunc(func(data []byte) (int, error) {
		entered <- struct{}{}
		<-gate
		return pdfValidator.Validate(data)
	})))

	first, events, err := svc.Start([]string{a, b}, out)
	require.NoError(t, err)

	select {
	case <-entered:
	case <-time.After(eventTimeout):
		t.Fatal("worker did not start validating")
	}
	assert.True(t, svc.IsRunning())

	second, secondEvents, err := svc.Start([]string{b}, filepath.Join(dir, "other.pdf"))
	assert.ErrorIs(t, err, appmodel.ErrMergeRunning)
	assert.Nil(t, second)
	assert.Nil(t, secondEvents)

	close(gate)
	got := drain(t, events)

	require.Len(t, got, 3)
	for i, ev := range got {
		assert.Equal(t, first.ID, ev.JobID, "event %d", i)
	}
	assert.Equal(t, 0, got[0].Percent)
	assert.Equal(t, 50, got[1].Percent)
	assert.True(t, got[2].Outcome.Success)
	assert.NoFileExists(t, filepath.Join(dir, "other.pdf"))

	// a finished job no longer blocks new ones
	_, events, err = svc.Start([]string{b}, filepath.Join(dir, "other.pdf"))
	require.NoError(t, err)
	got = drain(t, events)
	assert.True(t, got[len(got)-1].Outcome.Success)
}

func TestStart_SnapshotIsolation(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WritePDF(t, dir, "A.pdf", testutil.SizeA)
	b := testutil.WritePDF(t, dir, "B.pdf", testutil.SizeB)
	out := filepath.Join(dir, "merged.pdf")
	inputs := []string{a, b}

	_, events, err := newTestService().Start(inputs, out)
	require.NoError(t, err)
	inputs[0], inputs[1] = b, a

	drain(t, events)
	assert.Equal(t, []float64{testutil.SizeA.Width, testutil.SizeB.Width}, pageWidths(t, out))
}

func TestGenerateJobID(t *testing.T) {
	id1 := generateJobID()
	id2 := generateJobID()

	assert.NotEqual(t, id1, id2)
	assert.True(t, strings.HasPrefix(id1, JobIDPrefix))
	assert.Len(t, id1, len(JobIDPrefix)+36)
}

type validatorFunc func([]byte) (int, error)

func (f validatorFunc) Validate(data []byte) (int, error) {
	return f(data)
}

var _ Validator = validatorFunc(nil)
var _ Merger = (*Service)(nil)
