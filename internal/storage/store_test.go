package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/astrogolf/internal/dynamo"
)

func sampleResult() *dynamo.Result {
	return &dynamo.Result{
		States: []dynamo.State{
			{1.0, 0.0, 0, 0, 6.283185307179586, 0},
			{0.9, -0.1, 1e-9, 0, 6.2, 0},
		},
		Times: []float64{0.0, 0.01},
		Metrics: map[string]float64{
			"energy": 1.5,
		},
		Frames: 2,
	}
}

var sampleInfo = RunInfo{
	Scenario: "sun-earth",
	Model:    "nbody",
	Solver:   "rk4",
	FrameDt:  0.01,
	Duration: 1.0,
	Masses:   []float64{1},
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleInfo, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Model != "nbody" || meta.Scenario != "sun-earth" {
		t.Errorf("unexpected metadata: %+v", meta)
	}

	if meta.Frames != 2 {
		t.Errorf("expected 2 frames, got %d", meta.Frames)
	}

	if meta.Metrics["energy"] != 1.5 {
		t.Errorf("expected energy 1.5, got %f", meta.Metrics["energy"])
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}

	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 states and times, got %d and %d", len(states), len(times))
	}

	// values survive exactly
	want := sampleResult()
	for i := range want.States {
		for j, v := range want.States[i] {
			if states[i][j] != v {
				t.Errorf("state[%d][%d] = %g, want %g", i, j, states[i][j], v)
			}
		}
	}
}

func TestStoreSaveCreatesRoot(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nested", "runs"))
	if _, err := st.Save(sampleInfo, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
}

func TestStoreUniqueIDs(t *testing.T) {
	st := New(t.TempDir())
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		id, err := st.Save(sampleInfo, sampleResult())
		if err != nil {
			t.Fatal(err)
		}
		if seen[id] {
			t.Fatalf("duplicate run id %s", id)
		}
		seen[id] = true
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}

	if _, err := st.Save(sampleInfo, sampleResult()); err != nil {
		t.Fatal(err)
	}
	other := sampleInfo
	other.Scenario = "level 3"
	if _, err := st.Save(other, sampleResult()); err != nil {
		t.Fatal(err)
	}
	// junk is skipped
	if err := os.Mkdir(filepath.Join(tmpDir, "not-a-run"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Load: err = %v, want ErrRunNotFound", err)
	}
	if _, _, err := st.LoadStates("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("LoadStates: err = %v, want ErrRunNotFound", err)
	}
	if err := st.Delete("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Delete: err = %v, want ErrRunNotFound", err)
	}
}

func TestStoreRaggedRows(t *testing.T) {
	st := New(t.TempDir())
	result := &dynamo.Result{
		States: []dynamo.State{{1, 2, 3, 4, 5, 6}, {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
		Times:  []float64{0, 1},
	}

	id, err := st.Save(sampleInfo, result)
	if err != nil {
		t.Fatal(err)
	}
	_, got, err := st.LoadResult(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.States[0]) != 6 || len(got.States[1]) != 12 {
		t.Errorf("row widths = %d, %d; want 6, 12", len(got.States[0]), len(got.States[1]))
	}
	if got.Frames != 2 {
		t.Errorf("frames = %d", got.Frames)
	}

	if err := st.Delete(id); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load(id); !errors.Is(err, ErrRunNotFound) {
		t.Error("run should be gone after Delete")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, sampleInfo, sampleResult()); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatal(err)
	}
	if data.Frames != 2 || data.Scenario != "sun-earth" || len(data.States[1]) != 6 {
		t.Errorf("unexpected export: %+v", data)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleInfo, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), raw) {
		t.Error("WriteJSON and ExportJSON disagree")
	}
}

func TestStoreDropsNonFiniteMetrics(t *testing.T) {
	st := New(t.TempDir())
	result := sampleResult()
	result.Metrics["separation_0_1"] = math.Inf(1)

	id, err := st.Save(sampleInfo, result)
	if err != nil {
		t.Fatal(err)
	}
	meta, err := st.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := meta.Metrics["separation_0_1"]; ok {
		t.Error("non-finite metric should not be stored")
	}
	if meta.Metrics["energy"] != 1.5 {
		t.Error("finite metrics should be kept")
	}
}
