package measurement

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFinishWritesReport(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(cwd)

	m := New([]string{"commit", "decommit"}, 2)
	for iter := 0; iter < 2; iter++ {
		m.StartSubTask("commit", iter)
		time.Sleep(time.Millisecond)
		m.EndSubTask("commit", iter)

		m.StartSubTask("decommit", iter)
		time.Sleep(time.Millisecond)
		m.EndSubTask("decommit", iter)
	}

	if err := m.Finish("dlogproto", []string{"secp256k1", "80"}); err != nil {
		t.Fatalf("finish: %v", err)
	}

	path := filepath.Join(dir, "dlogproto*secp256k1*80.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var report []map[string]string
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("expected 2 tasks in report, got %d", len(report))
	}
	for _, task := range report {
		if _, ok := task["iteration_0"]; !ok {
			t.Fatalf("missing iteration_0 in %+v", task)
		}
		if _, ok := task["iteration_1"]; !ok {
			t.Fatalf("missing iteration_1 in %+v", task)
		}
	}
}

func TestUnknownTaskNameIsIgnored(t *testing.T) {
	m := New([]string{"commit"}, 1)
	m.StartSubTask("nonexistent", 0)
	m.EndSubTask("nonexistent", 0)
}
