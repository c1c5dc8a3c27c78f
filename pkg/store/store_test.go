package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.nsh.sh/pkg/must"
	"src.nsh.sh/pkg/testutil"
)

func testStore(t *testing.T) (Store, string) {
	t.Helper()
	dbPath := filepath.Join(testutil.TempDir(t), "history.db")
	s := must.OK1(NewStore(dbPath))
	t.Cleanup(func() { s.Close() })
	return s, dbPath
}

func TestAddAndListCmds(t *testing.T) {
	s, _ := testStore(t)

	if seq := must.OK1(s.NextCmdSeq()); seq != 1 {
		t.Errorf("NextCmdSeq of empty store = %d, want 1", seq)
	}

	must.OK1(s.AddCmd("echo 1"))
	must.OK1(s.AddCmd("echo 2"))
	seq := must.OK1(s.AddCmd("echo 3"))
	if seq != 3 {
		t.Errorf("third AddCmd seq = %d, want 3", seq)
	}

	all := must.OK1(s.Cmds(0, must.OK1(s.NextCmdSeq())))
	want := []string{"echo 1", "echo 2", "echo 3"}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("Cmds mismatch (-want +got):\n%s", diff)
	}

	some := must.OK1(s.Cmds(2, 3))
	if diff := cmp.Diff([]string{"echo 2"}, some); diff != "" {
		t.Errorf("Cmds(2, 3) mismatch (-want +got):\n%s", diff)
	}
}

func TestClearCmds(t *testing.T) {
	s, _ := testStore(t)
	must.OK1(s.AddCmd("echo 1"))
	must.OK(s.ClearCmds())

	all := must.OK1(s.Cmds(0, 100))
	if len(all) != 0 {
		t.Errorf("Cmds after ClearCmds = %v, want empty", all)
	}
}

func TestReopenKeepsCmds(t *testing.T) {
	s, dbPath := testStore(t)
	must.OK1(s.AddCmd("echo persisted"))
	must.OK(s.Close())

	reopened := must.OK1(NewStore(dbPath))
	defer reopened.Close()
	all := must.OK1(reopened.Cmds(0, 100))
	if diff := cmp.Diff([]string{"echo persisted"}, all); diff != "" {
		t.Errorf("Cmds after reopen mismatch (-want +got):\n%s", diff)
	}
}
