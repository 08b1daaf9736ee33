package repo_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/keshon/lvc/internal/config"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/logging"
	"github.com/keshon/lvc/internal/repo"
	"github.com/keshon/lvc/internal/repo/meta"
	"github.com/keshon/lvc/internal/repo/store/object"
)

func newRepo(t *testing.T, opts repo.InitOptions) (*repo.Repository, *fs.MemoryFS) {
	t.Helper()
	m := fs.NewMemoryFS()
	if err := m.MkdirAll("work", 0o755); err != nil {
		t.Fatal(err)
	}

	r, err := repo.Init(config.NewRepoConfig("work"), m, opts)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	pin(r)
	return r, m
}

// pin gives r a quiet logger and a clock that ticks one minute per commit.
func pin(r *repo.Repository) {
	r.Logger = logging.Discard()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
}

func write(t *testing.T, r *repo.Repository, p, content string) {
	t.Helper()
	if err := r.Work.Write(p, []byte(content)); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

func read(t *testing.T, r *repo.Repository, p string) string {
	t.Helper()
	data, err := r.Work.Read(p)
	if err != nil {
		t.Fatalf("read %s: %v", p, err)
	}
	return string(data)
}

func commitFiles(t *testing.T, r *repo.Repository, msg string, files map[string]string) *meta.Commit {
	t.Helper()
	for p, content := range files {
		write(t, r, p, content)
		if err := r.Add(p); err != nil {
			t.Fatalf("add %s: %v", p, err)
		}
	}
	c, err := r.Commit(msg)
	if err != nil {
		t.Fatalf("commit %q: %v", msg, err)
	}
	return c
}

func headID(t *testing.T, r *repo.Repository) string {
	t.Helper()
	_, head, err := r.Head()
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	return head.ID
}

func commitCount(t *testing.T, r *repo.Repository) int {
	t.Helper()
	all, err := r.GlobalLog()
	if err != nil {
		t.Fatalf("GlobalLog failed: %v", err)
	}
	return len(all)
}

// failingRemoveFS refuses every Remove.
type failingRemoveFS struct {
	fs.FS
}

func (failingRemoveFS) Remove(string) error {
	return errors.New("remove refused")
}

func TestInitCreatesRootCommit(t *testing.T) {
	r, m := newRepo(t, repo.InitOptions{})

	log, err := r.Log()
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(log) != 1 || log[0].Message != meta.RootMessage || len(log[0].Parents) != 0 {
		t.Fatalf("expected only the root commit, got %+v", log)
	}

	branch, _, err := r.Head()
	if err != nil || branch != config.DefaultBranch {
		t.Fatalf("expected branch %q, got %q (%v)", config.DefaultBranch, branch, err)
	}
	if _, err := uuid.Parse(r.Settings.ID); err != nil {
		t.Errorf("expected a uuid repository id, got %q", r.Settings.ID)
	}

	if _, err := repo.Init(config.NewRepoConfig("work"), m, repo.InitOptions{}); !errors.Is(err, lvcerrors.ErrRepositoryExists) {
		t.Errorf("expected ErrRepositoryExists, got %v", err)
	}
}

func TestInitOptions(t *testing.T) {
	r, m := newRepo(t, repo.InitOptions{Hash: "sha256", DefaultBranch: "main"})

	if r.Hash() != "sha256" {
		t.Errorf("expected sha256 hasher, got %s", r.Hash())
	}
	branch, _, _ := r.Head()
	if branch != "main" {
		t.Errorf("expected branch main, got %s", branch)
	}

	reopened, err := repo.Open(config.NewRepoConfig("work"), m)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if reopened.Hash() != "sha256" || reopened.Settings.ID != r.Settings.ID {
		t.Errorf("settings not persisted: %+v", reopened.Settings)
	}

	if _, err := repo.Init(config.NewRepoConfig("other"), m, repo.InitOptions{Hash: "md5"}); err == nil {
		t.Error("expected unknown hash to fail")
	}
}

func TestOpenWithoutRepository(t *testing.T) {
	m := fs.NewMemoryFS()
	_, err := repo.Open(config.NewRepoConfig("nowhere"), m)
	if !errors.Is(err, lvcerrors.ErrNotRepository) {
		t.Fatalf("expected ErrNotRepository, got %v", err)
	}
}

func TestLogFollowsCommits(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})

	c1 := commitFiles(t, r, "one", map[string]string{"a.txt": "1"})
	c2 := commitFiles(t, r, "two", map[string]string{"a.txt": "2"})
	c3 := commitFiles(t, r, "three", map[string]string{"b.txt": "3"})

	log, err := r.Log()
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	want := []string{c3.ID, c2.ID, c1.ID}
	if len(log) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(log))
	}
	for i, id := range want {
		if log[i].ID != id {
			t.Errorf("log[%d] = %s, want %s", i, log[i].ID, id)
		}
	}
	if log[3].Message != meta.RootMessage {
		t.Errorf("expected root at the end, got %q", log[3].Message)
	}

	if c3.Tracked["a.txt"] != c2.Tracked["a.txt"] {
		t.Error("unstaged files must carry over from the parent")
	}

	all, err := r.GlobalLog()
	if err != nil || len(all) != 4 {
		t.Fatalf("expected 4 commits in global log, got %d (%v)", len(all), err)
	}

	ids, err := r.Find("two")
	if err != nil || len(ids) != 1 || ids[0] != c2.ID {
		t.Errorf("Find returned %v, %v", ids, err)
	}
	if _, err := r.Find("nope"); !errors.Is(err, lvcerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCommitPreconditions(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	before := headID(t, r)

	if _, err := r.Commit("nothing"); !errors.Is(err, lvcerrors.ErrNothingStaged) {
		t.Errorf("expected ErrNothingStaged, got %v", err)
	}

	write(t, r, "a.txt", "a")
	if err := r.Add("a.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Commit("   "); !errors.Is(err, lvcerrors.ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}

	if headID(t, r) != before {
		t.Error("failed commits must not move the branch")
	}
	st, _ := r.Status()
	if len(st.Staged) != 1 {
		t.Errorf("failed commit must keep the staging area, got %v", st.Staged)
	}
}

func TestAddMissingFile(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	if err := r.Add("ghost.txt"); !errors.Is(err, lvcerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddIdenticalToHeadClearsStaging(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	commitFiles(t, r, "base", map[string]string{"a.txt": "v1"})

	write(t, r, "a.txt", "v2")
	if err := r.Add("a.txt"); err != nil {
		t.Fatal(err)
	}
	write(t, r, "a.txt", "v1")
	if err := r.Add("a.txt"); err != nil {
		t.Fatal(err)
	}

	st, err := r.Status()
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Staged) != 0 || len(st.Modified) != 0 {
		t.Errorf("expected clean status, got %+v", st)
	}

	if err := r.Remove("a.txt"); err != nil {
		t.Fatal(err)
	}
	write(t, r, "a.txt", "v1")
	if err := r.Add("a.txt"); err != nil {
		t.Fatal(err)
	}
	st, _ = r.Status()
	if len(st.Removed) != 0 {
		t.Errorf("re-adding must cancel the removal, got %v", st.Removed)
	}
}

func TestRemove(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	commitFiles(t, r, "base", map[string]string{"tracked.txt": "t"})

	write(t, r, "loose.txt", "l")
	if err := r.Remove("loose.txt"); !errors.Is(err, lvcerrors.ErrNothingToRemove) {
		t.Errorf("expected ErrNothingToRemove, got %v", err)
	}

	write(t, r, "new.txt", "n")
	if err := r.Add("new.txt"); err != nil {
		t.Fatal(err)
	}
	if err := r.Remove("new.txt"); err != nil {
		t.Fatal(err)
	}
	if !r.Work.Exists("new.txt") {
		t.Error("unstaging must not delete the working file")
	}

	if err := r.Remove("tracked.txt"); err != nil {
		t.Fatal(err)
	}
	if r.Work.Exists("tracked.txt") {
		t.Error("removing a tracked file must delete it")
	}

	c, err := r.Commit("drop")
	if err != nil {
		t.Fatal(err)
	}
	if c.IsTracked("tracked.txt") || c.IsTracked("new.txt") {
		t.Errorf("unexpected tracked files %v", c.Tracked)
	}
}

func TestRemoveFailureKeepsStage(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	commitFiles(t, r, "base", map[string]string{"tracked.txt": "t"})

	r.Work.FS = failingRemoveFS{r.Work.FS}
	if err := r.Remove("tracked.txt"); err == nil {
		t.Fatal("expected the failed delete to be reported")
	}

	st, err := r.Status()
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Removed) != 0 {
		t.Errorf("failed rm must not stage a removal, got %v", st.Removed)
	}
	if !r.Work.Exists("tracked.txt") {
		t.Error("file must still exist")
	}
}

func TestStatus(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	commitFiles(t, r, "base", map[string]string{"a.txt": "a", "b.txt": "b", "c.txt": "c"})
	if err := r.Branch("dev"); err != nil {
		t.Fatal(err)
	}

	write(t, r, "a.txt", "a2")
	if err := r.Work.Remove("b.txt"); err != nil {
		t.Fatal(err)
	}
	if err := r.Remove("c.txt"); err != nil {
		t.Fatal(err)
	}
	write(t, r, "d.txt", "d")
	if err := r.Add("d.txt"); err != nil {
		t.Fatal(err)
	}
	write(t, r, "d.txt", "d2")
	write(t, r, "e.txt", "e")
	write(t, r, "c.txt", "back")

	st, err := r.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	equal := func(name string, got, want []string) {
		t.Helper()
		if len(got) != len(want) {
			t.Errorf("%s: got %v, want %v", name, got, want)
			return
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: got %v, want %v", name, got, want)
				return
			}
		}
	}

	if st.Branch != "master" {
		t.Errorf("unexpected branch %s", st.Branch)
	}
	equal("branches", st.Branches, []string{"dev", "master"})
	equal("staged", st.Staged, []string{"d.txt"})
	equal("removed", st.Removed, []string{"c.txt"})
	equal("untracked", st.Untracked, []string{"c.txt", "e.txt"})

	want := []repo.FileChange{
		{Path: "a.txt", State: repo.Modified},
		{Path: "b.txt", State: repo.Deleted},
		{Path: "d.txt", State: repo.Modified},
	}
	if len(st.Modified) != len(want) {
		t.Fatalf("modified: got %v, want %v", st.Modified, want)
	}
	for i := range want {
		if st.Modified[i] != want[i] {
			t.Errorf("modified[%d] = %v, want %v", i, st.Modified[i], want[i])
		}
	}
}

func TestCheckoutFile(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	c1 := commitFiles(t, r, "one", map[string]string{"a.txt": "first"})
	commitFiles(t, r, "two", map[string]string{"a.txt": "second"})

	write(t, r, "a.txt", "scratch")
	if err := r.CheckoutFile("a.txt", ""); err != nil {
		t.Fatal(err)
	}
	if got := read(t, r, "a.txt"); got != "second" {
		t.Errorf("expected head version, got %q", got)
	}

	if err := r.CheckoutFile("a.txt", c1.ID[:8]); err != nil {
		t.Fatal(err)
	}
	if got := read(t, r, "a.txt"); got != "first" {
		t.Errorf("expected first version, got %q", got)
	}

	if err := r.CheckoutFile("missing.txt", c1.ID); !errors.Is(err, lvcerrors.ErrFileNotInCommit) {
		t.Errorf("expected ErrFileNotInCommit, got %v", err)
	}
	if err := r.CheckoutFile("a.txt", "zzzz"); !errors.Is(err, lvcerrors.ErrNoSuchCommit) {
		t.Errorf("expected ErrNoSuchCommit, got %v", err)
	}
}

func TestCheckoutBranch(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	commitFiles(t, r, "base", map[string]string{"shared.txt": "base"})
	if err := r.Branch("dev"); err != nil {
		t.Fatal(err)
	}
	commitFiles(t, r, "master only", map[string]string{"m.txt": "m"})

	if err := r.CheckoutBranch("master"); !errors.Is(err, lvcerrors.ErrSameBranch) {
		t.Errorf("expected ErrSameBranch, got %v", err)
	}
	if err := r.CheckoutBranch("nope"); !errors.Is(err, lvcerrors.ErrNoSuchBranch) {
		t.Errorf("expected ErrNoSuchBranch, got %v", err)
	}

	if err := r.CheckoutBranch("dev"); err != nil {
		t.Fatalf("checkout dev: %v", err)
	}
	if r.Work.Exists("m.txt") {
		t.Error("files tracked only by the old head must be deleted")
	}
	if got := read(t, r, "shared.txt"); got != "base" {
		t.Errorf("unexpected shared.txt %q", got)
	}

	if err := r.CheckoutBranch("master"); err != nil {
		t.Fatal(err)
	}
	if got := read(t, r, "m.txt"); got != "m" {
		t.Errorf("expected m.txt restored, got %q", got)
	}
}

func TestUntrackedFileGuard(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	if err := r.Branch("other"); err != nil {
		t.Fatal(err)
	}
	if err := r.CheckoutBranch("other"); err != nil {
		t.Fatal(err)
	}
	commitFiles(t, r, "x on other", map[string]string{"x.txt": "theirs"})
	if err := r.CheckoutBranch("master"); err != nil {
		t.Fatal(err)
	}

	write(t, r, "x.txt", "mine")
	err := r.CheckoutBranch("other")
	if !errors.Is(err, lvcerrors.ErrWouldOverwriteUntracked) {
		t.Fatalf("expected ErrWouldOverwriteUntracked, got %v", err)
	}
	if branch, _, _ := r.Head(); branch != "master" {
		t.Errorf("failed checkout must not move HEAD, on %s", branch)
	}
	if got := read(t, r, "x.txt"); got != "mine" {
		t.Errorf("untracked file clobbered: %q", got)
	}

	if _, err := r.Merge("other"); !errors.Is(err, lvcerrors.ErrWouldOverwriteUntracked) {
		t.Errorf("merge: expected ErrWouldOverwriteUntracked, got %v", err)
	}

	// identical content is not in the way
	write(t, r, "x.txt", "theirs")
	if err := r.CheckoutBranch("other"); err != nil {
		t.Errorf("identical untracked file must not block checkout: %v", err)
	}
}

func TestBranchAndDeleteBranch(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})

	if err := r.Branch("dev"); err != nil {
		t.Fatal(err)
	}
	if err := r.Branch("dev"); !errors.Is(err, lvcerrors.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
	if err := r.Branch("bad/name"); !errors.Is(err, lvcerrors.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation, got %v", err)
	}
	if branch, _, _ := r.Head(); branch != "master" {
		t.Errorf("creating a branch must not switch to it")
	}

	if err := r.DeleteBranch("master"); !errors.Is(err, lvcerrors.ErrCannotDeleteCurrent) {
		t.Errorf("expected ErrCannotDeleteCurrent, got %v", err)
	}
	if err := r.DeleteBranch("nope"); !errors.Is(err, lvcerrors.ErrNoSuchBranch) {
		t.Errorf("expected ErrNoSuchBranch, got %v", err)
	}
	if err := r.DeleteBranch("dev"); err != nil {
		t.Fatal(err)
	}
	if r.Meta.BranchExists("dev") {
		t.Error("branch still exists after delete")
	}
}

func TestReset(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	c1 := commitFiles(t, r, "one", map[string]string{"a.txt": "1"})
	commitFiles(t, r, "two", map[string]string{"a.txt": "2", "b.txt": "b"})

	write(t, r, "c.txt", "staged")
	if err := r.Add("c.txt"); err != nil {
		t.Fatal(err)
	}

	if err := r.Reset(c1.ID); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if headID(t, r) != c1.ID {
		t.Error("reset must move the current branch")
	}
	if got := read(t, r, "a.txt"); got != "1" {
		t.Errorf("unexpected a.txt %q", got)
	}
	if r.Work.Exists("b.txt") {
		t.Error("b.txt is not tracked by the reset target")
	}
	st, _ := r.Status()
	if len(st.Staged) != 0 {
		t.Errorf("reset must clear the staging area, got %v", st.Staged)
	}
}

func TestMergePreconditions(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	if err := r.Branch("other"); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Merge("master"); !errors.Is(err, lvcerrors.ErrSelfMerge) {
		t.Errorf("expected ErrSelfMerge, got %v", err)
	}
	if _, err := r.Merge("ghost"); !errors.Is(err, lvcerrors.ErrNoSuchBranch) {
		t.Errorf("expected ErrNoSuchBranch, got %v", err)
	}

	write(t, r, "a.txt", "a")
	if err := r.Add("a.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Merge("other"); !errors.Is(err, lvcerrors.ErrUncommittedChanges) {
		t.Errorf("expected ErrUncommittedChanges, got %v", err)
	}
	st, _ := r.Status()
	if len(st.Staged) != 1 {
		t.Error("failed merge must leave the staging area untouched")
	}
}

func TestMergeAncestorAndFastForward(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	commitFiles(t, r, "base", map[string]string{"a.txt": "base"})
	if err := r.Branch("old"); err != nil {
		t.Fatal(err)
	}
	if err := r.Branch("ahead"); err != nil {
		t.Fatal(err)
	}
	commitFiles(t, r, "master moves", map[string]string{"m.txt": "m"})

	res, err := r.Merge("old")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != repo.AlreadyAncestor {
		t.Errorf("expected AlreadyAncestor, got %s", res.Outcome)
	}
	if res.Commit != nil {
		t.Error("merging an ancestor must not create a commit")
	}

	if err := r.CheckoutBranch("ahead"); err != nil {
		t.Fatal(err)
	}
	before := commitCount(t, r)
	res, err = r.Merge("master")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != repo.FastForwarded {
		t.Fatalf("expected FastForwarded, got %s", res.Outcome)
	}
	if res.Commit != nil || commitCount(t, r) != before {
		t.Error("fast-forward must not create a commit")
	}
	masterTip, _ := r.Meta.GetBranchTip("master")
	if headID(t, r) != masterTip {
		t.Error("fast-forward must move the current branch to the given tip")
	}
	if got := read(t, r, "m.txt"); got != "m" {
		t.Errorf("fast-forward must update the working tree, got %q", got)
	}
}

func TestMergeKeepsCurrentChanges(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	commitFiles(t, r, "base", map[string]string{"a.txt": "base", "b.txt": "b"})
	if err := r.Branch("other"); err != nil {
		t.Fatal(err)
	}
	commitFiles(t, r, "master edit", map[string]string{"a.txt": "master"})
	head := headID(t, r)

	if err := r.CheckoutBranch("other"); err != nil {
		t.Fatal(err)
	}
	other := commitFiles(t, r, "other adds", map[string]string{"c.txt": "c"})
	if err := r.CheckoutBranch("master"); err != nil {
		t.Fatal(err)
	}

	res, err := r.Merge("other")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if res.Outcome != repo.Merged || len(res.Conflicts) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	c := res.Commit
	if c.Message != "Merged other into master." {
		t.Errorf("unexpected message %q", c.Message)
	}
	if len(c.Parents) != 2 || c.Parents[0] != head || c.Parents[1] != other.ID {
		t.Errorf("unexpected parents %v", c.Parents)
	}
	if got := read(t, r, "a.txt"); got != "master" {
		t.Errorf("current-only change must survive, got %q", got)
	}
	if got := read(t, r, "c.txt"); got != "c" {
		t.Errorf("given-only addition must be checked out, got %q", got)
	}
	if !c.IsTracked("c.txt") || !r.ContentEquals(c, "a.txt", []byte("master")) {
		t.Errorf("unexpected tracked files %v", c.Tracked)
	}

	st, _ := r.Status()
	if len(st.Staged) != 0 || len(st.Removed) != 0 {
		t.Error("merge commit must clear the staging area")
	}
}

func TestMergeRemovesFilesDeletedOnGiven(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	commitFiles(t, r, "base", map[string]string{"a.txt": "a", "b.txt": "b"})
	if err := r.Branch("other"); err != nil {
		t.Fatal(err)
	}
	commitFiles(t, r, "master edit", map[string]string{"a.txt": "a2"})

	if err := r.CheckoutBranch("other"); err != nil {
		t.Fatal(err)
	}
	if err := r.Remove("b.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Commit("drop b"); err != nil {
		t.Fatal(err)
	}
	if err := r.CheckoutBranch("master"); err != nil {
		t.Fatal(err)
	}

	res, err := r.Merge("other")
	if err != nil {
		t.Fatal(err)
	}
	if res.Commit.IsTracked("b.txt") {
		t.Error("b.txt must not be tracked after the merge")
	}
	if r.Work.Exists("b.txt") {
		t.Error("b.txt must be deleted from the working tree")
	}
}

func TestMergeNothingToCommit(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	commitFiles(t, r, "base", map[string]string{"a.txt": "base"})
	if err := r.Branch("other"); err != nil {
		t.Fatal(err)
	}
	commitFiles(t, r, "master same", map[string]string{"a.txt": "same"})
	head := headID(t, r)

	if err := r.CheckoutBranch("other"); err != nil {
		t.Fatal(err)
	}
	commitFiles(t, r, "other same", map[string]string{"a.txt": "same"})
	if err := r.CheckoutBranch("master"); err != nil {
		t.Fatal(err)
	}

	before := commitCount(t, r)
	if _, err := r.Merge("other"); !errors.Is(err, lvcerrors.ErrNothingStaged) {
		t.Fatalf("expected ErrNothingStaged, got %v", err)
	}
	if commitCount(t, r) != before {
		t.Error("a merge with nothing to stage must not create a commit")
	}
	if headID(t, r) != head {
		t.Error("head must not move")
	}
	if got := read(t, r, "a.txt"); got != "same" {
		t.Errorf("working tree changed, got %q", got)
	}
}

func TestMergeConflict(t *testing.T) {
	r, _ := newRepo(t, repo.InitOptions{})
	commitFiles(t, r, "base", map[string]string{"a.txt": "base\n"})
	if err := r.Branch("other"); err != nil {
		t.Fatal(err)
	}
	commitFiles(t, r, "master edit", map[string]string{"a.txt": "master\n"})

	if err := r.CheckoutBranch("other"); err != nil {
		t.Fatal(err)
	}
	commitFiles(t, r, "other edit", map[string]string{"a.txt": "other"})
	if err := r.CheckoutBranch("master"); err != nil {
		t.Fatal(err)
	}

	res, err := r.Merge("other")
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if len(res.Conflicts) != 1 || res.Conflicts[0] != "a.txt" {
		t.Fatalf("expected conflict on a.txt, got %v", res.Conflicts)
	}

	want := "<<<<<<< HEAD\nmaster\n=======\nother\n>>>>>>>\n"
	if got := read(t, r, "a.txt"); got != want {
		t.Errorf("conflict content:\n%q\nwant\n%q", got, want)
	}
	if !r.ContentEquals(res.Commit, "a.txt", []byte(want)) {
		t.Error("the merge commit must record the conflicted content")
	}
	if !res.Commit.IsMerge() {
		t.Error("expected a two-parent commit")
	}
}

func TestVerify(t *testing.T) {
	r, m := newRepo(t, repo.InitOptions{})
	c := commitFiles(t, r, "files", map[string]string{"a.txt": "a", "b.txt": "b"})

	checks, err := r.Verify(false)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if len(checks) != 2 || len(repo.Damaged(checks)) != 0 {
		t.Fatalf("expected two healthy blobs, got %+v", checks)
	}
	if n, _ := r.CountObjects(true); n != 2 {
		t.Errorf("expected 2 objects, got %d", n)
	}

	objects := r.Config.ObjectsDir()
	if err := m.WriteFile(filepath.Join(objects, c.Tracked["a.txt"]), []byte("tampered"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.Remove(filepath.Join(objects, c.Tracked["b.txt"])); err != nil {
		t.Fatal(err)
	}

	checks, err = r.Verify(true)
	if err != nil {
		t.Fatal(err)
	}
	bad := repo.Damaged(checks)
	if len(bad) != 2 {
		t.Fatalf("expected two bad blobs, got %+v", bad)
	}
	status := map[string]object.Status{}
	for _, b := range bad {
		status[b.ID] = b.Status
		if len(b.Commits) != 1 || b.Commits[0] != c.ID {
			t.Errorf("unexpected commits %v", b.Commits)
		}
	}
	if status[c.Tracked["a.txt"]] != object.Damaged {
		t.Errorf("expected a.txt blob damaged, got %s", status[c.Tracked["a.txt"]])
	}
	if status[c.Tracked["b.txt"]] != object.Missing {
		t.Errorf("expected b.txt blob missing, got %s", status[c.Tracked["b.txt"]])
	}
}

func TestCompressedRepository(t *testing.T) {
	r, m := newRepo(t, repo.InitOptions{Compress: true, Hash: "cid"})
	c := commitFiles(t, r, "zipped", map[string]string{"a.txt": "hello hello hello"})

	raw, err := m.ReadFile(filepath.Join(r.Config.ObjectsDir(), c.Tracked["a.txt"]))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte{0x1f, 0x8b}) {
		t.Error("blob is not stored gzip-compressed")
	}

	write(t, r, "a.txt", "changed")
	if err := r.CheckoutFile("a.txt", ""); err != nil {
		t.Fatal(err)
	}
	if got := read(t, r, "a.txt"); got != "hello hello hello" {
		t.Errorf("unexpected content %q", got)
	}

	checks, err := r.Verify(false)
	if err != nil || len(repo.Damaged(checks)) != 0 {
		t.Errorf("compressed blobs must verify: %+v %v", checks, err)
	}
}
