package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "in.txt")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("1,2\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{target}, func(p string) {
			select {
			case changed <- p:
			default:
			}
		}, nil)
	}()

	// The watcher registers asynchronously, so keep writing until it reports
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	var got string
loop:
	for {
		select {
		case got = <-changed:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(other, []byte("ignored"), 0644))
			require.NoError(t, os.WriteFile(target, []byte("3,4\n"), 0644))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}
	require.Equal(t, target, got)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), []string{filepath.Join(t.TempDir(), "gone", "in.txt")}, func(string) {}, nil)
	require.Error(t, err)
}
