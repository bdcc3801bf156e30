package tracker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedLock_Serializes_Same_Pair(t *testing.T) {
	req := require.New(t)
	locks := newKeyedLock()

	const workers = 20
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			locks.lock(1, 2)
			counter++
			locks.unlock(1, 2)
		}()
	}
	wg.Wait()

	req.Equal(workers, counter)
}

func TestKeyedLock_Releases_Entries(t *testing.T) {
	req := require.New(t)
	locks := newKeyedLock()

	locks.lock(1, 2)
	locks.lock(3, 4)
	locks.unlock(3, 4)
	locks.unlock(1, 2)

	// The map must not retain every pair ever locked
	locks.mu.Lock()
	defer locks.mu.Unlock()
	req.Empty(locks.locks)
}

func TestKeyedLock_Distinct_Pairs_Do_Not_Block(t *testing.T) {
	locks := newKeyedLock()

	locks.lock(1, 2)
	defer locks.unlock(1, 2)

	done := make(chan struct{})
	go func() {
		locks.lock(1, 3)
		locks.unlock(1, 3)
		close(done)
	}()
	<-done
}
