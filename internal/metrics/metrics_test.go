package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageAdd(t *testing.T) {
	var u Usage
	u.Add(1_000_000, 0)
	u.Add(0, 1_000_000)

	in, out := u.Tokens()
	assert.Equal(t, 1_000_000, in)
	assert.Equal(t, 1_000_000, out)
	assert.InDelta(t, 1.50, u.Cost(), 1e-9)
}

func TestUsageConcurrent(t *testing.T) {
	var u Usage
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u.Add(10, 2)
		}()
	}
	wg.Wait()

	in, out := u.Tokens()
	assert.Equal(t, 500, in)
	assert.Equal(t, 100, out)
}
