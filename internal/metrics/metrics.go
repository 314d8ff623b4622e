package metrics

import "sync"

// Per-token list prices in USD for the pinned model.
const (
	InputPrice  = 0.25 / 1e6
	OutputPrice = 1.25 / 1e6
)

// Usage accumulates upstream token consumption across requests.
type Usage struct {
	mu     sync.Mutex
	input  int
	output int
	cost   float64
}

func (u *Usage) Add(input, output int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.input += input
	u.output += output
	u.cost += float64(input)*InputPrice + float64(output)*OutputPrice
}

func (u *Usage) Tokens() (input, output int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.input, u.output
}

func (u *Usage) Cost() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cost
}
