package executor

import "time"

// Clock supplies the block time of an operation in unix seconds
type Clock interface {
	Now() uint64
}

type wallClock struct{}

func (wallClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// FixedClock always reports the same time, used for reproducible batches
type FixedClock uint64

func (c FixedClock) Now() uint64 {
	return uint64(c)
}
