package common

// ReentrancyGuard rejects a contract method that is entered again before it returned
type ReentrancyGuard struct {
	entered bool
}

func NewReentrancyGuard() *ReentrancyGuard {
	return &ReentrancyGuard{}
}

func (rg *ReentrancyGuard) Enter() error {
	if rg.entered {
		return ErrReentrantCall
	}

	rg.entered = true
	return nil
}

func (rg *ReentrancyGuard) Exit() {
	rg.entered = false
}

// Do runs fn with the guard held, the guard is released even when fn panics
func (rg *ReentrancyGuard) Do(fn func() error) error {
	if err := rg.Enter(); err != nil {
		return err
	}
	defer rg.Exit()
	return fn()
}
