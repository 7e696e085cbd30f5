package memory

// SessionCount reports the live token entries.
func (a *Accounts) SessionCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.tokens)
}
