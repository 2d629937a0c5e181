package client

import "sync"

// Flash is a one-shot message handed from a form submission to the list view.
// Consume returns it at most once, so navigating back does not replay it.
type Flash struct {
	mu  sync.Mutex
	msg string
}

func (f *Flash) Set(msg string) {
	f.mu.Lock()
	f.msg = msg
	f.mu.Unlock()
}

func (f *Flash) Consume() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.msg == "" {
		return "", false
	}
	msg := f.msg
	f.msg = ""
	return msg, true
}
