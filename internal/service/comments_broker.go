package service

import "sync"

// CommentBroker fans comment updates out to live subscribers. Every publish
// carries the full updated comment list for one document, not a delta, so a
// subscriber never needs to reconstruct state.
type CommentBroker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []string]struct{}
}

// NewCommentBroker creates an empty broker
func NewCommentBroker() *CommentBroker {
	return &CommentBroker{
		subs: make(map[string]map[chan []string]struct{}),
	}
}

// Subscribe registers interest in one document's comment thread. The
// returned cancel function must be called to release the subscription;
// it closes the channel.
func (b *CommentBroker) Subscribe(documentID string) (<-chan []string, func()) {
	ch := make(chan []string, 8)

	b.mu.Lock()
	if b.subs[documentID] == nil {
		b.subs[documentID] = make(map[chan []string]struct{})
	}
	b.subs[documentID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if set, ok := b.subs[documentID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(b.subs, documentID)
			}
		}
	}

	return ch, cancel
}

// Publish delivers the full comment list to every subscriber of a document.
// Slow subscribers are skipped rather than blocking the writer; they catch
// up on the next publish.
func (b *CommentBroker) Publish(documentID string, comments []string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[documentID] {
		select {
		case ch <- comments:
		default:
		}
	}
}
