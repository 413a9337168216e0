// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package evict implements the O(1) recency and frequency trackers used by
// the codec's LRU and LFU full-dictionary policies. Both trackers are
// generic over the tracked key type, so the same logic serves the
// byte-string keys the encoder needs and the integer code keys the
// decoder needs.
package evict

// lruNode is a doubly-linked list node, sentinelled the way flate/brotli's
// internal structures avoid nil checks at the ends of a list.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// LRU answers FindLRU in O(1) and permits Use and Remove in O(1).
// The zero value is not ready for use; call Init first.
type LRU[K comparable] struct {
	index      map[K]*lruNode[K]
	head, tail lruNode[K] // sentinels; head.next is most-recently-used
}

func NewLRU[K comparable]() *LRU[K] {
	l := new(LRU[K])
	l.Init()
	return l
}

func (l *LRU[K]) Init() {
	l.index = make(map[K]*lruNode[K])
	l.head.next, l.head.prev = &l.tail, nil
	l.tail.prev, l.tail.next = &l.head, nil
}

func (l *LRU[K]) unlink(n *lruNode[K]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

func (l *LRU[K]) pushFront(n *lruNode[K]) {
	n.next = l.head.next
	n.prev = &l.head
	l.head.next.prev = n
	l.head.next = n
}

// Use records that key was just referenced, making it the
// most-recently-used entry. If key is unknown, it is created.
func (l *LRU[K]) Use(key K) {
	if n, ok := l.index[key]; ok {
		l.unlink(n)
		l.pushFront(n)
		return
	}
	n := &lruNode[K]{key: key}
	l.index[key] = n
	l.pushFront(n)
}

// Remove drops key from the tracker. It is a no-op if key is unknown.
func (l *LRU[K]) Remove(key K) {
	n, ok := l.index[key]
	if !ok {
		return
	}
	l.unlink(n)
	delete(l.index, key)
}

// FindLRU returns the least-recently-used key and true, or the zero value
// and false if the tracker is empty.
func (l *LRU[K]) FindLRU() (key K, ok bool) {
	n := l.tail.prev
	if n == &l.head {
		return key, false
	}
	return n.key, true
}

// Len reports the number of tracked keys.
func (l *LRU[K]) Len() int {
	return len(l.index)
}
