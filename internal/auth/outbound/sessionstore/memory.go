package sessionstore

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/danukusuma/gatekeeper/internal/auth/entity"
)

const shardCount = 32

type shard struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
}

// Memory is an in-process Store. State is sharded by token so unrelated
// sessions never contend on the same lock.
type Memory struct {
	shards [shardCount]*shard
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	m := &Memory{}
	for i := range m.shards {
		m.shards[i] = &shard{sessions: make(map[string]entity.Session)}
	}
	return m
}

func (m *Memory) shardFor(token string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return m.shards[h.Sum32()%shardCount]
}

func (m *Memory) SetChallenge(_ context.Context, token, answer string) error {
	sh := m.shardFor(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess := sh.sessions[token]
	sess.Challenge = answer
	sh.sessions[token] = sess

	return nil
}

func (m *Memory) TakeChallenge(_ context.Context, token string) (string, error) {
	sh := m.shardFor(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess := sh.sessions[token]
	answer := sess.Challenge
	sess.Challenge = ""
	sh.store(token, sess)

	return answer, nil
}

func (m *Memory) SetPendingIdentity(_ context.Context, token, identity string) error {
	sh := m.shardFor(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess := sh.sessions[token]
	sess.PendingIdentity = identity
	sess.Identity = ""
	sh.sessions[token] = sess

	return nil
}

func (m *Memory) TakePendingIdentity(_ context.Context, token string) (string, error) {
	sh := m.shardFor(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess := sh.sessions[token]
	identity := sess.PendingIdentity
	sess.PendingIdentity = ""
	sh.store(token, sess)

	return identity, nil
}

func (m *Memory) SetAuthenticated(_ context.Context, token, identity string) error {
	sh := m.shardFor(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess := sh.sessions[token]
	sess.Identity = identity
	sess.PendingIdentity = ""
	sh.sessions[token] = sess

	return nil
}

func (m *Memory) Authenticated(_ context.Context, token string) (string, error) {
	sh := m.shardFor(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	return sh.sessions[token].Identity, nil
}

func (m *Memory) Clear(_ context.Context, token string) error {
	sh := m.shardFor(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	delete(sh.sessions, token)

	return nil
}

// store writes sess back, dropping the map entry once nothing is left so
// abandoned sessions do not accumulate.
func (s *shard) store(token string, sess entity.Session) {
	if sess.IsZero() {
		delete(s.sessions, token)
		return
	}
	s.sessions[token] = sess
}
