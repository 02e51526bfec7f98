package stub

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NotificationStorage is the in-memory notification store behind the stub
// daemon. It never delivers anything; it only remembers what a real daemon
// would have pending.
type NotificationStorage struct {
	mu            sync.RWMutex
	channels      map[string]string             // name -> importance
	notifications map[string]*NotificationEntry // id -> entry
}

func NewNotificationStorage() *NotificationStorage {
	return &NotificationStorage{
		channels:      make(map[string]string),
		notifications: make(map[string]*NotificationEntry),
	}
}

func (s *NotificationStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make(map[string]*NotificationEntry)
}

// RegisterChannel records a channel. Returns false when the channel
// already existed.
func (s *NotificationStorage) RegisterChannel(name, importance string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.channels[name]; ok {
		return false
	}
	s.channels[name] = importance
	return true
}

func (s *NotificationStorage) Add(req *NotificationRequest) *NotificationEntry {
	entry := &NotificationEntry{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Body:      req.Body,
		TriggerAt: req.TriggerAt,
		Silent:    req.Silent,
		Sticky:    req.Sticky,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.notifications[entry.ID] = entry
	s.mu.Unlock()
	return entry
}

// Remove deletes a notification, reporting whether it existed.
func (s *NotificationStorage) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[id]; !ok {
		return false
	}
	delete(s.notifications, id)
	return true
}

func (s *NotificationStorage) List() []NotificationEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]NotificationEntry, 0, len(s.notifications))
	for _, entry := range s.notifications {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries
}
