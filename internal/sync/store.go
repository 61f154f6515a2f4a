// Package sync keeps a local snapshot of the remote project list and
// refreshes it by polling. The refresh policy is last-fetch-wins: each
// successful poll replaces the whole snapshot, with no merge and no
// conflict detection. A local edit made between polls can be overwritten
// by a stale remote read; callers that mutate should write through the
// API and re-poll rather than edit the snapshot.
package sync

import (
	stdsync "sync"
	"time"

	"trak/internal/models"
)

// Store owns the in-memory project snapshot.
type Store struct {
	mu          stdsync.RWMutex
	projects    []models.Project
	fetchedAt   time.Time
	subscribers []chan struct{}
}

func NewStore() *Store {
	return &Store{}
}

// Load returns a copy of the current snapshot and when it was fetched.
// The copy is independent down to the items, so a caller can inspect or
// mutate it without racing the next Replace.
func (s *Store) Load() ([]models.Project, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneProjects(s.projects), s.fetchedAt
}

// Replace swaps in a new snapshot and notifies subscribers. Stale reads
// are not detected: whatever arrives last wins.
func (s *Store) Replace(projects []models.Project) {
	s.mu.Lock()
	s.projects = cloneProjects(projects)
	s.fetchedAt = time.Now()
	subscribers := make([]chan struct{}, len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, ch := range subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func cloneProjects(projects []models.Project) []models.Project {
	out := make([]models.Project, len(projects))
	for i, project := range projects {
		items := make([]models.WorkItem, len(project.Items))
		for j, item := range project.Items {
			if item.ParentID != nil {
				id := *item.ParentID
				item.ParentID = &id
			}
			item.Children = append([]int64(nil), item.Children...)
			item.Comments = append([]models.Comment(nil), item.Comments...)
			if item.Jira != nil {
				link := *item.Jira
				item.Jira = &link
			}
			items[j] = item
		}
		project.Items = items
		out[i] = project
	}
	return out
}

// Subscribe returns a channel that receives a signal after each
// replacement. The channel has a buffer of one; a slow receiver misses
// intermediate signals but always sees the latest snapshot on Load.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}
