package inmemory

import (
	"sync"
	"time"

	familydomain "clergy-registry-go/internal/domain/family"
)

// FamilyDetailCache is a per-process TTL cache for assembled family
// details. Values are cloned on read and write so callers can't mutate
// cached state.
type FamilyDetailCache struct {
	mu    sync.RWMutex
	items map[string]detailItem
}

type detailItem struct {
	value     *familydomain.Detail
	expiresAt time.Time
}

func NewFamilyDetailCache() *FamilyDetailCache {
	return &FamilyDetailCache{items: make(map[string]detailItem)}
}

func (c *FamilyDetailCache) GetDetail(familyID string) (*familydomain.Detail, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[familyID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[familyID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, familyID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneDetail(item.value), true
}

func (c *FamilyDetailCache) SetDetail(familyID string, detail *familydomain.Detail, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteDetail(familyID)
		return
	}

	c.mu.Lock()
	c.items[familyID] = detailItem{
		value:     cloneDetail(detail),
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *FamilyDetailCache) DeleteDetail(familyID string) {
	c.mu.Lock()
	delete(c.items, familyID)
	c.mu.Unlock()
}

func cloneDetail(detail *familydomain.Detail) *familydomain.Detail {
	if detail == nil {
		return nil
	}

	cloned := *detail
	cloned.Members = append([]familydomain.Member(nil), detail.Members...)
	cloned.Partition = familydomain.Classify(cloned.Members)
	if detail.Relationship != nil {
		rel := *detail.Relationship
		cloned.Relationship = &rel
	}
	return &cloned
}
