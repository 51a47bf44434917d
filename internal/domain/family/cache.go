package family

import "time"

// Cache holds assembled family details between requests. The default is
// a no-op; a TTL-bounded in-memory implementation can be plugged in.
type Cache interface {
	GetDetail(familyID string) (*Detail, bool)
	SetDetail(familyID string, detail *Detail, ttl time.Duration)
	DeleteDetail(familyID string)
}

type noopCache struct{}

func (noopCache) GetDetail(string) (*Detail, bool) {
	return nil, false
}

func (noopCache) SetDetail(string, *Detail, time.Duration) {}

func (noopCache) DeleteDetail(string) {}
