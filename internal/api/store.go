package api

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mhx/filtcoef/pkg/filtsec"
)

type sectionRecord struct {
	Info    SectionInfo
	Schema  filtsec.Schema
	Section filtsec.Section
}

type SectionStore struct {
	mu       sync.Mutex
	sections map[string]*sectionRecord
}

func NewSectionStore() *SectionStore {
	return &SectionStore{
		sections: make(map[string]*sectionRecord),
	}
}

func (s *SectionStore) Create(label string, schema filtsec.Schema, sec filtsec.Section, now time.Time) SectionInfo {
	info := SectionInfo{
		ID:        newSectionID(),
		Object:    "section",
		Label:     label,
		Schema:    schema.String(),
		Records:   len(sec),
		CreatedAt: now.Unix(),
	}

	s.mu.Lock()
	s.sections[info.ID] = &sectionRecord{
		Info:    info,
		Schema:  schema,
		Section: sec,
	}
	s.mu.Unlock()

	return info
}

func (s *SectionStore) Get(id string) (*sectionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sections[id]
	return rec, ok
}

func (s *SectionStore) List() []SectionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SectionInfo, 0, len(s.sections))
	for _, rec := range s.sections {
		out = append(out, rec.Info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *SectionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[id]; !ok {
		return false
	}
	delete(s.sections, id)
	return true
}

func newSectionID() string {
	return "sec_" + uuid.NewString()
}
