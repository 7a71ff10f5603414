package service

import (
	"context"
	"encoding/json"
	"html"
	"log"
	"strings"

	"github.com/Omar-0O/rtc-volunteers/internal/model"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const volunteersIndex = "volunteers"

// SearchService maintains the Meilisearch volunteers index and serves
// directory search. Indexing failures are logged, never fatal: the
// database stays the source of truth and the index is rebuildable.
type SearchService interface {
	IndexProfile(profile *model.Profile) error
	DeleteProfile(id uuid.UUID) error
	Search(ctx context.Context, query string, committeeID *uuid.UUID, level string, limit int64) ([]VolunteerHit, error)
	ReindexAll(ctx context.Context, profiles []model.Profile) error
}

// VolunteerHit is one search result row.
type VolunteerHit struct {
	ID          string              `json:"id"`
	Name        model.LocalizedText `json:"name"`
	Email       string              `json:"email,omitempty"`
	CommitteeID string              `json:"committee_id,omitempty"`
	Level       string              `json:"level"`
	TotalPoints int                 `json:"total_points"`
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *searchService) initIndex() {
	filterableAttrs := []string{"committee_id", "level"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(volunteersIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update volunteers filterable attributes: %v", err)
	}

	sortableAttrs := []string{"total_points", "joined_at"}
	if _, err := s.client.Index(volunteersIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update volunteers sortable attributes: %v", err)
	}
}

type meiliVolunteerDoc struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	FullNameAr  string `json:"full_name_ar"`
	Email       string `json:"email"`
	CommitteeID string `json:"committee_id"`
	Level       string `json:"level"`
	TotalPoints int    `json:"total_points"`
	JoinedAt    int64  `json:"joined_at"`
}

// cleanForIndex strips any markup from user-entered text before it lands
// in the index.
func (s *searchService) cleanForIndex(text string) string {
	cleaned := html.UnescapeString(s.sanitizer.Sanitize(text))
	return strings.Join(strings.Fields(cleaned), " ")
}

func (s *searchService) IndexProfile(profile *model.Profile) error {
	doc := meiliVolunteerDoc{
		ID:          profile.UserID.String(),
		FullName:    s.cleanForIndex(profile.FullName),
		Level:       string(model.NormalizeLevel(profile.Level)),
		TotalPoints: profile.TotalPoints,
		JoinedAt:    profile.JoinedAt.Unix(),
	}
	if profile.FullNameAr != nil {
		doc.FullNameAr = s.cleanForIndex(*profile.FullNameAr)
	}
	if profile.User != nil {
		doc.Email = profile.User.Email
	}
	if profile.CommitteeID != nil {
		doc.CommitteeID = profile.CommitteeID.String()
	}

	primaryKey := "id"
	_, err := s.client.Index(volunteersIndex).AddDocuments([]meiliVolunteerDoc{doc}, &primaryKey)
	return err
}

func (s *searchService) DeleteProfile(id uuid.UUID) error {
	_, err := s.client.Index(volunteersIndex).DeleteDocument(id.String())
	return err
}

func (s *searchService) Search(ctx context.Context, query string, committeeID *uuid.UUID, level string, limit int64) ([]VolunteerHit, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filters := make([]string, 0, 2)
	if committeeID != nil {
		filters = append(filters, "committee_id = "+committeeID.String())
	}
	if level != "" {
		filters = append(filters, "level = "+string(model.NormalizeLevel(level)))
	}

	req := &meilisearch.SearchRequest{Limit: limit}
	if len(filters) > 0 {
		req.Filter = strings.Join(filters, " AND ")
	}

	resp, err := s.client.Index(volunteersIndex).SearchWithContext(ctx, query, req)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}
	var docs []meiliVolunteerDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	hits := make([]VolunteerHit, 0, len(docs))
	for _, doc := range docs {
		hits = append(hits, VolunteerHit{
			ID:          doc.ID,
			Email:       doc.Email,
			CommitteeID: doc.CommitteeID,
			Level:       doc.Level,
			TotalPoints: doc.TotalPoints,
			Name: model.LocalizedText{
				EN: doc.FullName,
				AR: doc.FullNameAr,
			},
		})
	}

	return hits, nil
}

// ReindexAll rebuilds the whole index, used by the admin reindex endpoint
// and after seeding.
func (s *searchService) ReindexAll(ctx context.Context, profiles []model.Profile) error {
	for _, p := range profiles {
		if err := s.IndexProfile(&p); err != nil {
			return err
		}
	}
	return nil
}
