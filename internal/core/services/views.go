package services

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/foliohq/folio-cli/internal/core/domain"
)

// Derived views. Each call filters and sorts a fresh snapshot of the
// table; the returned slices are the caller's to keep, the documents
// inside stay shared. Sorts are stable, so equal keys preserve table
// insertion order.

// RecentlyViewed resolves the recently-viewed ids to documents,
// dropping ids no longer in the table, newest update first.
func (s *DocumentsService) RecentlyViewed() []*domain.Document {
	ids := s.recents.all()
	docs := make([]*domain.Document, 0, len(ids))
	for _, id := range ids {
		if doc := s.table.Get(id); doc != nil {
			docs = append(docs, doc)
		}
	}
	return sortByUpdatedDesc(docs)
}

// RecentlyUpdated returns all documents, newest update first.
func (s *DocumentsService) RecentlyUpdated() []*domain.Document {
	return sortByUpdatedDesc(s.table.All())
}

// CreatedByUser returns documents created by the user, newest update
// first.
func (s *DocumentsService) CreatedByUser(userID string) []*domain.Document {
	return sortByUpdatedDesc(s.filter(func(d *domain.Document) bool {
		return d.CreatedBy.ID == userID
	}))
}

// InCollection returns the published documents of a collection in
// table order. Drafts never appear in collection views.
func (s *DocumentsService) InCollection(collectionID string) []*domain.Document {
	return s.filter(func(d *domain.Document) bool {
		return d.IsPublishedIn(collectionID)
	})
}

// RecentlyUpdatedInCollection returns the published documents of a
// collection, newest update first.
func (s *DocumentsService) RecentlyUpdatedInCollection(collectionID string) []*domain.Document {
	return sortByUpdatedDesc(s.InCollection(collectionID))
}

// LeastRecentlyUpdatedInCollection returns the published documents of
// a collection, oldest update first.
func (s *DocumentsService) LeastRecentlyUpdatedInCollection(collectionID string) []*domain.Document {
	return sortByUpdatedAsc(s.InCollection(collectionID))
}

// RecentlyPublishedInCollection returns the published documents of a
// collection, newest publication first.
func (s *DocumentsService) RecentlyPublishedInCollection(collectionID string) []*domain.Document {
	return sortByPublishedDesc(s.InCollection(collectionID))
}

// PinnedInCollection returns the pinned subset of a collection,
// newest update first.
func (s *DocumentsService) PinnedInCollection(collectionID string) []*domain.Document {
	docs := s.RecentlyUpdatedInCollection(collectionID)
	pinned := make([]*domain.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Pinned {
			pinned = append(pinned, doc)
		}
	}
	return pinned
}

// AlphabeticalInCollection returns the published documents of a
// collection in natural title order.
func (s *DocumentsService) AlphabeticalInCollection(collectionID string) []*domain.Document {
	return sortByNaturalTitle(s.InCollection(collectionID))
}

// Starred returns starred documents in table order.
func (s *DocumentsService) Starred() []*domain.Document {
	return s.filter(func(d *domain.Document) bool { return d.Starred })
}

// StarredAlphabetical returns starred documents in natural title
// order.
func (s *DocumentsService) StarredAlphabetical() []*domain.Document {
	return sortByNaturalTitle(s.Starred())
}

// Drafts returns unpublished documents, newest update first.
func (s *DocumentsService) Drafts() []*domain.Document {
	return sortByUpdatedDesc(s.filter((*domain.Document).IsDraft))
}

// filter returns the table documents keep accepts, in table order.
func (s *DocumentsService) filter(keep func(*domain.Document) bool) []*domain.Document {
	all := s.table.All()
	out := make([]*domain.Document, 0, len(all))
	for _, doc := range all {
		if keep(doc) {
			out = append(out, doc)
		}
	}
	return out
}

func sortByUpdatedDesc(docs []*domain.Document) []*domain.Document {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UpdatedAt.After(docs[j].UpdatedAt)
	})
	return docs
}

func sortByUpdatedAsc(docs []*domain.Document) []*domain.Document {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UpdatedAt.Before(docs[j].UpdatedAt)
	})
	return docs
}

func sortByPublishedDesc(docs []*domain.Document) []*domain.Document {
	sort.SliceStable(docs, func(i, j int) bool {
		return publishedTime(docs[i]).After(publishedTime(docs[j]))
	})
	return docs
}

func publishedTime(doc *domain.Document) time.Time {
	if doc.PublishedAt == nil {
		return time.Time{}
	}
	return *doc.PublishedAt
}

// sortByNaturalTitle orders titles case-insensitively with embedded
// numbers compared by value, so "doc 2" sorts before "doc 10".
// A collator is built per call; collate.Collator is not safe for
// concurrent use.
func sortByNaturalTitle(docs []*domain.Document) []*domain.Document {
	c := collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
	sort.SliceStable(docs, func(i, j int) bool {
		return c.CompareString(docs[i].Title, docs[j].Title) < 0
	})
	return docs
}
