package services

import (
	"log"

	"github.com/openshelf/librarian/internal/entities"
)

// SearchBooksInCatalog matches the term against one book field with a
// case-insensitive substring match, preserving datastore order. An
// empty term or an unrecognized search type yields an empty result.
// ISBN search is a substring match like the other fields.
func (s *Service) SearchBooksInCatalog(searchTerm, searchType string) []entities.Book {
	if searchTerm == "" {
		return []entities.Book{}
	}

	results, err := s.books.SearchBooksByField(searchType, searchTerm)
	if err != nil {
		log.Printf("Database error (search books): %v", err)
		return []entities.Book{}
	}
	return results
}
