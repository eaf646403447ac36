package tui

import "errors"

// ErrMissingDocumentsService is returned when the documents service is not provided.
var ErrMissingDocumentsService = errors.New("tui: documents service is required")
