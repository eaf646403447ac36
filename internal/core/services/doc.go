// Package services implements the driving port interfaces.
// Services contain the core cache and consistency logic and
// orchestrate calls to driven ports (adapters).
//
// DocumentsService and CollectionsService share one identity map per
// entity type: every response payload is merged into the canonical
// instance for its id, so references handed out anywhere in the
// process observe later updates without re-reading.
package services
