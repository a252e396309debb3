package api

import (
	"time"

	"github.com/rpupo63/ambitious-journal-backend/auth"
)

// Dependencies are the collaborators the HTTP layer calls into. Optional
// integrations (Objects, Email, SMS, RateLimiter) may be left nil.
type Dependencies struct {
	Posts       PostReader
	Authoring   PostAuthor
	Taxonomy    TaxonomyEditor
	Maintenance PostMaintainer
	Gallery     GalleryStore
	Objects     ObjectStore
	Contacts    ContactStore
	Email       EmailSender
	SMS         ContactNotifier
	NotifyTo    []string
	Assistant   WritingAssistant
	AILogs      AILogReader
	Auth        auth.Authenticator
	Database    Pinger
	RateLimiter HitCounter
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		healthHandler:      newHealthHandler(deps.Database, startupTime),
		journalHandler:     newJournalHandler(deps.Posts),
		postHandler:        newPostHandler(deps.Authoring),
		taxonomyHandler:    newTaxonomyHandler(deps.Taxonomy),
		galleryHandler:     newGalleryHandler(deps.Gallery, deps.Objects),
		contactHandler:     newContactHandler(deps.Contacts, deps.Email, deps.SMS, deps.NotifyTo),
		assistantHandler:   newAssistantHandler(deps.Assistant, deps.AILogs),
		maintenanceHandler: newMaintenanceHandler(deps.Maintenance),
		sessionHandler:     newSessionHandler(deps.Auth),
	}
}
