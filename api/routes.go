package api

import (
	"time"

	"github.com/go-chi/chi/v5"
)

type contactLimit struct {
	counter HitCounter
	limit   int
}

// setupPublicRoutes registers the site's unauthenticated read API and the contact form.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, contact contactLimit) {
	r.Get("/health", handlers.healthHandler.check())

	r.Get("/journal", handlers.journalHandler.getIndex())
	r.Get("/journal/category/{slug}", handlers.journalHandler.getCategoryPosts())
	r.Get("/journal/{slug}", handlers.journalHandler.getPost())
	r.Get("/categories", handlers.journalHandler.getCategories())
	r.Get("/tags", handlers.journalHandler.getTags())
	r.Get("/gallery", handlers.galleryHandler.getFeatured())

	r.With(rateLimit(contact.counter, "contact", contact.limit, time.Minute)).
		Post("/contact", handlers.contactHandler.submit())
}

// setupAdminRoutes registers everything behind an admin session.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Get("/session", handlers.sessionHandler.getSession())
		r.Post("/logout", handlers.sessionHandler.logout())

		r.Get("/posts", handlers.postHandler.getMyPosts())
		r.Post("/posts", handlers.postHandler.createPost())
		r.Get("/posts/{postID}", handlers.postHandler.getPost())
		r.Patch("/posts/{postID}", handlers.postHandler.updatePost())
		r.Delete("/posts/{postID}", handlers.postHandler.deletePost())

		r.Post("/tags", handlers.taxonomyHandler.createTag())
		r.Post("/categories", handlers.taxonomyHandler.createCategory())
		r.Put("/categories/{categoryID}", handlers.taxonomyHandler.updateCategory())
		r.Delete("/categories/{categoryID}", handlers.taxonomyHandler.deleteCategory())

		r.Get("/gallery", handlers.galleryHandler.getAll())
		r.Post("/gallery", handlers.galleryHandler.upload())
		r.Patch("/gallery/{imageID}", handlers.galleryHandler.setFeatured())
		r.Delete("/gallery/{imageID}", handlers.galleryHandler.delete())
		r.Post("/gallery/{imageID}/move", handlers.galleryHandler.move())

		r.Get("/contact-submissions", handlers.contactHandler.list())
		r.Get("/contact-submissions/stats", handlers.contactHandler.stats())
		r.Patch("/contact-submissions/{submissionID}", handlers.contactHandler.updateStatus())

		r.Route("/ai", func(r chi.Router) {
			r.Post("/generate", handlers.assistantHandler.generate())
			r.Post("/seo", handlers.assistantHandler.seo())
			r.Post("/grammar", handlers.assistantHandler.grammar())
			r.Post("/ideas", handlers.assistantHandler.ideas())
			r.Post("/improve", handlers.assistantHandler.improve())
			r.Post("/tags", handlers.assistantHandler.tags())
			r.Get("/logs", handlers.assistantHandler.listLogs())
		})

		r.Get("/maintenance/posts", handlers.maintenanceHandler.listPosts())
		r.Post("/maintenance/posts/fix-drafts", handlers.maintenanceHandler.fixDrafts())
	})
}
