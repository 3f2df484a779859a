package handlers

import (
	"time"

	"github.com/bodavargasprado/wedding-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Router bundles everything RegisterRoutes needs.
type Router struct {
	Invitations   *InvitationHandler
	Gallery       *GalleryHandler
	Auth          *AuthHandler
	Authenticator middleware.AdminAuthenticator
	Cleanup       CleanupCounter
	WeddingDate   time.Time
	GuestCapacity int
}

// RegisterRoutes mounts the public and admin API on r.
func RegisterRoutes(r *gin.Engine, rt Router) {
	requireAdmin := middleware.RequireAdmin(rt.Authenticator)
	optionalAdmin := middleware.OptionalAdmin(rt.Authenticator)

	// Health check endpoint
	r.GET("/health", Health(rt.Cleanup))

	api := r.Group("/api")
	{
		api.GET("/event", Event(rt.WeddingDate, rt.GuestCapacity))

		// Admin session
		admin := api.Group("/admin")
		{
			admin.POST("/login", rt.Auth.Login)
			admin.POST("/logout", rt.Auth.Logout)
			admin.GET("/session", requireAdmin, rt.Auth.Session)
		}

		// Invitations: lookup and confirmation are public, management is admin only
		invitations := api.Group("/invitations")
		{
			invitations.GET("/stats", requireAdmin, rt.Invitations.GetStats)
			invitations.GET("/validate/:code", rt.Invitations.ValidateCode)
			invitations.GET("/:code", rt.Invitations.GetInvitation)
			invitations.POST("/:code/confirm", rt.Invitations.ConfirmInvitation)

			invitations.GET("", requireAdmin, rt.Invitations.ListInvitations)
			invitations.POST("", requireAdmin, rt.Invitations.CreateInvitation)
			invitations.PUT("/:id", requireAdmin, rt.Invitations.UpdateInvitation)
			invitations.DELETE("/:id", requireAdmin, rt.Invitations.DeleteInvitation)
		}

		api.DELETE("/guests/:guestId", requireAdmin, rt.Invitations.DeleteGuest)

		gallery := api.Group("/gallery")
		{
			gallery.GET("/sections", rt.Gallery.ListSections)
			gallery.GET("/sections/all", requireAdmin, rt.Gallery.ListAllSections)
			gallery.POST("/sections", requireAdmin, rt.Gallery.CreateSection)
			gallery.PUT("/sections/:id", requireAdmin, rt.Gallery.UpdateSection)
			gallery.DELETE("/sections/:id", requireAdmin, rt.Gallery.DeleteSection)

			gallery.GET("/sections/:sectionId/media", optionalAdmin, rt.Gallery.ListMedia)
			gallery.POST("/sections/:sectionId/media", optionalAdmin, rt.Gallery.AddMedia)
			gallery.POST("/sections/:sectionId/upload", optionalAdmin, rt.Gallery.UploadMedia)
			gallery.DELETE("/media/:mediaId", requireAdmin, rt.Gallery.DeleteMedia)

			gallery.POST("/seed-sections", requireAdmin, rt.Gallery.SeedSections)
		}
	}
}
