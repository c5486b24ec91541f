package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/societyhub/society-portal-go/config"
	controllers "github.com/societyhub/society-portal-go/controllers"
	middleware "github.com/societyhub/society-portal-go/middleware"
	models "github.com/societyhub/society-portal-go/models"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// public
	r.POST("/auth/register", controllers.Register(cfg))
	r.POST("/auth/register-admin", controllers.RegisterAdmin(cfg))
	r.POST("/auth/login", controllers.Login(cfg))

	// relay endpoints; clients attach the returned URL to their own records
	r.POST("/api/upload", controllers.UploadFile(cfg))
	r.POST("/api/notify-members", controllers.NotifyMembers(cfg))

	auth := middleware.AuthMiddleware(cfg)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	r.GET("/auth/me", auth, controllers.Me(cfg))

	profile := r.Group("/profile")
	profile.Use(auth)
	{
		profile.GET("", controllers.GetProfile(cfg))
		profile.PATCH("", controllers.UpdateProfile(cfg))
	}

	members := r.Group("/members")
	members.Use(auth, adminOnly)
	{
		members.GET("", controllers.ListMembers(cfg))
		members.GET("/:id", controllers.GetMember(cfg))
		members.PATCH("/:id", controllers.UpdateMember(cfg))
		members.DELETE("/:id", controllers.DeleteMember(cfg))
		members.GET("/:id/logs", controllers.ListMemberLogs(cfg))
		members.GET("/:id/file", controllers.ExportMemberFile(cfg))
	}

	documents := r.Group("/documents")
	documents.Use(auth)
	{
		documents.GET("", controllers.ListDocuments(cfg))
		documents.POST("", adminOnly, controllers.CreateDocument(cfg))
		documents.PATCH("/:id", adminOnly, controllers.UpdateDocument(cfg))
		documents.DELETE("/:id", adminOnly, controllers.DeleteDocument(cfg))
	}

	maintenance := r.Group("/maintenance")
	maintenance.Use(auth)
	{
		maintenance.GET("", controllers.ListMaintenance(cfg))
		maintenance.POST("", adminOnly, controllers.CreateMaintenance(cfg))
		maintenance.PATCH("/:id", adminOnly, controllers.UpdateMaintenance(cfg))
		maintenance.DELETE("/:id", adminOnly, controllers.DeleteMaintenance(cfg))
	}

	announcements := r.Group("/announcements")
	announcements.Use(auth)
	{
		announcements.GET("", controllers.ListAnnouncements(cfg))
		announcements.POST("", adminOnly, controllers.CreateAnnouncement(cfg))
		announcements.PATCH("/:id", adminOnly, controllers.UpdateAnnouncement(cfg))
		announcements.DELETE("/:id", adminOnly, controllers.DeleteAnnouncement(cfg))
	}

	funds := r.Group("/funds")
	funds.Use(auth)
	{
		funds.GET("", controllers.ListFunds(cfg))
		funds.GET("/summary", controllers.FundSummary(cfg))
		funds.GET("/report", controllers.FundReport(cfg))
		funds.POST("", adminOnly, controllers.CreateFund(cfg))
		funds.PATCH("/:id", adminOnly, controllers.UpdateFund(cfg))
		funds.DELETE("/:id", adminOnly, controllers.DeleteFund(cfg))
	}

	events := r.Group("/events")
	events.Use(auth)
	{
		events.GET("", controllers.ListEvents(cfg))
		events.GET("/:id", controllers.GetEvent(cfg))
		events.POST("", adminOnly, controllers.CreateEvent(cfg))
		events.PATCH("/:id", adminOnly, controllers.UpdateEvent(cfg))
		events.DELETE("/:id", adminOnly, controllers.DeleteEvent(cfg))
	}

	committees := r.Group("/committees")
	committees.Use(auth)
	{
		committees.GET("", controllers.ListCommittees(cfg))
		committees.POST("", adminOnly, controllers.CreateCommittee(cfg))
		committees.PATCH("/:id", adminOnly, controllers.UpdateCommittee(cfg))
		committees.DELETE("/:id", adminOnly, controllers.DeleteCommittee(cfg))
	}

	bank := r.Group("/bank")
	bank.Use(auth)
	{
		bank.GET("", controllers.GetBank(cfg))
		bank.PUT("", adminOnly, controllers.PutBank(cfg))
	}
}
