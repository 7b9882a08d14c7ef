package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/config"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/handlers"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/middleware"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/storage"
)

func NewRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	totpHandler *handlers.TOTPHandler,
	userHandler *handlers.UserHandler,
	profileHandler *handlers.ProfileHandler,
	productionHandler *handlers.ProductionHandler,
	receiptHandler *handlers.ReceiptHandler,
	takeHandler *handlers.TakeHandler,
	continuityHandler *handlers.ContinuityHandler,
	greenroomHandler *handlers.GreenroomHandler,
	postHandler *handlers.PostHandler,
	jobHandler *handlers.JobHandler,
	rentalHandler *handlers.RentalHandler,
	notificationHandler *handlers.NotificationHandler,
	exportHandler *handlers.ExportHandler,
	reportHandler *handlers.ReportHandler,
	systemSettingHandler *handlers.SystemSettingHandler,
	actionLogHandler *handlers.ActionLogHandler,
	statsHandler *handlers.StatsHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Registered on the router (not wrapped around it) so the mux route
	// template is available as the metrics path label.
	r.Use(middleware.MetricsMiddleware)

	// Locally stored uploads are served straight off disk. S3 objects carry
	// their own public URLs, so the route only exists for the fs driver.
	if cfg.Storage.Driver == storage.DriverFS || cfg.Storage.Driver == "" {
		r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BaseDir))))
	}

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/confirm", authHandler.Confirm).Methods("POST")
	r.HandleFunc("/auth/resend-confirmation", authHandler.ResendConfirmation).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/2fa/verify", authHandler.VerifyTwoFactor).Methods("POST")
	r.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST")
	r.HandleFunc("/auth/password-score", authHandler.PasswordScore).Methods("POST")

	// Public API routes - Razorpay webhook (authenticated by signature, not JWT)
	r.HandleFunc("/webhooks/razorpay", rentalHandler.HandleWebhook).Methods("POST")

	// Websocket - browsers cannot set Authorization headers on sockets, so
	// the handler authenticates the token from the query string itself.
	r.HandleFunc("/ws/notifications", notificationHandler.Websocket).Methods("GET")

	// Protected API routes - Current account
	meAPI := r.PathPrefix("/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.Me).Methods("GET")
	meAPI.HandleFunc("", authHandler.UpdateMe).Methods("PUT")
	meAPI.HandleFunc("/password", authHandler.ChangePassword).Methods("PUT")
	meAPI.HandleFunc("/profile", profileHandler.GetMine).Methods("GET")
	meAPI.HandleFunc("/profile", profileHandler.Update).Methods("PUT")
	meAPI.HandleFunc("/profile/avatar", profileHandler.UploadAvatar).Methods("POST")

	// Protected API routes - Two-factor management
	twoFactorAPI := r.PathPrefix("/2fa").Subrouter()
	twoFactorAPI.Use(authMiddleware.Authenticate)
	twoFactorAPI.HandleFunc("/setup", totpHandler.Setup).Methods("POST")
	twoFactorAPI.HandleFunc("/enable", totpHandler.Enable).Methods("POST")
	twoFactorAPI.HandleFunc("/disable", totpHandler.Disable).Methods("POST")
	twoFactorAPI.HandleFunc("/status", totpHandler.Status).Methods("GET")
	twoFactorAPI.HandleFunc("/backup-codes/regenerate", totpHandler.RegenerateBackupCodes).Methods("POST")

	// Protected API routes - Profiles
	profilesAPI := r.PathPrefix("/profiles").Subrouter()
	profilesAPI.Use(authMiddleware.Authenticate)
	profilesAPI.HandleFunc("/search", profileHandler.Search).Methods("GET")
	profilesAPI.HandleFunc("/{userID}", profileHandler.GetByUser).Methods("GET")

	// Protected API routes - Productions (Backlot)
	productionsAPI := r.PathPrefix("/productions").Subrouter()
	productionsAPI.Use(authMiddleware.Authenticate)
	productionsAPI.HandleFunc("", productionHandler.CreateProduction).Methods("POST")
	productionsAPI.HandleFunc("", productionHandler.ListProductions).Methods("GET")
	productionsAPI.HandleFunc("/{id}", productionHandler.GetProduction).Methods("GET")
	productionsAPI.HandleFunc("/{id}", productionHandler.UpdateProduction).Methods("PUT")
	productionsAPI.HandleFunc("/{id}", productionHandler.DeleteProduction).Methods("DELETE")
	productionsAPI.HandleFunc("/{id}/members", productionHandler.AddMember).Methods("POST")
	productionsAPI.HandleFunc("/{id}/members", productionHandler.ListMembers).Methods("GET")
	productionsAPI.HandleFunc("/{id}/members/{userID}", productionHandler.RemoveMember).Methods("DELETE")
	productionsAPI.HandleFunc("/{id}/shoot-days", productionHandler.CreateShootDay).Methods("POST")
	productionsAPI.HandleFunc("/{id}/shoot-days", productionHandler.ListShootDays).Methods("GET")
	productionsAPI.HandleFunc("/{id}/shoot-days/{dayID}", productionHandler.UpdateShootDay).Methods("PUT")
	productionsAPI.HandleFunc("/{id}/shoot-days/{dayID}", productionHandler.DeleteShootDay).Methods("DELETE")
	productionsAPI.HandleFunc("/{id}/scenes", productionHandler.CreateScene).Methods("POST")
	productionsAPI.HandleFunc("/{id}/scenes", productionHandler.ListScenes).Methods("GET")
	productionsAPI.HandleFunc("/{id}/scenes/{sceneID}", productionHandler.UpdateScene).Methods("PUT")
	productionsAPI.HandleFunc("/{id}/scenes/{sceneID}", productionHandler.DeleteScene).Methods("DELETE")
	productionsAPI.HandleFunc("/{id}/budget", productionHandler.CreateBudgetLine).Methods("POST")
	productionsAPI.HandleFunc("/{id}/budget", productionHandler.ListBudget).Methods("GET")
	productionsAPI.HandleFunc("/{id}/budget/{lineID}", productionHandler.UpdateBudgetLine).Methods("PUT")
	productionsAPI.HandleFunc("/{id}/budget/{lineID}", productionHandler.DeleteBudgetLine).Methods("DELETE")

	// Protected API routes - Receipts (literal segments registered before
	// {receiptID} so mux matches them first)
	productionsAPI.HandleFunc("/{id}/receipts", receiptHandler.Upload).Methods("POST")
	productionsAPI.HandleFunc("/{id}/receipts", receiptHandler.List).Methods("GET")
	productionsAPI.HandleFunc("/{id}/receipts/manual", receiptHandler.CreateManual).Methods("POST")
	productionsAPI.HandleFunc("/{id}/receipts/unmapped", receiptHandler.ListUnmapped).Methods("GET")
	productionsAPI.HandleFunc("/{id}/receipts/submit-all", receiptHandler.SubmitAll).Methods("POST")
	productionsAPI.HandleFunc("/{id}/receipts/review-queue", receiptHandler.ReviewQueue).Methods("GET")
	productionsAPI.HandleFunc("/{id}/receipts/reimbursement-totals", receiptHandler.ReimbursementTotals).Methods("GET")
	productionsAPI.HandleFunc("/{id}/receipts/{receiptID}", receiptHandler.Get).Methods("GET")
	productionsAPI.HandleFunc("/{id}/receipts/{receiptID}", receiptHandler.Update).Methods("PUT")
	productionsAPI.HandleFunc("/{id}/receipts/{receiptID}", receiptHandler.Delete).Methods("DELETE")
	productionsAPI.HandleFunc("/{id}/receipts/{receiptID}/map", receiptHandler.Map).Methods("PUT")
	productionsAPI.HandleFunc("/{id}/receipts/{receiptID}/verify", receiptHandler.Verify).Methods("PUT")
	productionsAPI.HandleFunc("/{id}/receipts/{receiptID}/retry-ocr", receiptHandler.RetryOCR).Methods("POST")
	productionsAPI.HandleFunc("/{id}/receipts/{receiptID}/submit", receiptHandler.Submit).Methods("POST")
	productionsAPI.HandleFunc("/{id}/receipts/{receiptID}/approve", receiptHandler.Approve).Methods("POST")
	productionsAPI.HandleFunc("/{id}/receipts/{receiptID}/request-changes", receiptHandler.RequestChanges).Methods("POST")
	productionsAPI.HandleFunc("/{id}/receipts/{receiptID}/reject", receiptHandler.Reject).Methods("POST")
	productionsAPI.HandleFunc("/{id}/receipts/{receiptID}/mark-reimbursed", receiptHandler.MarkReimbursed).Methods("POST")

	// Protected API routes - Takes (Scripty)
	productionsAPI.HandleFunc("/{id}/takes", takeHandler.CreateTake).Methods("POST")
	productionsAPI.HandleFunc("/{id}/takes", takeHandler.ListTakes).Methods("GET")
	productionsAPI.HandleFunc("/{id}/takes/next-number", takeHandler.NextTakeNumber).Methods("GET")
	productionsAPI.HandleFunc("/{id}/takes/scene-summary", takeHandler.SceneSummary).Methods("GET")
	productionsAPI.HandleFunc("/{id}/takes/{takeID}", takeHandler.GetTake).Methods("GET")
	productionsAPI.HandleFunc("/{id}/takes/{takeID}", takeHandler.UpdateTake).Methods("PUT")
	productionsAPI.HandleFunc("/{id}/takes/{takeID}", takeHandler.DeleteTake).Methods("DELETE")

	// Protected API routes - Continuity
	productionsAPI.HandleFunc("/{id}/continuity/notes", continuityHandler.CreateNote).Methods("POST")
	productionsAPI.HandleFunc("/{id}/continuity/notes", continuityHandler.ListNotes).Methods("GET")
	productionsAPI.HandleFunc("/{id}/continuity/notes/{noteID}", continuityHandler.UpdateNote).Methods("PUT")
	productionsAPI.HandleFunc("/{id}/continuity/notes/{noteID}", continuityHandler.DeleteNote).Methods("DELETE")
	productionsAPI.HandleFunc("/{id}/continuity/photos", continuityHandler.UploadPhoto).Methods("POST")
	productionsAPI.HandleFunc("/{id}/continuity/photos", continuityHandler.ListPhotos).Methods("GET")
	productionsAPI.HandleFunc("/{id}/continuity/photos/{photoID}", continuityHandler.UpdatePhoto).Methods("PUT")
	productionsAPI.HandleFunc("/{id}/continuity/photos/{photoID}", continuityHandler.DeletePhoto).Methods("DELETE")

	// Protected API routes - Reports and exports
	productionsAPI.HandleFunc("/{id}/reports/expenses/pdf", reportHandler.GetExpensePDF).Methods("GET")
	productionsAPI.HandleFunc("/{id}/reports/expenses/workbook", reportHandler.GetBudgetWorkbook).Methods("GET")
	productionsAPI.HandleFunc("/{id}/reports/statements/zip", reportHandler.GetStatementsZip).Methods("GET")
	productionsAPI.HandleFunc("/{id}/reports/statements/csv", reportHandler.GetReimbursementCSV).Methods("GET")
	productionsAPI.HandleFunc("/{id}/reports/statements/{userID}/pdf", reportHandler.GetMemberStatementPDF).Methods("GET")
	productionsAPI.HandleFunc("/{id}/reports/days/{dayID}/pdf", reportHandler.GetDailyPDF).Methods("GET")
	productionsAPI.HandleFunc("/{id}/reports/days/{dayID}/csv", reportHandler.GetDailyCSV).Methods("GET")
	productionsAPI.HandleFunc("/{id}/exports/receipts", exportHandler.ExportReceipts).Methods("GET")
	productionsAPI.HandleFunc("/{id}/exports/takes", exportHandler.ExportTakes).Methods("GET")

	// Protected API routes - Green Room contest
	greenroomAPI := r.PathPrefix("/greenroom").Subrouter()
	greenroomAPI.Use(authMiddleware.Authenticate)
	greenroomAPI.HandleFunc("/projects", greenroomHandler.SubmitProject).Methods("POST")
	greenroomAPI.HandleFunc("/projects", greenroomHandler.ListProjects).Methods("GET")
	greenroomAPI.HandleFunc("/projects/mine", greenroomHandler.ListMine).Methods("GET")
	greenroomAPI.HandleFunc("/projects/{id}", greenroomHandler.GetProject).Methods("GET")
	greenroomAPI.HandleFunc("/projects/{id}", greenroomHandler.UpdateProject).Methods("PUT")
	greenroomAPI.HandleFunc("/projects/{id}", greenroomHandler.DeleteProject).Methods("DELETE")
	greenroomAPI.HandleFunc("/projects/{id}/status", authMiddleware.RequireAdmin(http.HandlerFunc(greenroomHandler.SetStatus)).ServeHTTP).Methods("PUT")
	greenroomAPI.HandleFunc("/projects/{id}/vote", greenroomHandler.CastVote).Methods("POST")
	greenroomAPI.HandleFunc("/tickets", authMiddleware.RequireAdmin(http.HandlerFunc(greenroomHandler.GrantTickets)).ServeHTTP).Methods("POST")
	greenroomAPI.HandleFunc("/tickets/mine", greenroomHandler.MyTicket).Methods("GET")
	greenroomAPI.HandleFunc("/votes/mine", greenroomHandler.MyVotes).Methods("GET")
	greenroomAPI.HandleFunc("/results", greenroomHandler.Results).Methods("GET")
	greenroomAPI.HandleFunc("/results/export", exportHandler.ExportGreenroomResults).Methods("GET")

	// Protected API routes - Community feed
	postsAPI := r.PathPrefix("/posts").Subrouter()
	postsAPI.Use(authMiddleware.Authenticate)
	postsAPI.HandleFunc("", postHandler.CreatePost).Methods("POST")
	postsAPI.HandleFunc("", postHandler.Feed).Methods("GET")
	postsAPI.HandleFunc("/{id}", postHandler.GetPost).Methods("GET")
	postsAPI.HandleFunc("/{id}", postHandler.DeletePost).Methods("DELETE")
	postsAPI.HandleFunc("/{id}/comments", postHandler.CreateComment).Methods("POST")
	postsAPI.HandleFunc("/{id}/comments", postHandler.ListComments).Methods("GET")
	postsAPI.HandleFunc("/{id}/comments/{commentID}", postHandler.DeleteComment).Methods("DELETE")

	// Protected API routes - Job board
	jobsAPI := r.PathPrefix("/jobs").Subrouter()
	jobsAPI.Use(authMiddleware.Authenticate)
	jobsAPI.HandleFunc("", jobHandler.CreateListing).Methods("POST")
	jobsAPI.HandleFunc("", jobHandler.ListListings).Methods("GET")
	jobsAPI.HandleFunc("/applications/mine", jobHandler.ListMyApplications).Methods("GET")
	jobsAPI.HandleFunc("/{id}", jobHandler.GetListing).Methods("GET")
	jobsAPI.HandleFunc("/{id}", jobHandler.UpdateListing).Methods("PUT")
	jobsAPI.HandleFunc("/{id}", jobHandler.DeleteListing).Methods("DELETE")
	jobsAPI.HandleFunc("/{id}/apply", jobHandler.Apply).Methods("POST")
	jobsAPI.HandleFunc("/{id}/applications", jobHandler.ListApplications).Methods("GET")
	jobsAPI.HandleFunc("/{id}/applications/{applicationID}", jobHandler.Decide).Methods("PUT")

	// Protected API routes - Rental marketplace
	rentalsAPI := r.PathPrefix("/rentals").Subrouter()
	rentalsAPI.Use(authMiddleware.Authenticate)
	rentalsAPI.HandleFunc("/listings", rentalHandler.CreateListing).Methods("POST")
	rentalsAPI.HandleFunc("/listings", rentalHandler.ListListings).Methods("GET")
	rentalsAPI.HandleFunc("/listings/mine", rentalHandler.ListMyListings).Methods("GET")
	rentalsAPI.HandleFunc("/listings/{id}", rentalHandler.GetListing).Methods("GET")
	rentalsAPI.HandleFunc("/listings/{id}", rentalHandler.UpdateListing).Methods("PUT")
	rentalsAPI.HandleFunc("/listings/{id}", rentalHandler.DeleteListing).Methods("DELETE")
	rentalsAPI.HandleFunc("/listings/{id}/photo", rentalHandler.UploadPhoto).Methods("POST")
	rentalsAPI.HandleFunc("/orders", rentalHandler.CreateOrder).Methods("POST")
	rentalsAPI.HandleFunc("/orders/verify", rentalHandler.VerifyPayment).Methods("POST")
	rentalsAPI.HandleFunc("/orders/mine", rentalHandler.ListMyOrders).Methods("GET")
	rentalsAPI.HandleFunc("/orders/owner", rentalHandler.ListOwnerOrders).Methods("GET")
	rentalsAPI.HandleFunc("/orders/{orderID}/cancel", rentalHandler.CancelOrder).Methods("POST")
	rentalsAPI.HandleFunc("/orders/{orderID}/complete", rentalHandler.CompleteOrder).Methods("POST")

	// Protected API routes - Notifications
	notificationsAPI := r.PathPrefix("/notifications").Subrouter()
	notificationsAPI.Use(authMiddleware.Authenticate)
	notificationsAPI.HandleFunc("", notificationHandler.List).Methods("GET")
	notificationsAPI.HandleFunc("/unread-count", notificationHandler.UnreadCount).Methods("GET")
	notificationsAPI.HandleFunc("/read-all", notificationHandler.MarkAllRead).Methods("POST")
	notificationsAPI.HandleFunc("/{id}/read", notificationHandler.MarkRead).Methods("POST")
	notificationsAPI.HandleFunc("/{id}", notificationHandler.Delete).Methods("DELETE")

	// Protected API routes - Administration (admin only)
	adminAPI := r.PathPrefix("/admin").Subrouter()
	adminAPI.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
	adminAPI.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	adminAPI.HandleFunc("/users", userHandler.CreateUser).Methods("POST")
	adminAPI.HandleFunc("/users/{id}", userHandler.GetUser).Methods("GET")
	adminAPI.HandleFunc("/users/{id}", userHandler.UpdateUser).Methods("PUT")
	adminAPI.HandleFunc("/users/{id}", userHandler.DeleteUser).Methods("DELETE")
	adminAPI.HandleFunc("/users/{id}/suspend", userHandler.Suspend).Methods("POST")
	adminAPI.HandleFunc("/users/{id}/unsuspend", userHandler.Unsuspend).Methods("POST")
	adminAPI.HandleFunc("/settings", systemSettingHandler.ListSettings).Methods("GET")
	adminAPI.HandleFunc("/settings/{key}", systemSettingHandler.GetSetting).Methods("GET")
	adminAPI.HandleFunc("/settings/{key}", systemSettingHandler.UpdateSetting).Methods("PUT")
	adminAPI.HandleFunc("/action-logs", actionLogHandler.ListActionLogs).Methods("GET")
	adminAPI.HandleFunc("/login-logs", actionLogHandler.ListLoginLogs).Methods("GET")
	adminAPI.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
