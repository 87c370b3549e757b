package routes

import (
	"net/http"

	"seaops/auth"
	"seaops/chats"
	"seaops/kb"
	"seaops/middleware"
	"seaops/pricing"
	"seaops/ratelim"
	"seaops/reports"
	"seaops/reservations"
	"seaops/settings"
	"seaops/shifts"
	"seaops/timeclock"
	"seaops/trips"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddPricingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/channels", rl.Limit(middleware.Authenticate(pricing.CreateChannel)))
	router.GET("/api/channels", middleware.Authenticate(pricing.GetChannels))
	router.GET("/api/channels/:id", middleware.Authenticate(pricing.GetChannel))
	router.PUT("/api/channels/:id", rl.Limit(middleware.Authenticate(pricing.UpdateChannel)))
	router.DELETE("/api/channels/:id", rl.Limit(middleware.Authenticate(pricing.DeleteChannel)))
}

func AddTripRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/trips", rl.Limit(middleware.Authenticate(trips.CreateTrip)))
	router.GET("/api/trips/date/:date", middleware.Authenticate(trips.GetTripsByDate))
	router.DELETE("/api/trips/:id", rl.Limit(middleware.Authenticate(trips.DeleteTrip)))
	router.PUT("/api/trips/:id/entries", rl.Limit(middleware.Authenticate(trips.UpsertEntry)))
	router.PUT("/api/trips/:id/entries/:entryid/commission", rl.Limit(middleware.Authenticate(trips.OverrideCommission)))
	router.DELETE("/api/trips/:id/entries/:entryid", rl.Limit(middleware.Authenticate(trips.DeleteEntry)))
	router.GET("/api/summary/:date", middleware.Authenticate(trips.DaySummary))
}

func AddReservationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/reservations", rl.Limit(middleware.Authenticate(reservations.CreateReservation)))
	router.GET("/api/reservations/date/:date", middleware.Authenticate(reservations.GetReservationsByDate))
	router.PUT("/api/reservations/id/:id", rl.Limit(middleware.Authenticate(reservations.UpdateReservation)))
	router.DELETE("/api/reservations/id/:id", rl.Limit(middleware.Authenticate(reservations.DeleteReservation)))
	router.GET("/api/reservations/id/:id/pass", middleware.Authenticate(reservations.PrintPass))
	router.POST("/api/passes/verify", rl.Limit(middleware.OptionalAuth(reservations.VerifyPass)))
}

func AddShiftRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/staff", rl.Limit(middleware.Authenticate(shifts.CreateStaff)))
	router.GET("/api/staff", middleware.Authenticate(shifts.GetStaff))
	router.DELETE("/api/staff/:id", rl.Limit(middleware.Authenticate(shifts.DeleteStaff)))

	router.PUT("/api/shifts/cruise/:month", rl.Limit(middleware.Authenticate(shifts.SetCruiseDays)))
	router.GET("/api/shifts/cruise/:month", middleware.Authenticate(shifts.GetCruiseDays))
	router.PUT("/api/shifts/required", rl.Limit(middleware.Authenticate(shifts.SetRequiredCounts)))
	router.GET("/api/shifts/required", middleware.Authenticate(shifts.GetRequiredCounts))
	router.POST("/api/shifts/generate/:month", rl.Limit(middleware.Authenticate(shifts.GenerateMonth)))
	router.GET("/api/shifts/schedule/:month", middleware.Authenticate(shifts.GetMonth))
	router.PATCH("/api/shifts/schedule/:month/:staffid/:day", rl.Limit(middleware.Authenticate(shifts.OverrideMark)))
	router.GET("/api/shifts/schedule/:month/shortfall", middleware.Authenticate(shifts.GetShortfall))
}

func AddTimeclockRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/timeclock/in", rl.Limit(middleware.Authenticate(timeclock.ClockIn)))
	router.POST("/api/timeclock/out", rl.Limit(middleware.Authenticate(timeclock.ClockOut)))
	router.GET("/api/timeclock/date/:date", middleware.Authenticate(timeclock.GetPunchesByDate))
	router.GET("/api/timeclock/month/:month", middleware.Authenticate(timeclock.MonthlyTimesheet))
}

func AddChatRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, hub *chats.Hub) {
	router.GET("/ws/chat/:chatid", chats.WebSocketHandler(hub))
	router.POST("/api/chats", rl.Limit(middleware.Authenticate(chats.CreateChat)))
	router.GET("/api/chats", middleware.Authenticate(chats.GetChats))
	router.GET("/api/chats/:chatid/messages", middleware.Authenticate(chats.GetMessages))
	router.POST("/api/chats/:chatid/messages", rl.Limit(middleware.Authenticate(chats.SendMessage(hub))))
}

func AddKBRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/pages", rl.Limit(middleware.Authenticate(kb.CreatePage)))
	router.GET("/api/pages", middleware.Authenticate(kb.GetPages))
	router.GET("/api/pages/:pageid", middleware.Authenticate(kb.GetPage))
	router.PUT("/api/pages/:pageid", rl.Limit(middleware.Authenticate(kb.UpdatePage)))
	router.DELETE("/api/pages/:pageid", rl.Limit(middleware.Authenticate(kb.DeletePage)))
	router.POST("/api/pages/:pageid/attachments", rl.Limit(middleware.Authenticate(kb.UploadAttachments)))
}

func AddReportRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/reports/:date", rl.Limit(middleware.Authenticate(reports.GenerateDailyReport)))
	router.GET("/api/reports/:date", middleware.Authenticate(reports.GetDailyReport))
	router.GET("/api/reports/:date/pdf", middleware.Authenticate(reports.DownloadReportPDF))
}

func AddSettingsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/settings", middleware.Authenticate(settings.GetUserSettings))
	router.PUT("/api/settings/:type", rl.Limit(middleware.Authenticate(settings.UpdateUserSetting)))
}
