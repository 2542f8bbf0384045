package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"ecotracker-backend/internal/database"
	"ecotracker-backend/internal/handlers"
	"ecotracker-backend/internal/models"
	"ecotracker-backend/internal/services"
	"ecotracker-backend/internal/storage"
	"ecotracker-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 ECOTRACKER BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Connect to database. Without DATABASE_URL the server still runs, on an
	// in-memory store, so local development needs zero setup.
	var db *sqlx.DB
	var store storage.Store

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("⚠️  DATABASE_URL not set, running with in-memory storage (state is lost on restart)")
		store = storage.NewMemory()
	} else {
		log.Println("🔌 Connecting to database...")
		conn, err := database.Connect(dbURL)
		if err != nil {
			log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
			log.Println("❌ FATAL ERROR: Database connection failed")
			log.Printf("   Error: %v", err)
			log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
			log.Fatal(err)
		}
		defer conn.Close()
		log.Println("✅ Database connection established")

		log.Println("🔄 Running database migrations...")
		if err := database.Migrate(conn); err != nil {
			log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
			log.Println("❌ FATAL ERROR: Database migrations failed")
			log.Printf("   Error: %v", err)
			log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
			log.Fatal(err)
		}
		log.Println("✅ Database migrations completed")

		db = conn
		store = storage.NewPostgres(conn)
	}

	// Seed default schedules on first run
	log.Println("🌱 Seeding default schedules...")
	if err := storage.SeedDefaultSchedules(store); err != nil {
		log.Fatalf("❌ FATAL ERROR: Schedule seeding failed: %v", err)
	}
	log.Println("✅ Default schedules ready")

	if raw := os.Getenv("DEFAULT_REMINDER_HOUR"); raw != "" {
		if hour, err := strconv.Atoi(raw); err == nil && hour >= 0 && hour <= 23 {
			var existing int
			if err := store.Get(storage.KeyReminderTime, &existing); err != nil {
				if err := store.Put(storage.KeyReminderTime, hour); err != nil {
					log.Printf("⚠️  Failed to save default reminder hour: %v", err)
				} else {
					log.Printf("✅ Default reminder hour set to %02d:00", hour)
				}
			}
		} else {
			log.Printf("⚠️  Ignoring invalid DEFAULT_REMINDER_HOUR: %q", raw)
		}
	}

	// Initialize Firebase Cloud Messaging
	// Supports both file path and base64-encoded credentials (for Railway/cloud deployments)
	var fcmService *services.FCMService
	fcmCredsBase64 := os.Getenv("FIREBASE_CREDENTIALS_BASE64")

	if fcmCredsBase64 != "" {
		// Use base64-encoded credentials (Railway-friendly)
		svc, err := services.NewFCMServiceFromBase64(fcmCredsBase64)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from base64: %v (push notifications disabled)", err)
		} else {
			fcmService = svc
			log.Println("✅ Firebase Cloud Messaging initialized from base64 credentials")
		}
	} else {
		// Fall back to file path (local development)
		fcmCredentialsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
		if fcmCredentialsFile == "" {
			fcmCredentialsFile = "./firebase-service-account.json"
		}

		svc, err := services.NewFCMService(fcmCredentialsFile)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from file: %v (push notifications disabled)", err)
		} else {
			fcmService = svc
			log.Println("✅ Firebase Cloud Messaging initialized from file")
		}
	}

	notifier := services.NewPushNotifier(fcmService, db)

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	// Reminder scheduler plus the sweep that keeps it armed. The sweep runs
	// every minute; the scheduler's own same-day guard keeps it cheap.
	scheduler := services.NewReminderScheduler(notifier, func(t time.Time) bool {
		return services.VacationActive(store, t)
	})
	engine := services.NewStreakEngine(store)

	sweep := cron.New()
	sweep.AddFunc("* * * * *", func() {
		armFromStore(store, scheduler)
	})
	sweep.Start()
	armFromStore(store, scheduler)
	log.Println("✅ Reminder sweep scheduled (every minute)")

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WebSocket endpoint
	r.Get("/ws", websocket.HandleWebSocket(wsHub))

	// Calendar feed (outside /api so calendar apps can subscribe to a plain URL)
	r.Get("/calendar.ics", handlers.GetCalendarFeed(store))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Schedules
		r.Get("/schedules", handlers.GetSchedules(store))
		r.Post("/schedules", handlers.CreateSchedule(store, scheduler, wsHub))
		r.Patch("/schedules/{id}", handlers.UpdateSchedule(store, scheduler, wsHub))
		r.Delete("/schedules/{id}", handlers.DeleteSchedule(store, scheduler, wsHub))

		// Dashboard
		r.Get("/overview", handlers.GetOverview(store, scheduler))

		// Collections and gamification
		r.Post("/collections/confirm", handlers.ConfirmCollection(engine, wsHub))
		r.Get("/stats", handlers.GetStats(engine))
		r.Get("/history", handlers.GetHistory(engine))

		// Settings
		r.Get("/settings/reminder-time", handlers.GetReminderTime(store, scheduler))
		r.Put("/settings/reminder-time", handlers.UpdateReminderTime(store, scheduler))
		r.Get("/vacation", handlers.GetVacation(store))
		r.Post("/vacation", handlers.SetVacation(store, scheduler, wsHub))
		r.Delete("/vacation", handlers.DeleteVacation(store, scheduler, wsHub))

		// Sharing
		r.Post("/share/code", handlers.CreateShareCode(store))
		r.Get("/share/token", handlers.GetShareToken(store))
		r.Post("/share/import", handlers.ImportShareCode(store, scheduler, wsHub))

		// Backup
		r.Get("/backup/export", handlers.ExportBackup(store))
		r.Post("/backup/import", handlers.ImportBackup(store, scheduler, wsHub))
		r.Post("/backup/save", handlers.SaveLocalBackup(store))
		r.Post("/backup/restore", handlers.RestoreLocalBackup(store, scheduler, wsHub))

		// Calendar feed, same document as /calendar.ics
		r.Get("/calendar.ics", handlers.GetCalendarFeed(store))

		// Devices and notifications
		r.Post("/device/token", handlers.RegisterDeviceToken(db))
		r.Delete("/device/token", handlers.UnregisterDeviceToken(db))
		r.Post("/notifications/test", handlers.SendTestNotification(notifier))
	})

	// Get port
	log.Println("🔍 Checking PORT environment variable...")
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("⚠️  PORT not set, using default: %s", port)
	} else {
		log.Printf("✅ PORT found: %s", port)
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚀 Server starting on http://localhost:%s", port)
	log.Println("🔌 Ready to accept requests!")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Start server
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Server failed to start")
		log.Printf("   Error: %v", err)
		log.Printf("   Port: %s", port)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
}

// armFromStore loads the current schedules and reminder hour and asks the
// scheduler to (re-)arm. Safe to call repeatedly.
func armFromStore(store storage.Store, scheduler *services.ReminderScheduler) {
	var schedules []models.Schedule
	if err := store.Get(storage.KeySchedules, &schedules); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("⚠️  Reminder sweep skipped, schedules unavailable: %v", err)
		return
	}
	scheduler.Arm(schedules, services.ReminderHour(store))
}
