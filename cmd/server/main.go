package main

import (
	"log"
	"net/http"
	"os"

	"navette-backend/internal/database"
	"navette-backend/internal/handlers"
	"navette-backend/internal/ledger"
	"navette-backend/internal/middleware"
	"navette-backend/internal/schedule"
	"navette-backend/internal/services"
	"navette-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚐 NAVETTE BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Database migrations failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	log.Println("🌱 Seeding database with initial data...")
	if err := database.SeedUsers(db); err != nil {
		log.Fatalf("❌ User seeding failed: %v", err)
	}
	if err := database.SeedDrivers(db); err != nil {
		log.Fatalf("❌ Driver seeding failed: %v", err)
	}

	// Firebase Cloud Messaging. Supports file path and base64-encoded
	// credentials (for cloud deployments); runs without push when neither works.
	var fcmService *services.FCMService
	if fcmCredsBase64 := os.Getenv("FIREBASE_CREDENTIALS_BASE64"); fcmCredsBase64 != "" {
		fcmService, err = services.NewFCMServiceFromBase64(fcmCredsBase64)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from base64: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from base64 credentials")
		}
	} else {
		fcmCredentialsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
		if fcmCredentialsFile == "" {
			fcmCredentialsFile = "./firebase-service-account.json"
		}
		fcmService, err = services.NewFCMService(fcmCredentialsFile)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from file: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from file")
		}
	}

	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	// The planning grid lives in memory for the session; only the
	// assignment ledger is durable
	scheduleStore := schedule.NewStore()
	profileStore := database.NewProfileStore(db)
	assignmentLedger := ledger.New(db, os.Getenv("REQUIRE_COMPLETE_PROFILES") != "false")

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/login", handlers.Login(db))

	// Dispatch board WebSocket (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub))

	r.Route("/api", func(r chi.Router) {
		// Driver device registration (no session, the driver app only
		// holds its FCM token)
		r.Post("/drivers/device-token", handlers.RegisterDeviceToken(db))

		// Dispatcher endpoints (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			// Planning grid
			r.Post("/schedule", handlers.LoadSchedule(scheduleStore))
			r.Get("/schedule/dates", handlers.GetScheduleDates(scheduleStore))
			r.Post("/schedule/classify", handlers.Classify(scheduleStore, profileStore))
			r.Post("/schedule/lists", handlers.PrintableLists(scheduleStore, profileStore))

			// Worker info list
			r.Get("/workers", handlers.GetWorkers(db))
			r.Post("/workers", handlers.UpsertWorker(db))
			r.Delete("/workers/{id}", handlers.DeleteWorker(db))

			// Driver roster
			r.Get("/drivers", handlers.GetDrivers(db))
			r.Post("/drivers", handlers.CreateDriver(db))

			// Assignment ledger
			r.Get("/assignments", handlers.GetAssignments(assignmentLedger))
			r.Post("/assignments", handlers.CreateAssignments(db, assignmentLedger, scheduleStore, profileStore, wsHub, fcmService))
			r.Post("/assignments/available", handlers.GetAvailableWorkers(assignmentLedger, scheduleStore, profileStore))
			r.Delete("/assignments/{id}", handlers.DeleteAssignment(db, assignmentLedger, wsHub, fcmService))
			r.Patch("/assignments/{id}/payment", handlers.UpdatePaymentStatus(assignmentLedger))

			// Course report
			r.Get("/report", handlers.GetCourseReport(assignmentLedger))
		})

		// Admin endpoints (require authentication + admin role)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("admin"))

			r.Delete("/assignments", handlers.ClearAssignments(assignmentLedger, wsHub))
			r.Delete("/drivers/{id}", handlers.DeleteDriver(db))
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("⚠️  PORT not set, using default: %s", port)
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚐 Server starting on http://localhost:%s", port)
	log.Println("═══════════════════════════════════════════════════════════════════")

	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
