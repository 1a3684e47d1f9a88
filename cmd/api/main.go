// cmd/api/main.go
// Main entry point for the application.
// This file bootstraps all components and starts the server.

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kindapp/kind-backend/internal/admin"
	"github.com/kindapp/kind-backend/internal/auth"
	"github.com/kindapp/kind-backend/internal/common/cache"
	"github.com/kindapp/kind-backend/internal/common/database"
	"github.com/kindapp/kind-backend/internal/common/storage"
	"github.com/kindapp/kind-backend/internal/common/utils"
	"github.com/kindapp/kind-backend/internal/config"
	"github.com/kindapp/kind-backend/internal/jobs"
	"github.com/kindapp/kind-backend/internal/matches"
	"github.com/kindapp/kind-backend/internal/messaging"
	"github.com/kindapp/kind-backend/internal/notifications"
	"github.com/kindapp/kind-backend/internal/payments"
	"github.com/kindapp/kind-backend/internal/profiles"
	"github.com/kindapp/kind-backend/internal/swipes"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Kind Job Marketplace API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed: ", err)
	}
	log.Printf("✅ Configuration loaded (environment: %s)", cfg.Environment)

	// 3. Connect to PostgreSQL
	log.Println("🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 4. Connect to Redis. Sessions live there, so this one is not
	// optional.
	log.Println("📮 Step 4: Connecting to Redis...")
	redisClient, err := database.NewRedisClientFromURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to Redis: ", err)
	}
	defer redisClient.Close()
	log.Println("✅ Connected to Redis successfully")

	// 5. Run database migrations
	log.Println("🔨 Step 5: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Migration error: ", err)
	}
	if err := seedCatalog(db); err != nil {
		log.Fatal("❌ Catalog seed error: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Document storage
	log.Println("📦 Step 6: Initializing file storage...")
	var uploader storage.Uploader
	if cfg.UseS3 {
		s3Uploader, err := storage.NewS3Uploader(cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			log.Printf("⚠️  S3 unavailable (%v), falling back to local storage", err)
			uploader = storage.NewLocalUploader(cfg.LocalUploadDir, cfg.BaseURL)
		} else {
			uploader = s3Uploader
			log.Printf("✅ Using S3 storage (bucket: %s)", cfg.S3Bucket)
		}
	} else {
		uploader = storage.NewLocalUploader(cfg.LocalUploadDir, cfg.BaseURL)
		log.Printf("✅ Using local storage (%s)", cfg.LocalUploadDir)
	}

	// 7. Notification providers
	log.Println("🔔 Step 7: Initializing notification providers...")
	notificationService := buildNotificationService(cfg, db)

	// 8. Core services
	log.Println("⚙️  Step 8: Wiring services...")

	authService := auth.NewService(auth.NewPostgresRepository(db), redisClient, &auth.Config{
		JWTSecret:           cfg.JWTSecret,
		AccessTokenExpiry:   cfg.AccessTokenExpiry,
		RefreshTokenExpiry:  cfg.RefreshTokenExpiry,
		BCryptCost:          cfg.BCryptCost,
		InitialSwipeCredits: cfg.FreeDailySwipeCredits,
		InitialBoostCredits: cfg.MonthlyBoostCredits,
	})
	authMiddleware := auth.NewMiddleware(authService)

	profileService := profiles.NewService(profiles.NewPostgresRepository(db), uploader)

	jobsRepo := jobs.NewPostgresRepository(db)
	jobsService := jobs.NewService(jobsRepo)

	feedCache := cache.NewTTLCache(cfg.FeedCacheTTL)
	swipesRepo := swipes.NewPostgresRepository(db)
	swipesService := swipes.NewService(swipesRepo, feedCache, notificationService, &swipes.Config{
		FeedCacheTTL:        cfg.FeedCacheTTL,
		FeedLimit:           cfg.FeedLimit,
		RewindRefundsCredit: cfg.RewindRefundsCredit,
	})

	matchesService := matches.NewService(matches.NewPostgresRepository(db), notificationService)

	messagingService := messaging.NewService(messaging.NewPostgresRepository(db), notificationService)
	messagingHub := messaging.NewHub(messagingService)
	messagingService.AttachHub(messagingHub)
	go messagingHub.Run()

	checkoutProvider := payments.NewCheckoutProvider(
		cfg.MerchantLogin, cfg.PaymentPassword1, cfg.PaymentPassword2,
		cfg.CheckoutBaseURL, cfg.PaymentCurrency)
	paymentsRepo := payments.NewPostgresRepository(db)
	paymentsService := payments.NewService(paymentsRepo, checkoutProvider, notificationService)

	adminService := admin.NewService(admin.NewPostgresRepository(db), uploader)

	log.Println("✅ Services wired")

	// 9. Routes
	log.Println("🌐 Step 9: Registering routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthHandler(db)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	auth.RegisterRoutes(router, auth.NewHandler(authService), authMiddleware)
	profiles.RegisterRoutes(router, profiles.NewHandler(profileService), authMiddleware)
	jobs.RegisterRoutes(router, jobs.NewHandler(jobsService), authMiddleware)
	swipes.RegisterRoutes(router, swipes.NewHandler(swipesService), authMiddleware)
	matches.RegisterRoutes(router, matches.NewHandler(matchesService), authMiddleware)
	messaging.RegisterRoutes(router, messaging.NewHandler(messagingService, messagingHub, authService), authMiddleware)
	payments.RegisterRoutes(router, payments.NewHandler(paymentsService), authMiddleware)
	notifications.RegisterRoutes(router, notifications.NewHandler(notificationService), authMiddleware)
	admin.RegisterRoutes(router, admin.NewHandler(adminService), authMiddleware)

	log.Println("✅ Routes registered")

	// 10. Background workers
	log.Println("⏰ Step 10: Starting schedulers...")
	sweepCtx, cancelSweeps := context.WithCancel(context.Background())
	defer cancelSweeps()
	go feedCache.StartSweeper(sweepCtx, cfg.FeedCacheTTL)

	jobScheduler := jobs.NewScheduler(jobsRepo)
	jobScheduler.Start()
	defer jobScheduler.Stop()

	creditScheduler := swipes.NewScheduler(swipesRepo, &swipes.SchedulerConfig{
		DailySwipeCredits:   cfg.FreeDailySwipeCredits,
		MonthlyBoostCredits: cfg.MonthlyBoostCredits,
		ResetHour:           cfg.CreditResetHour,
	})
	creditScheduler.Start()
	defer creditScheduler.Stop()

	subscriptionScheduler := payments.NewScheduler(paymentsRepo)
	subscriptionScheduler.Start()
	defer subscriptionScheduler.Stop()

	log.Println("✅ Schedulers running")

	// 11. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🎧 Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server failed: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("⚠️  Shutdown signal received...")

	messagingHub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Forced shutdown: ", err)
	}

	log.Println("👋 Server stopped cleanly")
}

func healthHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		utils.RespondWithData(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func buildNotificationService(cfg *config.Config, db *sqlx.DB) notifications.Service {
	var emailService notifications.EmailService
	if cfg.EmailProvider == "sendgrid" && cfg.EnableEmailNotifications {
		svc, err := notifications.NewSendGridEmailService(cfg.SendGridAPIKey, cfg.EmailFrom, "Kind")
		if err != nil {
			log.Printf("⚠️  SendGrid init failed (%v), using mock email", err)
			emailService = notifications.NewMockEmailService()
		} else {
			emailService = svc
			log.Println("✅ SendGrid email provider ready")
		}
	} else {
		emailService = notifications.NewMockEmailService()
		log.Println("✅ Mock email provider ready")
	}

	var smsService notifications.SMSService
	if cfg.SMSProvider == "twilio" && cfg.EnableSMSNotifications {
		svc, err := notifications.NewTwilioSMSService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
		if err != nil {
			log.Printf("⚠️  Twilio init failed (%v), using mock SMS", err)
			smsService = notifications.NewMockSMSService()
		} else {
			smsService = svc
			log.Println("✅ Twilio SMS provider ready")
		}
	} else {
		smsService = notifications.NewMockSMSService()
		log.Println("✅ Mock SMS provider ready")
	}

	var pushService notifications.PushService
	if cfg.EnablePushNotifications && cfg.FCMCredentialsFile != "" {
		svc, err := notifications.NewFCMPushService(context.Background(), cfg.FCMCredentialsFile)
		if err != nil {
			log.Printf("⚠️  FCM init failed (%v), using mock push", err)
			pushService = notifications.NewMockPushService()
		} else {
			pushService = svc
			log.Println("✅ FCM push provider ready")
		}
	} else {
		pushService = notifications.NewMockPushService()
		log.Println("✅ Mock push provider ready")
	}

	return notifications.NewService(notifications.NewPostgresRepository(db), emailService, smsService, pushService)
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			username VARCHAR(100) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL,
			phone VARCHAR(20),
			city VARCHAR(100),
			region VARCHAR(100),
			swipe_credits INT NOT NULL DEFAULT 0,
			boost_credits INT NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			last_active_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS worker_profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			display_name VARCHAR(100) NOT NULL,
			bio TEXT,
			skills TEXT[] NOT NULL DEFAULT '{}',
			preferred_job_types TEXT[] NOT NULL DEFAULT '{}',
			expected_salary_min INT,
			expected_salary_max INT,
			city VARCHAR(100),
			region VARCHAR(100),
			availability VARCHAR(20) NOT NULL DEFAULT 'flexible',
			experience_years INT NOT NULL DEFAULT 0,
			avatar_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS employer_profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			company_name VARCHAR(200) NOT NULL,
			description TEXT,
			website TEXT,
			city VARCHAR(100),
			region VARCHAR(100),
			logo_url TEXT,
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS job_posts (
			id BIGSERIAL PRIMARY KEY,
			employer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			job_type VARCHAR(50) NOT NULL,
			salary_min INT,
			salary_max INT,
			city VARCHAR(100),
			region VARCHAR(100),
			required_skills TEXT[] NOT NULL DEFAULT '{}',
			schedule_days TEXT[] NOT NULL DEFAULT '{}',
			shift VARCHAR(20),
			status VARCHAR(20) NOT NULL DEFAULT 'draft',
			boost_expires_at TIMESTAMPTZ,
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_job_posts_active
			ON job_posts (status, boost_expires_at DESC, created_at DESC)`,

		// Append-only swipe ledger. The partial unique index enforces
		// one live interaction per worker and job; rewound rows stay
		// behind for audit.
		`CREATE TABLE IF NOT EXISTS job_interactions (
			id BIGSERIAL PRIMARY KEY,
			worker_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			job_id BIGINT NOT NULL REFERENCES job_posts(id) ON DELETE CASCADE,
			action VARCHAR(10) NOT NULL,
			score INT,
			is_rewound BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_interactions_live
			ON job_interactions (worker_id, job_id) WHERE NOT is_rewound`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_recent
			ON job_interactions (worker_id, created_at DESC, id DESC)`,

		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			job_id BIGINT NOT NULL REFERENCES job_posts(id) ON DELETE CASCADE,
			worker_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			employer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			is_opened_by_worker BOOLEAN NOT NULL DEFAULT FALSE,
			is_opened_by_employer BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (job_id, worker_id)
		)`,

		`CREATE TABLE IF NOT EXISTS conversations (
			id BIGSERIAL PRIMARY KEY,
			match_id BIGINT UNIQUE REFERENCES matches(id) ON DELETE SET NULL,
			worker_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			employer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			last_message_id BIGINT,
			last_message_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS messages (
			id BIGSERIAL PRIMARY KEY,
			conversation_id BIGINT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
			sender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			read_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation
			ON messages (conversation_id, created_at DESC)`,

		`CREATE TABLE IF NOT EXISTS credit_packages (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL,
			credit_type VARCHAR(10) NOT NULL,
			credits INT NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			currency VARCHAR(10) NOT NULL DEFAULT 'PHP',
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,

		`CREATE TABLE IF NOT EXISTS subscription_plans (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			tier VARCHAR(20) UNIQUE NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			currency VARCHAR(10) NOT NULL DEFAULT 'PHP',
			duration_days INT NOT NULL,
			daily_swipe_credits INT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,

		`CREATE TABLE IF NOT EXISTS payment_transactions (
			id BIGSERIAL PRIMARY KEY,
			invoice_id VARCHAR(64) UNIQUE NOT NULL,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			kind VARCHAR(20) NOT NULL,
			package_id BIGINT REFERENCES credit_packages(id),
			plan_id BIGINT REFERENCES subscription_plans(id),
			amount NUMERIC(10,2) NOT NULL,
			currency VARCHAR(10) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS user_subscriptions (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			plan_id BIGINT NOT NULL REFERENCES subscription_plans(id),
			tier VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			starts_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type VARCHAR(50) NOT NULL,
			title VARCHAR(200) NOT NULL,
			body TEXT NOT NULL,
			payload JSONB NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user
			ON notifications (user_id, created_at DESC)`,

		`CREATE TABLE IF NOT EXISTS push_tokens (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token TEXT UNIQUE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS reports (
			id BIGSERIAL PRIMARY KEY,
			reporter_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			target_user_id BIGINT REFERENCES users(id) ON DELETE CASCADE,
			target_job_id BIGINT REFERENCES job_posts(id) ON DELETE CASCADE,
			reason VARCHAR(100) NOT NULL,
			details TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'open',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS admin_actions (
			id BIGSERIAL PRIMARY KEY,
			admin_id BIGINT NOT NULL REFERENCES users(id),
			kind VARCHAR(50) NOT NULL,
			details JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS verification_requests (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			document_url TEXT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			note TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

// seedCatalog inserts the default purchasable catalog. Existing rows
// are left untouched so operators can reprice without redeploys.
func seedCatalog(db *sqlx.DB) error {
	seeds := []string{
		`INSERT INTO credit_packages (name, credit_type, credits, price)
			VALUES
				('Swipe Pack 10', 'swipe', 10, 49.00),
				('Swipe Pack 50', 'swipe', 50, 199.00),
				('Boost Single', 'boost', 1, 99.00),
				('Boost Triple', 'boost', 3, 249.00)
			ON CONFLICT (name) DO NOTHING`,

		`INSERT INTO subscription_plans (name, tier, price, duration_days, daily_swipe_credits)
			VALUES
				('Kind Plus', 'plus', 149.00, 30, 10),
				('Kind Pro', 'pro', 399.00, 30, 50)
			ON CONFLICT (tier) DO NOTHING`,
	}

	for _, seed := range seeds {
		if _, err := db.Exec(seed); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
	}
	return nil
}
