package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/controller"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/router"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/catalog"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/config"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/service"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/session"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/wizard"
)

const (
	bookingSweepInterval = time.Minute
	sessionSweepInterval = 5 * time.Minute
)

// Initialize wires repositories, services and controllers and starts the background
// workers. The workers stop when ctx is cancelled. The database must already be open.
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	clk := clock.NewSystem()

	// Initialize repositories
	txRunner := repository.NewTxRunner()
	roomRepo := repository.NewRoomRepository()
	serviceRepo := repository.NewExtraServiceRepository()
	reservationRepo := repository.NewReservationRepository()
	paymentRepo := repository.NewPaymentRepository()
	userRepo := repository.NewUserRepository()
	reviewRepo := repository.NewReviewRepository()
	settingsRepo := repository.NewSettingsRepository()

	// Image storage is optional; without credentials uploads answer 503
	var store service.ImageStoreInterface = service.DisabledStorage{}
	if cfg.DriveCredentials != "" && cfg.DriveFolderID != "" {
		driveStorage, err := service.NewDriveStorage(ctx, cfg.DriveCredentials, cfg.DriveFolderID)
		if err != nil {
			return nil, err
		}
		store = driveStorage
	} else {
		log.Printf("⚠️  App: GOOGLE_APPLICATION_CREDENTIALS or DRIVE_FOLDER_ID not set, image uploads disabled")
	}
	images := service.NewImageService(store)

	// Assistant is optional; without a key every chat gets the fallback answer
	var assistant service.AssistantClientInterface
	if cfg.AssistantAPIKey != "" {
		assistant = service.NewGeminiClient(cfg.AssistantEndpoint, cfg.AssistantModel, cfg.AssistantAPIKey)
	} else {
		log.Printf("⚠️  App: ASSISTANT_API_KEY not set, chat answers with the fallback message")
	}

	// Initialize services
	wizardStore := wizard.NewStore(cfg.BookingSessionTTL, clk)
	bookingService := service.NewBookingService(txRunner, paymentRepo, reservationRepo, clk)
	receiptService := service.NewReceiptService(reservationRepo, paymentRepo, settingsRepo, cfg.PublicBaseURL)
	reportService := service.NewReportService(paymentRepo, settingsRepo,
		service.NewChromeSnapshotter(cfg.ChromePath), cfg.ReportLocation, clk)
	watcher := catalog.NewWatcher(roomRepo, serviceRepo, clk)
	chatService := service.NewChatService(assistant, watcher)
	sessions := session.NewManager(cfg.SessionSecret, userRepo, settingsRepo, clk)

	// Start background workers
	go wizardStore.Run(ctx, bookingSweepInterval)
	go watcher.Run(ctx, cfg.CatalogPollInterval)
	go sweepSessions(ctx, sessions)

	// Create controllers
	controllers := &router.Controllers{
		Booking:      controller.NewBookingController(wizardStore, roomRepo, serviceRepo, bookingService),
		Room:         controller.NewRoomController(roomRepo, images, clk),
		ExtraService: controller.NewExtraServiceController(serviceRepo, images, clk),
		Reservation:  controller.NewReservationController(reservationRepo, receiptService),
		Payment:      controller.NewPaymentController(paymentRepo, clk, cfg.ReportLocation),
		Review:       controller.NewReviewController(reviewRepo, clk),
		Settings:     controller.NewSettingsController(settingsRepo, clk),
		Report:       controller.NewReportController(reportService),
		Chat:         controller.NewChatController(chatService),
		Session:      controller.NewSessionController(sessions),
		Catalog:      controller.NewCatalogController(watcher),
	}

	return router.SetupRoutes(controllers, router.Options{
		Sessions:    sessions,
		CORSOrigins: cfg.CORSOrigins,
	}), nil
}

func sweepSessions(ctx context.Context, sessions *session.Manager) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(); n > 0 {
				log.Printf("🧹 Sessions: dropped %d expired sessions", n)
			}
		}
	}
}
