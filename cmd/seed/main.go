package main

import (
	"context"
	"log"
	"time"

	"shiftiq/internal/llm"
	"shiftiq/internal/models"
	"shiftiq/internal/repository"
	"shiftiq/internal/service"
	"shiftiq/pkg/auth"
	"shiftiq/pkg/config"
	"shiftiq/pkg/logger"
	"shiftiq/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Apply schema migrations
	if err := postgres.Migrate(&cfg.Database, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	profileRepo := repository.NewProfileRepository(db, appLogger)
	docRepo := repository.NewDocumentRepository(db, appLogger)
	chunkRepo := repository.NewChunkRepository(db, appLogger)
	beerRepo := repository.NewBeerRepository(db, appLogger)

	llmClient, err := llm.NewClient(&cfg.OpenAI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM client", zap.Error(err))
	}
	ingestService := service.NewIngestService(docRepo, chunkRepo, llmClient, &cfg.RAG, appLogger)

	appLogger.Info("Starting database seeding...")

	adminID, err := seedAdmin(ctx, profileRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	if err := seedDocuments(ctx, adminID, docRepo, ingestService, appLogger); err != nil {
		appLogger.Fatal("Failed to seed documents", zap.Error(err))
	}

	if err := seedBeers(ctx, beerRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed beer menu", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

// seedAdmin creates the default admin account if it does not exist yet and
// returns its ID so seeded documents have an owner.
func seedAdmin(ctx context.Context, repo *repository.ProfileRepository, logger *zap.Logger) (uuid.UUID, error) {
	const adminEmail = "admin@shiftiq.app"

	if existing, err := repo.GetByEmail(ctx, adminEmail); err == nil {
		logger.Info("Admin account already exists, skipping", zap.String("email", adminEmail))
		return existing.ID, nil
	}

	hashed, err := auth.HashPassword("changeme-admin")
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now()
	admin := &models.Profile{
		ID:        uuid.New(),
		Email:     adminEmail,
		Password:  hashed,
		FullName:  "ShiftIQ Admin",
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Create(ctx, admin); err != nil {
		return uuid.Nil, err
	}

	logger.Info("Created admin account", zap.String("email", adminEmail))
	return admin.ID, nil
}

func seedDocuments(
	ctx context.Context,
	createdBy uuid.UUID,
	docRepo *repository.DocumentRepository,
	ingestService *service.IngestService,
	logger *zap.Logger,
) error {
	docs := []struct {
		title    string
		content  string
		category models.DocumentCategory
		tags     []string
	}{
		{
			title: "Opening Checklist",
			content: `Opening procedures for front of house staff.

1. Unlock the front door and disarm the alarm using your personal code.
2. Turn on all dining room lights and check that every bulb works.
3. Power on the POS terminals and verify they sync with the back office.
4. Count the cash drawer against the overnight sheet and record any variance above five dollars to the manager log.
5. Check reservations for the day and print the floor plan.
6. Wipe down all tables, chairs and menus.
7. Stock service stations with napkins, silverware roll-ups, straws and to-go containers.
8. Brew the first batches of coffee and iced tea no earlier than thirty minutes before open.
9. Taste the soups of the day with the kitchen and note the allergens on the specials board.
10. Hold the pre-shift meeting ten minutes before doors open.`,
			category: models.CategoryOperations,
			tags:     []string{"opening", "checklist", "front-of-house"},
		},
		{
			title: "POS Quick Reference",
			content: `Quick reference for the point of sale system.

Splitting a check: open the ticket, tap Split, then drag items to the new seats. Even splits are under Split > By Amount.

Voiding an item: items can be voided before the kitchen fires them by any server. After firing, a void requires a manager swipe and a reason code. Never use the Waste button for ordering mistakes; Waste is for dropped or returned food only.

Comps and discounts: comps reduce the item to zero and require a manager swipe. Percentage discounts apply to the whole check and are limited to one per check.

End of shift: print your server report, count your bank, and drop cash with the closing manager. Tips declared must match the report before clock-out.

Offline mode: if the terminal loses connection it keeps taking orders and queues them. Do not restart the terminal; tell a manager so the router can be checked.`,
			category: models.CategoryPOS,
			tags:     []string{"pos", "voids", "comps"},
		},
		{
			title: "Craft Beer Service Basics",
			content: `Serving standards for the draft and bottle program.

Glassware: pilsners and lagers go in the tall footed glass, IPAs and pale ales in the shaker pint, Belgian styles and anything above 8% ABV in the tulip. Always rinse the glass before pouring.

Pouring: hold the glass at 45 degrees, open the tap fully, and straighten the glass for the last third to build one to two fingers of head. Never let the faucet touch the beer.

Temperature: the cooler holds all kegs at 38F. If a guest asks for a warmer pour on a stout or barleywine, a clean room-temperature glass is enough.

Tasting notes: every server tastes new kegs at pre-shift. Describe beers by style, bitterness, and body, not by comparison to mass-market brands.

Freshness: date every tapped keg on the chalk sheet. Kick dates beyond 45 days go to the bar manager.`,
			category: models.CategoryBeer,
			tags:     []string{"beer", "draft", "service"},
		},
		{
			title: "Guest Recovery Steps",
			content: `Handling guest complaints with the LAST model.

Listen: let the guest finish without interrupting. Put down anything in your hands.

Apologize: apologize for the experience without assigning blame to the kitchen or another server.

Solve: fix what you can on the spot. Re-fires, substitutions, and drink remakes do not need a manager. Anything involving a comp, a health concern, or a request for a manager gets a manager immediately.

Thank: thank the guest for telling us, and follow up at the table within five minutes of the fix.

Log every recovery in the shift notes so the pattern is visible across weeks.`,
			category: models.CategoryHospitality,
			tags:     []string{"service", "complaints", "recovery"},
		},
	}

	now := time.Now()
	for _, d := range docs {
		existing, err := docRepo.List(ctx, string(d.category), 100, 0)
		if err == nil && containsTitle(existing, d.title) {
			logger.Info("Document already seeded, skipping", zap.String("title", d.title))
			continue
		}

		doc := &models.Document{
			ID:        uuid.New(),
			Title:     d.title,
			Content:   d.content,
			Category:  d.category,
			Tags:      d.tags,
			FileType:  "text",
			CreatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := docRepo.Create(ctx, doc); err != nil {
			logger.Error("Failed to create document", zap.String("title", d.title), zap.Error(err))
			continue
		}

		// Embedding requires a reachable provider; a failure leaves the
		// document searchable later via /process-document.
		if count, err := ingestService.ProcessDocument(ctx, doc.ID); err != nil {
			logger.Warn("Failed to ingest seeded document",
				zap.String("title", d.title),
				zap.Error(err),
			)
		} else {
			logger.Info("Seeded document",
				zap.String("title", d.title),
				zap.Int("chunks", count),
			)
		}
	}

	return nil
}

func seedBeers(ctx context.Context, repo *repository.BeerRepository, logger *zap.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("Beer menu already seeded, skipping", zap.Int("count", len(existing)))
		return nil
	}

	beers := []*models.Beer{
		{Name: "Fog Line", Brewery: "Harbor & Main", Style: "Hazy IPA", ABV: 6.8, Description: "Citra and Mosaic, soft body, low bitterness.", OnTap: true},
		{Name: "Night Shift Stout", Brewery: "Ironworks", Style: "Dry Irish Stout", ABV: 4.2, Description: "Roasty and light, nitro pour.", OnTap: true},
		{Name: "Patio Pils", Brewery: "Harbor & Main", Style: "German Pilsner", ABV: 5.0, Description: "Crisp, floral noble hops.", OnTap: true},
		{Name: "Abbey Route", Brewery: "Cloister Ales", Style: "Belgian Dubbel", ABV: 7.5, Description: "Dark fruit, caramel, bottle only.", OnTap: false},
	}

	now := time.Now()
	for _, b := range beers {
		b.ID = uuid.New()
		b.CreatedAt = now
		b.UpdatedAt = now
		if err := repo.Create(ctx, b); err != nil {
			logger.Error("Failed to seed beer", zap.String("name", b.Name), zap.Error(err))
			continue
		}
	}

	logger.Info("Seeded beer menu", zap.Int("count", len(beers)))
	return nil
}

func containsTitle(docs []*models.Document, title string) bool {
	for _, d := range docs {
		if d.Title == title {
			return true
		}
	}
	return false
}
