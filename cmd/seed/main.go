package main

import (
	"context"
	"log"
	"os"
	"time"

	"property-search-be/internal/entity"
	"property-search-be/internal/pkg/logger"
	"property-search-be/internal/repository/unitofwork"
	"property-search-be/pkg/database"
	"property-search-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	color.Cyan("Seeding station catalog...")
	stations := klangValleyStations()
	if err := uow.StationRepository().CreateBatch(ctx, stations); err != nil {
		color.Red("Failed to seed stations: %v", err)
		os.Exit(1)
	}
	color.Green("✓ %d stations", len(stations))

	color.Cyan("Seeding demo listings...")
	listings := demoListings()
	seeded := 0
	for _, l := range listings {
		if err := uow.PropertyRepository().Create(ctx, l); err != nil {
			color.Yellow("skip %q: %v", l.Title, err)
			continue
		}
		seeded++
	}
	color.Green("✓ %d listings", seeded)

	if os.Getenv("EMBEDDING_PROVIDER") == "ollama" {
		color.Cyan("Embedding listings...")
		ix := embedding.NewIndexer(
			unitofwork.NewRepositoryFactory(db),
			embedding.NewOllamaProvider(os.Getenv("OLLAMA_BASE_URL"), os.Getenv("OLLAMA_MODEL")),
			logger.NewNopLogger(),
		)
		embedded, err := ix.Backfill(ctx)
		if err != nil {
			color.Yellow("embedding backfill incomplete: %v", err)
		}
		color.Green("✓ %d listings embedded", embedded)
	} else {
		color.Yellow("EMBEDDING_PROVIDER is not ollama, listings left without embeddings")
	}

	color.Green("Done.")
}

// klangValleyStations is a starter catalog of well-known Klang Valley
// rail stations. Coordinates are approximate station entrances.
func klangValleyStations() []*entity.Station {
	type row struct {
		name, transitType, line string
		lat, lng                float64
		facilities              []string
	}
	rows := []row{
		{"Bukit Bintang", entity.TransitHeavyRail, "Kajang Line", 3.1466, 101.7110, []string{"lift", "escalator"}},
		{"Tun Razak Exchange", entity.TransitHeavyRail, "Kajang Line", 3.1427, 101.7204, []string{"lift", "escalator", "parking"}},
		{"Muzium Negara", entity.TransitHeavyRail, "Kajang Line", 3.1374, 101.6873, []string{"lift"}},
		{"Pasar Seni", entity.TransitHeavyRail, "Kajang Line", 3.1423, 101.6955, []string{"lift", "escalator"}},
		{"Kajang", entity.TransitHeavyRail, "Kajang Line", 2.9935, 101.7909, []string{"parking"}},
		{"Kwasa Damansara", entity.TransitHeavyRail, "Putrajaya Line", 3.1766, 101.5722, []string{"parking", "lift"}},
		{"Chan Sow Lin", entity.TransitHeavyRail, "Putrajaya Line", 3.1280, 101.7155, []string{"lift"}},

		{"KLCC", entity.TransitLightRail, "Kelana Jaya Line", 3.1588, 101.7133, []string{"lift", "escalator"}},
		{"Ampang Park", entity.TransitLightRail, "Kelana Jaya Line", 3.1599, 101.7190, []string{"lift"}},
		{"KL Sentral", entity.TransitLightRail, "Kelana Jaya Line", 3.1341, 101.6864, []string{"lift", "escalator", "parking"}},
		{"Masjid Jamek", entity.TransitLightRail, "Kelana Jaya Line", 3.1493, 101.6964, []string{"escalator"}},
		{"Bangsar", entity.TransitLightRail, "Kelana Jaya Line", 3.1275, 101.6790, []string{"parking"}},
		{"Kelana Jaya", entity.TransitLightRail, "Kelana Jaya Line", 3.1125, 101.6043, []string{"parking"}},
		{"Ampang", entity.TransitLightRail, "Ampang Line", 3.1504, 101.7600, []string{"parking"}},
		{"Chan Sow Lin", entity.TransitLightRail, "Ampang Line", 3.1280, 101.7158, nil},

		{"Mid Valley", entity.TransitCommuterRail, "Seremban Line", 3.1186, 101.6788, []string{"lift"}},
		{"Subang Jaya", entity.TransitCommuterRail, "Port Klang Line", 3.0846, 101.5882, []string{"parking", "lift"}},
		{"Batu Caves", entity.TransitCommuterRail, "Batu Caves-Pulau Sebang Line", 3.2377, 101.6811, []string{"parking"}},
		{"KL Sentral", entity.TransitCommuterRail, "Seremban Line", 3.1338, 101.6869, []string{"lift", "escalator", "parking"}},

		{"Medan Tuanku", entity.TransitMonorail, "KL Monorail", 3.1593, 101.6983, nil},
		{"Bukit Nanas", entity.TransitMonorail, "KL Monorail", 3.1502, 101.7043, nil},
		{"Imbi", entity.TransitMonorail, "KL Monorail", 3.1428, 101.7098, nil},
		{"Titiwangsa", entity.TransitMonorail, "KL Monorail", 3.1725, 101.6953, []string{"parking"}},
	}

	stations := make([]*entity.Station, 0, len(rows))
	for _, r := range rows {
		stations = append(stations, &entity.Station{
			Id:          uuid.New(),
			Name:        r.name,
			TransitType: r.transitType,
			Line:        r.line,
			Latitude:    r.lat,
			Longitude:   r.lng,
			Facilities:  r.facilities,
			CreatedAt:   time.Now(),
		})
	}
	return stations
}

func demoListings() []*entity.Property {
	type row struct {
		title, ptype, ltype, address, city string
		price                              float64
		bedrooms, bathrooms                int
		area, lat, lng                     float64
	}
	rows := []row{
		{"Cozy 2BR near KLCC", entity.PropertyTypeCondominium, entity.ListingTypeRent, "Jalan Ampang", "Kuala Lumpur", 2800, 2, 2, 950, 3.1570, 101.7145},
		{"Bukit Bintang studio suite", entity.PropertyTypeStudio, entity.ListingTypeRent, "Jalan Bukit Bintang", "Kuala Lumpur", 1900, 1, 1, 480, 3.1459, 101.7102},
		{"Bangsar family home", entity.PropertyTypeHouse, entity.ListingTypeSale, "Jalan Maarof", "Kuala Lumpur", 1850000, 4, 3, 2400, 3.1290, 101.6750},
		{"Mid Valley serviced apartment", entity.PropertyTypeApartment, entity.ListingTypeRent, "Lingkaran Syed Putra", "Kuala Lumpur", 2300, 3, 2, 1100, 3.1179, 101.6795},
		{"Subang Jaya link house", entity.PropertyTypeHouse, entity.ListingTypeSale, "SS15", "Subang Jaya", 980000, 4, 3, 1800, 3.0839, 101.5900},
		{"TRX corner office", entity.PropertyTypeOffice, entity.ListingTypeRent, "Persiaran TRX", "Kuala Lumpur", 12000, 0, 2, 3200, 3.1430, 101.7198},
		{"Kajang new township condo", entity.PropertyTypeCondominium, entity.ListingTypeSale, "Jalan Kajang Prima", "Kajang", 520000, 3, 2, 1050, 2.9950, 101.7880},
		{"Titiwangsa lakeview flat", entity.PropertyTypeApartment, entity.ListingTypeRent, "Jalan Tun Razak", "Kuala Lumpur", 1600, 2, 1, 780, 3.1718, 101.6970},
		{"Kelana Jaya shop lot", entity.PropertyTypeShopOffice, entity.ListingTypeSale, "SS6", "Petaling Jaya", 1450000, 0, 2, 2600, 3.1110, 101.6060},
		{"Batu Caves hillside land", entity.PropertyTypeLand, entity.ListingTypeSale, "Jalan Batu Caves", "Selayang", 760000, 0, 0, 8700, 3.2400, 101.6790},
	}

	listings := make([]*entity.Property, 0, len(rows))
	for _, r := range rows {
		listings = append(listings, &entity.Property{
			Id:           uuid.New(),
			Title:        r.title,
			Description:  r.title,
			Address:      r.address,
			City:         r.city,
			PropertyType: r.ptype,
			ListingType:  r.ltype,
			Price:        r.price,
			Bedrooms:     r.bedrooms,
			Bathrooms:    r.bathrooms,
			AreaSqft:     r.area,
			Latitude:     r.lat,
			Longitude:    r.lng,
			CreatedAt:    time.Now(),
		})
	}
	return listings
}
