package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/weddingwander/weddingwander/internal/database"
	"github.com/weddingwander/weddingwander/internal/model"
)

// SampleWeddings returns the catalog written on first start.
func SampleWeddings() []model.Event {
	return []model.Event{
		{
			ID:          "wedding-001",
			Title:       "James & Emily Beachside Celebration",
			Description: "Join us for a beautiful beachside ceremony and reception in Cancun. We are excited to share our special day with friends and family from around the world in this stunning tropical paradise.",
			Date:        model.MustParseDate("2025-06-15"),
			Location: model.Location{
				Country:     "Mexico",
				City:        "Cancun",
				Venue:       "Blue Paradise Resort",
				Coordinates: model.Coordinates{Lat: 21.161908, Lng: -86.851528},
			},
			Hosts:      []model.Host{{Name: "James Wilson"}, {Name: "Emily Parker"}},
			PhotoURL:   "https://images.pexels.com/photos/169198/pexels-photo-169198.jpeg",
			Capacity:   120,
			Registered: 45,
		},
		{
			ID:          "wedding-002",
			Title:       "Michael & Sophia Alpine Wedding",
			Description: "A spectacular wedding in the heart of the Swiss Alps. Experience breathtaking views, delicious Swiss cuisine, and celebrate love in one of the most beautiful settings in the world.",
			Date:        model.MustParseDate("2025-07-22"),
			Location: model.Location{
				Country:     "Switzerland",
				City:        "Zermatt",
				Venue:       "Alpine Lodge",
				Coordinates: model.Coordinates{Lat: 46.0207, Lng: 7.7491},
			},
			Hosts:      []model.Host{{Name: "Michael Brown"}, {Name: "Sophia Martinez"}},
			PhotoURL:   "https://images.pexels.com/photos/1438761/pexels-photo-1438761.jpeg",
			Capacity:   80,
			Registered: 32,
		},
		{
			ID:          "wedding-003",
			Title:       "David & Olivia Vineyard Ceremony",
			Description: "An intimate wedding at a historic Tuscan vineyard. Enjoy world-class wine, authentic Italian cuisine, and celebrate with us under the Tuscan sun surrounded by rolling hills and ancient olive groves.",
			Date:        model.MustParseDate("2025-08-10"),
			Location: model.Location{
				Country:     "Italy",
				City:        "Florence",
				Venue:       "Villa Toscana",
				Coordinates: model.Coordinates{Lat: 43.7696, Lng: 11.2558},
			},
			Hosts:      []model.Host{{Name: "David Johnson"}, {Name: "Olivia Smith"}},
			PhotoURL:   "https://images.pexels.com/photos/2253870/pexels-photo-2253870.jpeg",
			Capacity:   100,
			Registered: 62,
		},
		{
			ID:          "wedding-004",
			Title:       "Robert & Emma Traditional Japanese Wedding",
			Description: "Experience a blend of modern and traditional Japanese wedding customs in the beautiful city of Kyoto. The ceremony will be held at a historic shrine followed by a reception featuring Japanese culinary delights.",
			Date:        model.MustParseDate("2025-09-05"),
			Location: model.Location{
				Country:     "Japan",
				City:        "Kyoto",
				Venue:       "Kiyomizu Temple",
				Coordinates: model.Coordinates{Lat: 34.9949, Lng: 135.7851},
			},
			Hosts:      []model.Host{{Name: "Robert Taylor"}, {Name: "Emma Garcia"}},
			PhotoURL:   "https://images.pexels.com/photos/1022936/pexels-photo-1022936.jpeg",
			Capacity:   60,
			Registered: 28,
		},
		{
			ID:          "wedding-005",
			Title:       "William & Isabella Garden Wedding",
			Description: "A charming garden wedding in the English countryside. Join us for a day filled with flowers, music, and celebration in the picturesque setting of the historic Pembroke Gardens.",
			Date:        model.MustParseDate("2025-05-28"),
			Location: model.Location{
				Country:     "United Kingdom",
				City:        "Oxford",
				Venue:       "Pembroke Gardens",
				Coordinates: model.Coordinates{Lat: 51.7520, Lng: -1.2577},
			},
			Hosts:      []model.Host{{Name: "William Davis"}, {Name: "Isabella Rodriguez"}},
			PhotoURL:   "https://images.pexels.com/photos/266643/pexels-photo-266643.jpeg",
			Capacity:   90,
			Registered: 41,
		},
		{
			ID:          "wedding-006",
			Title:       "Alexander & Mia Santorini Sunset Wedding",
			Description: `Say "I do" against the backdrop of Santorini's famous sunset. This magical wedding will take place on a cliff overlooking the Aegean Sea, followed by a traditional Greek feast under the stars.`,
			Date:        model.MustParseDate("2025-06-30"),
			Location: model.Location{
				Country:     "Greece",
				City:        "Santorini",
				Venue:       "Caldera View Terrace",
				Coordinates: model.Coordinates{Lat: 36.4618, Lng: 25.3764},
			},
			Hosts:      []model.Host{{Name: "Alexander Wilson"}, {Name: "Mia Thompson"}},
			PhotoURL:   "https://images.pexels.com/photos/5502390/pexels-photo-5502390.jpeg",
			Capacity:   70,
			Registered: 38,
		},
	}
}

// Seed initialises any collection that is absent: weddings with the sample
// catalog, registrations and users with empty sequences. Existing data is
// left untouched.
func Seed(ctx context.Context, store database.Store) error {
	seeds := []struct {
		key   string
		write func() error
	}{
		{database.CollectionWeddings, func() error {
			return database.WriteCollection(ctx, store, database.CollectionWeddings, SampleWeddings())
		}},
		{database.CollectionRegistrations, func() error {
			return database.WriteCollection(ctx, store, database.CollectionRegistrations, []model.Registration{})
		}},
		{database.CollectionUsers, func() error {
			return database.WriteCollection(ctx, store, database.CollectionUsers, []model.Account{})
		}},
	}

	for _, s := range seeds {
		ok, err := database.Exists(ctx, store, s.key)
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.key, err)
		}
		if ok {
			continue
		}
		if err := s.write(); err != nil {
			return fmt.Errorf("seed %s: %w", s.key, err)
		}
		logrus.WithField("collection", s.key).Info("seeded collection")
	}
	return nil
}
