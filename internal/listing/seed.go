package listing

import (
	"context"
	"time"

	"go.uber.org/zap"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// DemoListings returns the catalogue the marketplace ships with.
func DemoListings() []Listing {
	return []Listing{
		{
			ID: "1", Title: "Beton Bloklar M200", Category: "concrete",
			Quantity: 500, Unit: "ədəd", PricePerUnit: 2.5, Location: "Ağdam",
			Image:       DefaultImageFor("concrete"),
			Description: "Yüksək keyfiyyətli M200 markalı beton bloklar. Tikinti layihələri üçün ideal. Ölçülər: 390x190x190mm. Soyuğa və rütubətə davamlı.",
			Seller:      Seller{Name: "Əli Məmmədov", Company: "AzBeton MMC", Phone: "+994 50 123 45 67"},
			CreatedAt:   day("2024-12-20"),
		},
		{
			ID: "2", Title: "Armatur Polad 12mm", Category: "metal",
			Quantity: 2000, Unit: "metr", PricePerUnit: 8.9, Location: "Bakı",
			Image:       DefaultImageFor("metal"),
			Description: "A400C sinfli armatur polad. Diametri 12mm. Betonun möhkəmləndirilməsi üçün əla seçim. Sertifikatlı məhsul.",
			Seller:      Seller{Name: "Rəşad Həsənov", Company: "SteelAz Group", Phone: "+994 55 234 56 78"},
			CreatedAt:   day("2024-12-21"),
		},
		{
			ID: "3", Title: "Şam Ağacı Taxtası", Category: "wood",
			Quantity: 300, Unit: "m³", PricePerUnit: 450, Location: "Şəki",
			Image:       DefaultImageFor("wood"),
			Description: "Birinci sort şam ağacı taxtası. Qurudulmuş, emal olunmuş. Dam örtüyü və döşəmə işləri üçün uyğundur.",
			Seller:      Seller{Name: "Vüqar İsmayılov", Company: "Şəki Taxta", Phone: "+994 70 345 67 89"},
			CreatedAt:   day("2024-12-22"),
		},
		{
			ID: "4", Title: "Portland Sement M400", Category: "cement",
			Quantity: 1500, Unit: "kisə", PricePerUnit: 7.2, Location: "Sumqayıt",
			Image:       DefaultImageFor("cement"),
			Description: "Portland sement M400 markası. 50 kq-lıq kisələrdə. Tikinti və beton qarışıqları üçün ideal. Saxlama müddəti: 6 ay.",
			Seller:      Seller{Name: "Kamran Əliyev", Company: "Caspian Cement", Phone: "+994 51 456 78 90"},
			CreatedAt:   day("2024-12-23"),
		},
		{
			ID: "5", Title: "PVC Kanalizasiya Borusu", Category: "pipes",
			Quantity: 800, Unit: "metr", PricePerUnit: 12.5, Location: "Gəncə",
			Image:       DefaultImageFor("pipes"),
			Description: "PVC kanalizasiya borusu 110mm diametrli. Yüksək təzyiqə davamlı. Montaj asanlığı ilə seçilir.",
			Seller:      Seller{Name: "Tural Nəsibov", Company: "PlastPro MMC", Phone: "+994 77 567 89 01"},
			CreatedAt:   day("2024-12-24"),
		},
		{
			ID: "6", Title: "Keramik Döşəmə Kafelləri", Category: "tiles",
			Quantity: 1200, Unit: "m²", PricePerUnit: 18.9, Location: "Bakı",
			Image:       DefaultImageFor("tiles"),
			Description: "İtalyan istehsalı keramik döşəmə kafelləri. 60x60 sm. Sürüşməyə davamlı. Müxtəlif rənglər mövcuddur.",
			Seller:      Seller{Name: "Nigar Hüseynova", Company: "Ceramica Baku", Phone: "+994 50 678 90 12"},
			CreatedAt:   day("2024-12-24"),
		},
		{
			ID: "7", Title: "İzolyasiyalı Pəncərə Şüşəsi", Category: "glass",
			Quantity: 200, Unit: "m²", PricePerUnit: 85, Location: "Bakı",
			Image:       DefaultImageFor("glass"),
			Description: "İki qatlı izolyasiyalı pəncərə şüşəsi. Enerji qənaəti təmin edir. 4-16-4 mm qalınlıq. Soyuq və istilikdən qoruyur.",
			Seller:      Seller{Name: "Orxan Quliyev", Company: "AzGlass Pro", Phone: "+994 55 789 01 23"},
			CreatedAt:   day("2024-12-25"),
		},
		{
			ID: "8", Title: "Elektrik Kabeli NYM 3x2.5", Category: "electrical",
			Quantity: 5000, Unit: "metr", PricePerUnit: 3.2, Location: "Mingəçevir",
			Image:       DefaultImageFor("electrical"),
			Description: "NYM 3x2.5 mm² elektrik kabeli. Mis nüvəli, izolyasiyalı. Daxili elektrik şəbəkəsi üçün uyğundur. GOST standartlarına uyğun.",
			Seller:      Seller{Name: "Elçin Rəhimov", Company: "ElektroAz", Phone: "+994 70 890 12 34"},
			CreatedAt:   day("2024-12-25"),
		},
	}
}

// SeedDemoData loads DemoListings into repo when the store supports it and
// is empty.
func SeedDemoData(ctx context.Context, repo Repository, logger *zap.Logger) error {
	seeder, ok := repo.(Seeder)
	if !ok {
		logger.Warn("Listing store does not support seeding, skipping demo data")
		return nil
	}
	if err := seeder.Seed(ctx, DemoListings()); err != nil {
		return err
	}
	logger.Info("Demo listings seeded", zap.Int("count", len(DemoListings())))
	return nil
}
