package db

import (
	"log"
	"time"

	"educonnect/internal/config"
	"educonnect/internal/models"
	"educonnect/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := config.DatabaseURL()

	var err error
	// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey,
	// which the handlers rely on for 409 responses.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Resource{},
		&models.SavedResource{},
		&models.Application{},
		&models.Deal{},
		&models.SavedDeal{},
		&models.Post{},
		&models.Comment{},
		&models.PostLike{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedData()
}

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }

// seedData loads the initial catalog on an empty database.
func seedData() {
	var count int64
	DB.Model(&models.Resource{}).Count(&count)
	if count > 0 {
		log.Println("Database already seeded, skipping")
		return
	}

	adminHash, err := utils.HashPassword("admin123")
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	studentHash, _ := utils.HashPassword("student123")

	admin := models.User{
		Email:     "admin@educonnect.com",
		Password:  adminHash,
		Name:      "Administrateur EduConnect",
		IsStudent: false,
	}
	marie := models.User{
		Email:               "marie.dupont@etudiant.fr",
		Password:            studentHash,
		Name:                "Marie Dupont",
		University:          "Sorbonne Université",
		FieldOfStudy:        "Informatique",
		YearOfStudy:         2,
		StudentID:           "ETU2023001",
		PreferredCategories: []string{"Technology", "AI", "Software"},
	}
	pierre := models.User{
		Email:               "pierre.martin@etudiant.fr",
		Password:            studentHash,
		Name:                "Pierre Martin",
		University:          "Université Paris Cité",
		FieldOfStudy:        "Économie",
		YearOfStudy:         3,
		StudentID:           "ETU2023002",
		PreferredCategories: []string{"Business", "Grants"},
	}
	for _, u := range []*models.User{&admin, &marie, &pierre} {
		if err := DB.Create(u).Error; err != nil {
			log.Printf("Failed to create user %s: %v", u.Email, err)
		}
	}

	resources := []models.Resource{
		{
			Title:       "Certification Google Data Analytics",
			Description: "Cours gratuit de Google pour maîtriser l'analyse de données avec des outils professionnels. Apprenez SQL, R, Tableau et plus encore.",
			Type:        models.ResourceTypeCertificate,
			Category:    "Technology",
			Provider:    "Google",
			URL:         "https://coursera.org/learn/google-data-analytics",
			IsFree:      true,
			Deadline:    timePtr(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
			Duration:    "6 mois",
			Tags:        []string{"data", "analytics", "google", "professional"},
			Rating:      floatPtr(4.8),
		},
		{
			Title:       "Bourse d'Excellence Eiffel 2024",
			Description: "Bourse du gouvernement français pour étudiants internationaux en master et doctorat. Couvre les frais de scolarité et d'hébergement.",
			Type:        models.ResourceTypeGrant,
			Category:    "Grants",
			Provider:    "Campus France",
			URL:         "https://campusfrance.org/bourse-eiffel",
			IsFree:      true,
			Deadline:    timePtr(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			Location:    "France",
			Tags:        []string{"france", "international", "master", "phd"},
		},
		{
			Title:       "Adobe Creative Suite Étudiant",
			Description: "Licence étudiante gratuite pour tous les logiciels Adobe pendant 6 mois. Inclut Photoshop, Illustrator, Premiere Pro et plus.",
			Type:        models.ResourceTypeSoftware,
			Category:    "Design",
			Provider:    "Adobe",
			URL:         "https://adobe.com/education",
			IsFree:      true,
			Deadline:    timePtr(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)),
			Duration:    "6 mois",
			Tags:        []string{"design", "creative", "adobe", "student"},
		},
		{
			Title:       "Introduction à l'IA par Microsoft",
			Description: "Cours en ligne gratuit sur les fondamentaux de l'intelligence artificielle. Apprenez le machine learning, le deep learning et les concepts éthiques.",
			Type:        models.ResourceTypeCourse,
			Category:    "AI",
			Provider:    "Microsoft",
			URL:         "https://microsoft.com/learn/ai",
			IsFree:      true,
			Duration:    "8 semaines",
			Tags:        []string{"ai", "machine-learning", "microsoft", "beginner"},
			Rating:      floatPtr(4.6),
		},
		{
			Title:       "Erasmus+ Mobilité Étudiante",
			Description: "Programme d'échange européen avec bourse complète pour étudier dans une université partenaire.",
			Type:        models.ResourceTypeGrant,
			Category:    "Grants",
			Provider:    "Union Européenne",
			URL:         "https://erasmus-plus.ec.europa.eu",
			IsFree:      true,
			Deadline:    timePtr(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
			Location:    "Europe",
			Tags:        []string{"europe", "exchange", "grant"},
		},
		{
			Title:       "Visual Studio Code",
			Description: "Éditeur de code gratuit et open-source avec support pour de nombreux langages de programmation et extensions.",
			Type:        models.ResourceTypeSoftware,
			Category:    "Technology",
			Provider:    "Microsoft",
			URL:         "https://code.visualstudio.com",
			IsFree:      true,
			Tags:        []string{"editor", "open-source"},
		},
	}
	for i := range resources {
		if err := DB.Create(&resources[i]).Error; err != nil {
			log.Printf("Failed to create resource %s: %v", resources[i].Title, err)
		}
	}

	deals := []models.Deal{
		{
			Title:           "MacBook Air M2 Étudiant -30%",
			Description:     "Réduction exclusive pour étudiants sur le nouvel MacBook Air M2. Preuve d'inscription requise.",
			Company:         "Apple",
			Category:        "Technology",
			Discount:        "30%",
			OriginalPrice:   floatPtr(1299),
			DiscountedPrice: floatPtr(909),
			Latitude:        floatPtr(48.8566),
			Longitude:       floatPtr(2.3522),
			Address:         "Apple Store Opéra, Paris",
			ValidUntil:      timePtr(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
			Requirements:    []string{"Carte étudiante valide", "18-25 ans"},
			Verified:        true,
		},
		{
			Title:           "Forfait Étudiant Free Mobile",
			Description:     "Forfait mobile 100Go pour étudiants avec roaming international inclus.",
			Company:         "Free Mobile",
			Category:        "Telecom",
			Discount:        "50%",
			OriginalPrice:   floatPtr(19.99),
			DiscountedPrice: floatPtr(9.99),
			ValidUntil:      timePtr(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)),
			Requirements:    []string{"Justificatif étudiant", "RIB"},
			Verified:        true,
		},
		{
			Title:           "Repas Étudiant -50%",
			Description:     "Menu étudiant complet avec entrée, plat, dessert à prix réduit dans les restaurants CROUS.",
			Company:         "CROUS",
			Category:        "Food",
			Discount:        "50%",
			OriginalPrice:   floatPtr(8.50),
			DiscountedPrice: floatPtr(4.25),
			Latitude:        floatPtr(48.8423),
			Longitude:       floatPtr(2.3445),
			Address:         "Restaurant CROUS Jussieu",
			ValidUntil:      timePtr(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
			Requirements:    []string{"Carte étudiante"},
			Verified:        true,
		},
		{
			Title:           "Suite Adobe Creative Cloud",
			Description:     "Suite Creative Cloud complète à tarif étudiant réduit. Inclut tous les logiciels Adobe.",
			Company:         "Adobe",
			Category:        "Software",
			Discount:        "60%",
			OriginalPrice:   floatPtr(60.49),
			DiscountedPrice: floatPtr(23.99),
			ValidUntil:      timePtr(time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC)),
			Requirements:    []string{"Email universitaire", "Justificatif inscription"},
			Verified:        true,
		},
	}
	for i := range deals {
		if err := DB.Create(&deals[i]).Error; err != nil {
			log.Printf("Failed to create deal %s: %v", deals[i].Title, err)
		}
	}

	posts := []models.Post{
		{
			UserID:   marie.ID,
			Content:  "Quelqu'un a déjà utilisé la bourse d'excellence Eiffel ? Je cherche des conseils pour ma candidature en master. Merci !",
			Category: "Bourses",
			Tags:     []string{"master", "eiffel", "candidature"},
		},
		{
			UserID:   pierre.ID,
			Content:  "À partager : Free Mobile fait 50% de réduction sur leurs forfaits pour les étudiants jusqu'à fin juin !",
			Category: "Deals",
			Tags:     []string{"mobile", "reduction", "free"},
		},
		{
			UserID:   marie.ID,
			Content:  "Conseil pour les étudiants en informatique : la certification Google Data Analytics est gratuite et super bien reconnue dans le milieu pro.",
			Category: "Cours",
			Tags:     []string{"google", "data", "certification", "informatique"},
		},
	}
	for i := range posts {
		if err := DB.Create(&posts[i]).Error; err != nil {
			log.Printf("Failed to create post: %v", err)
		}
	}

	log.Println("Database seeded successfully")
}
