package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-recipe-profile/config"
	"github.com/oksasatya/go-recipe-profile/pkg/helpers"
)

type seedRecipe struct {
	name, category, image, difficulty string
	prepTime                          int
}

var recipes = []seedRecipe{
	{"Nasi Goreng Kampung", "makanan", "https://images.example.com/nasi-goreng.jpg", "mudah", 20},
	{"Rendang Daging", "makanan", "https://images.example.com/rendang.jpg", "sulit", 180},
	{"Es Teh Manis", "minuman", "https://images.example.com/es-teh.jpg", "mudah", 5},
	{"Wedang Jahe", "minuman", "https://images.example.com/wedang-jahe.jpg", "mudah", 15},
	{"Soto Ayam", "makanan", "https://images.example.com/soto.jpg", "sedang", 60},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "chef@example.com"
	password := "password123"
	username := "demoChef"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, username)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username, password_hash = EXCLUDED.password_hash
		RETURNING id
	`, email, hash, username).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", userID, email, username, password)

	ids := make([]string, 0, len(recipes))
	for _, r := range recipes {
		var id string
		err := db.QueryRow(`
			WITH existing AS (SELECT id FROM recipes WHERE name = $1),
			inserted AS (
				INSERT INTO recipes (name, category, image_url, prep_time, difficulty)
				SELECT $1, $2, $3, $4, $5 WHERE NOT EXISTS (SELECT 1 FROM existing)
				RETURNING id
			)
			SELECT id FROM existing UNION ALL SELECT id FROM inserted
		`, r.name, r.category, r.image, r.prepTime, r.difficulty).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed recipe %q: %v", r.name, err)
		}
		ids = append(ids, id)
	}
	fmt.Printf("recipes ensured: %d\n", len(ids))

	// two favorites, one of them a drink so both card colours show up
	for _, id := range []string{ids[0], ids[2]} {
		if _, err := db.Exec(`
			INSERT INTO favorites (user_id, recipe_id) VALUES ($1, $2)
			ON CONFLICT (user_id, recipe_id) DO NOTHING
		`, userID, id); err != nil {
			log.Fatalf("failed to seed favorite: %v", err)
		}
	}

	if _, err := db.Exec(`DELETE FROM reviews WHERE user_id = $1`, userID); err != nil {
		log.Fatalf("failed to reset reviews: %v", err)
	}
	reviews := []struct {
		recipe  string
		rating  int
		comment string
		daysAgo int
	}{
		{ids[1], 5, "Empuk dan bumbunya meresap.", 2},
		{ids[4], 3, "Kuahnya agak asin.", 10},
	}
	for _, rv := range reviews {
		if _, err := db.Exec(`
			INSERT INTO reviews (user_id, recipe_id, rating, comment, created_at)
			VALUES ($1, $2, $3, $4, now() - make_interval(days => $5))
		`, userID, rv.recipe, rv.rating, rv.comment, rv.daysAgo); err != nil {
			log.Fatalf("failed to seed review: %v", err)
		}
	}
	fmt.Printf("seeded %d reviews and 2 favorites for %s\n", len(reviews), username)
}
