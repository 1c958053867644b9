// seed inserts the starter resume templates into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/infrastructure/postgres"
)

var templates = []domain.Template{
	{
		Name:        "Classic",
		ContentType: domain.ContentTypeHTML,
		Content: `<article class="resume classic">
  <h1>{{name}}</h1>
  <p>{{email}} | {{phone}}</p>
  <section><h2>Experience</h2>{{experience}}</section>
  <section><h2>Education</h2>{{education}}</section>
  <section><h2>Skills</h2>{{skills}}</section>
</article>`,
	},
	{
		Name:        "Modern",
		ContentType: domain.ContentTypeHTML,
		Content: `<article class="resume modern">
  <header><h1>{{name}}</h1><span>{{title}}</span></header>
  <aside>{{email}}<br>{{phone}}<br>{{skills}}</aside>
  <main>{{summary}}{{experience}}{{education}}</main>
</article>`,
	},
	{
		Name:        "Structured",
		ContentType: domain.ContentTypeJSON,
		Content:     `{"sections":["summary","experience","education","skills","certifications"]}`,
	},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	db, err := postgres.NewGorm(pool, slog.Default())
	if err != nil {
		log.Fatalf("gorm: %v", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("%v", err)
	}

	repo := postgres.NewTemplateRepository(db)
	existing, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("list templates: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.Name] = true
	}

	// Re-runs skip templates that already exist by name.
	var inserted, skipped int
	for i := range templates {
		t := templates[i]
		if have[t.Name] {
			skipped++
			continue
		}
		if err := repo.Create(ctx, &t); err != nil {
			log.Fatalf("insert template %s: %v", t.Name, err)
		}
		fmt.Printf("  %-12s id=%d\n", t.Name, t.ID)
		inserted++
	}

	fmt.Println()
	fmt.Printf("Seed complete: %d templates created (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("Next: register the first account (must use the org domain) with")
	fmt.Println("  curl -s -X POST http://localhost:8080/api/auth/register/initiate \\")
	fmt.Println("    -H 'Content-Type: application/json' \\")
	fmt.Println(`    -d '{"firstName":"Ada","lastName":"Admin","email":"ada@quadranttechnologies.com","password":"S3cure!pass","confirmPassword":"S3cure!pass"}'`)
}
