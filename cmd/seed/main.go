package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	_ "github.com/joho/godotenv/autoload"

	"github.com/octobees/lead-intel/internal/config"
	"github.com/octobees/lead-intel/internal/database"
	"github.com/octobees/lead-intel/internal/entity"
	"github.com/octobees/lead-intel/internal/repository"
)

var techChoices = []string{"Go", "Python", "PyTorch", "React", "Kubernetes", "Postgres", "Kafka", "Rust", "AI Platform"}

func main() {
	count := flag.Int("count", 50, "number of fake leads to insert")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if *seed != 0 {
		gofakeit.Seed(*seed)
	} else {
		gofakeit.Seed(time.Now().UnixNano())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	repo := repository.NewPGXLeadsRepository(pool)

	inserted := 0
	for i := 0; i < *count; i++ {
		lead, err := fakeLead()
		if err != nil {
			log.Fatalf("build fake lead: %v", err)
		}
		if err := repo.Upsert(ctx, lead); err != nil {
			log.Fatalf("upsert lead %q: %v", lead.CompanyName, err)
		}
		inserted++
	}

	log.Printf("seeded %d leads", inserted)
}

func fakeLead() (*entity.Lead, error) {
	name := gofakeit.Company()
	domain := strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".com"
	website := "https://" + domain
	phone := gofakeit.Phone()
	address := gofakeit.Address().Address
	funding := fmt.Sprintf("$%dM", gofakeit.Number(1, 500))
	employees := gofakeit.Number(5, 5000)
	score := gofakeit.Number(0, 100)
	summary := gofakeit.Sentence(12)

	techCount := gofakeit.Number(1, 4)
	idxs := seq(len(techChoices))
	gofakeit.ShuffleInts(idxs)
	tech := make([]string, 0, techCount)
	for _, idx := range idxs[:techCount] {
		tech = append(tech, techChoices[idx])
	}

	record := entity.CompanyRecord{
		CompanyName:   name,
		Website:       &website,
		Phone:         &phone,
		Address:       &address,
		Funding:       &funding,
		Domain:        &domain,
		TechStack:     tech,
		EmployeeCount: &employees,
		Summary:       &summary,
		Score:         &score,
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &entity.Lead{
		CompanyName:   name,
		Domain:        &domain,
		Website:       &website,
		Phone:         &phone,
		Address:       &address,
		Funding:       &funding,
		TechStack:     tech,
		EmployeeCount: &employees,
		Summary:       &summary,
		Score:         &score,
		Raw:           raw,
		EnrichedAt:    &now,
	}, nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
