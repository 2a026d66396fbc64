// Command denue-export crawls the DENUE registry for dental clinics,
// normalizes the records and writes an import-compatible CSV.
//
// Configuration via environment (a .env file is honored):
//
//	INEGI_DENUE_TOKEN  required API token
//	DENUE_ENTIDAD      state code (default "02", Baja California)
//	DENUE_MUNICIPIOS   comma-separated municipio codes (default "004", Tijuana)
//	DENUE_CLASSES      comma-separated activity class codes (default "621211", dental offices)
//	DENUE_PAGE_SIZE    records per page (default 200)
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"clinic-directory/internal/denue"
)

func parseCSVEnvCodes(value string) []string {
	var codes []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			codes = append(codes, trimmed)
		}
	}
	return codes
}

func parsePageSize(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return denue.DefaultPageSize
	}
	return parsed
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	token := strings.TrimSpace(os.Getenv("INEGI_DENUE_TOKEN"))
	if token == "" {
		log.Fatal("INEGI_DENUE_TOKEN is required. Set it in .env before running denue-export.")
	}

	entidad := envOrDefault("DENUE_ENTIDAD", "02")
	municipios := parseCSVEnvCodes(envOrDefault("DENUE_MUNICIPIOS", "004"))
	classes := parseCSVEnvCodes(envOrDefault("DENUE_CLASSES", "621211"))
	pageSize := parsePageSize(os.Getenv("DENUE_PAGE_SIZE"))

	if len(municipios) == 0 {
		log.Fatal("DENUE_MUNICIPIOS must contain at least one municipio code.")
	}
	if len(classes) == 0 {
		log.Fatal("DENUE_CLASSES must contain at least one activity class code.")
	}

	ctx := context.Background()
	client := denue.NewClient()

	var fetched []denue.Record
	for _, municipio := range municipios {
		for _, clase := range classes {
			log.Printf("Fetching DENUE entidad=%s municipio=%s clase=%s", entidad, municipio, clase)
			records, err := client.FetchAll(ctx, denue.FetchAllParams{
				Entidad:   entidad,
				Municipio: municipio,
				Clase:     clase,
				Token:     token,
				PageSize:  pageSize,
				PageDelay: 200 * time.Millisecond,
			})
			if err != nil {
				log.Fatalf("DENUE export failed: %v", err)
			}
			log.Printf("  fetched %d records", len(records))
			fetched = append(fetched, records...)
		}
	}

	// Municipio/class crawls can overlap; drop repeated record ids
	// before normalization.
	seenIDs := make(map[string]bool)
	deduped := make([]denue.Record, 0, len(fetched))
	for _, record := range fetched {
		if id := denue.RecordID(record); id != "" {
			if seenIDs[id] {
				continue
			}
			seenIDs[id] = true
		}
		deduped = append(deduped, record)
	}

	clinicRows := denue.ToClinicRows(deduped)
	csv := denue.RowsToCSV(clinicRows)

	outDir := "tmp"
	outFile := filepath.Join(outDir, "denue-tijuana-dentists.csv")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	if err := os.WriteFile(outFile, []byte(csv), 0o644); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}

	missingPhone := 0
	missingWebsite := 0
	for _, row := range clinicRows {
		if row.Phone == "" {
			missingPhone++
		}
		if row.WebsiteURL == "" {
			missingWebsite++
		}
	}

	log.Printf("Output: %s", outFile)
	log.Printf("Total records fetched: %d", len(fetched))
	log.Printf("Rows written: %d", len(clinicRows))
	log.Printf("Missing phone: %d", missingPhone)
	log.Printf("Missing website: %d", missingWebsite)

	log.Println("Sample rows:")
	for i, row := range clinicRows {
		if i >= 5 {
			break
		}
		website := row.WebsiteURL
		if website == "" {
			website = "(no website)"
		}
		log.Printf("%d. %s | %s | %s", i+1, row.Name, row.Slug, website)
	}
}
