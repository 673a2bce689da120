// Command seed runs the database seeder for Wanderlog.
package main

import (
	"flag"
	"log"

	"wanderlog/internal/config"
	"wanderlog/internal/database"
	"wanderlog/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numLogs := flag.Int("logs", 200, "Number of travel logs to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a named seeder preset (e.g., Demo)")
	presetFile := flag.String("preset-file", "", "Load presets from a YAML file")
	flag.Parse()

	log.Println("Wanderlog Database Seeder")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *preset != "" {
		var presets []seed.Preset
		if *presetFile != "" {
			presets, err = seed.LoadPresets(*presetFile)
			if err != nil {
				log.Fatalf("Failed to load presets: %v", err)
			}
		}
		p, ok := seed.FindPreset(*preset, presets)
		if !ok {
			log.Fatalf("Unknown preset %q", *preset)
		}
		log.Printf("Applying preset %s: %d users, %d logs", p.Name, p.Users, p.Logs)
		if err := seed.ApplyPreset(db, p); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
	} else {
		s := seed.NewSeeder(db, seed.Options{
			NumUsers:    *numUsers,
			NumLogs:     *numLogs,
			ShouldClean: *shouldClean,
		})
		if err := s.Run(); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	log.Println("All done! Test users have the password: Password123!abc")
}
